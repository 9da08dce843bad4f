package scheduling

import (
	"testing"
	"time"

	"clinic-server/internal/models"
)

func openTestDB(t *testing.T) *GormStore {
	t.Helper()
	db, err := models.InitDB(models.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	return NewGormStore(db)
}

func seedDoctor(t *testing.T, store *GormStore, license string) string {
	t.Helper()
	doc := models.Staff{
		UserID:        "user-" + license,
		FullName:      "Dr. Test",
		Position:      models.PositionDoctor,
		LicenseNumber: license,
	}
	if err := store.db.Create(&doc).Error; err != nil {
		t.Fatalf("seeding doctor: %v", err)
	}
	return doc.ID
}

func seedPatient(t *testing.T, store *GormStore, insurance string) string {
	t.Helper()
	pat := models.Patient{
		UserID:          "patient-user-" + insurance,
		FullName:        "Test Patient",
		PassportNumber:  "pass-" + insurance,
		InsuranceNumber: insurance,
	}
	if err := store.db.Create(&pat).Error; err != nil {
		t.Fatalf("seeding patient: %v", err)
	}
	return pat.ID
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(models.DateLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestGormStoreInsertDetectsOverlap(t *testing.T) {
	store := openTestDB(t)
	doctorID := seedDoctor(t, store, "lic-1")
	patientID := seedPatient(t, store, "1111222233334444")
	date := day(t, "2026-04-01")

	first := &models.Appointment{
		DoctorID: doctorID, PatientID: patientID,
		Date: date, Time: "10:00", DurationMinutes: 30,
		Status: models.StatusScheduled,
	}
	if err := store.InsertAppointment(first); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	overlap := &models.Appointment{
		DoctorID: doctorID, PatientID: patientID,
		Date: date, Time: "10:15", DurationMinutes: 30,
		Status: models.StatusScheduled,
	}
	if err := store.InsertAppointment(overlap); !IsConflict(err) {
		t.Fatalf("expected conflict for 10:15, got %v", err)
	}

	adjacent := &models.Appointment{
		DoctorID: doctorID, PatientID: patientID,
		Date: date, Time: "10:30", DurationMinutes: 30,
		Status: models.StatusScheduled,
	}
	if err := store.InsertAppointment(adjacent); err != nil {
		t.Fatalf("back-to-back insert failed: %v", err)
	}

	var count int64
	if err := store.db.Model(&models.Appointment{}).Count(&count).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 persisted appointments, found %d", count)
	}
}

func TestGormStoreInsertIgnoresInactiveStatuses(t *testing.T) {
	store := openTestDB(t)
	doctorID := seedDoctor(t, store, "lic-1")
	patientID := seedPatient(t, store, "1111222233334444")
	date := day(t, "2026-04-01")

	cancelled := &models.Appointment{
		DoctorID: doctorID, PatientID: patientID,
		Date: date, Time: "10:00", DurationMinutes: 30,
		Status: models.StatusCancelled,
	}
	if err := store.db.Create(cancelled).Error; err != nil {
		t.Fatalf("seeding cancelled row: %v", err)
	}

	rebooked := &models.Appointment{
		DoctorID: doctorID, PatientID: patientID,
		Date: date, Time: "10:15", DurationMinutes: 30,
		Status: models.StatusScheduled,
	}
	if err := store.InsertAppointment(rebooked); err != nil {
		t.Fatalf("cancelled rows must not block a booking, got %v", err)
	}
}

func TestGormStoreRebookCancelledSlot(t *testing.T) {
	store := openTestDB(t)
	doctorID := seedDoctor(t, store, "lic-1")
	patientID := seedPatient(t, store, "1111222233334444")
	date := day(t, "2026-04-01")

	book := func() *models.Appointment {
		t.Helper()
		a := &models.Appointment{
			DoctorID: doctorID, PatientID: patientID,
			Date: date, Time: "10:00", DurationMinutes: 30,
			Status: models.StatusScheduled,
		}
		if err := store.InsertAppointment(a); err != nil {
			t.Fatalf("booking 10:00 failed: %v", err)
		}
		return a
	}

	// Cancelling frees the slot for the exact same doctor, date and time,
	// and a second cancel cycle must not trip the slot index either.
	for i := 0; i < 2; i++ {
		a := book()
		if err := store.UpdateStatus(a.ID, models.StatusScheduled, models.StatusCancelled); err != nil {
			t.Fatalf("cancelling failed: %v", err)
		}
	}
	kept := book()

	got, err := store.FindAppointment(kept.ID)
	if err != nil || got == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Status != models.StatusScheduled {
		t.Fatalf("rebooked appointment should be scheduled, got %s", got.Status)
	}

	// An active booking still blocks the slot with a typed conflict.
	dup := &models.Appointment{
		DoctorID: doctorID, PatientID: patientID,
		Date: date, Time: "10:00", DurationMinutes: 30,
		Status: models.StatusScheduled,
	}
	if err := store.InsertAppointment(dup); !IsConflict(err) {
		t.Fatalf("expected conflict against the active booking, got %v", err)
	}
}

func TestGormStoreInsertRejectsMalformedTime(t *testing.T) {
	store := openTestDB(t)
	appt := &models.Appointment{
		DoctorID: "doc", PatientID: "pat",
		Date: day(t, "2026-04-01"), Time: "not-a-time",
		DurationMinutes: 30, Status: models.StatusScheduled,
	}
	if err := store.InsertAppointment(appt); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGormStoreFindAppointmentsFiltersAndOrders(t *testing.T) {
	store := openTestDB(t)
	doctorID := seedDoctor(t, store, "lic-1")
	otherDoctorID := seedDoctor(t, store, "lic-2")
	patientID := seedPatient(t, store, "1111222233334444")
	date := day(t, "2026-04-01")

	seed := func(docID, tm string, status models.AppointmentStatus) {
		t.Helper()
		a := &models.Appointment{
			DoctorID: docID, PatientID: patientID,
			Date: date, Time: tm, DurationMinutes: 30, Status: status,
		}
		if err := store.db.Create(a).Error; err != nil {
			t.Fatalf("seeding appointment at %s: %v", tm, err)
		}
	}

	seed(doctorID, "14:00", models.StatusScheduled)
	seed(doctorID, "09:00", models.StatusConfirmed)
	seed(doctorID, "11:00", models.StatusCancelled)
	seed(otherDoctorID, "10:00", models.StatusScheduled)

	appts, err := store.FindAppointments(doctorID, date, models.ActiveStatuses...)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 active appointments, got %d", len(appts))
	}
	if appts[0].Time != "09:00" || appts[1].Time != "14:00" {
		t.Fatalf("expected ascending times, got %s then %s", appts[0].Time, appts[1].Time)
	}

	all, err := store.FindAppointments(doctorID, date)
	if err != nil {
		t.Fatalf("unfiltered find failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 appointments without status filter, got %d", len(all))
	}
}

func TestGormStoreFindAppointmentMissing(t *testing.T) {
	store := openTestDB(t)
	appt, err := store.FindAppointment("nope")
	if err != nil {
		t.Fatalf("missing row must not be an error: %v", err)
	}
	if appt != nil {
		t.Fatalf("expected nil for a missing row, got %+v", appt)
	}
}

func TestGormStoreUpdateStatusConditional(t *testing.T) {
	store := openTestDB(t)
	doctorID := seedDoctor(t, store, "lic-1")
	patientID := seedPatient(t, store, "1111222233334444")

	appt := &models.Appointment{
		DoctorID: doctorID, PatientID: patientID,
		Date: day(t, "2026-04-01"), Time: "10:00",
		DurationMinutes: 30, Status: models.StatusScheduled,
	}
	if err := store.db.Create(appt).Error; err != nil {
		t.Fatalf("seeding: %v", err)
	}

	if err := store.UpdateStatus(appt.ID, models.StatusScheduled, models.StatusConfirmed); err != nil {
		t.Fatalf("scheduled -> confirmed failed: %v", err)
	}

	err := store.UpdateStatus(appt.ID, models.StatusScheduled, models.StatusCancelled)
	if !IsInvalidState(err) {
		t.Fatalf("stale expected status must fail with invalid state, got %v", err)
	}

	got, findErr := store.FindAppointment(appt.ID)
	if findErr != nil {
		t.Fatalf("reload failed: %v", findErr)
	}
	if got.Status != models.StatusConfirmed {
		t.Fatalf("failed update must not change status, got %s", got.Status)
	}

	if err := store.UpdateStatus("nope", models.StatusScheduled, models.StatusCancelled); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGormStoreFindExpiring(t *testing.T) {
	store := openTestDB(t)
	doctorID := seedDoctor(t, store, "lic-1")
	patientID := seedPatient(t, store, "1111222233334444")

	seed := func(date, tm string, status models.AppointmentStatus) {
		t.Helper()
		a := &models.Appointment{
			DoctorID: doctorID, PatientID: patientID,
			Date: day(t, date), Time: tm,
			DurationMinutes: 30, Status: status,
		}
		if err := store.db.Create(a).Error; err != nil {
			t.Fatalf("seeding %s %s: %v", date, tm, err)
		}
	}

	seed("2026-04-01", "10:00", models.StatusScheduled)
	seed("2026-04-01", "11:00", models.StatusConfirmed)
	seed("2026-04-02", "10:00", models.StatusScheduled)

	stale, err := store.FindExpiring(day(t, "2026-04-02"))
	if err != nil {
		t.Fatalf("find expiring failed: %v", err)
	}
	if len(stale) != 1 {
		t.Fatalf("expected 1 expiring appointment, got %d", len(stale))
	}
	if !stale[0].Date.Equal(day(t, "2026-04-01")) || stale[0].Status != models.StatusScheduled {
		t.Fatalf("unexpected expiring row: %+v", stale[0])
	}
}

func TestGormStoreIdentityChecks(t *testing.T) {
	store := openTestDB(t)
	doctorID := seedDoctor(t, store, "lic-1")
	patientID := seedPatient(t, store, "1111222233334444")

	nurse := models.Staff{UserID: "user-lic-3", FullName: "Nurse", Position: models.PositionNurse, LicenseNumber: "lic-3"}
	if err := store.db.Create(&nurse).Error; err != nil {
		t.Fatalf("seeding nurse: %v", err)
	}

	if ok, err := store.DoctorExists(doctorID); err != nil || !ok {
		t.Fatalf("expected doctor to exist, got ok=%v err=%v", ok, err)
	}
	if ok, err := store.DoctorExists(nurse.ID); err != nil || ok {
		t.Fatalf("a nurse must not be bookable as a doctor, got ok=%v err=%v", ok, err)
	}
	if ok, err := store.DoctorExists("nope"); err != nil || ok {
		t.Fatalf("unknown id must not exist, got ok=%v err=%v", ok, err)
	}
	if ok, err := store.PatientExists(patientID); err != nil || !ok {
		t.Fatalf("expected patient to exist, got ok=%v err=%v", ok, err)
	}
	if ok, err := store.PatientExists("nope"); err != nil || ok {
		t.Fatalf("unknown patient must not exist, got ok=%v err=%v", ok, err)
	}
}
