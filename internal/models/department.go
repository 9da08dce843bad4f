package models

// Department represents a department of the clinic
type Department struct {
	BaseModel
	Name          string  `gorm:"size:255;uniqueIndex" json:"name"`
	Description   string  `gorm:"type:text" json:"description"`
	HeadDoctorID  *string `gorm:"size:36" json:"headDoctorId,omitempty"`
	Phone         string  `gorm:"size:20" json:"phone"`
	CabinetNumber string  `gorm:"size:20" json:"cabinetNumber"`

	// Relations
	HeadDoctor   *Staff  `gorm:"foreignKey:HeadDoctorID" json:"-"`
	StaffMembers []Staff `gorm:"foreignKey:DepartmentID" json:"-"`
}
