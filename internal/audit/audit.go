// Package audit persists a trail of significant actions (bookings,
// cancellations, record signatures) to the audit_logs table. Audit
// failures are logged and swallowed: they must never fail the action
// being audited.
package audit

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"clinic-server/internal/models"
)

// Logger writes audit entries.
type Logger struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewLogger creates an audit Logger over the application database.
func NewLogger(db *gorm.DB, log zerolog.Logger) *Logger {
	return &Logger{db: db, log: log}
}

// Record stores an audit entry. userID may be empty for system actions
// (e.g. the auto-expire sweep); changes may be nil.
func (l *Logger) Record(userID, action, entity, objectID string, changes map[string]interface{}, ip string) {
	entry := models.AuditLog{
		Action:    action,
		Entity:    entity,
		ObjectID:  objectID,
		IPAddress: ip,
	}
	if userID != "" {
		entry.UserID = &userID
	}
	if changes != nil {
		payload, err := json.Marshal(changes)
		if err != nil {
			l.log.Error().Err(err).Str("action", action).Msg("failed to encode audit changes")
		} else {
			entry.Changes = string(payload)
		}
	}

	if err := l.db.Create(&entry).Error; err != nil {
		l.log.Error().Err(err).
			Str("action", action).
			Str("entity", entity).
			Str("object_id", objectID).
			Msg("failed to write audit log")
	}
}
