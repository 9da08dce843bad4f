package models

// AuditLog records a significant action performed in the system
type AuditLog struct {
	BaseModel
	UserID    *string `gorm:"size:36;index:idx_user_created" json:"userId,omitempty"` // nil for system actions
	Action    string  `gorm:"size:100;not null" json:"action"`
	Entity    string  `gorm:"size:100;index" json:"entity"`
	ObjectID  string  `gorm:"size:100" json:"objectId"`
	Changes   string  `gorm:"type:text" json:"changes,omitempty"` // JSON payload
	IPAddress string  `gorm:"size:45" json:"ipAddress,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
