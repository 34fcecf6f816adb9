package models

import "github.com/google/uuid"

// Notification represents notifications sent to users. ReportID is nil for
// notices that are not about a specific report.
type Notification struct {
	Model
	UserID   uint       `json:"user_id" gorm:"index;not null"`
	ReportID *uuid.UUID `json:"report_id,omitempty" gorm:"type:uuid;index"`
	Message  string     `json:"message"`
	IsRead   bool       `json:"is_read" gorm:"default:false"`
}
