package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one citizen's support or opposition on a report. The composite
// unique index is what keeps concurrent voters from double counting.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ReportID  uuid.UUID `json:"report_id" gorm:"type:uuid;not null;uniqueIndex:idx_votes_report_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_votes_report_user"`
	Support   bool      `json:"support"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteRequest is the body of a vote call.
type VoteRequest struct {
	Support *bool `json:"support" validate:"required"`
}
