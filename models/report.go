package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is a position in the report lifecycle.
type ReportStatus string

const (
	StatusPending             ReportStatus = "pending"
	StatusEscalated           ReportStatus = "escalated"
	StatusAssigned            ReportStatus = "assigned"
	StatusPendingConfirmation ReportStatus = "pending_confirmation"
	StatusWorking             ReportStatus = "working"
	StatusResolved            ReportStatus = "resolved"
	StatusWithdrawn           ReportStatus = "withdrawn"
)

// ReportType is the kind of issue being reported.
type ReportType string

const (
	TypeGarbageDump         ReportType = "garbage_dump"
	TypeOverflowingBin      ReportType = "overflowing_bin"
	TypeDrainageBlockage    ReportType = "drainage_blockage"
	TypeSewageLeak          ReportType = "sewage_leak"
	TypeDeadAnimal          ReportType = "dead_animal"
	TypeStreetLitter        ReportType = "street_litter"
	TypeOther               ReportType = "other"
	TypePublicBinRequest    ReportType = "public_bin_request"
	TypePublicToiletRequest ReportType = "public_toilet_request"
)

var knownReportTypes = map[ReportType]bool{
	TypeGarbageDump:         true,
	TypeOverflowingBin:      true,
	TypeDrainageBlockage:    true,
	TypeSewageLeak:          true,
	TypeDeadAnimal:          true,
	TypeStreetLitter:        true,
	TypeOther:               true,
	TypePublicBinRequest:    true,
	TypePublicToiletRequest: true,
}

func (t ReportType) Valid() bool {
	return knownReportTypes[t]
}

// IsInfraRequest reports whether the type asks for new infrastructure rather
// than field work. These are handled by admins directly and never assigned.
func (t ReportType) IsInfraRequest() bool {
	return t == TypePublicBinRequest || t == TypePublicToiletRequest
}

type Report struct {
	ID                 uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Title              string       `json:"title" gorm:"type:varchar(200);not null"`
	Description        string       `json:"description" gorm:"type:varchar(1000)"`
	Type               ReportType   `json:"type" gorm:"type:varchar(40);index;not null"`
	Latitude           float64      `json:"latitude"`
	Longitude          float64      `json:"longitude"`
	Address            string       `json:"address"`
	Landmark           string       `json:"landmark"`
	Status             ReportStatus `json:"status" gorm:"type:varchar(30);index;not null;default:pending"`
	SupportCount       int          `json:"support_count" gorm:"not null;default:0"`
	OppositionCount    int          `json:"opposition_count" gorm:"not null;default:0"`
	UserID             uint         `json:"creator_id" gorm:"index;not null"`
	AssignedWorkerID   *uint        `json:"assigned_worker_id,omitempty" gorm:"index"`
	ResolutionImageURL *string      `json:"resolution_image_url,omitempty"`
	ResolutionNotes    *string      `json:"resolution_notes,omitempty" gorm:"type:varchar(1000)"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// HasEvidence reports whether the assigned worker has uploaded a resolution image.
func (r *Report) HasEvidence() bool {
	return r.ResolutionImageURL != nil && *r.ResolutionImageURL != ""
}

// CreateReportRequest is the body of a new report.
type CreateReportRequest struct {
	Title       string     `json:"title" conform:"trim" validate:"required,min=3,max=200"`
	Description string     `json:"description" conform:"trim" validate:"max=1000"`
	Type        ReportType `json:"type" conform:"trim,lower" validate:"required"`
	Latitude    *float64   `json:"latitude" validate:"required,latitude"`
	Longitude   *float64   `json:"longitude" validate:"required,longitude"`
	Address     string     `json:"address" conform:"trim"`
	Landmark    string     `json:"landmark" conform:"trim"`
}

// EvidenceRequest carries a resolution image that has already been stored.
type EvidenceRequest struct {
	ImageURL string `json:"image_url" conform:"trim" validate:"required,url"`
	Notes    string `json:"notes" conform:"trim" validate:"max=1000"`
}
