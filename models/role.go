package models

import "github.com/google/uuid"

// Role is the coarse permission group a user belongs to.
type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `json:"name" gorm:"uniqueIndex"`
}

const (
	RoleUser   = "User"
	RoleAdmin  = "Admin"
	RoleWorker = "Worker"
)
