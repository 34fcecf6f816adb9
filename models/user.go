package models

import "github.com/google/uuid"

// User represents a user of the application
type User struct {
	Model
	Fullname      string         `json:"fullname"`
	Username      string         `json:"username"`
	Telephone     string         `json:"telephone" gorm:"default:null"`
	Email         string         `json:"email" gorm:"unique;not null"`
	IsBlocked     bool           `json:"is_blocked" gorm:"default:false"`
	DeviceToken   string         `json:"-"`
	RoleID        uuid.UUID      `gorm:"type:uuid" json:"role_id"`
	Role          Role           `gorm:"foreignKey:RoleID" json:"role"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"-"`
}

// Actor returns the identity this user acts as.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role.Name}
}
