package models

import "time"

// WorkerLocation is the latest known position of a field worker. One row per
// worker; each update replaces the previous one.
type WorkerLocation struct {
	WorkerID  uint      `json:"worker_id" gorm:"primaryKey;autoIncrement:false"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkerLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}
