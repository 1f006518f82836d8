package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus also orders listings: descending lexical order puts
// rejected first, then pending, then the admin row.
type ApplicationStatus string

const (
	ApplicationStatusAdmin    ApplicationStatus = "admin"
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application links a user to a position. Exactly one admin row exists
// per position, written in the same transaction that creates the
// position; every other row starts as pending.
type Application struct {
	ID         string            `json:"id" gorm:"type:uuid;primaryKey"`
	PositionID string            `json:"position_id" gorm:"type:uuid;not null;uniqueIndex:idx_applications_position_user"`
	UserID     string            `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_applications_position_user"`
	Status     ApplicationStatus `json:"status" gorm:"size:20;not null;default:pending"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	Position *Position `json:"position,omitempty" gorm:"foreignKey:PositionID"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Application) TableName() string { return "applications" }

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
