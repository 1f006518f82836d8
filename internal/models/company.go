package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyStatus represents the lifecycle state of a company
type CompanyStatus string

const (
	CompanyStatusActive  CompanyStatus = "active"
	CompanyStatusDeleted CompanyStatus = "deleted"
)

// Company is owned by the recruiter that registered it. Deletion is
// logical, through an update that sets status to deleted.
type Company struct {
	ID          string        `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID     string        `json:"user_id" gorm:"column:user_id;type:uuid;not null;index"`
	Name        string        `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Email       string        `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Address     string        `json:"address" gorm:"size:255"`
	Description string        `json:"description" gorm:"size:255"`
	Status      CompanyStatus `json:"status" gorm:"size:20;not null;default:active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Owner     *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Positions []Position `json:"positions,omitempty" gorm:"foreignKey:CompanyID"`
}

func (Company) TableName() string { return "companies" }

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
