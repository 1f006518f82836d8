package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Position is a job opening published for a company. The recruiter that
// created it is both the explicit owner and the holder of the admin
// application row written at creation time.
type Position struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID   string    `json:"company_id" gorm:"type:uuid;not null;index"`
	OwnerID     string    `json:"owner_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"size:255;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"size:255"`
	Location    string    `json:"location" gorm:"size:255"`
	Mode        string    `json:"mode" gorm:"size:255"`
	Salary      string    `json:"salary" gorm:"size:255"`
	Open        bool      `json:"open" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Company      *Company      `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Owner        *User         `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Skills       []Skill       `json:"skills,omitempty" gorm:"many2many:position_skill"`
	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:PositionID"`
}

func (Position) TableName() string { return "positions" }

func (p *Position) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PositionSkill is the position-skill join row
type PositionSkill struct {
	PositionID string    `json:"position_id" gorm:"type:uuid;primaryKey"`
	SkillID    string    `json:"skill_id" gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PositionSkill) TableName() string { return "position_skill" }
