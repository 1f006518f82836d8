package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStatus represents the lifecycle state of a user account
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusDeleted UserStatus = "deleted"
)

// Role names seeded at migration time
const (
	RoleApplicant = "applicant"
	RoleRecruiter = "recruiter"
)

// Role is a fixed lookup table (applicant, recruiter)
type Role struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Users []User `json:"users,omitempty" gorm:"foreignKey:RoleID"`
}

func (Role) TableName() string { return "roles" }

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// User represents a registered account. Deletion is logical: the row
// stays but status flips to deleted and the account disappears from
// listings and can no longer log in.
type User struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	RoleID      string     `json:"role_id" gorm:"type:uuid;not null;index"`
	LastName    string     `json:"last_name" gorm:"size:255;not null"`
	FirstName   string     `json:"first_name" gorm:"size:255;not null"`
	Email       string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password    string     `json:"-" gorm:"size:255;not null"`
	Phone       string     `json:"phone" gorm:"size:255"`
	Title       string     `json:"title" gorm:"size:255"`
	Description string     `json:"description" gorm:"size:255"`
	Status      UserStatus `json:"status" gorm:"size:20;not null;default:active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Role         *Role         `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Skills       []Skill       `json:"skills,omitempty" gorm:"many2many:skill_user"`
	Companies    []Company     `json:"companies,omitempty" gorm:"foreignKey:OwnerID"`
	Positions    []Position    `json:"positions,omitempty" gorm:"foreignKey:OwnerID"`
	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:UserID"`
	Tests        []Test        `json:"tests,omitempty" gorm:"many2many:test_user"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsDeleted reports whether the account has been logically deleted
func (u *User) IsDeleted() bool {
	return u.Status == UserStatusDeleted
}

// SkillUser is the user-skill join row. Creator marks the user that
// registered the skill; creator rows are never detached.
type SkillUser struct {
	UserID    string    `json:"user_id" gorm:"type:uuid;primaryKey"`
	SkillID   string    `json:"skill_id" gorm:"type:uuid;primaryKey"`
	Creator   bool      `json:"creator" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SkillUser) TableName() string { return "skill_user" }
