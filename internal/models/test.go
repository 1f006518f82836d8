package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestUserType distinguishes the two roles a user can hold on a test
type TestUserType string

const (
	TestUserExaminer TestUserType = "examiner"
	TestUserExaminee TestUserType = "examinee"
)

// Test is a skill evaluation session scheduled by an examiner for an
// examinee. The skills under evaluation are tracked as SkillMark rows,
// created with mark 0 and filled in during evaluation. Tests are hard
// deleted together with their join rows.
type Test struct {
	ID         string         `json:"id" gorm:"type:uuid;primaryKey"`
	ExaminerID string         `json:"examiner_id" gorm:"type:uuid;not null;index"`
	Date       datatypes.Date `json:"date"`
	Completed  bool           `json:"completed" gorm:"not null;default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	Examiner *User       `json:"examiner,omitempty" gorm:"foreignKey:ExaminerID"`
	Users    []User      `json:"users,omitempty" gorm:"many2many:test_user"`
	Marks    []SkillMark `json:"skill_marks,omitempty" gorm:"foreignKey:TestID"`
}

func (Test) TableName() string { return "tests" }

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TestUser is the test-user join row carrying the participant type
type TestUser struct {
	TestID    string       `json:"test_id" gorm:"type:uuid;primaryKey"`
	UserID    string       `json:"user_id" gorm:"type:uuid;primaryKey"`
	UserType  TestUserType `json:"user_type" gorm:"size:20;not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (TestUser) TableName() string { return "test_user" }

// SkillMark holds the 0-10 mark a skill received on a test. One row per
// (skill, test) pair, created with mark 0 when the skill is attached.
type SkillMark struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	SkillID   string    `json:"skill_id" gorm:"type:uuid;not null;uniqueIndex:idx_skill_marks_skill_test"`
	TestID    string    `json:"test_id" gorm:"type:uuid;not null;uniqueIndex:idx_skill_marks_skill_test"`
	Mark      uint      `json:"mark" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Skill *Skill `json:"skill,omitempty" gorm:"foreignKey:SkillID"`
	Test  *Test  `json:"test,omitempty" gorm:"foreignKey:TestID"`
}

func (SkillMark) TableName() string { return "skill_marks" }

func (m *SkillMark) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
