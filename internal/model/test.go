package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestTypePDF marks a test whose questions only exist in the section schema.
const TestTypePDF = "pdf"

type Test struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string         `json:"title" gorm:"not null"`
	TestType        string         `json:"test_type" gorm:"not null;default:'regular'"` // "regular", "pdf"
	ExamVariant     string         `json:"exam_variant,omitempty"`                      // "mains", "advanced", ...
	DurationMinutes int            `json:"duration_minutes"`
	Subjects        []TestSubject  `json:"subjects,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Test) IsPDF() bool {
	return strings.EqualFold(t.TestType, TestTypePDF)
}
