package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SectionTypeSingleChoice   = "single_choice"
	SectionTypeMultipleChoice = "multiple_choice"
	SectionTypeInteger        = "integer"
)

// Section question schema: tests -> test_subjects -> test_sections ->
// test_section_questions. Used by pdf tests and by tests created before the
// regular question bank existed.

type TestSubject struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	TestID     uuid.UUID     `json:"test_id" gorm:"type:uuid;not null;index"`
	Name       string        `json:"name" gorm:"not null"`
	OrderIndex int           `json:"order_index"`
	Sections   []TestSection `json:"sections,omitempty" gorm:"foreignKey:SubjectID"`
}

type TestSection struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID   uuid.UUID             `json:"subject_id" gorm:"type:uuid;not null;index"`
	Subject     *TestSubject          `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Name        string                `json:"name" gorm:"not null"`
	SectionType string                `json:"section_type" gorm:"not null"`
	OrderIndex  int                   `json:"order_index"`
	Questions   []TestSectionQuestion `json:"questions,omitempty" gorm:"foreignKey:SectionID"`
}

type TestSectionQuestion struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID      uuid.UUID      `json:"section_id" gorm:"type:uuid;not null;index"`
	Section        *TestSection   `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	QuestionNumber int            `json:"question_number" gorm:"not null"`
	QuestionText   string         `json:"question_text" gorm:"type:text"`
	Options        datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"`
	ImageURL       *string        `json:"image_url,omitempty"`
	CorrectAnswer  datatypes.JSON `json:"correct_answer" gorm:"type:jsonb"`
	Marks          float64        `json:"marks" gorm:"not null;default:4"`
	NegativeMarks  float64        `json:"negative_marks" gorm:"not null;default:1"`
	IsBonus        bool           `json:"is_bonus" gorm:"not null;default:false"`
}

func (s *TestSubject) BeforeCreate(tx *gorm.DB) error         { return assignID(&s.ID) }
func (s *TestSection) BeforeCreate(tx *gorm.DB) error         { return assignID(&s.ID) }
func (q *TestSectionQuestion) BeforeCreate(tx *gorm.DB) error { return assignID(&q.ID) }
