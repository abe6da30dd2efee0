package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Regular question schema: courses -> chapters -> questions, linked to tests
// through test_questions.

type Course struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Chapter struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID      `json:"course_id" gorm:"type:uuid;not null;index"`
	Course    *Course        `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Name      string         `json:"name" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Question struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChapterID     *uuid.UUID     `json:"chapter_id,omitempty" gorm:"type:uuid;index"`
	Chapter       *Chapter       `json:"chapter,omitempty" gorm:"foreignKey:ChapterID"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	Options       datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"`
	ImageURL      *string        `json:"image_url,omitempty"`
	QuestionType  string         `json:"question_type" gorm:"not null"` // "single_choice", "multiple_choice", "integer"
	CorrectAnswer datatypes.JSON `json:"correct_answer" gorm:"type:jsonb"`
	Marks         float64        `json:"marks" gorm:"not null;default:4"`
	NegativeMarks float64        `json:"negative_marks" gorm:"not null;default:1"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type TestQuestion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TestID         uuid.UUID `json:"test_id" gorm:"type:uuid;not null;index"`
	QuestionID     uuid.UUID `json:"question_id" gorm:"type:uuid;not null;index"`
	Question       Question  `json:"question" gorm:"foreignKey:QuestionID"`
	QuestionNumber int       `json:"question_number" gorm:"not null"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error       { return assignID(&c.ID) }
func (c *Chapter) BeforeCreate(tx *gorm.DB) error      { return assignID(&c.ID) }
func (q *Question) BeforeCreate(tx *gorm.DB) error     { return assignID(&q.ID) }
func (q *TestQuestion) BeforeCreate(tx *gorm.DB) error { return assignID(&q.ID) }

func assignID(id *uuid.UUID) error {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	return nil
}
