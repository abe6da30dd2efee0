package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestAttempt is one user's sitting of one test. It is graded at most once:
// CompletedAt stays nil until the submission is persisted.
type TestAttempt struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	TestID           uuid.UUID      `json:"test_id" gorm:"type:uuid;not null;index"`
	Test             Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Answers          datatypes.JSON `json:"answers,omitempty" gorm:"type:jsonb"`
	Score            float64        `json:"score" gorm:"not null;default:0"`
	TotalMarks       float64        `json:"total_marks" gorm:"not null;default:0"`
	CorrectCount     int            `json:"correct_count"`
	IncorrectCount   int            `json:"incorrect_count"`
	SkippedCount     int            `json:"skipped_count"`
	TimeTakenSeconds int            `json:"time_taken_seconds"`
	StartedAt        time.Time      `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty" gorm:"index"`
	Rank             *int           `json:"rank,omitempty"`
	Percentile       *float64       `json:"percentile,omitempty"`
	Result           datatypes.JSON `json:"result,omitempty" gorm:"type:jsonb"` // question_results + subject_scores
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (a *TestAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *TestAttempt) IsCompleted() bool {
	return a.CompletedAt != nil
}
