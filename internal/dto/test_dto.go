package dto

import (
	"time"

	"github.com/google/uuid"
)

// StoredResult is the graded payload kept on the attempt row for later review.
type StoredResult struct {
	QuestionResults map[string]QuestionResult `json:"question_results"`
	SubjectScores   map[string]SubjectScore   `json:"subject_scores"`
}

// TestAttemptSummaryDTO is for listing a user's attempts for a particular test.
type TestAttemptSummaryDTO struct {
	ID               uuid.UUID  `json:"id"`
	TestID           uuid.UUID  `json:"test_id"`
	UserID           uuid.UUID  `json:"user_id"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	Score            float64    `json:"score"`
	TotalMarks       float64    `json:"total_marks"`
	TimeTakenSeconds int        `json:"time_taken_seconds"`
	Rank             *int       `json:"rank,omitempty"`
	Percentile       *float64   `json:"percentile,omitempty"`
	Status           string     `json:"status"` // "in_progress", "completed"
}

// TestAttemptDetailDTO is for reviewing a single graded attempt.
type TestAttemptDetailDTO struct {
	TestAttemptSummaryDTO
	TestTitle       string                    `json:"test_title,omitempty"`
	CorrectCount    int                       `json:"correct"`
	IncorrectCount  int                       `json:"incorrect"`
	SkippedCount    int                       `json:"skipped"`
	Answers         map[string]interface{}    `json:"answers,omitempty"`
	QuestionResults map[string]QuestionResult `json:"question_results,omitempty"`
	SubjectScores   map[string]SubjectScore   `json:"subject_scores,omitempty"`
}

type LeaderboardEntry struct {
	AttemptID        uuid.UUID  `json:"attempt_id"`
	UserID           uuid.UUID  `json:"user_id"`
	Rank             int        `json:"rank"`
	Percentile       float64    `json:"percentile"`
	Score            float64    `json:"score"`
	TotalMarks       float64    `json:"total_marks"`
	TimeTakenSeconds int        `json:"time_taken_seconds"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}
