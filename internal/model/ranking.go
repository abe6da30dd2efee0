package model

import (
	"time"

	"github.com/google/uuid"
)

// ScoreEntry is one completed attempt as seen by the ranking pass.
type ScoreEntry struct {
	AttemptID   uuid.UUID
	Score       float64
	CompletedAt *time.Time
}

type RankUpdate struct {
	AttemptID  uuid.UUID
	Rank       int
	Percentile float64
}
