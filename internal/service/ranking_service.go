package service

import (
	"math"
	"sort"

	"github.com/phynetix/grading-api/internal/model"
)

type RankingService interface {
	// Position places score among the peer scores of the same test.
	// rank = 1 + peers strictly above; percentile = share strictly below.
	Position(peerScores []float64, score float64) (rank int, percentile float64)
	// RankAll orders every completed attempt of a test and assigns
	// rank = index+1 and percentile = (total-rank)/total*100.
	RankAll(entries []model.ScoreEntry) []model.RankUpdate
}

type rankingService struct{}

func NewRankingService() RankingService {
	return &rankingService{}
}

func (s *rankingService) Position(peerScores []float64, score float64) (int, float64) {
	total := len(peerScores) + 1
	above, below := 0, 0
	for _, p := range peerScores {
		switch {
		case p > score:
			above++
		case p < score:
			below++
		}
	}
	return above + 1, roundTo1(float64(below) / float64(total) * 100)
}

func (s *rankingService) RankAll(entries []model.ScoreEntry) []model.RankUpdate {
	sorted := make([]model.ScoreEntry, len(entries))
	copy(sorted, entries)
	// Ties go to whoever finished first, then to the lower id, so reruns are stable.
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.CompletedAt != nil && b.CompletedAt != nil && !a.CompletedAt.Equal(*b.CompletedAt) {
			return a.CompletedAt.Before(*b.CompletedAt)
		}
		if (a.CompletedAt == nil) != (b.CompletedAt == nil) {
			return a.CompletedAt != nil
		}
		return a.AttemptID.String() < b.AttemptID.String()
	})

	total := len(sorted)
	updates := make([]model.RankUpdate, total)
	for i, e := range sorted {
		rank := i + 1
		updates[i] = model.RankUpdate{
			AttemptID:  e.AttemptID,
			Rank:       rank,
			Percentile: roundTo1(float64(total-rank) / float64(total) * 100),
		}
	}
	return updates
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
