package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/cache"
	"github.com/phynetix/grading-api/internal/dto"
	"github.com/phynetix/grading-api/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	DefaultLeaderboardLimit = 50
	MaxLeaderboardLimit     = 500
)

type LeaderboardService interface {
	// Rerank rewrites rank and percentile of every completed attempt of the test.
	Rerank(ctx context.Context, testID uuid.UUID) (int, error)
	Top(ctx context.Context, testID uuid.UUID, limit int) ([]dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	attemptRepo repository.TestAttemptRepository
	ranking     RankingService
	cache       cache.LeaderboardCache
}

func NewLeaderboardService(attemptRepo repository.TestAttemptRepository, ranking RankingService, lc cache.LeaderboardCache) LeaderboardService {
	return &leaderboardService{attemptRepo: attemptRepo, ranking: ranking, cache: lc}
}

func (s *leaderboardService) Rerank(ctx context.Context, testID uuid.UUID) (int, error) {
	ranked, err := s.attemptRepo.RewriteRanks(ctx, testID, s.ranking.RankAll)
	if err != nil {
		return 0, fmt.Errorf("error re-ranking test %s: %w", testID, err)
	}
	s.cache.Invalidate(ctx, testID)
	log.Info().Str("testID", testID.String()).Int("ranked", ranked).Msg("Rerank: Leaderboard rewritten")
	return ranked, nil
}

func (s *leaderboardService) Top(ctx context.Context, testID uuid.UUID, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	if entries, ok := s.cache.Get(ctx, testID); ok {
		return head(entries, limit), nil
	}

	attempts, err := s.attemptRepo.FindLeaderboard(ctx, testID, MaxLeaderboardLimit)
	if err != nil {
		log.Error().Err(err).Str("testID", testID.String()).Msg("Top: Failed to read leaderboard")
		return nil, fmt.Errorf("error fetching leaderboard for test %s: %w", testID, err)
	}

	entries := make([]dto.LeaderboardEntry, 0, len(attempts))
	for _, a := range attempts {
		entry := dto.LeaderboardEntry{
			AttemptID:        a.ID,
			UserID:           a.UserID,
			Score:            a.Score,
			TotalMarks:       a.TotalMarks,
			TimeTakenSeconds: a.TimeTakenSeconds,
			CompletedAt:      a.CompletedAt,
		}
		if a.Rank != nil {
			entry.Rank = *a.Rank
		}
		if a.Percentile != nil {
			entry.Percentile = *a.Percentile
		}
		entries = append(entries, entry)
	}
	s.cache.Set(ctx, testID, entries)
	return head(entries, limit), nil
}

func head(entries []dto.LeaderboardEntry, n int) []dto.LeaderboardEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
