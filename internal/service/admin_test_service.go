package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/dto"
	"github.com/phynetix/grading-api/internal/repository"
	apperrors "github.com/phynetix/grading-api/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminTestService interface {
	// RerankTest recomputes the leaderboard of a test on demand, e.g. after
	// marks or bonus flags were corrected.
	RerankTest(ctx context.Context, testID uuid.UUID) (*dto.RerankResponse, error)
}

type adminTestService struct {
	testRepo    repository.TestRepository
	leaderboard LeaderboardService
}

func NewAdminTestService(testRepo repository.TestRepository, leaderboard LeaderboardService) AdminTestService {
	return &adminTestService{testRepo: testRepo, leaderboard: leaderboard}
}

func (s *adminTestService) RerankTest(ctx context.Context, testID uuid.UUID) (*dto.RerankResponse, error) {
	if _, err := s.testRepo.FindByID(ctx, testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestNotFound
		}
		log.Error().Err(err).Str("testID", testID.String()).Msg("RerankTest: Failed to load test")
		return nil, apperrors.NewStoreError(err)
	}

	ranked, err := s.leaderboard.Rerank(ctx, testID)
	if err != nil {
		log.Error().Err(err).Str("testID", testID.String()).Msg("RerankTest: Re-rank failed")
		return nil, apperrors.NewStoreError(err)
	}
	return &dto.RerankResponse{TestID: testID, Ranked: ranked}, nil
}
