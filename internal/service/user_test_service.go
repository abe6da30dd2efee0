package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/phynetix/grading-api/internal/dto"
	"github.com/phynetix/grading-api/internal/model"
	"github.com/phynetix/grading-api/internal/repository"
	apperrors "github.com/phynetix/grading-api/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	statusInProgress = "in_progress"
	statusCompleted  = "completed"
)

// UserTestService covers the attempt lifecycle around grading: starting an
// attempt and reading back the caller's attempts.
type UserTestService interface {
	StartAttempt(ctx context.Context, userID, testID uuid.UUID) (*dto.TestAttemptSummaryDTO, bool, error)
	GetUserAttemptsForTest(ctx context.Context, testID, userID uuid.UUID) ([]dto.TestAttemptSummaryDTO, error)
	GetTestAttemptDetails(ctx context.Context, attemptID, userID uuid.UUID) (*dto.TestAttemptDetailDTO, error)
}

type userTestService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
}

func NewUserTestService(testRepo repository.TestRepository, attemptRepo repository.TestAttemptRepository) UserTestService {
	return &userTestService{testRepo: testRepo, attemptRepo: attemptRepo}
}

// StartAttempt resumes the caller's open attempt on the test or creates one.
// The bool reports whether a new attempt was created.
func (s *userTestService) StartAttempt(ctx context.Context, userID, testID uuid.UUID) (*dto.TestAttemptSummaryDTO, bool, error) {
	if userID == uuid.Nil {
		return nil, false, apperrors.ErrUnauthorized
	}
	if _, err := s.testRepo.FindByID(ctx, testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperrors.ErrTestNotFound
		}
		log.Error().Err(err).Str("testID", testID.String()).Msg("StartAttempt: Failed to load test")
		return nil, false, apperrors.NewStoreError(err)
	}

	open, err := s.attemptRepo.FindInProgress(ctx, testID, userID)
	if err == nil {
		log.Info().Str("attemptID", open.ID.String()).Str("userID", userID.String()).Msg("StartAttempt: Resuming open attempt")
		summary := toSummary(open)
		return &summary, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str("testID", testID.String()).Msg("StartAttempt: Failed to look up open attempt")
		return nil, false, apperrors.NewStoreError(err)
	}

	attempt := model.TestAttempt{TestID: testID, UserID: userID}
	if err := s.attemptRepo.Create(ctx, &attempt); err != nil {
		log.Error().Err(err).Str("testID", testID.String()).Str("userID", userID.String()).Msg("StartAttempt: Failed to create attempt")
		return nil, false, apperrors.NewStoreError(err)
	}
	log.Info().Str("attemptID", attempt.ID.String()).Str("testID", testID.String()).Str("userID", userID.String()).Msg("StartAttempt: Attempt created")
	summary := toSummary(&attempt)
	return &summary, true, nil
}

func (s *userTestService) GetUserAttemptsForTest(ctx context.Context, testID, userID uuid.UUID) ([]dto.TestAttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByTestAndUser(ctx, testID, userID)
	if err != nil {
		log.Error().Err(err).Str("testID", testID.String()).Str("userID", userID.String()).Msg("GetUserAttemptsForTest: Failed to find attempts from repository.")
		return nil, fmt.Errorf("error fetching attempts for test %s: %w", testID, err)
	}

	dtos := make([]dto.TestAttemptSummaryDTO, 0, len(attempts))
	for i := range attempts {
		dtos = append(dtos, toSummary(&attempts[i]))
	}
	return dtos, nil
}

func (s *userTestService) GetTestAttemptDetails(ctx context.Context, attemptID, userID uuid.UUID) (*dto.TestAttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDAndUser(ctx, attemptID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAttemptNotFound
		}
		log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("GetTestAttemptDetails: Failed to find test attempt by ID.")
		return nil, apperrors.NewStoreError(err)
	}

	resp := dto.TestAttemptDetailDTO{
		TestAttemptSummaryDTO: toSummary(attempt),
		CorrectCount:          attempt.CorrectCount,
		IncorrectCount:        attempt.IncorrectCount,
		SkippedCount:          attempt.SkippedCount,
	}

	if test, err := s.testRepo.FindByID(ctx, attempt.TestID); err == nil {
		resp.TestTitle = test.Title
	} else {
		log.Warn().Err(err).Str("testID", attempt.TestID.String()).Msg("GetTestAttemptDetails: Test title unavailable")
	}

	if len(attempt.Answers) > 0 {
		if err := json.Unmarshal(attempt.Answers, &resp.Answers); err != nil {
			log.Warn().Err(err).Str("attemptID", attemptID.String()).Msg("GetTestAttemptDetails: Stored answers are not valid JSON")
		}
	}
	if len(attempt.Result) > 0 {
		var stored dto.StoredResult
		if err := json.Unmarshal(attempt.Result, &stored); err != nil {
			log.Warn().Err(err).Str("attemptID", attemptID.String()).Msg("GetTestAttemptDetails: Stored result is not valid JSON")
		} else {
			resp.QuestionResults = stored.QuestionResults
			resp.SubjectScores = stored.SubjectScores
		}
	}
	return &resp, nil
}

func toSummary(attempt *model.TestAttempt) dto.TestAttemptSummaryDTO {
	var summary dto.TestAttemptSummaryDTO
	if err := copier.Copy(&summary, attempt); err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID.String()).Msg("Error copying attempt to summary DTO")
	}
	summary.Status = statusInProgress
	if attempt.IsCompleted() {
		summary.Status = statusCompleted
	}
	return summary
}
