package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/dto"
	"github.com/phynetix/grading-api/internal/repository"
	apperrors "github.com/phynetix/grading-api/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestSubmissionService grades a finished attempt and places it on the leaderboard.
type TestSubmissionService interface {
	SubmitTest(ctx context.Context, userID uuid.UUID, req dto.SubmitTestRequest) (*dto.SubmitTestResponse, error)
}

type testSubmissionService struct {
	testRepo        repository.TestRepository
	testAttemptRepo repository.TestAttemptRepository
	questions       QuestionService
	grading         GradingService
	ranking         RankingService
	leaderboard     LeaderboardService
	now             func() time.Time
}

// NewTestSubmissionService creates a new instance of TestSubmissionService.
func NewTestSubmissionService(
	testRepo repository.TestRepository,
	testAttemptRepo repository.TestAttemptRepository,
	questions QuestionService,
	grading GradingService,
	ranking RankingService,
	leaderboard LeaderboardService,
) TestSubmissionService {
	return &testSubmissionService{
		testRepo:        testRepo,
		testAttemptRepo: testAttemptRepo,
		questions:       questions,
		grading:         grading,
		ranking:         ranking,
		leaderboard:     leaderboard,
		now:             time.Now,
	}
}

// SubmitTest checks the caller and the attempt, grades the answers, stores the
// result and re-ranks the test. The result is only returned once it is stored.
func (s *testSubmissionService) SubmitTest(ctx context.Context, userID uuid.UUID, req dto.SubmitTestRequest) (*dto.SubmitTestResponse, error) {
	// 1. Preconditions, in order
	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	if strings.TrimSpace(req.AttemptID) == "" {
		return nil, apperrors.ErrInvalidRequest
	}
	attemptID, err := uuid.Parse(strings.TrimSpace(req.AttemptID))
	if err != nil {
		log.Warn().Str("attemptID", req.AttemptID).Str("userID", userID.String()).Msg("SubmitTest: attempt_id is not a UUID")
		return nil, apperrors.ErrAttemptNotFound
	}

	attempt, err := s.testAttemptRepo.FindByIDAndUser(ctx, attemptID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("attemptID", attemptID.String()).Str("userID", userID.String()).Msg("SubmitTest: Attempt not found for user")
			return nil, apperrors.ErrAttemptNotFound
		}
		log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("SubmitTest: Failed to load attempt")
		return nil, apperrors.NewStoreError(err)
	}
	if attempt.IsCompleted() {
		log.Warn().Str("attemptID", attemptID.String()).Time("completedAt", *attempt.CompletedAt).Msg("SubmitTest: Attempt already submitted")
		return nil, apperrors.ErrAlreadySubmitted
	}

	// 2. Load the test and its questions
	test, err := s.testRepo.FindByID(ctx, attempt.TestID)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID.String()).Str("testID", attempt.TestID.String()).Msg("SubmitTest: Failed to load test")
		return nil, fmt.Errorf("%w: load test %s: %w", apperrors.ErrScoreCalculation, attempt.TestID, err)
	}
	questions, strategy, err := s.questions.LoadForTest(ctx, test)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID.String()).Str("testID", test.ID.String()).Msg("SubmitTest: Failed to load questions")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrScoreCalculation, err)
	}

	// 3. Grade
	card := s.grading.Grade(test, questions, req.Answers)

	// 4. Place the new score among the other completed attempts
	peerScores, err := s.testAttemptRepo.FindCompletedScores(ctx, test.ID, attempt.ID)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID.String()).Str("testID", test.ID.String()).Msg("SubmitTest: Failed to read peer scores")
		return nil, fmt.Errorf("%w: peer scores: %w", apperrors.ErrScoreCalculation, err)
	}
	rank, percentile := s.ranking.Position(peerScores, card.Score)

	log.Info().
		Str("attemptID", attemptID.String()).
		Str("userID", userID.String()).
		Str("testID", test.ID.String()).
		Str("strategy", string(strategy)).
		Int("questions", len(questions)).
		Float64("score", card.Score).
		Float64("totalMarks", card.TotalMarks).
		Int("rank", rank).
		Float64("percentile", percentile).
		Msg("SubmitTest: Attempt graded")

	// 5. Persist; completed_at IS NULL in the update is the idempotency gate
	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: encode answers: %w", apperrors.ErrPersistence, err)
	}
	resultJSON, err := json.Marshal(dto.StoredResult{
		QuestionResults: card.QuestionResults,
		SubjectScores:   card.SubjectScores,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode result: %w", apperrors.ErrPersistence, err)
	}

	completedAt := s.now().UTC()
	attempt.Answers = datatypes.JSON(answersJSON)
	attempt.Result = datatypes.JSON(resultJSON)
	attempt.Score = card.Score
	attempt.TotalMarks = card.TotalMarks
	attempt.CorrectCount = card.Correct
	attempt.IncorrectCount = card.Incorrect
	attempt.SkippedCount = card.Skipped
	attempt.TimeTakenSeconds = req.TimeTakenSeconds
	attempt.CompletedAt = &completedAt
	attempt.Rank = &rank
	attempt.Percentile = &percentile

	stored, err := s.testAttemptRepo.Complete(ctx, attempt)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID.String()).Float64("score", card.Score).Msg("SubmitTest: Failed to save results")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrPersistence, err)
	}
	if !stored {
		log.Warn().Str("attemptID", attemptID.String()).Msg("SubmitTest: Attempt was completed by a concurrent submission")
		return nil, apperrors.ErrAlreadySubmitted
	}

	// 6. Re-rank the whole test; the submission already stands if this fails
	if _, err := s.leaderboard.Rerank(ctx, test.ID); err != nil {
		log.Error().Err(err).Str("attemptID", attemptID.String()).Str("testID", test.ID.String()).Msg("SubmitTest: Peer re-rank failed")
	}

	return &dto.SubmitTestResponse{
		Score:            card.Score,
		TotalMarks:       card.TotalMarks,
		Correct:          card.Correct,
		Incorrect:        card.Incorrect,
		Skipped:          card.Skipped,
		Rank:             rank,
		Percentile:       percentile,
		QuestionResults:  card.QuestionResults,
		SubjectScores:    card.SubjectScores,
		TimeTakenSeconds: req.TimeTakenSeconds,
	}, nil
}
