package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestAttemptRepository interface {
	Create(ctx context.Context, attempt *model.TestAttempt) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.TestAttempt, error)
	FindInProgress(ctx context.Context, testID, userID uuid.UUID) (*model.TestAttempt, error)
	FindAllByTestAndUser(ctx context.Context, testID, userID uuid.UUID) ([]model.TestAttempt, error)
	// FindCompletedScores returns the scores of every completed attempt of the
	// test except excludeID.
	FindCompletedScores(ctx context.Context, testID, excludeID uuid.UUID) ([]float64, error)
	// Complete writes the graded fields only while completed_at is still NULL.
	// It reports false when another submission got there first.
	Complete(ctx context.Context, attempt *model.TestAttempt) (bool, error)
	// RewriteRanks locks the test row, snapshots every completed attempt and
	// writes back the ranks computed by rankAll, all in one transaction.
	RewriteRanks(ctx context.Context, testID uuid.UUID, rankAll func([]model.ScoreEntry) []model.RankUpdate) (int, error)
	FindLeaderboard(ctx context.Context, testID uuid.UUID, limit int) ([]model.TestAttempt, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) Create(ctx context.Context, attempt *model.TestAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *testAttemptRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindInProgress(ctx context.Context, testID, userID uuid.UUID) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).
		Where("test_id = ? AND user_id = ? AND completed_at IS NULL", testID, userID).
		Order("started_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindAllByTestAndUser(ctx context.Context, testID, userID uuid.UUID) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.WithContext(ctx).
		Where("test_id = ? AND user_id = ?", testID, userID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *testAttemptRepository) FindCompletedScores(ctx context.Context, testID, excludeID uuid.UUID) ([]float64, error) {
	var scores []float64
	err := r.db.WithContext(ctx).
		Model(&model.TestAttempt{}).
		Where("test_id = ? AND completed_at IS NOT NULL AND id <> ?", testID, excludeID).
		Pluck("score", &scores).Error
	return scores, err
}

func (r *testAttemptRepository) Complete(ctx context.Context, attempt *model.TestAttempt) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.TestAttempt{}).
		Where("id = ? AND user_id = ? AND completed_at IS NULL", attempt.ID, attempt.UserID).
		Updates(map[string]interface{}{
			"answers":            attempt.Answers,
			"score":              attempt.Score,
			"total_marks":        attempt.TotalMarks,
			"correct_count":      attempt.CorrectCount,
			"incorrect_count":    attempt.IncorrectCount,
			"skipped_count":      attempt.SkippedCount,
			"time_taken_seconds": attempt.TimeTakenSeconds,
			"completed_at":       attempt.CompletedAt,
			"rank":               attempt.Rank,
			"percentile":         attempt.Percentile,
			"result":             attempt.Result,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *testAttemptRepository) RewriteRanks(ctx context.Context, testID uuid.UUID, rankAll func([]model.ScoreEntry) []model.RankUpdate) (int, error) {
	ranked := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var test model.Test
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&test, "id = ?", testID).Error; err != nil {
			return fmt.Errorf("failed to lock test %s: %w", testID, err)
		}

		var entries []model.ScoreEntry
		if err := tx.Model(&model.TestAttempt{}).
			Select("id AS attempt_id, score, completed_at").
			Where("test_id = ? AND completed_at IS NOT NULL", testID).
			Scan(&entries).Error; err != nil {
			return fmt.Errorf("failed to snapshot completed attempts: %w", err)
		}

		for _, u := range rankAll(entries) {
			if err := tx.Model(&model.TestAttempt{}).
				Where("id = ?", u.AttemptID).
				Updates(map[string]interface{}{"rank": u.Rank, "percentile": u.Percentile}).Error; err != nil {
				return fmt.Errorf("failed to update rank of attempt %s: %w", u.AttemptID, err)
			}
			ranked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return ranked, nil
}

func (r *testAttemptRepository) FindLeaderboard(ctx context.Context, testID uuid.UUID, limit int) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.WithContext(ctx).
		Select("id", "user_id", "test_id", "score", "total_marks", "time_taken_seconds", "completed_at", "rank", "percentile").
		Where("test_id = ? AND completed_at IS NOT NULL", testID).
		Order("rank ASC NULLS LAST").
		Order("score DESC").
		Order("completed_at ASC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}
