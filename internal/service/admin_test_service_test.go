package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/model"
	apperrors "github.com/phynetix/grading-api/pkg/errors"
)

func TestRerankTest(t *testing.T) {
	test := &model.Test{ID: uuid.New()}
	done := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a := &model.TestAttempt{ID: uuid.New(), TestID: test.ID, UserID: uuid.New(), Score: 10, CompletedAt: &done}
	b := &model.TestAttempt{ID: uuid.New(), TestID: test.ID, UserID: uuid.New(), Score: 20, CompletedAt: &done}
	repo := newFakeAttemptRepo(a, b)
	cache := newFakeLeaderboardCache()
	leaderboard := NewLeaderboardService(repo, NewRankingService(), cache)
	svc := NewAdminTestService(&fakeTestRepo{tests: map[uuid.UUID]*model.Test{test.ID: test}}, leaderboard)

	resp, err := svc.RerankTest(context.Background(), test.ID)
	if err != nil {
		t.Fatalf("RerankTest() error = %v", err)
	}
	if resp.TestID != test.ID || resp.Ranked != 2 {
		t.Errorf("response = %+v", resp)
	}
	if got := repo.get(b.ID); got.Rank == nil || *got.Rank != 1 {
		t.Errorf("higher score rank = %v, want 1", got.Rank)
	}
	if len(cache.invalidated) != 1 {
		t.Errorf("cache invalidations = %d, want 1", len(cache.invalidated))
	}

	if _, err := svc.RerankTest(context.Background(), uuid.New()); !errors.Is(err, apperrors.ErrTestNotFound) {
		t.Errorf("unknown test error = %v, want %v", err, apperrors.ErrTestNotFound)
	}

	repo.rewriteErr = errStoreDown
	_, err = svc.RerankTest(context.Background(), test.ID)
	var storeErr apperrors.StoreError
	if !errors.As(err, &storeErr) {
		t.Errorf("store failure error = %v, want StoreError", err)
	}
}
