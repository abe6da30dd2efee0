package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/dto"
	"github.com/phynetix/grading-api/internal/model"
	"gorm.io/gorm"
)

type fakeTestRepo struct {
	tests map[uuid.UUID]*model.Test
	err   error
}

func (r *fakeTestRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Test, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

type fakeQuestionRepo struct {
	regular     []model.TestQuestion
	sectioned   []model.TestSectionQuestion
	regularErr  error
	sectionErr  error
	regularHits int
	sectionHits int
}

func (r *fakeQuestionRepo) FindRegularByTestID(context.Context, uuid.UUID) ([]model.TestQuestion, error) {
	r.regularHits++
	return r.regular, r.regularErr
}

func (r *fakeQuestionRepo) FindSectionedByTestID(context.Context, uuid.UUID) ([]model.TestSectionQuestion, error) {
	r.sectionHits++
	return r.sectioned, r.sectionErr
}

// fakeAttemptRepo keeps attempts in memory and mimics the conditional
// completion update of the real repository.
type fakeAttemptRepo struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]*model.TestAttempt

	findErr     error
	scoresErr   error
	completeErr error
	rewriteErr  error
	// completeRace makes Complete report zero affected rows.
	completeRace bool

	completeCalls int
	rewriteCalls  int
}

func newFakeAttemptRepo(attempts ...*model.TestAttempt) *fakeAttemptRepo {
	r := &fakeAttemptRepo{attempts: make(map[uuid.UUID]*model.TestAttempt)}
	for _, a := range attempts {
		r.attempts[a.ID] = a
	}
	return r
}

func (r *fakeAttemptRepo) Create(_ context.Context, attempt *model.TestAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	stored := *attempt
	r.attempts[attempt.ID] = &stored
	return nil
}

func (r *fakeAttemptRepo) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.attempts[id]
	if !ok || a.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAttemptRepo) FindInProgress(_ context.Context, testID, userID uuid.UUID) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.TestID == testID && a.UserID == userID && a.CompletedAt == nil {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAttemptRepo) FindAllByTestAndUser(_ context.Context, testID, userID uuid.UUID) ([]model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TestAttempt
	for _, a := range r.attempts {
		if a.TestID == testID && a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func (r *fakeAttemptRepo) FindCompletedScores(_ context.Context, testID, excludeID uuid.UUID) ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scoresErr != nil {
		return nil, r.scoresErr
	}
	var scores []float64
	for _, a := range r.attempts {
		if a.TestID == testID && a.CompletedAt != nil && a.ID != excludeID {
			scores = append(scores, a.Score)
		}
	}
	return scores, nil
}

func (r *fakeAttemptRepo) Complete(_ context.Context, attempt *model.TestAttempt) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completeCalls++
	if r.completeErr != nil {
		return false, r.completeErr
	}
	if r.completeRace {
		return false, nil
	}
	stored, ok := r.attempts[attempt.ID]
	if !ok || stored.UserID != attempt.UserID || stored.CompletedAt != nil {
		return false, nil
	}
	cp := *attempt
	r.attempts[attempt.ID] = &cp
	return true, nil
}

func (r *fakeAttemptRepo) RewriteRanks(_ context.Context, testID uuid.UUID, rankAll func([]model.ScoreEntry) []model.RankUpdate) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rewriteCalls++
	if r.rewriteErr != nil {
		return 0, r.rewriteErr
	}
	var entries []model.ScoreEntry
	for _, a := range r.attempts {
		if a.TestID == testID && a.CompletedAt != nil {
			entries = append(entries, model.ScoreEntry{AttemptID: a.ID, Score: a.Score, CompletedAt: a.CompletedAt})
		}
	}
	updates := rankAll(entries)
	for _, u := range updates {
		rank, pct := u.Rank, u.Percentile
		r.attempts[u.AttemptID].Rank = &rank
		r.attempts[u.AttemptID].Percentile = &pct
	}
	return len(updates), nil
}

func (r *fakeAttemptRepo) FindLeaderboard(_ context.Context, testID uuid.UUID, limit int) ([]model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []model.TestAttempt
	for _, a := range r.attempts {
		if a.TestID == testID && a.CompletedAt != nil {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return rankOf(out[i]) < rankOf(out[j]) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAttemptRepo) get(id uuid.UUID) model.TestAttempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.attempts[id]
}

func rankOf(a model.TestAttempt) int {
	if a.Rank == nil {
		return int(^uint(0) >> 1)
	}
	return *a.Rank
}

type fakeLeaderboardCache struct {
	entries     map[uuid.UUID][]dto.LeaderboardEntry
	gets        int
	sets        int
	invalidated []uuid.UUID
}

func newFakeLeaderboardCache() *fakeLeaderboardCache {
	return &fakeLeaderboardCache{entries: make(map[uuid.UUID][]dto.LeaderboardEntry)}
}

func (c *fakeLeaderboardCache) Get(_ context.Context, testID uuid.UUID) ([]dto.LeaderboardEntry, bool) {
	c.gets++
	e, ok := c.entries[testID]
	return e, ok
}

func (c *fakeLeaderboardCache) Set(_ context.Context, testID uuid.UUID, entries []dto.LeaderboardEntry) {
	c.sets++
	c.entries[testID] = entries
}

func (c *fakeLeaderboardCache) Invalidate(_ context.Context, testID uuid.UUID) {
	c.invalidated = append(c.invalidated, testID)
	delete(c.entries, testID)
}

var errStoreDown = errors.New("connection refused")
