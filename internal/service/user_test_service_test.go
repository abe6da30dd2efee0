package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/dto"
	"github.com/phynetix/grading-api/internal/model"
	apperrors "github.com/phynetix/grading-api/pkg/errors"
	"gorm.io/datatypes"
)

func TestStartAttempt(t *testing.T) {
	test := &model.Test{ID: uuid.New(), Title: "Mock 2"}
	userID := uuid.New()
	repo := newFakeAttemptRepo()
	svc := NewUserTestService(&fakeTestRepo{tests: map[uuid.UUID]*model.Test{test.ID: test}}, repo)
	ctx := context.Background()

	first, created, err := svc.StartAttempt(ctx, userID, test.ID)
	if err != nil {
		t.Fatalf("StartAttempt() error = %v", err)
	}
	if !created || first.Status != statusInProgress || first.UserID != userID || first.TestID != test.ID {
		t.Errorf("first attempt = %+v, created = %v", first, created)
	}

	again, created, err := svc.StartAttempt(ctx, userID, test.ID)
	if err != nil {
		t.Fatalf("second StartAttempt() error = %v", err)
	}
	if created || again.ID != first.ID {
		t.Errorf("open attempt not resumed: got %s (created=%v), want %s", again.ID, created, first.ID)
	}

	if _, _, err := svc.StartAttempt(ctx, userID, uuid.New()); !errors.Is(err, apperrors.ErrTestNotFound) {
		t.Errorf("unknown test error = %v, want %v", err, apperrors.ErrTestNotFound)
	}
	if _, _, err := svc.StartAttempt(ctx, uuid.Nil, test.ID); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("anonymous error = %v, want %v", err, apperrors.ErrUnauthorized)
	}
}

func TestGetTestAttemptDetails(t *testing.T) {
	test := &model.Test{ID: uuid.New(), Title: "Mock 3"}
	userID := uuid.New()
	done := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rank, pct := 2, 50.0
	attempt := &model.TestAttempt{
		ID:             uuid.New(),
		TestID:         test.ID,
		UserID:         userID,
		Score:          7,
		TotalMarks:     8,
		CorrectCount:   2,
		IncorrectCount: 1,
		CompletedAt:    &done,
		Rank:           &rank,
		Percentile:     &pct,
		Answers:        datatypes.JSON(`{"q1":"A"}`),
		Result:         datatypes.JSON(`{"question_results":{"q1":{"question_number":1,"is_correct":true,"marks_obtained":4}},"subject_scores":{"general":{"subject_id":"general","name":"General","correct":1,"total":1}}}`),
	}
	svc := NewUserTestService(&fakeTestRepo{tests: map[uuid.UUID]*model.Test{test.ID: test}}, newFakeAttemptRepo(attempt))

	got, err := svc.GetTestAttemptDetails(context.Background(), attempt.ID, userID)
	if err != nil {
		t.Fatalf("GetTestAttemptDetails() error = %v", err)
	}
	if got.Status != statusCompleted || got.TestTitle != "Mock 3" || got.Score != 7 || got.CorrectCount != 2 {
		t.Errorf("details = %+v", got)
	}
	if got.Rank == nil || *got.Rank != 2 || got.Percentile == nil || *got.Percentile != 50 {
		t.Errorf("rank/percentile = %v/%v", got.Rank, got.Percentile)
	}
	if got.Answers["q1"] != "A" {
		t.Errorf("answers = %v", got.Answers)
	}
	want := dto.QuestionResult{QuestionNumber: 1, IsCorrect: true, MarksObtained: 4}
	if r := got.QuestionResults["q1"]; r.QuestionNumber != want.QuestionNumber || r.IsCorrect != want.IsCorrect || r.MarksObtained != want.MarksObtained {
		t.Errorf("question result = %+v, want %+v", r, want)
	}
	if got.SubjectScores["general"].Correct != 1 {
		t.Errorf("subject scores = %+v", got.SubjectScores)
	}

	if _, err := svc.GetTestAttemptDetails(context.Background(), attempt.ID, uuid.New()); !errors.Is(err, apperrors.ErrAttemptNotFound) {
		t.Errorf("foreign attempt error = %v, want %v", err, apperrors.ErrAttemptNotFound)
	}
}

func TestGetUserAttemptsForTest(t *testing.T) {
	testID := uuid.New()
	userID := uuid.New()
	older := &model.TestAttempt{ID: uuid.New(), TestID: testID, UserID: userID, StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &model.TestAttempt{ID: uuid.New(), TestID: testID, UserID: userID, StartedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	foreign := &model.TestAttempt{ID: uuid.New(), TestID: testID, UserID: uuid.New()}
	svc := NewUserTestService(&fakeTestRepo{}, newFakeAttemptRepo(older, newer, foreign))

	got, err := svc.GetUserAttemptsForTest(context.Background(), testID, userID)
	if err != nil {
		t.Fatalf("GetUserAttemptsForTest() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Errorf("attempts = %+v, want newest first and only the caller's", got)
	}
}
