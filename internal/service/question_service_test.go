package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/model"
)

func TestLoadForTest(t *testing.T) {
	regular := []model.TestQuestion{{ID: uuid.New(), Question: model.Question{ID: uuid.New(), QuestionType: "single_choice"}}}
	sectioned := []model.TestSectionQuestion{{ID: uuid.New()}, {ID: uuid.New()}}

	tests := []struct {
		name        string
		testType    string
		repo        *fakeQuestionRepo
		strategy    GradingStrategy
		count       int
		regularHits int
		sectionHits int
	}{
		{
			name:        "regular rows win",
			testType:    "regular",
			repo:        &fakeQuestionRepo{regular: regular, sectioned: sectioned},
			strategy:    StrategyRegular,
			count:       1,
			regularHits: 1,
		},
		{
			name:        "falls back to sections on zero regular rows",
			testType:    "regular",
			repo:        &fakeQuestionRepo{sectioned: sectioned},
			strategy:    StrategySection,
			count:       2,
			regularHits: 1,
			sectionHits: 1,
		},
		{
			name:        "pdf goes straight to sections",
			testType:    "PDF",
			repo:        &fakeQuestionRepo{regular: regular, sectioned: sectioned},
			strategy:    StrategySection,
			count:       2,
			sectionHits: 1,
		},
		{
			name:        "empty test grades nothing",
			testType:    "regular",
			repo:        &fakeQuestionRepo{},
			strategy:    StrategySection,
			count:       0,
			regularHits: 1,
			sectionHits: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewQuestionService(tc.repo)
			questions, strategy, err := svc.LoadForTest(context.Background(), &model.Test{ID: uuid.New(), TestType: tc.testType})
			if err != nil {
				t.Fatalf("LoadForTest() error = %v", err)
			}
			if strategy != tc.strategy {
				t.Errorf("strategy = %q, want %q", strategy, tc.strategy)
			}
			if len(questions) != tc.count {
				t.Errorf("questions = %d, want %d", len(questions), tc.count)
			}
			if tc.repo.regularHits != tc.regularHits || tc.repo.sectionHits != tc.sectionHits {
				t.Errorf("repo hits regular/section = %d/%d, want %d/%d",
					tc.repo.regularHits, tc.repo.sectionHits, tc.regularHits, tc.sectionHits)
			}
		})
	}
}

func TestLoadForTest_ErrorsAreWrapped(t *testing.T) {
	svc := NewQuestionService(&fakeQuestionRepo{regularErr: errStoreDown})
	_, _, err := svc.LoadForTest(context.Background(), &model.Test{ID: uuid.New()})
	if !errors.Is(err, errStoreDown) {
		t.Errorf("error = %v, want wrapping %v", err, errStoreDown)
	}

	svc = NewQuestionService(&fakeQuestionRepo{sectionErr: errStoreDown})
	_, _, err = svc.LoadForTest(context.Background(), &model.Test{ID: uuid.New(), TestType: model.TestTypePDF})
	if !errors.Is(err, errStoreDown) {
		t.Errorf("error = %v, want wrapping %v", err, errStoreDown)
	}
}
