package service

import (
	"context"
	"fmt"

	"github.com/phynetix/grading-api/internal/model"
	"github.com/phynetix/grading-api/internal/repository"
	"github.com/rs/zerolog/log"
)

type GradingStrategy string

const (
	StrategyRegular GradingStrategy = "regular"
	StrategySection GradingStrategy = "section"
)

// QuestionService picks the question schema of a test and loads its questions.
type QuestionService interface {
	LoadForTest(ctx context.Context, test *model.Test) ([]GradableQuestion, GradingStrategy, error)
}

type questionService struct {
	repo repository.QuestionRepository
}

func NewQuestionService(repo repository.QuestionRepository) QuestionService {
	return &questionService{repo: repo}
}

// LoadForTest uses the section schema for pdf tests. Other tests use the
// regular schema unless it has no rows for the test, in which case the
// section schema is used instead.
func (s *questionService) LoadForTest(ctx context.Context, test *model.Test) ([]GradableQuestion, GradingStrategy, error) {
	if !test.IsPDF() {
		rows, err := s.repo.FindRegularByTestID(ctx, test.ID)
		if err != nil {
			return nil, "", fmt.Errorf("error fetching regular questions for test %s: %w", test.ID, err)
		}
		if len(rows) > 0 {
			questions := make([]GradableQuestion, len(rows))
			for i := range rows {
				questions[i] = RegularQuestion{TestQuestion: rows[i]}
			}
			return questions, StrategyRegular, nil
		}
		log.Info().Str("testID", test.ID.String()).Msg("LoadForTest: No regular questions linked, using section schema")
	}

	rows, err := s.repo.FindSectionedByTestID(ctx, test.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error fetching section questions for test %s: %w", test.ID, err)
	}
	questions := make([]GradableQuestion, len(rows))
	for i := range rows {
		questions[i] = SectionQuestion{TestSectionQuestion: rows[i]}
	}
	return questions, StrategySection, nil
}
