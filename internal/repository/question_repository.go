package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/model"
	"gorm.io/gorm"
)

// QuestionRepository reads the question set of a test from either schema.
type QuestionRepository interface {
	FindRegularByTestID(ctx context.Context, testID uuid.UUID) ([]model.TestQuestion, error)
	FindSectionedByTestID(ctx context.Context, testID uuid.UUID) ([]model.TestSectionQuestion, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindRegularByTestID(ctx context.Context, testID uuid.UUID) ([]model.TestQuestion, error) {
	var rows []model.TestQuestion
	err := r.db.WithContext(ctx).
		Joins("JOIN questions ON questions.id = test_questions.question_id AND questions.deleted_at IS NULL").
		Preload("Question.Chapter.Course").
		Where("test_questions.test_id = ?", testID).
		Order("test_questions.question_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *questionRepository) FindSectionedByTestID(ctx context.Context, testID uuid.UUID) ([]model.TestSectionQuestion, error) {
	var rows []model.TestSectionQuestion
	err := r.db.WithContext(ctx).
		Joins("JOIN test_sections ON test_sections.id = test_section_questions.section_id").
		Joins("JOIN test_subjects ON test_subjects.id = test_sections.subject_id").
		Preload("Section.Subject").
		Where("test_subjects.test_id = ?", testID).
		Order("test_subjects.order_index ASC, test_sections.order_index ASC, test_section_questions.question_number ASC").
		Find(&rows).Error
	return rows, err
}
