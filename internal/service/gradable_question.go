package service

import (
	"encoding/json"
	"strings"

	"github.com/phynetix/grading-api/internal/model"
	"gorm.io/datatypes"
)

type QuestionKind int

const (
	KindSingleChoice QuestionKind = iota
	KindMultipleChoice
	KindInteger
)

const (
	generalSubjectID   = "general"
	generalSubjectName = "General"
)

// QuestionKey is the schema-independent view of a question that grading works on.
type QuestionKey struct {
	ID            string
	Number        int
	Text          string
	Options       interface{}
	ImageURL      *string
	CorrectAnswer interface{}
	Kind          QuestionKind
	SectionType   string
	Marks         float64
	NegativeMarks float64
	Bonus         bool
	SubjectID     string
	SubjectName   string
	Chapter       string
}

// GradableQuestion is one of SectionQuestion or RegularQuestion.
type GradableQuestion interface {
	Key() QuestionKey
	gradable()
}

// SectionQuestion comes from test_subjects -> test_sections -> test_section_questions.
type SectionQuestion struct {
	model.TestSectionQuestion
}

// RegularQuestion comes from test_questions -> questions -> chapters -> courses.
type RegularQuestion struct {
	model.TestQuestion
}

func (SectionQuestion) gradable() {}
func (RegularQuestion) gradable() {}

func (q SectionQuestion) Key() QuestionKey {
	key := QuestionKey{
		ID:            q.ID.String(),
		Number:        q.QuestionNumber,
		Text:          q.QuestionText,
		Options:       decodeJSON(q.Options),
		ImageURL:      q.ImageURL,
		CorrectAnswer: decodeJSON(q.CorrectAnswer),
		Marks:         q.Marks,
		NegativeMarks: q.NegativeMarks,
		Bonus:         q.IsBonus,
		SubjectID:     generalSubjectID,
		SubjectName:   generalSubjectName,
	}
	if section := q.Section; section != nil {
		key.Chapter = section.Name
		key.SectionType = section.SectionType
		if subject := section.Subject; subject != nil && subject.Name != "" {
			key.SubjectID = subject.ID.String()
			key.SubjectName = subject.Name
		}
	}
	key.Kind = kindOf(key.SectionType)
	return key
}

func (q RegularQuestion) Key() QuestionKey {
	question := q.Question
	key := QuestionKey{
		ID:            question.ID.String(),
		Number:        q.QuestionNumber,
		Text:          question.QuestionText,
		Options:       decodeJSON(question.Options),
		ImageURL:      question.ImageURL,
		CorrectAnswer: decodeJSON(question.CorrectAnswer),
		Kind:          kindOf(question.QuestionType),
		SectionType:   question.QuestionType,
		Marks:         question.Marks,
		NegativeMarks: question.NegativeMarks,
		SubjectID:     generalSubjectID,
		SubjectName:   generalSubjectName,
	}
	if chapter := question.Chapter; chapter != nil {
		key.Chapter = chapter.Name
		if course := chapter.Course; course != nil && course.Name != "" {
			key.SubjectID = course.ID.String()
			key.SubjectName = course.Name
		}
	}
	return key
}

func kindOf(questionType string) QuestionKind {
	switch strings.ToLower(strings.TrimSpace(questionType)) {
	case model.SectionTypeMultipleChoice, "multiple", "multi_choice", "multi_select", "mcq_multiple":
		return KindMultipleChoice
	case model.SectionTypeInteger, "numerical", "numeric":
		return KindInteger
	default:
		return KindSingleChoice
	}
}

func decodeJSON(raw datatypes.JSON) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
