package service

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/phynetix/grading-api/config"
	"github.com/phynetix/grading-api/internal/dto"
	"github.com/phynetix/grading-api/internal/model"
)

// integerTolerance is the largest difference (exclusive) still accepted for integer answers.
const integerTolerance = 0.01

type verdict int

const (
	verdictCorrect verdict = iota
	verdictIncorrect
	verdictPartial
	verdictSkipped
)

// Scorecard is the outcome of grading a whole question set.
type Scorecard struct {
	Score           float64
	TotalMarks      float64
	Correct         int
	Incorrect       int
	Skipped         int
	QuestionResults map[string]dto.QuestionResult
	SubjectScores   map[string]dto.SubjectScore
}

type GradingService interface {
	Grade(test *model.Test, questions []GradableQuestion, answers map[string]interface{}) *Scorecard
}

type gradingService struct {
	advancedVariant string
	wrongPenalty    float64
}

func NewGradingService(cfg *config.Config) GradingService {
	return &gradingService{
		advancedVariant: strings.TrimSpace(cfg.Grading.AdvancedVariant),
		wrongPenalty:    cfg.Grading.MultiChoiceWrongPenalty,
	}
}

// Grade marks every question in order. It never fails: malformed answers are
// graded as incorrect.
func (s *gradingService) Grade(test *model.Test, questions []GradableQuestion, answers map[string]interface{}) *Scorecard {
	advanced := s.isAdvanced(test)
	card := &Scorecard{
		QuestionResults: make(map[string]dto.QuestionResult, len(questions)),
		SubjectScores:   make(map[string]dto.SubjectScore),
	}

	for _, q := range questions {
		key := q.Key()
		userAnswer := answers[key.ID]

		bucket := card.SubjectScores[key.SubjectID]
		bucket.SubjectID = key.SubjectID
		bucket.Name = key.SubjectName
		bucket.Total++
		bucket.TotalMarks += key.Marks
		card.TotalMarks += key.Marks

		v, obtained := s.gradeOne(key, userAnswer, advanced)
		switch v {
		case verdictCorrect:
			card.Correct++
			bucket.Correct++
		case verdictSkipped:
			card.Skipped++
			bucket.Skipped++
		default:
			card.Incorrect++
			bucket.Incorrect++
		}
		card.Score += obtained
		bucket.Marks += obtained
		card.SubjectScores[key.SubjectID] = bucket

		card.QuestionResults[key.ID] = dto.QuestionResult{
			QuestionNumber: key.Number,
			QuestionText:   key.Text,
			Options:        key.Options,
			ImageURL:       key.ImageURL,
			CorrectAnswer:  key.CorrectAnswer,
			UserAnswer:     userAnswer,
			IsCorrect:      v == verdictCorrect,
			IsBonus:        key.Bonus,
			MarksObtained:  obtained,
			Marks:          key.Marks,
			NegativeMarks:  key.NegativeMarks,
			Subject:        key.SubjectName,
			SectionType:    key.SectionType,
			Chapter:        key.Chapter,
		}
	}
	return card
}

func (s *gradingService) isAdvanced(test *model.Test) bool {
	if test == nil || s.advancedVariant == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(test.ExamVariant), s.advancedVariant)
}

func (s *gradingService) gradeOne(key QuestionKey, answer interface{}, advanced bool) (verdict, float64) {
	// Bonus questions pay out to everyone, answered or not.
	if key.Bonus {
		return verdictCorrect, key.Marks
	}
	if isBlank(answer) {
		return verdictSkipped, 0
	}
	switch key.Kind {
	case KindMultipleChoice:
		return s.gradeMultiple(key, answer, advanced)
	case KindInteger:
		return gradeInteger(key, answer)
	default:
		return gradeSingle(key, answer)
	}
}

func gradeSingle(key QuestionKey, answer interface{}) (verdict, float64) {
	if stringify(answer) == stringify(key.CorrectAnswer) {
		return verdictCorrect, key.Marks
	}
	return verdictIncorrect, -key.NegativeMarks
}

func (s *gradingService) gradeMultiple(key QuestionKey, answer interface{}, advanced bool) (verdict, float64) {
	correct := sortedStrings(toStringList(key.CorrectAnswer))
	picked := sortedStrings(toStringList(answer))
	if equalStrings(correct, picked) {
		return verdictCorrect, key.Marks
	}
	// Only the advanced variant grades a mismatch; the base variant neither
	// rewards nor penalises it.
	if !advanced {
		return verdictIncorrect, 0
	}

	inKey := make(map[string]struct{}, len(correct))
	for _, c := range correct {
		inKey[c] = struct{}{}
	}
	seen := make(map[string]struct{}, len(picked))
	hits, wrong := 0, 0
	for _, p := range picked {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if _, ok := inKey[p]; ok {
			hits++
		} else {
			wrong++
		}
	}

	switch {
	case wrong > 0:
		return verdictIncorrect, -s.wrongPenalty
	case hits > 0:
		obtained := math.Floor(float64(hits) / float64(len(inKey)) * key.Marks)
		if hits == len(inKey) {
			return verdictCorrect, obtained
		}
		return verdictPartial, obtained
	default:
		return verdictIncorrect, 0
	}
}

func gradeInteger(key QuestionKey, answer interface{}) (verdict, float64) {
	want, okWant := parseNumber(key.CorrectAnswer)
	got, okGot := parseNumber(answer)
	if okWant && okGot && math.Abs(want-got) < integerTolerance {
		return verdictCorrect, key.Marks
	}
	return verdictIncorrect, -key.NegativeMarks
}

// isBlank reports an answer that was never given: absent, null or "".
func isBlank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	return false
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ",")
	case []interface{}:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ",")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// toStringList coerces a scalar into a one-element list.
func toStringList(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), t...)
	case []interface{}:
		out := make([]string, len(t))
		for i, e := range t {
			out[i] = stringify(e)
		}
		return out
	default:
		return []string{stringify(t)}
	}
}

func sortedStrings(in []string) []string {
	sort.Strings(in)
	return in
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func parseNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case []interface{}:
		if len(t) == 1 {
			return parseNumber(t[0])
		}
	}
	return 0, false
}
