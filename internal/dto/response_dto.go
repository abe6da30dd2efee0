package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

// QuestionResult is the graded outcome of one question, keyed by question id
// in SubmitTestResponse.QuestionResults.
type QuestionResult struct {
	QuestionNumber int         `json:"question_number"`
	QuestionText   string      `json:"question_text"`
	Options        interface{} `json:"options,omitempty"`
	ImageURL       *string     `json:"image_url,omitempty"`
	CorrectAnswer  interface{} `json:"correct_answer"`
	UserAnswer     interface{} `json:"user_answer"`
	IsCorrect      bool        `json:"is_correct"`
	IsBonus        bool        `json:"is_bonus"`
	MarksObtained  float64     `json:"marks_obtained"`
	Marks          float64     `json:"marks"`
	NegativeMarks  float64     `json:"negative_marks"`
	Subject        string      `json:"subject"`
	SectionType    string      `json:"section_type"`
	Chapter        string      `json:"chapter"`
}

// SubjectScore aggregates the questions of one subject.
type SubjectScore struct {
	SubjectID  string  `json:"subject_id"`
	Name       string  `json:"name"`
	Correct    int     `json:"correct"`
	Incorrect  int     `json:"incorrect"`
	Skipped    int     `json:"skipped"`
	Total      int     `json:"total"`
	Marks      float64 `json:"marks"`
	TotalMarks float64 `json:"total_marks"`
}

type SubmitTestResponse struct {
	Score            float64                   `json:"score"`
	TotalMarks       float64                   `json:"total_marks"`
	Correct          int                       `json:"correct"`
	Incorrect        int                       `json:"incorrect"`
	Skipped          int                       `json:"skipped"`
	Rank             int                       `json:"rank"`
	Percentile       float64                   `json:"percentile"`
	QuestionResults  map[string]QuestionResult `json:"question_results"`
	SubjectScores    map[string]SubjectScore   `json:"subject_scores"`
	TimeTakenSeconds int                       `json:"time_taken_seconds"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
