package dto

// SubmitTestRequest is the body of POST /submit-test.
// Answers values are a string (single choice), a list of strings (multiple
// choice) or a number / numeric string (integer questions).
type SubmitTestRequest struct {
	AttemptID        string                 `json:"attempt_id"`
	Answers          map[string]interface{} `json:"answers"`
	TimeTakenSeconds int                    `json:"time_taken_seconds" binding:"min=0"`
}

// LeaderboardQuery binds the optional ?limit= of the leaderboard endpoint.
type LeaderboardQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}
