package dto

// AnswerFeedbackResponse is the merged result of the three feedback
// passes. Empty maps/lists mean the collaborator output was unusable,
// not that the request failed.
type AnswerFeedbackResponse struct {
	Scores  map[string]int `json:"scores"`
	Summary string         `json:"feedback_summary"`
	Flags   []string       `json:"flags"`
}
