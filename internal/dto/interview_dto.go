package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartInterviewRequest struct {
	IndexId      uuid.UUID `json:"index_id" validate:"required"`
	Mode         string    `json:"mode" validate:"required,oneof=technical behavioural"`
	NumQuestions int       `json:"num_questions" validate:"omitempty,min=1,max=20"`
}

type StartInterviewResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	// QuestionCount may be lower than requested if generation degraded.
	QuestionCount int `json:"question_count"`
}

type NextQuestionResponse struct {
	// Question is null once the session ran out of questions.
	Question *string `json:"question"`
	Done     bool    `json:"done"`
}

type SubmitAnswerRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type RefreshFeedbackRequest struct {
	Question string `json:"question" validate:"required"`
}

type AnswerRecordResponse struct {
	Question string                 `json:"question"`
	Answer   string                 `json:"answer"`
	Feedback map[string]interface{} `json:"feedback,omitempty"`
}

type SessionDetailResponse struct {
	Id        uuid.UUID              `json:"id"`
	Mode      string                 `json:"mode"`
	Questions []string               `json:"questions"`
	Cursor    int                    `json:"cursor"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
	Answers   []AnswerRecordResponse `json:"answers"`
}

// ScoreAnswerMessage is the payload of the async feedback pipeline.
type ScoreAnswerMessage struct {
	UserId    uuid.UUID `json:"user_id"`
	SessionId uuid.UUID `json:"session_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
}
