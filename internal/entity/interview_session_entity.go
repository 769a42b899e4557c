package entity

import (
	"time"

	"github.com/google/uuid"
)

type InterviewMode string

const (
	ModeTechnical   InterviewMode = "technical"
	ModeBehavioural InterviewMode = "behavioural"
)

func (m InterviewMode) Valid() bool {
	return m == ModeTechnical || m == ModeBehavioural
}

// Feedback kinds attached to an answer record.
const (
	FeedbackKindScores  = "scores"
	FeedbackKindSummary = "feedback_summary"
	FeedbackKindFlags   = "flags"
)

// Session status, derivable from Cursor but stored for export.
const (
	StatusInProgress = "in_progress"
	StatusComplete   = "complete"
)

// AnswerRecord captures one delivered question and the candidate's
// answer. Feedback is filled in asynchronously after the append.
type AnswerRecord struct {
	Question string                 `json:"question"`
	Answer   string                 `json:"answer"`
	Feedback map[string]interface{} `json:"feedback"`
}

// InterviewSession is the per-candidate interview state. Questions are
// immutable after creation; Answers is append-only; Cursor is
// monotonically non-decreasing, bounded by len(Questions), and always
// equals len(Answers).
type InterviewSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Mode      InterviewMode
	Questions []string
	Cursor    int
	Answers   []AnswerRecord
	Status    string
	CreatedAt time.Time
}

// RefreshStatus recomputes the derived status. Called inside every
// mutation so exports never recompute.
func (s *InterviewSession) RefreshStatus() {
	if s.Cursor >= len(s.Questions) {
		s.Status = StatusComplete
	} else {
		s.Status = StatusInProgress
	}
}
