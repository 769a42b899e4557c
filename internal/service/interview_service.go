// FILE: internal/service/interview_service.go
package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/apperrors"
	"ai-interviewer-be/internal/pkg/logger"
	"ai-interviewer-be/internal/repository/memory"
	"ai-interviewer-be/pkg/events"
	pktNats "ai-interviewer-be/pkg/nats"

	"github.com/google/uuid"
)

// errSessionComplete guards the cursor upper bound: an answer submitted
// after the last question would otherwise push cursor past
// len(questions).
var errSessionComplete = &apperrors.AppError{
	Code:       "SESSION_COMPLETE",
	HTTPStatus: http.StatusConflict,
	Message:    "interview already complete",
}

type IInterviewService interface {
	Start(ctx context.Context, userId uuid.UUID, req *dto.StartInterviewRequest) (*dto.StartInterviewResponse, error)
	NextQuestion(ctx context.Context, userId, sessionId uuid.UUID) (*dto.NextQuestionResponse, error)
	SubmitAnswer(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SubmitAnswerRequest) error
	AttachFeedback(ctx context.Context, userId, sessionId uuid.UUID, question, kind string, payload interface{}) error
	Show(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionDetailResponse, error)
	Export(ctx context.Context, userId uuid.UUID) ([]*dto.SessionDetailResponse, error)
}

type interviewService struct {
	sessionRepo      *memory.SessionRepository
	indexRepo        *memory.IndexRepository
	questionService  IQuestionService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	defaultQuestions int
	log              logger.ILogger
}

func NewInterviewService(
	sessionRepo *memory.SessionRepository,
	indexRepo *memory.IndexRepository,
	questionService IQuestionService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	defaultQuestions int,
	log logger.ILogger,
) IInterviewService {
	return &interviewService{
		sessionRepo:      sessionRepo,
		indexRepo:        indexRepo,
		questionService:  questionService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		defaultQuestions: defaultQuestions,
		log:              log,
	}
}

// Start generates the question set against the referenced resume index
// and creates the session. Generation can come back short of the
// requested count; the session simply carries fewer questions.
func (s *interviewService) Start(ctx context.Context, userId uuid.UUID, req *dto.StartInterviewRequest) (*dto.StartInterviewResponse, error) {
	handle, err := s.indexRepo.Get(userId, req.IndexId)
	if err != nil {
		return nil, err
	}

	n := req.NumQuestions
	if n <= 0 {
		n = s.defaultQuestions
	}

	questions, err := s.questionService.GenerateBulk(ctx, handle.Index, entity.InterviewMode(req.Mode), n)
	if err != nil {
		return nil, err
	}

	session := &entity.InterviewSession{
		Id:        uuid.New(),
		UserId:    userId,
		Mode:      entity.InterviewMode(req.Mode),
		Questions: questions,
		Cursor:    0,
		Answers:   []entity.AnswerRecord{},
		CreatedAt: time.Now(),
	}
	session.RefreshStatus()
	s.sessionRepo.Save(session)

	s.publishEvent(ctx, events.TypeInterviewStarted, map[string]interface{}{
		"session_id":     session.Id,
		"user_id":        userId,
		"mode":           session.Mode,
		"question_count": len(questions),
	})

	return &dto.StartInterviewResponse{
		SessionId:     session.Id,
		QuestionCount: len(questions),
	}, nil
}

// NextQuestion returns the question at the cursor without advancing it.
// A finished session answers with done=true rather than an error.
func (s *interviewService) NextQuestion(ctx context.Context, userId, sessionId uuid.UUID) (*dto.NextQuestionResponse, error) {
	session, err := s.sessionRepo.Get(userId, sessionId)
	if err != nil {
		return nil, err
	}

	if session.Cursor >= len(session.Questions) {
		return &dto.NextQuestionResponse{Question: nil, Done: true}, nil
	}

	q := session.Questions[session.Cursor]
	return &dto.NextQuestionResponse{Question: &q, Done: false}, nil
}

// SubmitAnswer appends the answer record and advances the cursor as one
// indivisible unit. The question text is taken from the caller verbatim:
// the store does not check it against questions[cursor], matching the
// delivery contract (the client answers the question it was just
// handed). Calling twice for one question records twice.
func (s *interviewService) SubmitAnswer(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SubmitAnswerRequest) error {
	completed := false
	err := s.sessionRepo.Mutate(userId, sessionId, func(session *entity.InterviewSession) error {
		if session.Cursor >= len(session.Questions) {
			return errSessionComplete
		}
		session.Answers = append(session.Answers, entity.AnswerRecord{
			Question: req.Question,
			Answer:   req.Answer,
		})
		session.Cursor++
		completed = session.Cursor == len(session.Questions)
		return nil
	})
	if err != nil {
		return err
	}

	// Collaborator work happens strictly after the state transition; the
	// session lock is never held across I/O.
	s.enqueueFeedback(ctx, userId, sessionId, req.Question, req.Answer)

	s.publishEvent(ctx, events.TypeAnswerRecorded, map[string]interface{}{
		"session_id": sessionId,
		"user_id":    userId,
	})
	if completed {
		s.publishEvent(ctx, events.TypeInterviewCompleted, map[string]interface{}{
			"session_id": sessionId,
			"user_id":    userId,
		})
	}

	return nil
}

// AttachFeedback sets feedback[kind] on the FIRST answer record whose
// question equals the given text. No match, or an expired/unknown
// session, is a no-op: the async pipeline may outlive the session. Both
// cases are logged so the swallowing stays visible.
func (s *interviewService) AttachFeedback(ctx context.Context, userId, sessionId uuid.UUID, question, kind string, payload interface{}) error {
	err := s.sessionRepo.Mutate(userId, sessionId, func(session *entity.InterviewSession) error {
		for i := range session.Answers {
			if session.Answers[i].Question == question {
				if session.Answers[i].Feedback == nil {
					session.Answers[i].Feedback = make(map[string]interface{})
				}
				session.Answers[i].Feedback[kind] = payload
				return nil
			}
		}
		s.log.Warn("interview", "feedback target question not found", map[string]interface{}{
			"session_id": sessionId,
			"kind":       kind,
		})
		return nil
	})
	if err != nil {
		s.log.Warn("interview", "feedback dropped, session unknown", map[string]interface{}{
			"session_id": sessionId,
			"kind":       kind,
		})
	}
	return nil
}

func (s *interviewService) Show(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionDetailResponse, error) {
	session, err := s.sessionRepo.Get(userId, sessionId)
	if err != nil {
		return nil, err
	}
	return toSessionDetail(session), nil
}

// Export returns every session the owner holds, newest first, for the
// analytics view.
func (s *interviewService) Export(ctx context.Context, userId uuid.UUID) ([]*dto.SessionDetailResponse, error) {
	sessions := s.sessionRepo.ListByUser(userId)
	out := make([]*dto.SessionDetailResponse, len(sessions))
	for i, session := range sessions {
		out[i] = toSessionDetail(session)
	}
	return out, nil
}

func (s *interviewService) enqueueFeedback(ctx context.Context, userId, sessionId uuid.UUID, question, answer string) {
	if s.publisherService == nil {
		return
	}
	msg := dto.ScoreAnswerMessage{
		UserId:    userId,
		SessionId: sessionId,
		Question:  question,
		Answer:    answer,
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("interview", "failed to marshal score-answer message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		// Feedback is auxiliary; the answer is already recorded.
		s.log.Warn("interview", "failed to enqueue feedback", map[string]interface{}{"error": err.Error()})
	}
}

func (s *interviewService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("interview", "failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func toSessionDetail(session *entity.InterviewSession) *dto.SessionDetailResponse {
	answers := make([]dto.AnswerRecordResponse, len(session.Answers))
	for i, a := range session.Answers {
		answers[i] = dto.AnswerRecordResponse{
			Question: a.Question,
			Answer:   a.Answer,
			Feedback: a.Feedback,
		}
	}
	return &dto.SessionDetailResponse{
		Id:        session.Id,
		Mode:      string(session.Mode),
		Questions: session.Questions,
		Cursor:    session.Cursor,
		Status:    session.Status,
		CreatedAt: session.CreatedAt,
		Answers:   answers,
	}
}
