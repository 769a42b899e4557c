// FILE: internal/service/feedback_service.go
package service

import (
	"context"

	"ai-interviewer-be/internal/constant"
	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/apperrors"
	"ai-interviewer-be/internal/pkg/logger"
	"ai-interviewer-be/pkg/feedback"
	"ai-interviewer-be/pkg/llm"

	"github.com/google/uuid"
)

type IFeedbackService interface {
	// Evaluate runs the three feedback passes for one (question, answer)
	// pair. A transport-level LLM failure surfaces as a collaborator
	// error; unparseable model text degrades to empty results.
	Evaluate(ctx context.Context, question, answer string) (*dto.AnswerFeedbackResponse, error)

	// EvaluateAndAttach evaluates and then attaches each kind to the
	// matching answer record.
	EvaluateAndAttach(ctx context.Context, userId, sessionId uuid.UUID, question, answer string) (*dto.AnswerFeedbackResponse, error)
}

// feedbackService holds one provider per pass; production splits API
// keys across them to isolate quota.
type feedbackService struct {
	scoresLLM        llm.LLMProvider
	summaryLLM       llm.LLMProvider
	flagsLLM         llm.LLMProvider
	interviewService IInterviewService
	log              logger.ILogger
}

func NewFeedbackService(
	scoresLLM llm.LLMProvider,
	summaryLLM llm.LLMProvider,
	flagsLLM llm.LLMProvider,
	interviewService IInterviewService,
	log logger.ILogger,
) IFeedbackService {
	return &feedbackService{
		scoresLLM:        scoresLLM,
		summaryLLM:       summaryLLM,
		flagsLLM:         flagsLLM,
		interviewService: interviewService,
		log:              log,
	}
}

func (s *feedbackService) Evaluate(ctx context.Context, question, answer string) (*dto.AnswerFeedbackResponse, error) {
	rawScores, err := s.scoresLLM.Generate(ctx, constant.ScoresPrompt(question, answer))
	if err != nil {
		return nil, apperrors.Collaborator("llm scores", err)
	}

	rawSummary, err := s.summaryLLM.Generate(ctx, constant.SummaryPrompt(question, answer))
	if err != nil {
		return nil, apperrors.Collaborator("llm summary", err)
	}

	rawFlags, err := s.flagsLLM.Generate(ctx, constant.FlagsPrompt(question, answer))
	if err != nil {
		return nil, apperrors.Collaborator("llm flags", err)
	}

	res := &dto.AnswerFeedbackResponse{
		Scores:  feedback.ParseScores(rawScores),
		Summary: rawSummary,
		Flags:   feedback.ParseFlags(rawFlags),
	}

	if len(res.Scores) == 0 {
		s.log.Warn("feedback", "score pass produced no parseable scores", nil)
	}

	return res, nil
}

func (s *feedbackService) EvaluateAndAttach(ctx context.Context, userId, sessionId uuid.UUID, question, answer string) (*dto.AnswerFeedbackResponse, error) {
	res, err := s.Evaluate(ctx, question, answer)
	if err != nil {
		return nil, err
	}

	// One attach per kind; each is a no-op if the record is gone.
	_ = s.interviewService.AttachFeedback(ctx, userId, sessionId, question, entity.FeedbackKindScores, res.Scores)
	_ = s.interviewService.AttachFeedback(ctx, userId, sessionId, question, entity.FeedbackKindSummary, res.Summary)
	_ = s.interviewService.AttachFeedback(ctx, userId, sessionId, question, entity.FeedbackKindFlags, res.Flags)

	return res, nil
}
