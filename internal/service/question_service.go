// FILE: internal/service/question_service.go
package service

import (
	"context"
	"strings"

	"ai-interviewer-be/internal/constant"
	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/apperrors"
	"ai-interviewer-be/internal/pkg/logger"
	"ai-interviewer-be/pkg/llm"
	"ai-interviewer-be/pkg/vectorstore"
)

// Models prefix single questions with list markers anyway; this cutset
// strips the enumeration artifacts off both ends.
const questionTrimCutset = "1234567890. -*\"'\n\r\t"

type IQuestionService interface {
	// GenerateBulk produces up to n interview questions grounded in the
	// resume index. Exactly n LLM calls, strictly sequential: each call's
	// exclusion list depends on the previous results. Empty-after-trim
	// results are dropped silently, so the output may be shorter than n.
	GenerateBulk(ctx context.Context, idx *vectorstore.Index, mode entity.InterviewMode, n int) ([]string, error)
}

type questionService struct {
	flatStore   *vectorstore.FlatStore
	llmProvider llm.LLMProvider
	log         logger.ILogger
}

func NewQuestionService(
	flatStore *vectorstore.FlatStore,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IQuestionService {
	return &questionService{
		flatStore:   flatStore,
		llmProvider: llmProvider,
		log:         log,
	}
}

func (s *questionService) GenerateBulk(ctx context.Context, idx *vectorstore.Index, mode entity.InterviewMode, n int) ([]string, error) {
	query := constant.TechnicalRetrievalQuery
	if mode == entity.ModeBehavioural {
		query = constant.BehaviouralRetrievalQuery
	}

	retrieved, err := s.flatStore.Search(ctx, idx, query, constant.RetrievalTopK)
	if err != nil {
		return nil, err
	}
	contextBlock := strings.Join(retrieved, "\n")

	questions := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var prompt string
		if mode == entity.ModeBehavioural {
			prompt = constant.BehaviouralQuestionPrompt(contextBlock, questions)
		} else {
			prompt = constant.TechnicalQuestionPrompt(contextBlock, questions)
		}

		raw, err := s.llmProvider.Generate(ctx, prompt)
		if err != nil {
			return nil, apperrors.Collaborator("llm", err)
		}

		cleaned := strings.Trim(raw, questionTrimCutset)
		if cleaned == "" {
			// Soft degradation: the round produced nothing usable. No
			// retry within a generation round.
			s.log.Warn("question", "llm returned empty question text", map[string]interface{}{
				"mode":  mode,
				"round": i + 1,
			})
			continue
		}
		questions = append(questions, cleaned)
	}

	return questions, nil
}
