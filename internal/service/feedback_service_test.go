package service

import (
	"context"
	"errors"
	"testing"

	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_MergesThreePasses(t *testing.T) {
	scores := &scriptedLLM{responses: []string{
		"**Concept**: 4\nDepth: 3\nReasoning: 5\nClarity: 2\nConfidence: 4",
	}}
	summary := &scriptedLLM{responses: []string{
		"Solid grasp of sharding, weak on failure modes.",
	}}
	flags := &scriptedLLM{responses: []string{
		"FLAGS: VAGUE, TOO_SHORT",
	}}

	svc := NewFeedbackService(scores, summary, flags, nil, noopLogger{})

	res, err := svc.Evaluate(context.Background(), "How did you shard?", "We hashed on tenant id.")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"Concept":    4,
		"Depth":      3,
		"Reasoning":  5,
		"Clarity":    2,
		"Confidence": 4,
	}, res.Scores)
	assert.Equal(t, "Solid grasp of sharding, weak on failure modes.", res.Summary)
	assert.Equal(t, []string{"VAGUE", "TOO_SHORT"}, res.Flags)
}

func TestEvaluate_GarbageDegradesToEmpty(t *testing.T) {
	scores := &scriptedLLM{responses: []string{"I cannot rate this answer."}}
	summary := &scriptedLLM{responses: []string{"fine"}}
	flags := &scriptedLLM{responses: []string{"NONE"}}

	svc := NewFeedbackService(scores, summary, flags, nil, noopLogger{})

	res, err := svc.Evaluate(context.Background(), "Q?", "A.")
	require.NoError(t, err)
	assert.Empty(t, res.Scores)
	assert.Empty(t, res.Flags)
	assert.Equal(t, "fine", res.Summary)
}

func TestEvaluate_TransportFailureSurfaces(t *testing.T) {
	tests := []struct {
		name    string
		scores  *scriptedLLM
		summary *scriptedLLM
		flags   *scriptedLLM
	}{
		{
			name:    "scores pass down",
			scores:  &scriptedLLM{err: errors.New("timeout")},
			summary: &scriptedLLM{responses: []string{"x"}},
			flags:   &scriptedLLM{responses: []string{"NONE"}},
		},
		{
			name:    "flags pass down",
			scores:  &scriptedLLM{responses: []string{"Concept: 3"}},
			summary: &scriptedLLM{responses: []string{"x"}},
			flags:   &scriptedLLM{err: errors.New("timeout")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFeedbackService(tt.scores, tt.summary, tt.flags, nil, noopLogger{})
			_, err := svc.Evaluate(context.Background(), "Q?", "A.")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrCollaborator)
		})
	}
}

func TestEvaluateAndAttach_AllKindsLandOnRecord(t *testing.T) {
	f := newInterviewFixture(t, []string{"How did you shard?"})
	ctx := context.Background()
	sessionId := startSession(t, f, 1)

	err := f.service.SubmitAnswer(ctx, f.userId, sessionId, &dto.SubmitAnswerRequest{
		Question: "How did you shard?",
		Answer:   "We hashed on tenant id.",
	})
	require.NoError(t, err)

	scores := &scriptedLLM{responses: []string{"Concept: 4\nDepth: 3"}}
	summary := &scriptedLLM{responses: []string{"Decent answer."}}
	flags := &scriptedLLM{responses: []string{"FLAGS: MINOR_ERROR"}}
	feedbackSvc := NewFeedbackService(scores, summary, flags, f.service, noopLogger{})

	res, err := feedbackSvc.EvaluateAndAttach(ctx, f.userId, sessionId, "How did you shard?", "We hashed on tenant id.")
	require.NoError(t, err)
	require.NotNil(t, res)

	detail, err := f.service.Show(ctx, f.userId, sessionId)
	require.NoError(t, err)
	require.Len(t, detail.Answers, 1)

	fb := detail.Answers[0].Feedback
	require.NotNil(t, fb)
	assert.Equal(t, map[string]int{"Concept": 4, "Depth": 3}, fb[entity.FeedbackKindScores])
	assert.Equal(t, "Decent answer.", fb[entity.FeedbackKindSummary])
	assert.Equal(t, []string{"MINOR_ERROR"}, fb[entity.FeedbackKindFlags])
}
