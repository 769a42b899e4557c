package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startSession(t *testing.T, f *interviewFixture, n int) uuid.UUID {
	t.Helper()
	indexId := f.seedIndex(t)
	res, err := f.service.Start(context.Background(), f.userId, &dto.StartInterviewRequest{
		IndexId:      indexId,
		Mode:         "technical",
		NumQuestions: n,
	})
	require.NoError(t, err)
	require.Equal(t, n, res.QuestionCount)
	return res.SessionId
}

func questionResponses(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Question number %s?", string(rune('A'+i)))
	}
	return out
}

func TestInterview_FullRoundTrip(t *testing.T) {
	const n = 3
	f := newInterviewFixture(t, questionResponses(n))
	ctx := context.Background()
	sessionId := startSession(t, f, n)

	for i := 0; i < n; i++ {
		next, err := f.service.NextQuestion(ctx, f.userId, sessionId)
		require.NoError(t, err)
		require.False(t, next.Done)
		require.NotNil(t, next.Question)

		err = f.service.SubmitAnswer(ctx, f.userId, sessionId, &dto.SubmitAnswerRequest{
			Question: *next.Question,
			Answer:   fmt.Sprintf("answer %d", i+1),
		})
		require.NoError(t, err)
	}

	next, err := f.service.NextQuestion(ctx, f.userId, sessionId)
	require.NoError(t, err)
	assert.True(t, next.Done)
	assert.Nil(t, next.Question)

	detail, err := f.service.Show(ctx, f.userId, sessionId)
	require.NoError(t, err)
	assert.Equal(t, n, detail.Cursor)
	assert.Len(t, detail.Answers, n)
	assert.Equal(t, entity.StatusComplete, detail.Status)
	for i, rec := range detail.Answers {
		assert.Equal(t, detail.Questions[i], rec.Question)
	}
}

func TestInterview_SubmitAfterCompleteRejected(t *testing.T) {
	f := newInterviewFixture(t, questionResponses(1))
	ctx := context.Background()
	sessionId := startSession(t, f, 1)

	err := f.service.SubmitAnswer(ctx, f.userId, sessionId, &dto.SubmitAnswerRequest{
		Question: "Question number A?",
		Answer:   "done",
	})
	require.NoError(t, err)

	err = f.service.SubmitAnswer(ctx, f.userId, sessionId, &dto.SubmitAnswerRequest{
		Question: "Question number A?",
		Answer:   "again",
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SESSION_COMPLETE", appErr.Code)

	// The rejected submit left the session untouched.
	detail, err := f.service.Show(ctx, f.userId, sessionId)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.Cursor)
	assert.Len(t, detail.Answers, 1)
}

func TestInterview_SubmitEnqueuesFeedbackMessage(t *testing.T) {
	f := newInterviewFixture(t, questionResponses(1))
	ctx := context.Background()
	sessionId := startSession(t, f, 1)

	err := f.service.SubmitAnswer(ctx, f.userId, sessionId, &dto.SubmitAnswerRequest{
		Question: "Question number A?",
		Answer:   "my answer",
	})
	require.NoError(t, err)

	published := f.publisher.published()
	require.Len(t, published, 1)

	var msg dto.ScoreAnswerMessage
	require.NoError(t, json.Unmarshal(published[0], &msg))
	assert.Equal(t, f.userId, msg.UserId)
	assert.Equal(t, sessionId, msg.SessionId)
	assert.Equal(t, "Question number A?", msg.Question)
	assert.Equal(t, "my answer", msg.Answer)
}

func TestInterview_PublishFailureDoesNotLoseAnswer(t *testing.T) {
	f := newInterviewFixture(t, questionResponses(1))
	f.publisher.err = errors.New("broker down")
	ctx := context.Background()
	sessionId := startSession(t, f, 1)

	err := f.service.SubmitAnswer(ctx, f.userId, sessionId, &dto.SubmitAnswerRequest{
		Question: "Question number A?",
		Answer:   "my answer",
	})
	require.NoError(t, err)

	detail, err := f.service.Show(ctx, f.userId, sessionId)
	require.NoError(t, err)
	require.Len(t, detail.Answers, 1)
	assert.Equal(t, "my answer", detail.Answers[0].Answer)
}

func TestInterview_AttachFeedbackFirstMatchOnly(t *testing.T) {
	f := newInterviewFixture(t, []string{"Same question?", "Same question?"})
	ctx := context.Background()
	sessionId := startSession(t, f, 2)

	// Same question text answered twice; only the first record receives
	// the feedback.
	for i := 0; i < 2; i++ {
		err := f.service.SubmitAnswer(ctx, f.userId, sessionId, &dto.SubmitAnswerRequest{
			Question: "Same question?",
			Answer:   fmt.Sprintf("answer %d", i+1),
		})
		require.NoError(t, err)
	}

	err := f.service.AttachFeedback(ctx, f.userId, sessionId, "Same question?",
		entity.FeedbackKindScores, map[string]int{"Concept": 4})
	require.NoError(t, err)

	detail, err := f.service.Show(ctx, f.userId, sessionId)
	require.NoError(t, err)
	require.Len(t, detail.Answers, 2)
	assert.NotNil(t, detail.Answers[0].Feedback[entity.FeedbackKindScores])
	assert.Nil(t, detail.Answers[1].Feedback)
}

func TestInterview_AttachFeedbackMissIsNoOp(t *testing.T) {
	f := newInterviewFixture(t, questionResponses(1))
	ctx := context.Background()
	sessionId := startSession(t, f, 1)

	err := f.service.SubmitAnswer(ctx, f.userId, sessionId, &dto.SubmitAnswerRequest{
		Question: "Question number A?",
		Answer:   "answered",
	})
	require.NoError(t, err)

	// Unknown question text: swallowed.
	err = f.service.AttachFeedback(ctx, f.userId, sessionId, "Never asked?",
		entity.FeedbackKindSummary, "stale")
	require.NoError(t, err)

	// Unknown session: also swallowed, the async pipeline may outlive it.
	err = f.service.AttachFeedback(ctx, f.userId, uuid.New(), "Question number A?",
		entity.FeedbackKindSummary, "stale")
	require.NoError(t, err)

	detail, err := f.service.Show(ctx, f.userId, sessionId)
	require.NoError(t, err)
	assert.Nil(t, detail.Answers[0].Feedback)
}

func TestInterview_UnknownSessionAndOwner(t *testing.T) {
	f := newInterviewFixture(t, questionResponses(1))
	ctx := context.Background()
	sessionId := startSession(t, f, 1)

	_, err := f.service.NextQuestion(ctx, f.userId, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Another owner cannot see the session at all.
	_, err = f.service.Show(ctx, uuid.New(), sessionId)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInterview_StartWithUnknownIndex(t *testing.T) {
	f := newInterviewFixture(t, nil)
	_, err := f.service.Start(context.Background(), f.userId, &dto.StartInterviewRequest{
		IndexId: uuid.New(),
		Mode:    "technical",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	// No LLM call was made for a dangling handle.
	assert.Equal(t, 0, f.llm.callCount())
}

func TestInterview_ExportNewestFirst(t *testing.T) {
	f := newInterviewFixture(t, nil)
	base := time.Now()

	// Seed directly so creation times are unambiguous.
	for i := 0; i < 3; i++ {
		session := &entity.InterviewSession{
			Id:        uuid.New(),
			UserId:    f.userId,
			Mode:      entity.ModeTechnical,
			Questions: []string{"Q?"},
			Answers:   []entity.AnswerRecord{},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		session.RefreshStatus()
		f.sessionRepo.Save(session)
	}

	out, err := f.service.Export(context.Background(), f.userId)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.True(t, out[0].CreatedAt.After(out[1].CreatedAt))
	assert.True(t, out[1].CreatedAt.After(out[2].CreatedAt))
}
