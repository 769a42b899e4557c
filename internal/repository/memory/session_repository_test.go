package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(userId uuid.UUID, questions []string) *entity.InterviewSession {
	s := &entity.InterviewSession{
		Id:        uuid.New(),
		UserId:    userId,
		Mode:      entity.ModeTechnical,
		Questions: questions,
		Answers:   []entity.AnswerRecord{},
		CreatedAt: time.Now(),
	}
	s.RefreshStatus()
	return s
}

func TestSaveAndGet(t *testing.T) {
	repo := NewSessionRepository()
	userId := uuid.New()
	s := newSession(userId, []string{"Q1"})
	repo.Save(s)

	got, err := repo.Get(userId, s.Id)
	require.NoError(t, err)
	assert.Equal(t, s.Id, got.Id)
	assert.Equal(t, entity.StatusInProgress, got.Status)
}

func TestGetUnknownSession(t *testing.T) {
	repo := NewSessionRepository()

	_, err := repo.Get(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetWrongOwner(t *testing.T) {
	repo := NewSessionRepository()
	s := newSession(uuid.New(), []string{"Q1"})
	repo.Save(s)

	// Same session id, different owner: not visible.
	_, err := repo.Get(uuid.New(), s.Id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMutateSerializesConcurrentWriters(t *testing.T) {
	repo := NewSessionRepository()
	userId := uuid.New()

	const n = 200
	questions := make([]string, n)
	for i := range questions {
		questions[i] = fmt.Sprintf("Q%d", i)
	}
	s := newSession(userId, questions)
	repo.Save(s)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Mutate(userId, s.Id, func(sess *entity.InterviewSession) error {
				// The central invariant must hold at every point a
				// writer can observe the session.
				if len(sess.Answers) != sess.Cursor {
					t.Errorf("invariant broken: answers=%d cursor=%d", len(sess.Answers), sess.Cursor)
				}
				sess.Answers = append(sess.Answers, entity.AnswerRecord{
					Question: sess.Questions[sess.Cursor],
					Answer:   fmt.Sprintf("A%d", i),
				})
				sess.Cursor++
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := repo.Get(userId, s.Id)
	require.NoError(t, err)
	assert.Equal(t, n, got.Cursor)
	assert.Len(t, got.Answers, n)
	assert.Equal(t, entity.StatusComplete, got.Status)
}

func TestMutateErrorLeavesSessionUntouched(t *testing.T) {
	repo := NewSessionRepository()
	userId := uuid.New()
	s := newSession(userId, []string{"Q1"})
	repo.Save(s)

	err := repo.Mutate(userId, s.Id, func(sess *entity.InterviewSession) error {
		return fmt.Errorf("boom")
	})
	assert.Error(t, err)

	got, err := repo.Get(userId, s.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cursor)
	assert.Empty(t, got.Answers)
}

func TestSnapshotIsolation(t *testing.T) {
	repo := NewSessionRepository()
	userId := uuid.New()
	s := newSession(userId, []string{"Q1"})
	repo.Save(s)

	require.NoError(t, repo.Mutate(userId, s.Id, func(sess *entity.InterviewSession) error {
		sess.Answers = append(sess.Answers, entity.AnswerRecord{Question: "Q1", Answer: "A1"})
		sess.Cursor++
		return nil
	}))

	snap, err := repo.Get(userId, s.Id)
	require.NoError(t, err)
	snap.Answers[0].Answer = "tampered"
	snap.Answers[0].Feedback = map[string]interface{}{"scores": "bogus"}

	fresh, err := repo.Get(userId, s.Id)
	require.NoError(t, err)
	assert.Equal(t, "A1", fresh.Answers[0].Answer)
	assert.Nil(t, fresh.Answers[0].Feedback)
}

func TestListByUserNewestFirst(t *testing.T) {
	repo := NewSessionRepository()
	userId := uuid.New()
	otherId := uuid.New()

	older := newSession(userId, []string{"Q1"})
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := newSession(userId, []string{"Q1"})
	foreign := newSession(otherId, []string{"Q1"})

	repo.Save(older)
	repo.Save(newer)
	repo.Save(foreign)

	got := repo.ListByUser(userId)
	require.Len(t, got, 2)
	assert.Equal(t, newer.Id, got[0].Id)
	assert.Equal(t, older.Id, got[1].Id)
}
