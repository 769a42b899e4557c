package memory

import (
	"sort"
	"sync"
	"time"

	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// sessionEntry pairs the session with its own mutex. go-cache guards the
// map itself, not read-modify-write of a stored value; the per-entry
// mutex is what serializes concurrent mutation of one session. Two
// requests against the same session queue on this lock, requests against
// different sessions never touch each other's.
type sessionEntry struct {
	mu      sync.Mutex
	session *entity.InterviewSession
}

// SessionRepository owns interview sessions in process memory. Sessions
// expire 24 hours after their last touch and are pruned periodically.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func sessionKey(userId, sessionId uuid.UUID) string {
	return userId.String() + "/" + sessionId.String()
}

// Save stores a freshly created session.
func (r *SessionRepository) Save(session *entity.InterviewSession) {
	entry := &sessionEntry{session: session}
	r.cache.Set(sessionKey(session.UserId, session.Id), entry, cache.DefaultExpiration)
}

// Get returns a consistent snapshot of the session, or NotFound. The
// snapshot deep-copies the answer log so callers never observe a record
// mid-mutation.
func (r *SessionRepository) Get(userId, sessionId uuid.UUID) (*entity.InterviewSession, error) {
	x, found := r.cache.Get(sessionKey(userId, sessionId))
	if !found {
		return nil, apperrors.NotFound("interview session")
	}
	entry := x.(*sessionEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return snapshot(entry.session), nil
}

// Mutate runs fn against the live session while holding its entry lock.
// Everything fn does is one indivisible unit from any other caller's
// point of view. fn must not block on I/O; collaborator calls happen
// before or after, never inside.
func (r *SessionRepository) Mutate(userId, sessionId uuid.UUID, fn func(*entity.InterviewSession) error) error {
	x, found := r.cache.Get(sessionKey(userId, sessionId))
	if !found {
		return apperrors.NotFound("interview session")
	}
	entry := x.(*sessionEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := fn(entry.session); err != nil {
		return err
	}
	entry.session.RefreshStatus()
	return nil
}

// ListByUser returns snapshots of all of the owner's sessions, newest
// first by creation time.
func (r *SessionRepository) ListByUser(userId uuid.UUID) []*entity.InterviewSession {
	var sessions []*entity.InterviewSession
	for _, item := range r.cache.Items() {
		entry, ok := item.Object.(*sessionEntry)
		if !ok {
			continue
		}
		entry.mu.Lock()
		if entry.session.UserId == userId {
			sessions = append(sessions, snapshot(entry.session))
		}
		entry.mu.Unlock()
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions
}

// Delete removes a session before its TTL.
func (r *SessionRepository) Delete(userId, sessionId uuid.UUID) {
	r.cache.Delete(sessionKey(userId, sessionId))
}

func snapshot(s *entity.InterviewSession) *entity.InterviewSession {
	cp := *s
	cp.Answers = make([]entity.AnswerRecord, len(s.Answers))
	for i, a := range s.Answers {
		rec := a
		if a.Feedback != nil {
			rec.Feedback = make(map[string]interface{}, len(a.Feedback))
			for k, v := range a.Feedback {
				rec.Feedback[k] = v
			}
		}
		cp.Answers[i] = rec
	}
	// Questions are immutable after creation; sharing the slice is safe.
	return &cp
}
