package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/repository/memory"
	"ai-interviewer-be/pkg/embedding"
	"ai-interviewer-be/pkg/llm"
	"ai-interviewer-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// noopLogger keeps test output clean.
type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// scriptedLLM replays canned responses in order and records every prompt
// it was asked.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("scriptedLLM: out of responses")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *scriptedLLM) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// hashEmbedder produces deterministic fixed-dimension vectors so index
// build and search always succeed. It also records the texts it embedded.
type hashEmbedder struct {
	mu    sync.Mutex
	dim   int
	texts []string
}

func (h *hashEmbedder) Generate(ctx context.Context, text, taskType string) (*embedding.EmbeddingResponse, error) {
	h.mu.Lock()
	h.texts = append(h.texts, text)
	h.mu.Unlock()

	dim := h.dim
	if dim == 0 {
		dim = 4
	}
	vec := make([]float32, dim)
	for i, r := range text {
		vec[i%dim] += float32(r%13) / 13
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

func (h *hashEmbedder) embedded() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.texts))
	copy(out, h.texts)
	return out
}

// capturePublisher records what the answer pipeline enqueued.
type capturePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturePublisher) published() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.payloads))
	copy(out, p.payloads)
	return out
}

// interviewFixture wires an interview service against in-memory repos
// and scripted collaborators.
type interviewFixture struct {
	service     IInterviewService
	sessionRepo *memory.SessionRepository
	indexRepo   *memory.IndexRepository
	flatStore   *vectorstore.FlatStore
	llm         *scriptedLLM
	publisher   *capturePublisher
	userId      uuid.UUID
}

func newInterviewFixture(t *testing.T, responses []string) *interviewFixture {
	t.Helper()

	sessionRepo := memory.NewSessionRepository()
	indexRepo := memory.NewIndexRepository()
	flatStore := vectorstore.NewFlatStore(&hashEmbedder{})
	stubLLM := &scriptedLLM{responses: responses}
	publisher := &capturePublisher{}

	questionService := NewQuestionService(flatStore, stubLLM, noopLogger{})
	interviewService := NewInterviewService(
		sessionRepo,
		indexRepo,
		questionService,
		publisher,
		nil, // event stream is optional
		6,
		noopLogger{},
	)

	return &interviewFixture{
		service:     interviewService,
		sessionRepo: sessionRepo,
		indexRepo:   indexRepo,
		flatStore:   flatStore,
		llm:         stubLLM,
		publisher:   publisher,
		userId:      uuid.New(),
	}
}

// seedIndex builds a small resume index and registers its handle for the
// fixture user.
func (f *interviewFixture) seedIndex(t *testing.T) uuid.UUID {
	t.Helper()

	idx, err := f.flatStore.Build(context.Background(), []string{
		"Led a team of five engineers on the analytics platform.",
		"Implemented a distributed task queue in Go.",
		"Built an open-source vector search library.",
	})
	require.NoError(t, err)

	handle := &entity.ResumeIndex{
		Id:         uuid.New(),
		UserId:     f.userId,
		Filename:   "resume.txt",
		ChunkCount: idx.Len(),
		Index:      idx,
	}
	f.indexRepo.Save(handle)
	return handle.Id
}
