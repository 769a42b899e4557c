package service

import (
	"context"
	"strings"
	"testing"

	"ai-interviewer-be/internal/pkg/apperrors"
	"ai-interviewer-be/internal/repository/memory"
	"ai-interviewer-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResumeFixture() (IResumeService, *memory.IndexRepository) {
	indexRepo := memory.NewIndexRepository()
	flatStore := vectorstore.NewFlatStore(&hashEmbedder{})
	svc := NewResumeService(indexRepo, flatStore, PlainTextExtractor{}, noopLogger{})
	return svc, indexRepo
}

func TestUpload_BuildsRetrievableHandle(t *testing.T) {
	svc, indexRepo := newResumeFixture()
	userId := uuid.New()

	res, err := svc.Upload(context.Background(), userId, "resume.txt",
		[]byte("Led a team of five engineers building an analytics platform."))
	require.NoError(t, err)
	assert.Equal(t, 1, res.ChunkCount)

	handle, err := indexRepo.Get(userId, res.IndexId)
	require.NoError(t, err)
	assert.Equal(t, "resume.txt", handle.Filename)
	assert.Equal(t, 1, handle.Index.Len())
}

func TestUpload_LongResumeOverlappingChunks(t *testing.T) {
	svc, indexRepo := newResumeFixture()
	userId := uuid.New()

	// 1800 runes: windows land at [0,1000) and [800,1800).
	text := strings.Repeat("a", 1800)
	res, err := svc.Upload(context.Background(), userId, "resume.txt", []byte(text))
	require.NoError(t, err)
	assert.Equal(t, 2, res.ChunkCount)

	handle, err := indexRepo.Get(userId, res.IndexId)
	require.NoError(t, err)
	assert.Len(t, handle.Index.Chunk(0), 1000)
	assert.Len(t, handle.Index.Chunk(1), 1000)
}

func TestUpload_SecondUploadKeepsFirstHandle(t *testing.T) {
	svc, indexRepo := newResumeFixture()
	userId := uuid.New()

	first, err := svc.Upload(context.Background(), userId, "first.txt", []byte("first resume"))
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), userId, "second.txt", []byte("second resume"))
	require.NoError(t, err)
	require.NotEqual(t, first.IndexId, second.IndexId)

	// Both handles stay addressable; nothing got clobbered.
	_, err = indexRepo.Get(userId, first.IndexId)
	assert.NoError(t, err)
	_, err = indexRepo.Get(userId, second.IndexId)
	assert.NoError(t, err)
}

func TestUpload_BlankTextRejected(t *testing.T) {
	svc, _ := newResumeFixture()

	for _, content := range []string{"", "   \n\t  "} {
		_, err := svc.Upload(context.Background(), uuid.New(), "resume.txt", []byte(content))
		assert.ErrorIs(t, err, apperrors.ErrEmptyIndexInput)
	}
}

func TestUpload_BinaryContentRejected(t *testing.T) {
	svc, _ := newResumeFixture()

	_, err := svc.Upload(context.Background(), uuid.New(), "resume.pdf",
		[]byte{0x25, 0x50, 0x44, 0x46, 0xff, 0xfe, 0x80})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCollaborator)
}
