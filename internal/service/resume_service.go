// FILE: internal/service/resume_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/apperrors"
	"ai-interviewer-be/internal/pkg/logger"
	"ai-interviewer-be/internal/repository/memory"
	"ai-interviewer-be/pkg/utils"
	"ai-interviewer-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// TextExtractor pulls plain text out of an uploaded resume. PDF (and
// anything else binary) is handled by an external extraction service;
// only the plain-text passthrough lives in-tree.
type TextExtractor interface {
	Extract(filename string, content []byte) (string, error)
}

// PlainTextExtractor accepts text uploads as-is.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(filename string, content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("file %s is not plain text; extract it before uploading", filename)
	}
	return string(content), nil
}

type IResumeService interface {
	Upload(ctx context.Context, userId uuid.UUID, filename string, content []byte) (*dto.UploadResumeResponse, error)
}

type resumeService struct {
	indexRepo *memory.IndexRepository
	flatStore *vectorstore.FlatStore
	extractor TextExtractor
	log       logger.ILogger
}

func NewResumeService(
	indexRepo *memory.IndexRepository,
	flatStore *vectorstore.FlatStore,
	extractor TextExtractor,
	log logger.ILogger,
) IResumeService {
	return &resumeService{
		indexRepo: indexRepo,
		flatStore: flatStore,
		extractor: extractor,
		log:       log,
	}
}

// Upload extracts resume text, chunks it into overlapping windows and
// builds a fresh vector index. The returned handle id is what the
// interview setup references; older handles stay usable until they
// expire (no process-global index slot).
func (s *resumeService) Upload(ctx context.Context, userId uuid.UUID, filename string, content []byte) (*dto.UploadResumeResponse, error) {
	text, err := s.extractor.Extract(filename, content)
	if err != nil {
		return nil, apperrors.Collaborator("text extraction", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrEmptyIndexInput
	}

	chunks := utils.SplitText(text, utils.ResumeChunkWindow, utils.ResumeChunkStride)

	idx, err := s.flatStore.Build(ctx, chunks)
	if err != nil {
		return nil, err
	}

	handle := &entity.ResumeIndex{
		Id:         uuid.New(),
		UserId:     userId,
		Filename:   filename,
		ChunkCount: idx.Len(),
		Index:      idx,
		CreatedAt:  time.Now(),
	}
	s.indexRepo.Save(handle)

	s.log.Info("resume", "resume indexed", map[string]interface{}{
		"index_id":    handle.Id,
		"chunk_count": handle.ChunkCount,
		"dimension":   idx.Dimension(),
	})

	return &dto.UploadResumeResponse{
		IndexId:    handle.Id,
		ChunkCount: handle.ChunkCount,
		CreatedAt:  handle.CreatedAt,
	}, nil
}
