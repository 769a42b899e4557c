package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadResumeResponse struct {
	IndexId    uuid.UUID `json:"index_id"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}
