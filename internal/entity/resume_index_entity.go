package entity

import (
	"time"

	"ai-interviewer-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// ResumeIndex is the handle a resume upload produces: the immutable
// vector index plus bookkeeping. One owner can hold several handles at
// once; a new upload creates a new handle instead of clobbering a
// process-wide slot.
type ResumeIndex struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Filename   string
	ChunkCount int
	Index      *vectorstore.Index
	CreatedAt  time.Time
}
