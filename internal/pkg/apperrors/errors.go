package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error shape every internal failure is wrapped into.
// HTTPStatus drives the response code in the server error middleware.
type AppError struct {
	Code       string
	HTTPStatus int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error catalog for the interview engine.
var (
	// ErrEmptyIndexInput is returned when an index build receives zero chunks.
	ErrEmptyIndexInput = &AppError{
		Code:       "EMPTY_INDEX_INPUT",
		HTTPStatus: http.StatusBadRequest,
		Message:    "no chunks to index",
	}

	// ErrEmbeddingDimensionMismatch means the embedding collaborator returned
	// vectors of differing length inside a single build. Defensive check.
	ErrEmbeddingDimensionMismatch = &AppError{
		Code:       "EMBEDDING_DIMENSION_MISMATCH",
		HTTPStatus: http.StatusBadGateway,
		Message:    "embedding dimensionality mismatch",
	}

	// ErrNotFound covers unknown session/index for the requesting owner.
	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		HTTPStatus: http.StatusNotFound,
		Message:    "resource not found",
	}

	// ErrCollaborator wraps failures of external services (embedding, LLM,
	// speech). Never retried here; the caller decides.
	ErrCollaborator = &AppError{
		Code:       "COLLABORATOR_FAILURE",
		HTTPStatus: http.StatusBadGateway,
		Message:    "external collaborator failure",
	}

	// ErrUnauthorized is produced by the identity verification layer.
	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		HTTPStatus: http.StatusUnauthorized,
		Message:    "invalid or expired token",
	}
)

// NotFound returns ErrNotFound with a contextual message.
func NotFound(what string) *AppError {
	return &AppError{
		Code:       ErrNotFound.Code,
		HTTPStatus: ErrNotFound.HTTPStatus,
		Message:    what + " not found",
	}
}

// Collaborator wraps an external service error, keeping the cause for logs.
func Collaborator(service string, err error) *AppError {
	return &AppError{
		Code:       ErrCollaborator.Code,
		HTTPStatus: ErrCollaborator.HTTPStatus,
		Message:    service + " call failed",
		Err:        err,
	}
}

// DimensionMismatch reports the offending chunk and the expected/actual sizes.
func DimensionMismatch(chunkIdx, want, got int) *AppError {
	return &AppError{
		Code:       ErrEmbeddingDimensionMismatch.Code,
		HTTPStatus: ErrEmbeddingDimensionMismatch.HTTPStatus,
		Message:    fmt.Sprintf("embedding dimensionality mismatch at chunk %d: want %d, got %d", chunkIdx, want, got),
	}
}

// Is matches wrapped and contextual variants against the catalog entries
// by code, so errors.Is(NotFound("session"), ErrNotFound) holds.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}
