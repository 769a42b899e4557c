package memory

import (
	"time"

	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// IndexRepository keeps resume index handles per owner. Entries are
// immutable once stored, so no per-entry locking is needed here; the
// index itself never changes after Build. Handles expire with the same
// policy as sessions so an abandoned setup does not pin vectors forever.
type IndexRepository struct {
	cache *cache.Cache
}

func NewIndexRepository() *IndexRepository {
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &IndexRepository{
		cache: c,
	}
}

func indexKey(userId, indexId uuid.UUID) string {
	return userId.String() + "/" + indexId.String()
}

func (r *IndexRepository) Save(idx *entity.ResumeIndex) {
	r.cache.Set(indexKey(idx.UserId, idx.Id), idx, cache.DefaultExpiration)
}

func (r *IndexRepository) Get(userId, indexId uuid.UUID) (*entity.ResumeIndex, error) {
	if x, found := r.cache.Get(indexKey(userId, indexId)); found {
		return x.(*entity.ResumeIndex), nil
	}
	return nil, apperrors.NotFound("resume index")
}
