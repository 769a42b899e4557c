package vectorstore

import (
	"context"
	"sort"

	"ai-interviewer-be/internal/pkg/apperrors"
	"ai-interviewer-be/pkg/embedding"
)

// Index is an immutable flat (exhaustive) L2 index over resume chunks.
// Chunk identity is its position in the build sequence; the slice order
// is never changed after construction. At resume scale (tens to low
// hundreds of chunks) exact scan beats any approximate structure.
type Index struct {
	dim     int
	chunks  []string
	vectors [][]float32
}

// Len returns the number of indexed chunks.
func (i *Index) Len() int {
	return len(i.chunks)
}

// Dimension returns the vector dimensionality fixed at build time.
func (i *Index) Dimension() int {
	return i.dim
}

// Chunk returns the chunk text at position idx.
func (i *Index) Chunk(idx int) string {
	return i.chunks[idx]
}

// FlatStore builds and searches flat indices using an injected embedding
// collaborator. It holds no index state itself; callers own the handles.
type FlatStore struct {
	provider embedding.EmbeddingProvider
}

func NewFlatStore(provider embedding.EmbeddingProvider) *FlatStore {
	return &FlatStore{provider: provider}
}

// Build embeds every chunk and constructs the index. One collaborator
// call per chunk, sequential. All vectors must share one dimensionality;
// a well-behaved provider guarantees this, but it is checked anyway.
func (s *FlatStore) Build(ctx context.Context, chunks []string) (*Index, error) {
	if len(chunks) == 0 {
		return nil, apperrors.ErrEmptyIndexInput
	}

	vectors := make([][]float32, 0, len(chunks))
	dim := 0
	for i, chunk := range chunks {
		res, err := s.provider.Generate(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, apperrors.Collaborator("embedding", err)
		}
		vec := res.Embedding.Values
		if i == 0 {
			dim = len(vec)
		} else if len(vec) != dim {
			return nil, apperrors.DimensionMismatch(i, dim, len(vec))
		}
		vectors = append(vectors, vec)
	}

	stored := make([]string, len(chunks))
	copy(stored, chunks)

	return &Index{
		dim:     dim,
		chunks:  stored,
		vectors: vectors,
	}, nil
}

// Search embeds the query and returns the k nearest chunks by L2
// distance, nearest first. k is clamped to the chunk count. Ties keep
// the original chunk order (stable sort).
func (s *FlatStore) Search(ctx context.Context, idx *Index, query string, k int) ([]string, error) {
	if k <= 0 {
		return []string{}, nil
	}

	res, err := s.provider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, apperrors.Collaborator("embedding", err)
	}
	q := res.Embedding.Values
	if len(q) != idx.dim {
		return nil, apperrors.DimensionMismatch(-1, idx.dim, len(q))
	}

	type hit struct {
		pos  int
		dist float32
	}

	hits := make([]hit, idx.Len())
	for i, vec := range idx.vectors {
		hits[i] = hit{pos: i, dist: l2Squared(q, vec)}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].dist < hits[b].dist
	})

	if k > len(hits) {
		k = len(hits)
	}

	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = idx.chunks[hits[i].pos]
	}
	return out, nil
}

// l2Squared avoids the sqrt; ordering under squared distance is the same.
func l2Squared(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
