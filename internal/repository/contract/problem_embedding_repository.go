package contract

import (
	"context"

	"examgen-be/internal/entity"
	"examgen-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredProblemEmbedding wraps ProblemEmbedding with its similarity score
type ScoredProblemEmbedding struct {
	Embedding  *entity.ProblemEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type ProblemEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ProblemEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.ProblemEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProblemId(ctx context.Context, problemId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProblemEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns embeddings with their similarity scores, filtered by threshold
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredProblemEmbedding, error)
}
