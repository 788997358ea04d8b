package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProblemEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	ProblemId      uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
