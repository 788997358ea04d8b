package entity

import (
	"time"

	"examgen-be/pkg/pipeline"

	"github.com/google/uuid"
)

// GenerationRun is the durable record of one pipeline session. Sessions live
// in memory while active; a run row is written when a session reaches a
// terminal stage so failed attempts stay inspectable.
type GenerationRun struct {
	Id            uuid.UUID
	Stage         string
	Parameters    pipeline.Parameters
	Prompt        string
	ChunkCount    int
	RawOutput     string
	ProblemId     *uuid.UUID
	ArtifactRef   string
	CompileFailed bool
	ErrorLog      []pipeline.StageError
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
