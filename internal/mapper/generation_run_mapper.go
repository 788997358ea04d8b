package mapper

import (
	"encoding/json"
	"time"

	"examgen-be/internal/entity"
	"examgen-be/internal/model"
	"examgen-be/pkg/pipeline"

	"gorm.io/datatypes"
)

type GenerationRunMapper struct{}

func NewGenerationRunMapper() *GenerationRunMapper {
	return &GenerationRunMapper{}
}

func (m *GenerationRunMapper) ToEntity(r *model.GenerationRun) *entity.GenerationRun {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	var params pipeline.Parameters
	if len(r.Parameters) > 0 {
		_ = json.Unmarshal(r.Parameters, &params)
	}

	var errorLog []pipeline.StageError
	if len(r.ErrorLog) > 0 {
		_ = json.Unmarshal(r.ErrorLog, &errorLog)
	}

	return &entity.GenerationRun{
		Id:            r.Id,
		Stage:         r.Stage,
		Parameters:    params,
		Prompt:        r.Prompt,
		ChunkCount:    r.ChunkCount,
		RawOutput:     r.RawOutput,
		ProblemId:     r.ProblemId,
		ArtifactRef:   r.ArtifactRef,
		CompileFailed: r.CompileFailed,
		ErrorLog:      errorLog,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *GenerationRunMapper) ToModel(r *entity.GenerationRun) *model.GenerationRun {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	params := datatypes.JSON("{}")
	if raw, err := json.Marshal(r.Parameters); err == nil {
		params = raw
	}

	errorLog := datatypes.JSON("[]")
	if r.ErrorLog != nil {
		if raw, err := json.Marshal(r.ErrorLog); err == nil {
			errorLog = raw
		}
	}

	return &model.GenerationRun{
		Id:            r.Id,
		Stage:         r.Stage,
		Parameters:    params,
		Prompt:        r.Prompt,
		ChunkCount:    r.ChunkCount,
		RawOutput:     r.RawOutput,
		ProblemId:     r.ProblemId,
		ArtifactRef:   r.ArtifactRef,
		CompileFailed: r.CompileFailed,
		ErrorLog:      errorLog,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *GenerationRunMapper) ToEntities(runs []*model.GenerationRun) []*entity.GenerationRun {
	entities := make([]*entity.GenerationRun, len(runs))
	for i, r := range runs {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
