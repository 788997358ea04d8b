package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTemplateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Body        string `json:"body" validate:"required"`
	Preset      string `json:"preset"`
	SortOrder   int    `json:"sort_order"`
}

type CreateTemplateResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateTemplateRequest struct {
	Id          uuid.UUID
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Body        string `json:"body" validate:"required"`
	Preset      string `json:"preset"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

type ShowTemplateResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Body        string     `json:"body"`
	Preset      string     `json:"preset"`
	IsActive    bool       `json:"is_active"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// RenderTemplateRequest is the render surface contract. Placeholders the
// template does not use are simply ignored.
type RenderTemplateRequest struct {
	TemplateId    string `json:"template_id" validate:"required"`
	Subject       string `json:"subject"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	RagInject     bool   `json:"rag_inject"`
	SourceText    string `json:"source_text"`
	OutputPreset  string `json:"output_preset"`
}

type RenderTemplateResponse struct {
	RenderedPrompt string `json:"rendered_prompt"`
	ChunkCount     int    `json:"chunk_count"`
}
