package dto

import (
	"time"

	"examgen-be/pkg/pipeline"
)

type CreateSessionRequest struct {
	TemplateId    string  `json:"template_id" validate:"required"`
	Subject       string  `json:"subject" validate:"required"`
	Difficulty    string  `json:"difficulty"`
	QuestionCount int     `json:"question_count" validate:"gte=1,lte=50"`
	OutputPreset  string  `json:"output_preset"`
	SourceText    string  `json:"source_text"`
	RagInject     bool    `json:"rag_inject"`
	TopK          int     `json:"top_k"`
	UserHint      float64 `json:"user_difficulty"`
	Title         string  `json:"title"`
}

type StageErrorResponse struct {
	Stage   string    `json:"stage"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	Attempt int       `json:"attempt"`
	At      time.Time `json:"at"`
}

type SessionResponse struct {
	Id            string               `json:"id"`
	Stage         string               `json:"stage"`
	LastGood      string               `json:"last_good_stage"`
	Prompt        string               `json:"prompt,omitempty"`
	ChunkCount    int                  `json:"chunk_count"`
	RawOutput     string               `json:"raw_output,omitempty"`
	ProblemId     string               `json:"problem_id,omitempty"`
	ArtifactRef   string               `json:"artifact_ref,omitempty"`
	CompileFailed bool                 `json:"compile_failed"`
	ErrorLog      []StageErrorResponse `json:"error_log"`
}

func NewSessionResponse(s *pipeline.Session) *SessionResponse {
	errorLog := make([]StageErrorResponse, len(s.ErrorLog))
	for i, e := range s.ErrorLog {
		errorLog[i] = StageErrorResponse{
			Stage:   string(e.Stage),
			Kind:    e.Kind,
			Message: e.Message,
			Attempt: e.Attempt,
			At:      e.At,
		}
	}

	chunkCount := 0
	if s.Retrieved != nil {
		chunkCount = s.Retrieved.ChunkCount
	}

	return &SessionResponse{
		Id:            s.Id.String(),
		Stage:         string(s.Stage),
		LastGood:      string(s.LastGood()),
		Prompt:        s.Prompt,
		ChunkCount:    chunkCount,
		RawOutput:     s.RawOutput,
		ProblemId:     s.InsertedId,
		ArtifactRef:   s.ArtifactRef,
		CompileFailed: s.CompileFailed,
		ErrorLog:      errorLog,
	}
}

type ListRunsResponse struct {
	Id            string    `json:"id"`
	Stage         string    `json:"stage"`
	Subject       string    `json:"subject"`
	ProblemId     *string   `json:"problem_id,omitempty"`
	ArtifactRef   string    `json:"artifact_ref,omitempty"`
	CompileFailed bool      `json:"compile_failed"`
	CreatedAt     time.Time `json:"created_at"`
}
