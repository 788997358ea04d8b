package pipeline

import (
	"time"

	"examgen-be/pkg/problem"

	"github.com/google/uuid"
)

// Stage is the single tagged state a generation session is in. It replaces
// the pile of step booleans a wizard UI tends to accumulate, so impossible
// combinations ("parsed but never dispatched") cannot be represented.
type Stage string

const (
	StageDraft             Stage = "DRAFT"
	StagePromptReady       Stage = "PROMPT_READY"
	StageRagReady          Stage = "RAG_READY"
	StageRagSkipped        Stage = "RAG_SKIPPED"
	StageDispatched        Stage = "DISPATCHED"
	StageRawOutputReceived Stage = "RAW_OUTPUT_RECEIVED"
	StageParsed            Stage = "PARSED"
	StagePersisted         Stage = "PERSISTED"
	StageCompileReady      Stage = "COMPILE_READY"
	StageFailed            Stage = "FAILED"
)

// Parameters is everything the author chose before generation starts.
// The rendered prompt is a pure function of this value.
type Parameters struct {
	TemplateId    string  `json:"template_id"`
	Subject       string  `json:"subject"`
	Difficulty    string  `json:"difficulty"`
	QuestionCount int     `json:"question_count"`
	OutputPreset  string  `json:"output_preset"`
	SourceText    string  `json:"source_text,omitempty"`
	RagInject     bool    `json:"rag_inject"`
	TopK          int     `json:"top_k,omitempty"`
	UserHint      float64 `json:"user_difficulty,omitempty"`
	Title         string  `json:"title,omitempty"`
}

// Snippet is one retrieved reference problem.
type Snippet struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// RetrievedContext is the optional reference material folded into the
// prompt. A zero chunk count is a normal state of a cold index.
type RetrievedContext struct {
	Snippets   []Snippet `json:"snippets"`
	ChunkCount int       `json:"chunk_count"`
	Prompt     string    `json:"prompt,omitempty"`
}

// StageError is one diagnostic entry. The log is append-only and survives
// past the failing stage so failed attempts remain visible for tuning.
type StageError struct {
	Stage   Stage     `json:"stage"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	Attempt int       `json:"attempt"`
	At      time.Time `json:"at"`
}

// Session is the unit of work for one generation attempt. It is owned by a
// single goroutine at a time; stages are strictly sequential.
type Session struct {
	Id         uuid.UUID
	Stage      Stage
	Parameters Parameters

	Prompt      string
	Retrieved   *RetrievedContext
	RawOutput   string
	Record      *problem.NormalizedProblem
	InsertedId  string
	ArtifactRef string

	// CompileFailed marks the "usable without artifact" terminal state:
	// the record and raw text are available even though compilation failed.
	CompileFailed bool

	ErrorLog []StageError

	// lastGood is where a failed session can resume from.
	lastGood Stage
}

// NewSession starts a fresh session in Draft.
func NewSession(params Parameters) *Session {
	return &Session{
		Id:         uuid.New(),
		Stage:      StageDraft,
		Parameters: params,
		lastGood:   StageDraft,
	}
}

// At reports whether the session is ready to run the stage that expects the
// session to currently sit at `want`. A failed session may retry from its
// last good stage, so Failed+lastGood==want also qualifies.
func (s *Session) At(want ...Stage) bool {
	current := s.Stage
	if current == StageFailed {
		current = s.lastGood
	}
	for _, w := range want {
		if current == w {
			return true
		}
	}
	return false
}

// LastGood returns the most recent successfully committed stage.
func (s *Session) LastGood() Stage {
	if s.Stage == StageFailed {
		return s.lastGood
	}
	return s.Stage
}

// advance commits a forward transition. Transitions are committed only after
// the stage's remote call fully resolved, so a cancelled call leaves the
// session exactly where it was.
func (s *Session) advance(to Stage) {
	s.Stage = to
	s.lastGood = to
}

// fail records the error and parks the session in Failed without losing the
// resume point or any partial progress.
func (s *Session) fail(stage Stage, kind, message string, attempt int) {
	s.logError(stage, kind, message, attempt)
	s.Stage = StageFailed
}

// logError appends a diagnostic entry without changing the stage.
func (s *Session) logError(stage Stage, kind, message string, attempt int) {
	s.ErrorLog = append(s.ErrorLog, StageError{
		Stage:   stage,
		Kind:    kind,
		Message: message,
		Attempt: attempt,
		At:      time.Now(),
	})
}

// Reset clears all downstream state so the caller can restart from Draft
// without re-entering parameters. The error log is kept for diagnostics.
func (s *Session) Reset() {
	s.Stage = StageDraft
	s.lastGood = StageDraft
	s.Prompt = ""
	s.Retrieved = nil
	s.RawOutput = ""
	s.Record = nil
	s.InsertedId = ""
	s.ArtifactRef = ""
	s.CompileFailed = false
}
