package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"examgen-be/pkg/gateway"
	"examgen-be/pkg/problem"
)

// Error kinds the orchestrator reports on top of the gateway taxonomy.
const (
	KindRenderError     = "RENDER_ERROR"
	KindRetrievalError  = "RETRIEVAL_ERROR"
	KindCompletionError = "COMPLETION_ERROR"
	KindParseError      = "PARSE_ERROR"
	KindPersistError    = "PERSIST_ERROR"
	KindCompileFailed   = "COMPILE_FAILED"
	KindBadStage        = "BAD_STAGE"
)

// Renderer produces the full prompt text for a parameter set. Rendering has
// no side effects upstream, so the gateway may retry it freely.
type Renderer interface {
	Render(ctx context.Context, params Parameters) (string, error)
}

// Retriever fetches reference problems for the prompt. An empty index is a
// normal answer, not an error.
type Retriever interface {
	Retrieve(ctx context.Context, params Parameters, prompt string) (*RetrievedContext, error)
}

// Completer sends the prompt to the completion surface and returns the raw
// model text.
type Completer interface {
	Complete(ctx context.Context, prompt string, preset string, title string) (string, error)
}

// Persister stores the normalized record and returns the inserted id.
type Persister interface {
	Persist(ctx context.Context, record *problem.NormalizedProblem, session *Session) (string, error)
}

// Compiler turns the raw output into a downloadable artifact reference.
type Compiler interface {
	Compile(ctx context.Context, source string, title string, preset string) (string, error)
}

// Orchestrator drives one session through its ordered stages, translating
// collaborator failures into a retry, a stage-specific skip, or a terminal
// failure. It holds no state of its own; everything lives on the session.
type Orchestrator struct {
	renderer  Renderer
	retriever Retriever
	completer Completer
	persister Persister
	compiler  Compiler
	logger    *log.Logger
}

func NewOrchestrator(
	renderer Renderer,
	retriever Retriever,
	completer Completer,
	persister Persister,
	compiler Compiler,
	logger *log.Logger,
) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		renderer:  renderer,
		retriever: retriever,
		completer: completer,
		persister: persister,
		compiler:  compiler,
		logger:    logger,
	}
}

// StageFailure is the typed result of a failed stage operation.
type StageFailure struct {
	Stage   Stage
	Kind    string
	Message string
}

func (e *StageFailure) Error() string {
	return fmt.Sprintf("%s failed: %s: %s", e.Stage, e.Kind, e.Message)
}

func badStage(s *Session, op string) error {
	return &StageFailure{
		Stage:   s.LastGood(),
		Kind:    KindBadStage,
		Message: fmt.Sprintf("%s is not runnable from %s", op, s.LastGood()),
	}
}

// RenderPrompt computes the prompt for the session's parameters. The prompt
// is a pure function of the parameters, so re-running the stage after a
// failure is always safe.
func (o *Orchestrator) RenderPrompt(ctx context.Context, s *Session) error {
	if !s.At(StageDraft) {
		return badStage(s, "renderPrompt")
	}

	prompt, err := o.renderer.Render(ctx, s.Parameters)
	if err != nil {
		return o.failWith(s, StagePromptReady, KindRenderError, err)
	}
	s.Prompt = prompt
	s.advance(StagePromptReady)
	return nil
}

// AttachContext runs the optional retrieval stage. Retrieval absence must
// never block generation: a cold index (chunk count zero) and an
// unreachable retrieval service both become RagSkipped, distinguished only
// in the error log. A 4xx from the service is a real failure.
func (o *Orchestrator) AttachContext(ctx context.Context, s *Session) error {
	if !s.At(StagePromptReady) {
		return badStage(s, "attachContext")
	}

	if !s.Parameters.RagInject {
		s.advance(StageRagSkipped)
		return nil
	}

	retrieved, err := o.retriever.Retrieve(ctx, s.Parameters, s.Prompt)
	if err != nil {
		kind := gateway.KindOf(err)
		switch kind {
		case gateway.KindUnavailable, gateway.KindTimeout, gateway.KindNetworkError:
			// Optional stage: degrade to a skip, but keep the evidence so
			// "service down" is never mistaken for "no data yet".
			o.logger.Printf("[WARN] session %s: retrieval unreachable (%s), skipping RAG", s.Id, kind)
			s.logError(StageRagSkipped, string(kind), err.Error(), len(s.ErrorLog))
			s.advance(StageRagSkipped)
			return nil
		}
		return o.failWith(s, StageRagReady, KindRetrievalError, err)
	}

	if retrieved == nil || retrieved.ChunkCount == 0 {
		// Expected condition for a freshly initialized store.
		s.advance(StageRagSkipped)
		return nil
	}

	s.Retrieved = retrieved
	if retrieved.Prompt != "" {
		s.Prompt = retrieved.Prompt
	}
	s.advance(StageRagReady)
	return nil
}

// DispatchCompletion sends the prompt downstream. The completer's gateway
// call retries only transport-level failures; once any output bytes were
// received the result is final, because re-sending a prompt to a generative
// model produces a materially different (and possibly billed) answer.
func (o *Orchestrator) DispatchCompletion(ctx context.Context, s *Session) error {
	if !s.At(StageRagReady, StageRagSkipped) {
		return badStage(s, "dispatchCompletion")
	}

	// Dispatched is visible while the call is in flight, but the commit
	// point stays behind it: a failure resumes from the pre-dispatch stage.
	s.Stage = StageDispatched
	text, err := o.completer.Complete(ctx, s.Prompt, s.Parameters.OutputPreset, s.Parameters.Title)
	if err != nil {
		return o.failWith(s, StageRawOutputReceived, KindCompletionError, err)
	}
	if strings.TrimSpace(text) == "" {
		return o.failWith(s, StageRawOutputReceived, KindCompletionError,
			errors.New("completion returned empty output"))
	}

	s.RawOutput = text
	s.advance(StageRawOutputReceived)
	return nil
}

// ParseOutput normalizes the raw model text into a problem record. The
// parser is pure, so failures here are permanent until the caller supplies
// corrected input.
func (o *Orchestrator) ParseOutput(ctx context.Context, s *Session) error {
	if !s.At(StageRawOutputReceived) {
		return badStage(s, "parseOutput")
	}

	record, err := problem.Parse(s.RawOutput)
	if err != nil {
		var pe *problem.ParseError
		if errors.As(err, &pe) {
			return o.failWith(s, StageParsed, string(pe.Kind), err)
		}
		return o.failWith(s, StageParsed, KindParseError, err)
	}

	s.Record = record
	s.advance(StageParsed)
	return nil
}

// Persist writes the record through the gateway. The insert is expected to
// be idempotent by primary key, but at-most-once is still preferred: the
// persister retries only while there is strong evidence the write did not
// commit (no response bytes at all).
func (o *Orchestrator) Persist(ctx context.Context, s *Session) error {
	if !s.At(StageParsed) {
		return badStage(s, "persist")
	}

	id, err := o.persister.Persist(ctx, s.Record, s)
	if err != nil {
		return o.failWith(s, StagePersisted, KindPersistError, err)
	}

	s.InsertedId = id
	s.advance(StagePersisted)
	return nil
}

// Compile produces the downloadable artifact. Partial success is a
// first-class outcome here: a compiler failure still moves the session to
// its terminal stage with the record and raw text intact, and reports the
// compile error as a secondary condition in the log.
func (o *Orchestrator) Compile(ctx context.Context, s *Session) error {
	if !s.At(StagePersisted) {
		return badStage(s, "compile")
	}

	ref, err := o.compiler.Compile(ctx, s.RawOutput, s.Parameters.Title, s.Parameters.OutputPreset)
	if err != nil {
		o.logger.Printf("[WARN] session %s: compile failed, output remains usable without artifact: %v", s.Id, err)
		s.logError(StageCompileReady, KindCompileFailed, err.Error(), len(s.ErrorLog))
		s.CompileFailed = true
		s.advance(StageCompileReady)
		return nil
	}

	s.ArtifactRef = ref
	s.advance(StageCompileReady)
	return nil
}

// Run drives a session from wherever it stands to its terminal stage,
// stopping at the first hard failure.
func (o *Orchestrator) Run(ctx context.Context, s *Session) error {
	type step struct {
		name string
		fn   func(context.Context, *Session) error
		at   []Stage
	}
	steps := []step{
		{"renderPrompt", o.RenderPrompt, []Stage{StageDraft}},
		{"attachContext", o.AttachContext, []Stage{StagePromptReady}},
		{"dispatchCompletion", o.DispatchCompletion, []Stage{StageRagReady, StageRagSkipped}},
		{"parseOutput", o.ParseOutput, []Stage{StageRawOutputReceived}},
		{"persist", o.Persist, []Stage{StageParsed}},
		{"compile", o.Compile, []Stage{StagePersisted}},
	}
	for _, st := range steps {
		if !s.At(st.at...) {
			continue
		}
		if err := st.fn(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// failWith records the failure against the stage that was being entered and
// returns the typed error the caller branches on.
func (o *Orchestrator) failWith(s *Session, entering Stage, kind string, err error) error {
	attempt := len(s.ErrorLog)
	if gk := gateway.KindOf(err); gk != "" && kind != KindCompileFailed {
		// Keep the transport-level kind visible next to the stage kind.
		s.fail(entering, fmt.Sprintf("%s/%s", kind, gk), err.Error(), attempt)
	} else {
		s.fail(entering, kind, err.Error(), attempt)
	}
	o.logger.Printf("[ERROR] session %s: %s at %s: %v", s.Id, kind, entering, err)
	return &StageFailure{Stage: entering, Kind: kind, Message: err.Error()}
}
