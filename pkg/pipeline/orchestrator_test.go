package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"examgen-be/pkg/gateway"
	"examgen-be/pkg/problem"
)

type stubRenderer struct {
	prompt string
	err    error
}

func (s *stubRenderer) Render(ctx context.Context, params Parameters) (string, error) {
	return s.prompt, s.err
}

type stubRetriever struct {
	retrieved *RetrievedContext
	err       error
}

func (s *stubRetriever) Retrieve(ctx context.Context, params Parameters, prompt string) (*RetrievedContext, error) {
	return s.retrieved, s.err
}

type stubCompleter struct {
	text  string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, prompt, preset, title string) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubPersister struct {
	id  string
	err error
}

func (s *stubPersister) Persist(ctx context.Context, record *problem.NormalizedProblem, session *Session) (string, error) {
	return s.id, s.err
}

type stubCompiler struct {
	ref string
	err error
}

func (s *stubCompiler) Compile(ctx context.Context, source, title, preset string) (string, error) {
	return s.ref, s.err
}

func happyOrchestrator() (*Orchestrator, *stubCompleter) {
	completer := &stubCompleter{text: `{"stem": "solve x", "final_answer": "2"}`}
	o := NewOrchestrator(
		&stubRenderer{prompt: "the prompt"},
		&stubRetriever{retrieved: &RetrievedContext{ChunkCount: 2, Snippets: []Snippet{{Text: "ref", Score: 0.8}}}},
		completer,
		&stubPersister{id: "problem-1"},
		&stubCompiler{ref: "/api/artifact/v1/tok"},
		nil,
	)
	return o, completer
}

func TestRunHappyPath(t *testing.T) {
	o, _ := happyOrchestrator()
	s := NewSession(Parameters{RagInject: true})

	if err := o.Run(context.Background(), s); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if s.Stage != StageCompileReady {
		t.Errorf("Stage = %s, want %s", s.Stage, StageCompileReady)
	}
	if s.Prompt != "the prompt" {
		t.Errorf("Prompt = %q", s.Prompt)
	}
	if s.Record == nil || s.Record.Stem != "solve x" {
		t.Errorf("Record = %+v", s.Record)
	}
	if s.InsertedId != "problem-1" {
		t.Errorf("InsertedId = %q", s.InsertedId)
	}
	if s.ArtifactRef != "/api/artifact/v1/tok" {
		t.Errorf("ArtifactRef = %q", s.ArtifactRef)
	}
	if s.CompileFailed {
		t.Error("CompileFailed = true on the happy path")
	}
}

func TestStageOrderEnforced(t *testing.T) {
	o, _ := happyOrchestrator()
	s := NewSession(Parameters{})

	err := o.DispatchCompletion(context.Background(), s)
	var sf *StageFailure
	if !errors.As(err, &sf) {
		t.Fatalf("error = %v, want *StageFailure", err)
	}
	if sf.Kind != KindBadStage {
		t.Errorf("Kind = %s, want %s", sf.Kind, KindBadStage)
	}
	if s.Stage != StageDraft {
		t.Errorf("Stage = %s; a refused operation must not move the session", s.Stage)
	}
}

func TestAttachContextSkippedWhenRagOff(t *testing.T) {
	o, _ := happyOrchestrator()
	s := NewSession(Parameters{RagInject: false})

	if err := o.RenderPrompt(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if err := o.AttachContext(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if s.Stage != StageRagSkipped {
		t.Errorf("Stage = %s, want %s", s.Stage, StageRagSkipped)
	}
	if len(s.ErrorLog) != 0 {
		t.Error("an intentional skip is not an error")
	}
}

func TestAttachContextEmptyIndexSkips(t *testing.T) {
	o := NewOrchestrator(
		&stubRenderer{prompt: "p"},
		&stubRetriever{retrieved: &RetrievedContext{ChunkCount: 0}},
		&stubCompleter{text: "x"},
		&stubPersister{id: "1"},
		&stubCompiler{ref: "r"},
		nil,
	)
	s := NewSession(Parameters{RagInject: true})

	if err := o.RenderPrompt(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if err := o.AttachContext(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if s.Stage != StageRagSkipped {
		t.Errorf("Stage = %s, want %s", s.Stage, StageRagSkipped)
	}
	if len(s.ErrorLog) != 0 {
		t.Error("a cold index is a normal state, not an error")
	}
}

func TestAttachContextUnavailableSkipsWithEvidence(t *testing.T) {
	o := NewOrchestrator(
		&stubRenderer{prompt: "p"},
		&stubRetriever{err: &gateway.Error{Kind: gateway.KindUnavailable, Message: "upstream returned 503"}},
		&stubCompleter{text: "x"},
		&stubPersister{id: "1"},
		&stubCompiler{ref: "r"},
		nil,
	)
	s := NewSession(Parameters{RagInject: true})

	if err := o.RenderPrompt(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if err := o.AttachContext(context.Background(), s); err != nil {
		t.Fatalf("unreachable retrieval must degrade, got %v", err)
	}
	if s.Stage != StageRagSkipped {
		t.Errorf("Stage = %s, want %s", s.Stage, StageRagSkipped)
	}
	if len(s.ErrorLog) != 1 {
		t.Fatal("service-down skip must leave evidence in the error log")
	}
	if s.ErrorLog[0].Kind != string(gateway.KindUnavailable) {
		t.Errorf("logged kind = %s", s.ErrorLog[0].Kind)
	}
}

func TestAttachContextClientErrorFails(t *testing.T) {
	o := NewOrchestrator(
		&stubRenderer{prompt: "p"},
		&stubRetriever{err: errors.New("retrieval upstream returned 400")},
		&stubCompleter{text: "x"},
		&stubPersister{id: "1"},
		&stubCompiler{ref: "r"},
		nil,
	)
	s := NewSession(Parameters{RagInject: true})

	if err := o.RenderPrompt(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	err := o.AttachContext(context.Background(), s)
	var sf *StageFailure
	if !errors.As(err, &sf) {
		t.Fatalf("error = %v, want *StageFailure", err)
	}
	if sf.Kind != KindRetrievalError {
		t.Errorf("Kind = %s, want %s", sf.Kind, KindRetrievalError)
	}
	if s.Stage != StageFailed {
		t.Errorf("Stage = %s, want %s", s.Stage, StageFailed)
	}
}

func TestDispatchFailureResumesBeforeDispatch(t *testing.T) {
	completer := &stubCompleter{err: errors.New("connection reset")}
	o := NewOrchestrator(
		&stubRenderer{prompt: "p"},
		&stubRetriever{},
		completer,
		&stubPersister{id: "1"},
		&stubCompiler{ref: "r"},
		nil,
	)
	s := NewSession(Parameters{})

	if err := o.RenderPrompt(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if err := o.AttachContext(context.Background(), s); err != nil {
		t.Fatal(err)
	}

	if err := o.DispatchCompletion(context.Background(), s); err == nil {
		t.Fatal("expected dispatch failure")
	}
	if s.Stage != StageFailed {
		t.Fatalf("Stage = %s", s.Stage)
	}
	// The commit point is behind the dispatch: the retry runs the dispatch
	// stage again, not anything earlier or later.
	if !s.At(StageRagSkipped) {
		t.Errorf("resume point = %s, want %s", s.LastGood(), StageRagSkipped)
	}

	completer.err = nil
	completer.text = `{"stem": "ok"}`
	if err := o.DispatchCompletion(context.Background(), s); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if s.Stage != StageRawOutputReceived {
		t.Errorf("Stage = %s after successful retry", s.Stage)
	}
	if completer.calls != 2 {
		t.Errorf("completer called %d times, want 2", completer.calls)
	}
}

func TestDispatchEmptyOutputFails(t *testing.T) {
	o := NewOrchestrator(
		&stubRenderer{prompt: "p"},
		&stubRetriever{},
		&stubCompleter{text: "   \n"},
		&stubPersister{id: "1"},
		&stubCompiler{ref: "r"},
		nil,
	)
	s := NewSession(Parameters{})
	if err := o.RenderPrompt(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if err := o.AttachContext(context.Background(), s); err != nil {
		t.Fatal(err)
	}

	err := o.DispatchCompletion(context.Background(), s)
	var sf *StageFailure
	if !errors.As(err, &sf) {
		t.Fatalf("error = %v", err)
	}
	if sf.Kind != KindCompletionError {
		t.Errorf("Kind = %s, want %s", sf.Kind, KindCompletionError)
	}
}

func TestParseFailureIsTyped(t *testing.T) {
	o, completer := happyOrchestrator()
	completer.text = "   "
	s := NewSession(Parameters{})
	s.advance(StageRagSkipped)
	s.RawOutput = ""
	s.Stage = StageRawOutputReceived
	s.lastGood = StageRawOutputReceived

	err := o.ParseOutput(context.Background(), s)
	var sf *StageFailure
	if !errors.As(err, &sf) {
		t.Fatalf("error = %v", err)
	}
	if sf.Kind != string(problem.KindMissingRequiredField) {
		t.Errorf("Kind = %s, want %s", sf.Kind, problem.KindMissingRequiredField)
	}
}

func TestCompileFailureIsPartialSuccess(t *testing.T) {
	o := NewOrchestrator(
		&stubRenderer{prompt: "p"},
		&stubRetriever{},
		&stubCompleter{text: `{"stem": "solve x"}`},
		&stubPersister{id: "problem-1"},
		&stubCompiler{err: errors.New("latex compilation failed")},
		nil,
	)
	s := NewSession(Parameters{})

	if err := o.Run(context.Background(), s); err != nil {
		t.Fatalf("Run() error = %v; compile failure must not be fatal", err)
	}
	if s.Stage != StageCompileReady {
		t.Errorf("Stage = %s, want %s", s.Stage, StageCompileReady)
	}
	if !s.CompileFailed {
		t.Error("CompileFailed = false")
	}
	if s.ArtifactRef != "" {
		t.Errorf("ArtifactRef = %q, want empty", s.ArtifactRef)
	}
	if s.InsertedId != "problem-1" {
		t.Error("persisted record lost on compile failure")
	}
	found := false
	for _, e := range s.ErrorLog {
		if e.Kind == KindCompileFailed {
			found = true
		}
	}
	if !found {
		t.Error("COMPILE_FAILED entry missing from error log")
	}
}

func TestFailWithRecordsGatewayKind(t *testing.T) {
	o := NewOrchestrator(
		&stubRenderer{err: &gateway.Error{Kind: gateway.KindTimeout, Message: "deadline"}},
		&stubRetriever{},
		&stubCompleter{text: "x"},
		&stubPersister{id: "1"},
		&stubCompiler{ref: "r"},
		nil,
	)
	s := NewSession(Parameters{})

	if err := o.RenderPrompt(context.Background(), s); err == nil {
		t.Fatal("expected render failure")
	}
	if len(s.ErrorLog) != 1 {
		t.Fatal("missing error log entry")
	}
	kind := s.ErrorLog[0].Kind
	if !strings.Contains(kind, KindRenderError) || !strings.Contains(kind, string(gateway.KindTimeout)) {
		t.Errorf("logged kind = %q, want stage and transport kinds visible", kind)
	}
}
