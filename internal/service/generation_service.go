package service

import (
	"context"
	"fmt"
	"time"

	"examgen-be/internal/dto"
	"examgen-be/internal/entity"
	"examgen-be/internal/repository/memory"
	"examgen-be/internal/repository/specification"
	"examgen-be/internal/repository/unitofwork"
	"examgen-be/pkg/events"
	pktNats "examgen-be/pkg/nats"
	"examgen-be/pkg/pipeline"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Step operation names accepted by Step. They mirror the pipeline stages
// one to one so the route path documents the state machine.
const (
	StepRenderPrompt       = "render_prompt"
	StepAttachContext      = "attach_context"
	StepDispatchCompletion = "dispatch_completion"
	StepParseOutput        = "parse_output"
	StepPersist            = "persist"
	StepCompile            = "compile"
)

type IGenerationService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Step(ctx context.Context, id uuid.UUID, op string) (*dto.SessionResponse, error)
	Run(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	Reset(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	ListRuns(ctx context.Context, subject string, limit, offset int) ([]*dto.ListRunsResponse, error)
}

type generationService struct {
	orchestrator *pipeline.Orchestrator
	sessionRepo  *memory.SessionRepository
	uowFactory   unitofwork.RepositoryFactory
	eventPub     *pktNats.Publisher
}

func NewGenerationService(
	orchestrator *pipeline.Orchestrator,
	sessionRepo *memory.SessionRepository,
	uowFactory unitofwork.RepositoryFactory,
	eventPub *pktNats.Publisher,
) IGenerationService {
	return &generationService{
		orchestrator: orchestrator,
		sessionRepo:  sessionRepo,
		uowFactory:   uowFactory,
		eventPub:     eventPub,
	}
}

func (s *generationService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	params := pipeline.Parameters{
		TemplateId:    req.TemplateId,
		Subject:       req.Subject,
		Difficulty:    req.Difficulty,
		QuestionCount: req.QuestionCount,
		OutputPreset:  req.OutputPreset,
		SourceText:    req.SourceText,
		RagInject:     req.RagInject,
		TopK:          req.TopK,
		UserHint:      req.UserHint,
		Title:         req.Title,
	}

	session := pipeline.NewSession(params)
	s.sessionRepo.Save(session)

	return dto.NewSessionResponse(session), nil
}

func (s *generationService) Step(ctx context.Context, id uuid.UUID, op string) (*dto.SessionResponse, error) {
	session, err := s.load(id)
	if err != nil {
		return nil, err
	}

	switch op {
	case StepRenderPrompt:
		err = s.orchestrator.RenderPrompt(ctx, session)
	case StepAttachContext:
		err = s.orchestrator.AttachContext(ctx, session)
	case StepDispatchCompletion:
		err = s.orchestrator.DispatchCompletion(ctx, session)
	case StepParseOutput:
		err = s.orchestrator.ParseOutput(ctx, session)
	case StepPersist:
		err = s.orchestrator.Persist(ctx, session)
	case StepCompile:
		err = s.orchestrator.Compile(ctx, session)
	default:
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown step %q", op))
	}

	s.finish(ctx, session)
	if err != nil {
		return nil, err
	}
	return dto.NewSessionResponse(session), nil
}

func (s *generationService) Run(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.load(id)
	if err != nil {
		return nil, err
	}

	runErr := s.orchestrator.Run(ctx, session)
	s.finish(ctx, session)
	if runErr != nil {
		return nil, runErr
	}
	return dto.NewSessionResponse(session), nil
}

func (s *generationService) Show(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return dto.NewSessionResponse(session), nil
}

func (s *generationService) Reset(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.load(id)
	if err != nil {
		return nil, err
	}

	session.Reset()
	s.sessionRepo.Save(session)
	return dto.NewSessionResponse(session), nil
}

func (s *generationService) ListRuns(ctx context.Context, subject string, limit, offset int) ([]*dto.ListRunsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if subject != "" {
		specs = append(specs, specification.BySubject{Subject: subject})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	runs, err := uow.GenerationRunRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ListRunsResponse, len(runs))
	for i, run := range runs {
		var problemId *string
		if run.ProblemId != nil {
			v := run.ProblemId.String()
			problemId = &v
		}
		out[i] = &dto.ListRunsResponse{
			Id:            run.Id.String(),
			Stage:         run.Stage,
			Subject:       run.Parameters.Subject,
			ProblemId:     problemId,
			ArtifactRef:   run.ArtifactRef,
			CompileFailed: run.CompileFailed,
			CreatedAt:     run.CreatedAt,
		}
	}
	return out, nil
}

func (s *generationService) load(id uuid.UUID) (*pipeline.Session, error) {
	session, found := s.sessionRepo.Get(id.String())
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found or expired")
	}
	return session, nil
}

// finish re-saves the session (refreshing its expiry) and, once it reaches a
// terminal stage, writes the durable run row and announces the outcome.
// Recording is best effort: a storage hiccup must not mask the pipeline
// result the caller is waiting for.
func (s *generationService) finish(ctx context.Context, session *pipeline.Session) {
	s.sessionRepo.Save(session)

	if session.Stage != pipeline.StageCompileReady && session.Stage != pipeline.StageFailed {
		return
	}

	if err := s.saveRun(ctx, session); err != nil {
		fmt.Printf("[WARN] Failed to record generation run %s: %v\n", session.Id, err)
	}

	if s.eventPub == nil {
		return
	}
	var evt events.Event
	if session.Stage == pipeline.StageCompileReady {
		evt = events.NewGenerationCompleted(session.Id.String(), session.InsertedId, session.ArtifactRef, session.CompileFailed)
	} else {
		stage, kind, message := lastFailure(session)
		evt = events.NewGenerationFailed(session.Id.String(), stage, kind, message)
	}
	if err := s.eventPub.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish generation event: %v\n", err)
	}
}

func (s *generationService) saveRun(ctx context.Context, session *pipeline.Session) error {
	chunkCount := 0
	if session.Retrieved != nil {
		chunkCount = session.Retrieved.ChunkCount
	}

	var problemId *uuid.UUID
	if session.InsertedId != "" {
		if parsed, err := uuid.Parse(session.InsertedId); err == nil {
			problemId = &parsed
		}
	}

	run := entity.GenerationRun{
		Id:            session.Id,
		Stage:         string(session.Stage),
		Parameters:    session.Parameters,
		Prompt:        session.Prompt,
		ChunkCount:    chunkCount,
		RawOutput:     session.RawOutput,
		ProblemId:     problemId,
		ArtifactRef:   session.ArtifactRef,
		CompileFailed: session.CompileFailed,
		ErrorLog:      session.ErrorLog,
		CreatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.GenerationRunRepository().Save(ctx, &run)
}

func lastFailure(session *pipeline.Session) (stage, kind, message string) {
	if len(session.ErrorLog) == 0 {
		return string(session.Stage), "", ""
	}
	last := session.ErrorLog[len(session.ErrorLog)-1]
	return string(last.Stage), last.Kind, last.Message
}
