package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"examgen-be/internal/dto"
	"examgen-be/internal/entity"
	"examgen-be/internal/repository/specification"
	"examgen-be/internal/repository/unitofwork"
	"examgen-be/pkg/events"
	pktNats "examgen-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProblemService interface {
	Create(ctx context.Context, req *dto.CreateProblemRequest) (*dto.CreateProblemResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowProblemResponse, error)
	List(ctx context.Context, subject string, limit, offset int) ([]*dto.ShowProblemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type problemService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewProblemService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IProblemService {
	return &problemService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *problemService) Create(ctx context.Context, req *dto.CreateProblemRequest) (*dto.CreateProblemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	checks := make([]entity.ProblemCheck, len(req.Checks))
	for i, c := range req.Checks {
		checks[i] = entity.ProblemCheck{Description: c.Description, Passed: c.Passed}
	}

	prob := entity.Problem{
		Id:              uuid.New(),
		Stem:            req.Stem,
		StemFormatted:   req.StemFormatted,
		SolutionOutline: req.SolutionOutline,
		Explanation:     req.Explanation,
		AnswerBrief:     req.AnswerBrief,
		FinalAnswer:     req.FinalAnswer,
		Checks:          checks,
		Difficulty:      req.Difficulty,
		Confidence:      req.Confidence,
		Subject:         req.Subject,
		TemplateId:      req.TemplateId,
		SessionId:       req.SessionId,
		CreatedAt:       time.Now(),
	}

	if err := uow.ProblemRepository().Create(ctx, &prob); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishEmbedProblemMessage{
		ProblemId: prob.Id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	// Announce to external consumers; indexing is auxiliary so a publish
	// failure does not fail the request.
	if s.eventPublisher != nil {
		evt := events.NewProblemPersisted(prob.Id.String(), prob.Subject)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish PROBLEM_PERSISTED event: %v\n", err)
		}
	}

	return &dto.CreateProblemResponse{Id: prob.Id}, nil
}

func (s *problemService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowProblemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	prob, err := uow.ProblemRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if prob == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "problem not found")
	}
	return toProblemResponse(prob), nil
}

func (s *problemService) List(ctx context.Context, subject string, limit, offset int) ([]*dto.ShowProblemResponse, error) {
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
	problems, err := uow.ProblemRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ShowProblemResponse, len(problems))
	for i, p := range problems {
		out[i] = toProblemResponse(p)
	}
	return out, nil
}

func (s *problemService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProblemEmbeddingRepository().DeleteByProblemId(ctx, id); err != nil {
		return err
	}
	return uow.ProblemRepository().Delete(ctx, id)
}

func toProblemResponse(p *entity.Problem) *dto.ShowProblemResponse {
	checks := make([]dto.CheckItem, len(p.Checks))
	for i, c := range p.Checks {
		checks[i] = dto.CheckItem{Description: c.Description, Passed: c.Passed}
	}
	return &dto.ShowProblemResponse{
		Id:              p.Id,
		Stem:            p.Stem,
		StemFormatted:   p.StemFormatted,
		SolutionOutline: p.SolutionOutline,
		Explanation:     p.Explanation,
		AnswerBrief:     p.AnswerBrief,
		FinalAnswer:     p.FinalAnswer,
		Checks:          checks,
		Difficulty:      p.Difficulty,
		Confidence:      p.Confidence,
		Subject:         p.Subject,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
