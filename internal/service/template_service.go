package service

import (
	"context"
	"time"

	"examgen-be/internal/constant"
	"examgen-be/internal/dto"
	"examgen-be/internal/entity"
	"examgen-be/internal/repository/specification"
	"examgen-be/internal/repository/unitofwork"
	"examgen-be/pkg/render"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ITemplateService interface {
	Create(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.CreateTemplateResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowTemplateResponse, error)
	List(ctx context.Context) ([]*dto.ShowTemplateResponse, error)
	Update(ctx context.Context, req *dto.UpdateTemplateRequest) (*dto.ShowTemplateResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Render(ctx context.Context, req *dto.RenderTemplateRequest) (*dto.RenderTemplateResponse, error)
}

type templateService struct {
	uowFactory    unitofwork.RepositoryFactory
	searchService ISearchService
	// templateCache keeps hot templates out of the render path's query load.
	templateCache *cache.Cache
}

func NewTemplateService(uowFactory unitofwork.RepositoryFactory, searchService ISearchService) ITemplateService {
	return &templateService{
		uowFactory:    uowFactory,
		searchService: searchService,
		templateCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *templateService) Create(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.CreateTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	preset := req.Preset
	if preset == "" {
		preset = constant.DefaultPreset
	}

	tpl := entity.PromptTemplate{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Body:        req.Body,
		Preset:      preset,
		IsActive:    true,
		SortOrder:   req.SortOrder,
		CreatedAt:   time.Now(),
	}

	if err := uow.PromptTemplateRepository().Create(ctx, &tpl); err != nil {
		return nil, err
	}

	return &dto.CreateTemplateResponse{Id: tpl.Id}, nil
}

func (s *templateService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tpl, err := uow.PromptTemplateRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "template not found")
	}
	return toTemplateResponse(tpl), nil
}

func (s *templateService) List(ctx context.Context) ([]*dto.ShowTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	templates, err := uow.PromptTemplateRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ShowTemplateResponse, len(templates))
	for i, tpl := range templates {
		out[i] = toTemplateResponse(tpl)
	}
	return out, nil
}

func (s *templateService) Update(ctx context.Context, req *dto.UpdateTemplateRequest) (*dto.ShowTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tpl, err := uow.PromptTemplateRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "template not found")
	}

	tpl.Name = req.Name
	tpl.Description = req.Description
	tpl.Body = req.Body
	if req.Preset != "" {
		tpl.Preset = req.Preset
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}
	tpl.SortOrder = req.SortOrder

	if err := uow.PromptTemplateRepository().Update(ctx, tpl); err != nil {
		return nil, err
	}

	s.templateCache.Delete(tpl.Id.String())
	s.templateCache.Delete(tpl.Name)

	return toTemplateResponse(tpl), nil
}

func (s *templateService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PromptTemplateRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.templateCache.Delete(id.String())
	return nil
}

// Render produces the prompt for a template and parameter set. With
// rag_inject it folds retrieved snippets directly into the prompt; the
// generation pipeline instead calls this with rag_inject=false and runs
// retrieval as its own stage.
func (s *templateService) Render(ctx context.Context, req *dto.RenderTemplateRequest) (*dto.RenderTemplateResponse, error) {
	tpl, err := s.lookup(ctx, req.TemplateId)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "template not found")
	}

	questionCount := req.QuestionCount
	if questionCount <= 0 {
		questionCount = 1
	}

	rctx := render.Context{
		Subject:      req.Subject,
		Difficulty:   req.Difficulty,
		NumQuestions: questionCount,
		SourceText:   req.SourceText,
	}

	chunkCount := 0
	if req.RagInject {
		result, err := s.searchService.Retrieve(ctx, &dto.RetrieveRequest{
			Query:         req.Subject + " " + req.Difficulty,
			TopK:          5,
			SubjectFilter: req.Subject,
		})
		if err != nil {
			return nil, err
		}
		texts := make([]string, len(result.Retrieved))
		for i, sn := range result.Retrieved {
			texts[i] = sn.Text
		}
		rctx.DocSnippets = render.SummarizeSnippets(texts, 400)
		rctx.RagSummary = render.SummarizeSnippets(texts, 120)
		rctx.ChunkCount = result.ChunkCount
		chunkCount = result.ChunkCount
	}

	return &dto.RenderTemplateResponse{
		RenderedPrompt: render.Render(tpl.Body, rctx),
		ChunkCount:     chunkCount,
	}, nil
}

// lookup resolves a template by id or name, consulting the cache first.
func (s *templateService) lookup(ctx context.Context, ref string) (*entity.PromptTemplate, error) {
	if x, found := s.templateCache.Get(ref); found {
		return x.(*entity.PromptTemplate), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PromptTemplateRepository()

	var tpl *entity.PromptTemplate
	var err error
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		tpl, err = repo.FindOne(ctx, specification.ByID{ID: id})
	} else {
		tpl, err = repo.FindOne(ctx, specification.ByName{Name: ref})
	}
	if err != nil {
		return nil, err
	}
	if tpl != nil {
		s.templateCache.Set(ref, tpl, cache.DefaultExpiration)
	}
	return tpl, nil
}

func toTemplateResponse(tpl *entity.PromptTemplate) *dto.ShowTemplateResponse {
	return &dto.ShowTemplateResponse{
		Id:          tpl.Id,
		Name:        tpl.Name,
		Description: tpl.Description,
		Body:        tpl.Body,
		Preset:      tpl.Preset,
		IsActive:    tpl.IsActive,
		SortOrder:   tpl.SortOrder,
		CreatedAt:   tpl.CreatedAt,
		UpdatedAt:   tpl.UpdatedAt,
	}
}
