package controller

import (
	"examgen-be/internal/dto"
	"examgen-be/internal/pkg/serverutils"
	"examgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Step(ctx *fiber.Ctx) error
	Run(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	ListRuns(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
}

func NewGenerationController(generationService service.IGenerationService) IGenerationController {
	return &generationController{
		generationService: generationService,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generation/v1")
	h.Get("runs", c.ListRuns)
	h.Post("sessions", c.CreateSession)
	h.Get("sessions/:id", c.Show)
	h.Post("sessions/:id/run", c.Run)
	h.Post("sessions/:id/reset", c.Reset)
	h.Post("sessions/:id/steps/:step", c.Step)
}

func (c *generationController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.CreateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *generationController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.generationService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *generationController) Step(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))
	op := ctx.Params("step")

	res, err := c.generationService.Step(ctx.Context(), id, op)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run step "+op, res))
}

func (c *generationController) Run(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.generationService.Run(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run session", res))
}

func (c *generationController) Reset(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.generationService.Reset(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset session", res))
}

func (c *generationController) ListRuns(ctx *fiber.Ctx) error {
	subject := ctx.Query("subject", "")
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.generationService.ListRuns(ctx.Context(), subject, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list runs", res))
}
