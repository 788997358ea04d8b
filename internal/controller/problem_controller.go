package controller

import (
	"examgen-be/internal/dto"
	"examgen-be/internal/pkg/serverutils"
	"examgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProblemController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type problemController struct {
	problemService service.IProblemService
}

func NewProblemController(problemService service.IProblemService) IProblemController {
	return &problemController{
		problemService: problemService,
	}
}

func (c *problemController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/problem/v1")
	h.Post("problems", c.Create)
	h.Get("problems", c.List)
	h.Get("problems/:id", c.Show)
	h.Delete("problems/:id", c.Delete)
}

func (c *problemController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateProblemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.problemService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create problem", res))
}

func (c *problemController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.problemService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show problem", res))
}

func (c *problemController) List(ctx *fiber.Ctx) error {
	subject := ctx.Query("subject", "")
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.problemService.List(ctx.Context(), subject, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list problems", res))
}

func (c *problemController) Delete(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.problemService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete problem", nil))
}
