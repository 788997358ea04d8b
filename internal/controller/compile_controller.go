package controller

import (
	"examgen-be/internal/dto"
	"examgen-be/internal/pkg/serverutils"
	"examgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICompileController interface {
	RegisterRoutes(r fiber.Router)
	CompilePdf(ctx *fiber.Ctx) error
}

type compileController struct {
	compileService service.ICompileService
}

func NewCompileController(compileService service.ICompileService) ICompileController {
	return &compileController{
		compileService: compileService,
	}
}

func (c *compileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/compile/v1")
	h.Post("pdf", c.CompilePdf)
}

func (c *compileController) CompilePdf(ctx *fiber.Ctx) error {
	var req dto.CompilePdfRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.compileService.CompilePdf(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compile pdf", res))
}
