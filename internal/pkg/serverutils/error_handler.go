package serverutils

import (
	"errors"

	"examgen-be/pkg/gateway"
	"examgen-be/pkg/pipeline"
	"examgen-be/pkg/problem"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts domain errors bubbling out of handlers
// into consistent JSON responses. Gateway failures keep their proxy-style
// status mapping so clients can distinguish "upstream down" from "bad input".
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(fiber.Map{
				"success": false,
				"message": fe.Message,
			})
		}

		var ge *gateway.Error
		if errors.As(err, &ge) {
			return ctx.Status(gateway.StatusFor(ge.Kind)).JSON(gateway.ErrorBody(ge))
		}

		var sf *pipeline.StageFailure
		if errors.As(err, &sf) {
			status := fiber.StatusBadGateway
			switch sf.Kind {
			case pipeline.KindBadStage:
				status = fiber.StatusConflict
			case pipeline.KindParseError:
				status = fiber.StatusUnprocessableEntity
			}
			return ctx.Status(status).JSON(fiber.Map{
				"success": false,
				"message": sf.Message,
				"stage":   string(sf.Stage),
				"kind":    sf.Kind,
			})
		}

		var pe *problem.ParseError
		if errors.As(err, &pe) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"message": pe.Message,
				"kind":    pe.Kind,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
}
