package controller

import (
	"errors"
	"fmt"

	"examgen-be/pkg/compile"

	"github.com/gofiber/fiber/v2"
)

type IArtifactController interface {
	RegisterRoutes(r fiber.Router)
	Download(ctx *fiber.Ctx) error
}

type artifactController struct {
	store *compile.ArtifactStore
}

func NewArtifactController(store *compile.ArtifactStore) IArtifactController {
	return &artifactController{
		store: store,
	}
}

func (c *artifactController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/artifact/v1")
	h.Get(":token", c.Download)
}

// Download streams a compiled artifact by its short-lived token. Artifacts
// expire with the store TTL; an expired token is indistinguishable from one
// that never existed.
func (c *artifactController) Download(ctx *fiber.Ctx) error {
	token := ctx.Params("token")

	data, contentType, err := c.store.Get(ctx.Context(), token)
	if err != nil {
		if errors.Is(err, compile.ErrArtifactNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "artifact not found or expired")
		}
		return err
	}

	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, `inline; filename="generated.pdf"`)
	ctx.Set(fiber.HeaderCacheControl, fmt.Sprintf("private, max-age=%d", int(c.store.TTL().Seconds())))
	ctx.Set("X-Content-Type-Options", "nosniff")
	return ctx.Send(data)
}
