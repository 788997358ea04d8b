package controller

import (
	"errors"
	"net/http"

	"examgen-be/pkg/gateway"

	"github.com/gofiber/fiber/v2"
)

type IProxyController interface {
	RegisterRoutes(r fiber.Router)
	Forward(ctx *fiber.Ctx) error
}

type proxyController struct {
	gw      *gateway.Gateway
	baseURL string
	opts    gateway.Options
}

func NewProxyController(gw *gateway.Gateway, baseURL string, opts gateway.Options) IProxyController {
	return &proxyController{
		gw:      gw,
		baseURL: baseURL,
		opts:    opts,
	}
}

func (c *proxyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/proxy/v1")
	h.All("*", c.Forward)
}

// Forward relays the request below /proxy/v1 to the configured upstream.
// Gateway failures come back as structured JSON instead of a dropped
// connection, so browser clients always see a parseable error.
func (c *proxyController) Forward(ctx *fiber.Ctx) error {
	if c.baseURL == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "proxy upstream not configured")
	}

	header := make(http.Header)
	ctx.Request().Header.VisitAll(func(key, value []byte) {
		header.Add(string(key), string(value))
	})
	gateway.StripHopHeaders(header)

	path := "/" + ctx.Params("*")
	resp, err := c.gw.Forward(ctx.Context(), c.baseURL, gateway.ForwardRequest{
		Method:   ctx.Method(),
		Path:     path,
		RawQuery: string(ctx.Request().URI().QueryString()),
		Header:   header,
		Body:     ctx.Body(),
	}, c.opts)
	if err != nil {
		var gwErr *gateway.Error
		if errors.As(err, &gwErr) {
			return ctx.Status(gateway.StatusFor(gwErr.Kind)).JSON(gateway.ErrorBody(gwErr))
		}
		return err
	}

	respHeader := make(http.Header)
	for k, vs := range resp.Header {
		respHeader[k] = vs
	}
	gateway.StripHopHeaders(respHeader)
	for k, vs := range respHeader {
		for _, v := range vs {
			ctx.Response().Header.Add(k, v)
		}
	}
	if resp.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, resp.ContentType)
	}
	return ctx.Status(resp.Status).Send(resp.Body)
}
