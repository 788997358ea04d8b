package serverutils

import (
	"errors"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type renderPayload struct {
	TemplateId string `validate:"required"`
	TopK       int    `validate:"gte=0,lte=50"`
}

func TestValidateRequestOk(t *testing.T) {
	if err := ValidateRequest(renderPayload{TemplateId: "standard", TopK: 5}); err != nil {
		t.Fatalf("ValidateRequest() = %v, want nil", err)
	}
}

func TestValidateRequestFieldErrors(t *testing.T) {
	err := ValidateRequest(renderPayload{TopK: 999})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *fiber.Error", err)
	}
	if fe.Code != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", fe.Code)
	}
	for _, want := range []string{"TemplateId (required)", "TopK (lte)"} {
		if !strings.Contains(fe.Message, want) {
			t.Errorf("message %q missing %q", fe.Message, want)
		}
	}
}
