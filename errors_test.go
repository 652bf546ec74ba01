package viron

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNewError(t *testing.T) {
	err := NewError(CodeUnresolvedEndpoint, "endpoint not found")
	if err.Code != CodeUnresolvedEndpoint {
		t.Errorf("expected code %s, got %s", CodeUnresolvedEndpoint, err.Code)
	}
	if err.Message != "endpoint not found" {
		t.Errorf("expected message 'endpoint not found', got %s", err.Message)
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(CodeMalformedIdentifier, "identifier %q", "User")
	if err.Code != CodeMalformedIdentifier {
		t.Errorf("expected code %s, got %s", CodeMalformedIdentifier, err.Code)
	}
	if err.Message != `identifier "User"` {
		t.Errorf("expected formatted message, got %s", err.Message)
	}
}

func TestErrorError(t *testing.T) {
	err := NewError(CodeEnvelopeMismatch, "not a table")
	expected := "envelope_mismatch: not a table"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("page dash: %w", Errorf(CodeUnresolvedEndpoint, "missing"))

	if !errors.Is(err, ErrUnresolvedEndpoint) {
		t.Error("expected wrapped error to match ErrUnresolvedEndpoint")
	}
	if errors.Is(err, ErrEnvelopeMismatch) {
		t.Error("expected wrapped error not to match ErrEnvelopeMismatch")
	}

	joined := errors.Join(NewError(CodeInvalidPage, "a"), NewError(CodeEnvelopeMismatch, "b"))
	if !errors.Is(joined, ErrInvalidPage) || !errors.Is(joined, ErrEnvelopeMismatch) {
		t.Error("expected joined error to match both codes")
	}
}

func TestWithDetail(t *testing.T) {
	base := NewError(CodeUnresolvedEndpoint, "missing")
	err := base.WithDetail("identifier", "User.x").WithDetail("page", "dash")

	if base.Details != nil {
		t.Error("expected original error to be unchanged")
	}
	if err.Details["identifier"] != "User.x" {
		t.Errorf("expected identifier detail, got %v", err.Details["identifier"])
	}
	if err.Details["page"] != "dash" {
		t.Errorf("expected page detail, got %v", err.Details["page"])
	}
}

type validated struct {
	Name  string `validate:"required"`
	Count int    `validate:"gte=1"`
	Kind  string `validate:"oneof=a b"`
}

func TestValidationError(t *testing.T) {
	err := validator.New().Struct(validated{Kind: "c"})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	verr := ValidationError(CodeInvalidPage, "item dash", err)
	if verr.Code != CodeInvalidPage {
		t.Errorf("expected code %s, got %s", CodeInvalidPage, verr.Code)
	}
	for _, want := range []string{"item dash: ", "Name: required", "Count: must be at least 1", "Kind: must be one of: a b"} {
		if !strings.Contains(verr.Message, want) {
			t.Errorf("expected message to contain %q, got %q", want, verr.Message)
		}
	}
	if verr.Details["Name"] != "required" {
		t.Errorf("expected Name detail, got %v", verr.Details["Name"])
	}
}

func TestValidationError_NonValidator(t *testing.T) {
	verr := ValidationError(CodeInvalidPage, "item", errors.New("boom"))
	if verr.Message != "item: boom" {
		t.Errorf("expected 'item: boom', got %q", verr.Message)
	}
}
