package validation

import (
	"errors"
	"testing"

	apperrors "github.com/spec-kit/places-service/pkg/util"
)

type signupProbe struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

func TestStructAcceptsValidInput(t *testing.T) {
	probe := signupProbe{Name: "Max", Email: "max@example.com", Password: "secret"}
	if err := Struct(probe); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	probe := signupProbe{Name: "Max", Email: "not-an-email", Password: "ab"}

	err := Struct(probe)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T", err)
	}
	if domainErr.HTTPStatus != 422 {
		t.Fatalf("expected 422, got %d", domainErr.HTTPStatus)
	}
	if domainErr.Details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email detail: %v", domainErr.Details["email"])
	}
	if domainErr.Details["password"] != "must be at least 5 characters long" {
		t.Fatalf("unexpected password detail: %v", domainErr.Details["password"])
	}
	if _, ok := domainErr.Details["name"]; ok {
		t.Fatal("valid field should not appear in details")
	}
}

func TestToDetailsWithForeignError(t *testing.T) {
	details := ToDetails(errors.New("boom"))
	if details["payload"] != "invalid payload" {
		t.Fatalf("unexpected fallback details: %+v", details)
	}
}
