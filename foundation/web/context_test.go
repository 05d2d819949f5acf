package web

import (
	"net/http"
	"testing"
)

type samplePayload struct {
	Name  *string `validate:"omitempty,min=2"`
	Count *int    `validate:"omitempty,min=1,max=100"`
	Tags  []string
}

func TestValidateStructRequiresNamedFields(t *testing.T) {
	err := ValidateStruct(&samplePayload{}, "Name")
	if err == nil {
		t.Fatal("expected an error for missing Name")
	}

	webErr, ok := IsRequestError(err)
	if !ok {
		t.Fatalf("expected a request error, got %v", err)
	}
	if webErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", webErr.Status)
	}
	if webErr.Fields["Name"] == "" {
		t.Fatalf("expected Name in fields, got %v", webErr.Fields)
	}
}

func TestValidateStructPassesWhenSet(t *testing.T) {
	name := "ok"
	if err := ValidateStruct(&samplePayload{Name: &name}, "Name"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStructRunsTagValidation(t *testing.T) {
	count := 500
	err := ValidateStruct(&samplePayload{Count: &count})
	if err == nil {
		t.Fatal("expected an error for count over max")
	}

	webErr, ok := IsRequestError(err)
	if !ok {
		t.Fatalf("expected a request error, got %v", err)
	}
	if webErr.Fields["Count"] == "" {
		t.Fatalf("expected Count in fields, got %v", webErr.Fields)
	}
}

func TestValidateStructRequiredSlice(t *testing.T) {
	err := ValidateStruct(&samplePayload{}, "Tags")
	if err == nil {
		t.Fatal("expected an error for nil slice")
	}

	if err := ValidateStruct(&samplePayload{Tags: []string{}}, "Tags"); err != nil {
		t.Fatalf("empty but non-nil slice should pass, got %v", err)
	}
}

func TestValidateStructUnknownField(t *testing.T) {
	err := ValidateStruct(&samplePayload{}, "Missing")
	if err == nil {
		t.Fatal("expected an error for unknown field")
	}

	webErr, _ := IsRequestError(err)
	if webErr.Fields["Missing"] != "unknown field" {
		t.Fatalf("expected unknown field marker, got %v", webErr.Fields)
	}
}
