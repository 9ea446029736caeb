package handler

import (
	"strings"
	"testing"
)

func TestValidator_Publisher(t *testing.T) {
	v := NewValidator()

	ok := &publisherRequest{Name: "Acme_Books", Founded: 1999, Homepage: "https://acme.example"}
	if err := v.Validate(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := &publisherRequest{Name: " Acme", Founded: 1200, Email: "x"}
	err := v.Validate(bad)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"name must start with", "founded must be at least 1450", "email must be a valid email"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidator_CustomerZipCode(t *testing.T) {
	v := NewValidator()
	req := &customerRequest{Name: "Doe", FirstName: "Jo", Address: addressRequest{ZipCode: "12a", City: "X"}}

	err := v.Validate(req)
	if err == nil || !strings.Contains(err.Error(), "zipCode") {
		t.Fatalf("expected zipCode error, got %v", err)
	}
}

func TestValidator_FilmMedium(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&filmRequest{Title: "Alpha", Medium: "Blu-Ray"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Validate(&filmRequest{Title: "Alpha", Medium: "VHS"}); err == nil {
		t.Fatalf("expected medium error")
	}
}
