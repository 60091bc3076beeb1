package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	apierrors "github.com/diogo/malcolmweb/internal/errors"
)

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "context"); got != "" {
		t.Errorf("formatErrorMessage(nil) = %q, want empty", got)
	}
}

func TestFormatErrorMessage_APIError(t *testing.T) {
	err := fmt.Errorf("optimize failed: %w", &apierrors.APIError{
		StatusCode: 503,
		Endpoint:   "/optimize",
		Message:    "try later",
	})
	got := formatErrorMessage(err, "Optimize failed")

	for _, want := range []string{"503", "/optimize", "try later"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
}

func TestFormatErrorMessage_NetworkError(t *testing.T) {
	err := &apierrors.NetworkError{
		Operation: "upload",
		Endpoint:  "/upload",
		Err:       errors.New("connection refused"),
	}
	got := formatErrorMessage(err, "Upload failed")

	if !strings.Contains(got, "/upload") {
		t.Errorf("output missing endpoint: %q", got)
	}
	if !strings.Contains(got, "internet connection") {
		t.Errorf("output missing hint: %q", got)
	}
}

func TestFormatErrorMessage_PlainError(t *testing.T) {
	got := formatErrorMessage(errors.New("boom"), "Failed")
	if !strings.Contains(got, "boom") || !strings.Contains(got, "Failed") {
		t.Errorf("output = %q", got)
	}
}
