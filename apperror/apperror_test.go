package apperror

import (
	"context"
	"errors"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", New(Validation, "bad input"), 400},
		{"not found", New(NotFound, "Product not found"), 404},
		{"duplicate", New(Duplicate, "Email already registered"), 409},
		{"upload", New(Upload, "Failed to upload image"), 500},
		{"upload timeout", Wrap(Upload, "Failed to upload image", context.DeadlineExceeded), 408},
		{"config", New(Config, "Server JWT secret not configured"), 500},
		{"plain error", errors.New("boom"), 500},
		{"wrapped in fmt chain", Wrap(NotFound, "Blog not found", errors.New("no documents")), 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessageHidesWrappedCause(t *testing.T) {
	err := Wrap(Upload, "Failed to upload image", errors.New("connection refused to 10.0.0.1"))
	if got := Message(err); got != "Failed to upload image" {
		t.Errorf("Message = %q, want the cause kept out of the client body", got)
	}
}

func TestMessageForUnknownError(t *testing.T) {
	if got := Message(errors.New("boom")); got != "Internal Server Error" {
		t.Errorf("Message = %q", got)
	}
}
