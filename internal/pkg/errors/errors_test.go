package errors

import (
	stderrors "errors"
	"testing"
)

func TestStoreWrapsBothSentinelAndCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Store("insert log", cause)
	if !Is(err, ErrStore) {
		t.Fatalf("expected ErrStore in chain: %v", err)
	}
	if !Is(err, cause) {
		t.Fatalf("expected cause in chain: %v", err)
	}
	if Store("noop", nil) != nil {
		t.Fatalf("Store(nil) should be nil")
	}
}

func TestValidationAndNotFound(t *testing.T) {
	if err := Validation("activityType", "is required"); !Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation: %v", err)
	}
	if err := NotFound("subtopic"); !Is(err, ErrNotFound) || err.Error() != "not found: subtopic" {
		t.Fatalf("unexpected not found error: %v", err)
	}
}
