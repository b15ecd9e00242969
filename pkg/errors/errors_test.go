package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:     http.StatusBadRequest,
		CodeUnauthorized:   http.StatusUnauthorized,
		CodeQuotaExhausted: http.StatusForbidden,
		CodeRateLimit:      http.StatusTooManyRequests,
		CodeInternal:       http.StatusInternalServerError,
	}
	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Fatalf("code %s: expected status %d, got %d", code, status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestQuotaCodesAllowDetails(t *testing.T) {
	if !MetadataFor(CodeQuotaExhausted).DetailsAllowed {
		t.Fatal("quota exhausted must surface details")
	}
	if !MetadataFor(CodeRateLimit).DetailsAllowed {
		t.Fatal("rate limit must surface details")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "outer")
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if As(err).Code() != CodeDependency {
		t.Fatalf("unexpected code %s", As(err).Code())
	}
}

func TestAsThroughFmtWrap(t *testing.T) {
	typed := New(CodeValidation, "bad input").WithDetails(map[string]string{"field": "is required"})
	wrapped := fmt.Errorf("handler: %w", typed)
	got := As(wrapped)
	if got == nil || got.Code() != CodeValidation {
		t.Fatalf("expected typed error through wrap, got %v", got)
	}
	if got.Details() == nil {
		t.Fatal("expected details to survive wrapping")
	}
}
