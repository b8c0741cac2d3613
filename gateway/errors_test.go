package gateway

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTaxonomy_KindAndRuleID(t *testing.T) {
	err := newError(KindDecode, "PIPRS-IPR-001", "ipr envelope is truncated")

	if !IsKind(err, KindDecode) {
		t.Fatalf("IsKind(KindDecode) = false")
	}
	if IsKind(err, KindAuth) {
		t.Fatalf("IsKind(KindAuth) = true")
	}
	if got := RuleID(err); got != "PIPRS-IPR-001" {
		t.Fatalf("RuleID = %q", got)
	}
}

func TestErrorTaxonomy_WrappedCauseSurvives(t *testing.T) {
	cause := errors.New("root cause")
	err := wrapError(KindQuote, "PIPRS-QUOTE-002", "no quote available for packet", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("cause lost through wrapError")
	}
	wrapped := fmt.Errorf("handler: %w", err)
	if !IsKind(wrapped, KindQuote) {
		t.Fatalf("Kind lost through further wrapping")
	}
	if RuleID(wrapped) != "PIPRS-QUOTE-002" {
		t.Fatalf("RuleID lost through further wrapping")
	}
}

func TestErrorTaxonomy_UnknownErrorsAreInternal(t *testing.T) {
	if got := ErrKind(errors.New("plain")); got != KindInternal {
		t.Fatalf("ErrKind(plain) = %q, want KindInternal", got)
	}
	if RuleID(errors.New("plain")) != "" {
		t.Fatalf("RuleID(plain) should be empty")
	}
}
