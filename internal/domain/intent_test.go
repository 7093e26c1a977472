package domain

import (
	"testing"
	"time"
)

func TestNormalizeIntentType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want WorkRequestIntentType
	}{
		{name: "known member", raw: "feature_request", want: IntentFeatureRequest},
		{name: "known member with whitespace", raw: "  bug_report ", want: IntentBugReport},
		{name: "uppercase coerced", raw: "MODIFICATION_REQUEST", want: IntentModificationRequest},
		{name: "unknown value coerced to other", raw: "urgent_request", want: IntentOther},
		{name: "empty coerced to other", raw: "", want: IntentOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeIntentType(tt.raw); got != tt.want {
				t.Fatalf("NormalizeIntentType(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewDetectResult_NormalizesRegardlessOfVerdict(t *testing.T) {
	result := NewDetectResult(false, "weird_type")
	if result.IsWorkRequest {
		t.Fatalf("expected negative verdict preserved")
	}
	if result.IntentType != IntentOther {
		t.Fatalf("expected other, got %q", result.IntentType)
	}
}

func TestNewSessionID(t *testing.T) {
	createdAt := time.Unix(1756600000, 0)

	id := NewSessionID("1756599000.000100", createdAt)
	if id != "req-1756599000-000100-1756600000" {
		t.Fatalf("unexpected session id: %s", id)
	}

	if got := NewSessionID("", createdAt); got != "req-unknown-1756600000" {
		t.Fatalf("expected unknown anchor fallback, got %s", got)
	}
}

func TestMessageEvent_DedupKey(t *testing.T) {
	event := MessageEvent{Channel: "C1", EventTS: "1756599000.000100"}
	if got := event.DedupKey(); got != "C1:1756599000.000100" {
		t.Fatalf("unexpected dedup key: %s", got)
	}
}
