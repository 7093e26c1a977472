package slack

import (
	"testing"
	"time"
)

func TestToDomainEvent_ThreadAnchorFallsBackToTS(t *testing.T) {
	ev := messageEvent{
		Type:    "message",
		Text:    "hello",
		User:    "U1",
		Channel: "C1",
		TS:      "1756599000.000100",
	}

	result := ev.toDomainEvent()

	if result.ThreadTS != "1756599000.000100" {
		t.Fatalf("expected thread anchor fallback to ts, got %q", result.ThreadTS)
	}
	if result.EventTS != "1756599000.000100" {
		t.Fatalf("expected event ts fallback to ts, got %q", result.EventTS)
	}
	if result.IsBot {
		t.Fatalf("expected human-authored event")
	}
}

func TestToDomainEvent_ExistingThreadPreserved(t *testing.T) {
	ev := messageEvent{
		Type:     "message",
		Channel:  "C1",
		TS:       "1756599100.000200",
		ThreadTS: "1756599000.000100",
		EventTS:  "1756599100.000200",
	}

	result := ev.toDomainEvent()
	if result.ThreadTS != "1756599000.000100" {
		t.Fatalf("expected original thread anchor preserved, got %q", result.ThreadTS)
	}
}

func TestToDomainEvent_BotDetection(t *testing.T) {
	byBotID := messageEvent{Type: "message", BotID: "B1", TS: "1.0"}
	if !byBotID.toDomainEvent().IsBot {
		t.Fatalf("expected bot_id to flag bot authorship")
	}

	bySubtype := messageEvent{Type: "message", Subtype: "bot_message", TS: "1.0"}
	if !bySubtype.toDomainEvent().IsBot {
		t.Fatalf("expected bot_message subtype to flag bot authorship")
	}
}

func TestParseSlackTS(t *testing.T) {
	parsed := parseSlackTS("1756599000.000100")
	if !parsed.Equal(time.Unix(1756599000, 0)) {
		t.Fatalf("expected unix seconds parsed, got %v", parsed)
	}
	if !parseSlackTS("garbage").IsZero() {
		t.Fatalf("expected zero time for malformed ts")
	}
}
