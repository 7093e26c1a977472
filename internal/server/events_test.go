package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kapu/slack-reqbot-go/internal/bot"
	"github.com/kapu/slack-reqbot-go/internal/domain"
)

type channelSink struct {
	events chan domain.MessageEvent
}

func (s *channelSink) HandleEvent(_ context.Context, event domain.MessageEvent) {
	s.events <- event
}

type fixedState struct {
	state bot.LifecycleState
}

func (f *fixedState) State() bot.LifecycleState { return f.state }

func newEventsTestRouter(sink EventSink, state StateReporter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(sink, state, logger)

	router := gin.New()
	router.GET("/healthz", handler.Healthz)
	router.GET("/status", handler.Status)
	router.POST("/slack/events", handler.Events)
	return router
}

func postEvents(router *gin.Engine, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestEvents_URLVerificationEchoesChallenge(t *testing.T) {
	sink := &channelSink{events: make(chan domain.MessageEvent, 1)}
	router := newEventsTestRouter(sink, &fixedState{state: bot.StateConnected})

	recorder := postEvents(router, `{"type":"url_verification","challenge":"abc123"}`)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "abc123") {
		t.Fatalf("expected challenge echoed, got %q", recorder.Body.String())
	}
	select {
	case <-sink.events:
		t.Fatalf("url_verification must not reach the sink")
	default:
	}
}

func TestEvents_MessageEventForwardedToSink(t *testing.T) {
	sink := &channelSink{events: make(chan domain.MessageEvent, 1)}
	router := newEventsTestRouter(sink, &fixedState{state: bot.StateConnected})

	body := `{"type":"event_callback","event":{"type":"message","text":"hello","user":"U1","channel":"C1","ts":"1756599000.000100"}}`
	recorder := postEvents(router, body)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	select {
	case event := <-sink.events:
		if event.Text != "hello" || event.Channel != "C1" {
			t.Fatalf("unexpected event forwarded: %+v", event)
		}
		if event.ThreadTS != "1756599000.000100" {
			t.Fatalf("expected ts promoted to thread anchor, got %s", event.ThreadTS)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected event forwarded to sink")
	}
}

func TestEvents_NonMessageEventAcknowledgedWithoutDispatch(t *testing.T) {
	sink := &channelSink{events: make(chan domain.MessageEvent, 1)}
	router := newEventsTestRouter(sink, &fixedState{state: bot.StateConnected})

	recorder := postEvents(router, `{"type":"event_callback","event":{"type":"reaction_added"}}`)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	select {
	case <-sink.events:
		t.Fatalf("non-message event must not reach the sink")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEvents_MalformedBodyRejected(t *testing.T) {
	sink := &channelSink{events: make(chan domain.MessageEvent, 1)}
	router := newEventsTestRouter(sink, &fixedState{state: bot.StateConnected})

	recorder := postEvents(router, `{not json`)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestStatus_ReportsLifecycleState(t *testing.T) {
	sink := &channelSink{events: make(chan domain.MessageEvent, 1)}
	router := newEventsTestRouter(sink, &fixedState{state: bot.StateConnected})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/status", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "connected") {
		t.Fatalf("expected lifecycle state in body, got %q", recorder.Body.String())
	}
}

func TestHealthz_RespondsOK(t *testing.T) {
	sink := &channelSink{events: make(chan domain.MessageEvent, 1)}
	router := newEventsTestRouter(sink, &fixedState{state: bot.StateNotStarted})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `"status":"ok"`) {
		t.Fatalf("expected ok status, got %q", recorder.Body.String())
	}
}
