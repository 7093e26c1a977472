package requirements

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/kapu/slack-reqbot-go/internal/domain"
	"github.com/kapu/slack-reqbot-go/internal/service/ai"
	apperrors "github.com/kapu/slack-reqbot-go/pkg/errors"
)

type stubGateway struct {
	response *ai.Response
	err      error

	lastMessage string
	lastCtx     *ai.MessageContext
	calls       int
}

func (s *stubGateway) SendMessage(_ context.Context, message string, msgCtx *ai.MessageContext) (*ai.Response, error) {
	s.calls++
	s.lastMessage = message
	s.lastCtx = msgCtx
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDetectWorkRequest_ParsesVerdict(t *testing.T) {
	gateway := &stubGateway{
		response: &ai.Response{Content: `{"isWorkRequest": true, "intentType": "feature_request"}`},
	}
	detector := NewDetector(gateway, testLogger())

	result, err := detector.DetectWorkRequest(context.Background(), "추천인 포인트 기능 추가해요!")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !result.IsWorkRequest {
		t.Fatalf("expected work request verdict")
	}
	if result.IntentType != domain.IntentFeatureRequest {
		t.Fatalf("expected feature_request, got %s", result.IntentType)
	}

	if gateway.lastMessage != "추천인 포인트 기능 추가해요!" {
		t.Fatalf("expected raw message forwarded, got %q", gateway.lastMessage)
	}
	if gateway.lastCtx == nil || gateway.lastCtx.SystemPrompt != WorkRequestAnalysisPrompt {
		t.Fatalf("expected analysis system prompt attached")
	}
	if len(gateway.lastCtx.ConversationHistory) != 0 {
		t.Fatalf("expected no history at detection stage")
	}
}

func TestDetectWorkRequest_UnknownIntentCoercedToOther(t *testing.T) {
	gateway := &stubGateway{
		response: &ai.Response{Content: `{"isWorkRequest": true, "intentType": "totally_new_category"}`},
	}
	detector := NewDetector(gateway, testLogger())

	result, err := detector.DetectWorkRequest(context.Background(), "msg")
	if err != nil {
		t.Fatalf("expected coercion instead of error, got %v", err)
	}
	if result.IntentType != domain.IntentOther {
		t.Fatalf("expected other, got %s", result.IntentType)
	}
	if !result.IsWorkRequest {
		t.Fatalf("expected isWorkRequest preserved through coercion")
	}
}

func TestDetectWorkRequest_NonJSONContentIsParseError(t *testing.T) {
	gateway := &stubGateway{
		response: &ai.Response{Content: "죄송하지만 판단할 수 없습니다."},
	}
	detector := NewDetector(gateway, testLogger())

	_, err := detector.DetectWorkRequest(context.Background(), "msg")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var parseErr *apperrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Stage != "detect" {
		t.Fatalf("expected detect stage, got %s", parseErr.Stage)
	}
}

func TestDetectWorkRequest_GatewayErrorPropagates(t *testing.T) {
	backendErr := errors.New("backend unavailable")
	gateway := &stubGateway{err: backendErr}
	detector := NewDetector(gateway, testLogger())

	_, err := detector.DetectWorkRequest(context.Background(), "msg")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error preserved, got %v", err)
	}
}
