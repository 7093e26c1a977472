package requirements

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"

	"github.com/kapu/slack-reqbot-go/internal/domain"
	"github.com/kapu/slack-reqbot-go/internal/service/ai"
	apperrors "github.com/kapu/slack-reqbot-go/pkg/errors"
)

// Detector: 인바운드 메시지가 업무 요청인지 언어 모델로 판별하는 서비스
type Detector struct {
	gateway ai.Gateway
	logger  *slog.Logger
}

// NewDetector 는 Detector를 생성한다.
func NewDetector(gateway ai.Gateway, logger *slog.Logger) *Detector {
	return &Detector{
		gateway: gateway,
		logger:  logger,
	}
}

type detectPayload struct {
	IsWorkRequest bool   `json:"isWorkRequest"`
	IntentType    string `json:"intentType"`
}

// DetectWorkRequest: 메시지를 분석 프롬프트로 분류하고 검증된 판별 결과를 반환한다.
// 모델이 스키마를 지키지 않은 응답(비JSON, 필드 누락)은 복구하지 않고
// ParseError로 전파한다. enum 밖의 intentType만 예외로, 에러 없이 other로 흡수된다.
func (d *Detector) DetectWorkRequest(ctx context.Context, message string) (domain.DetectResult, error) {
	response, err := d.gateway.SendMessage(ctx, message, &ai.MessageContext{
		SystemPrompt: WorkRequestAnalysisPrompt,
	})
	if err != nil {
		return domain.DetectResult{}, fmt.Errorf("detect work request: %w", err)
	}

	var payload detectPayload
	if err := json.Unmarshal([]byte(response.Content), &payload); err != nil {
		return domain.DetectResult{}, apperrors.NewParseError("detect", err)
	}

	result := domain.NewDetectResult(payload.IsWorkRequest, payload.IntentType)

	d.logger.Debug("work request detected",
		slog.Bool("is_work_request", result.IsWorkRequest),
		slog.String("intent_type", string(result.IntentType)),
	)

	return result, nil
}
