package requirements

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"

	"github.com/kapu/slack-reqbot-go/internal/domain"
	"github.com/kapu/slack-reqbot-go/internal/service/ai"
	apperrors "github.com/kapu/slack-reqbot-go/pkg/errors"
)

// Generator: 판별된 업무 요청에 대해 요구사항 구체화 질문 목록을 생성하는 서비스
type Generator struct {
	gateway ai.Gateway
	logger  *slog.Logger
	now     func() time.Time
}

// NewGenerator 는 Generator를 생성한다.
func NewGenerator(gateway ai.Gateway, logger *slog.Logger) *Generator {
	return &Generator{
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
	}
}

// rawQuestion: 모델 응답의 개별 질문 레코드. required 누락은 true로 본다.
type rawQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Required *bool    `json:"required"`
}

type generatePayload struct {
	Questions []map[string]any `json:"questions"`
}

// GenerateQuestions: 원본 메시지와 판별 결과로 질문 목록을 생성한다.
// 질문 순서는 모델 응답 순서 그대로이며 전달 순서의 기준이 된다.
// 세션 ID는 트리거 스레드 앵커와 생성 시각에서 유도한다.
func (g *Generator) GenerateQuestions(
	ctx context.Context,
	originalMessage string,
	verdict domain.DetectResult,
	threadTS string,
) (*domain.QuestionSet, error) {
	prompt := fmt.Sprintf("work request: %s\nintentType: %s", originalMessage, verdict.IntentType)

	response, err := g.gateway.SendMessage(ctx, prompt, &ai.MessageContext{
		SystemPrompt: QuestionGenerationPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	var payload generatePayload
	if err := json.Unmarshal([]byte(response.Content), &payload); err != nil {
		return nil, apperrors.NewParseError("generate", err)
	}

	questions := make([]domain.Question, 0, len(payload.Questions))
	for idx, record := range payload.Questions {
		var raw rawQuestion
		if err := decodeRecord(record, &raw); err != nil {
			return nil, apperrors.NewParseError("generate", fmt.Errorf("question %d: %w", idx, err))
		}

		required := true
		if raw.Required != nil {
			required = *raw.Required
		}

		questions = append(questions, domain.Question{
			ID:       raw.ID,
			Text:     raw.Question,
			Type:     domain.QuestionType(raw.Type),
			Options:  raw.Options,
			Required: required,
		})
	}

	createdAt := g.now()
	questionSet := &domain.QuestionSet{
		Questions: questions,
		SessionID: domain.NewSessionID(threadTS, createdAt),
		CreatedAt: createdAt,
	}

	g.logger.Debug("questions generated",
		slog.String("session_id", questionSet.SessionID),
		slog.Int("count", len(questions)),
	)

	return questionSet, nil
}

// decodeRecord: map[string]any를 Go struct로 디코딩한다.
// 타입 변환 실패 시 에러를 반환하며, 런타임 패닉을 방지한다.
func decodeRecord(input map[string]any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
