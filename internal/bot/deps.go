package bot

import (
	"context"
	"log/slog"

	"github.com/kapu/slack-reqbot-go/internal/adapter"
	"github.com/kapu/slack-reqbot-go/internal/config"
	"github.com/kapu/slack-reqbot-go/internal/domain"
)

// Detector 는 업무 요청 판별 인터페이스다.
type Detector interface {
	DetectWorkRequest(ctx context.Context, message string) (domain.DetectResult, error)
}

// Generator 는 질문 목록 생성 인터페이스다.
type Generator interface {
	GenerateQuestions(ctx context.Context, originalMessage string, verdict domain.DetectResult, threadTS string) (*domain.QuestionSet, error)
}

// Sender 는 발신 메시지 전송 인터페이스다.
type Sender interface {
	PostMessage(ctx context.Context, msg domain.OutboundMessage) error
}

// DedupStore 는 처리한 이벤트 키 선점 인터페이스다.
type DedupStore interface {
	Claim(ctx context.Context, key string) (bool, error)
}

// Dependencies 는 타입이다.
type Dependencies struct {
	Config    *config.Config
	Logger    *slog.Logger
	Detector  Detector
	Generator Generator
	Formatter *adapter.DeliveryFormatter
	Sender    Sender
	Dedup     DedupStore // nil이면 중복 제거 없이 동작한다
}
