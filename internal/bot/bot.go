package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/kapu/slack-reqbot-go/internal/adapter"
	"github.com/kapu/slack-reqbot-go/internal/config"
	"github.com/kapu/slack-reqbot-go/internal/constants"
	"github.com/kapu/slack-reqbot-go/internal/domain"
	"github.com/kapu/slack-reqbot-go/internal/util"
)

// LifecycleState 는 타입이다.
type LifecycleState int32

// LifecycleState 상수 목록.
const (
	// StateNotStarted 는 상수다.
	StateNotStarted LifecycleState = iota
	StateConnected
	StateStopped
)

// String 는 동작을 수행한다.
func (s LifecycleState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateStopped:
		return "stopped"
	default:
		return "not_started"
	}
}

// Bot: 인바운드 이벤트를 판별-생성-전달 파이프라인으로 라우팅하는 메인 구조체.
// 파이프라인 단계(4.2~4.4)는 자체 에러를 잡지 않으며, 이 경계에서만
// 모든 에러를 잡아 단일 폴백 메시지로 변환한다.
type Bot struct {
	config    *config.Config
	logger    *slog.Logger
	detector  Detector
	generator Generator
	formatter *adapter.DeliveryFormatter
	sender    Sender
	dedup     DedupStore

	state atomic.Int32
}

// NewBot: 필요한 의존성(Dependencies)을 주입받아 새로운 Bot 인스턴스를 생성한다.
func NewBot(deps *Dependencies) (*Bot, error) {
	if deps == nil {
		return nil, fmt.Errorf("bot dependencies are required")
	}
	if deps.Config == nil {
		return nil, fmt.Errorf("config dependency is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger dependency is required")
	}
	if deps.Detector == nil {
		return nil, fmt.Errorf("detector dependency is required")
	}
	if deps.Generator == nil {
		return nil, fmt.Errorf("generator dependency is required")
	}
	if deps.Formatter == nil {
		return nil, fmt.Errorf("delivery formatter dependency is required")
	}
	if deps.Sender == nil {
		return nil, fmt.Errorf("sender dependency is required")
	}

	return &Bot{
		config:    deps.Config,
		logger:    deps.Logger,
		detector:  deps.Detector,
		generator: deps.Generator,
		formatter: deps.Formatter,
		sender:    deps.Sender,
		dedup:     deps.Dedup,
	}, nil
}

// State: 현재 라이프사이클 상태를 반환한다.
func (b *Bot) State() LifecycleState {
	return LifecycleState(b.state.Load())
}

// Start: 봇을 이벤트 수신 가능 상태로 전환한다.
// 이미 중지된 봇은 다시 시작할 수 없다.
func (b *Bot) Start(_ context.Context) error {
	if !b.state.CompareAndSwap(int32(StateNotStarted), int32(StateConnected)) {
		return fmt.Errorf("bot cannot start from state %s", b.State())
	}
	b.logger.Info("Bot started", slog.String("version", b.config.Version))
	return nil
}

// Stop: 봇을 중지 상태로 전환한다. 이후 이벤트는 무시된다.
func (b *Bot) Stop() {
	b.state.Store(int32(StateStopped))
	b.logger.Info("Bot stopped")
}

// HandleEvent: 인바운드 이벤트 하나를 처리한다.
// 판별 → (업무 요청이면) 생성 → 렌더링 → 순차 전송 순서가 고정이며,
// 각 단계는 이전 단계가 끝나야 시작된다. 독립 이벤트 간 순서 보장은 없다.
func (b *Bot) HandleEvent(ctx context.Context, event domain.MessageEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic in event handler",
				slog.Any("panic", r),
				slog.String("channel", event.Channel),
			)
		}
	}()

	if b.State() != StateConnected {
		b.logger.Warn("Event received while not connected",
			slog.String("state", b.State().String()),
		)
		return
	}

	// 봇이 보낸 메시지에는 반응하지 않는다 (피드백 루프 방지)
	if event.IsBot {
		b.logger.Debug("Skipping bot-authored message",
			slog.String("channel", event.Channel),
		)
		return
	}

	if !b.claimEvent(ctx, event) {
		return
	}

	b.logger.Info("Message received",
		slog.String("channel", event.Channel),
		slog.String("user", event.User),
		slog.String("thread_ts", event.ThreadTS),
		slog.String("preview", util.TruncateString(event.Text, 40)),
	)

	verdict, err := b.detector.DetectWorkRequest(ctx, event.Text)
	if err != nil {
		b.handleFailure(ctx, event, "detect", err)
		return
	}

	if !verdict.IsWorkRequest {
		b.logger.Debug("Not a work request",
			slog.String("intent_type", string(verdict.IntentType)),
		)
		return
	}

	questionSet, err := b.generator.GenerateQuestions(ctx, event.Text, verdict, event.ThreadTS)
	if err != nil {
		b.handleFailure(ctx, event, "generate", err)
		return
	}

	messages := b.formatter.RenderDelivery(questionSet, event.Channel, event.ThreadTS)
	if err := b.sendSequence(ctx, messages); err != nil {
		b.handleFailure(ctx, event, "deliver", err)
		return
	}

	b.logger.Info("Clarifying questions delivered",
		slog.String("session_id", questionSet.SessionID),
		slog.String("intent_type", string(verdict.IntentType)),
		slog.Int("messages", len(messages)),
	)
}

// claimEvent: 중복 제거 키를 선점한다. 스토어 장애 시에는 이벤트를 통과시킨다.
func (b *Bot) claimEvent(ctx context.Context, event domain.MessageEvent) bool {
	if b.dedup == nil {
		return true
	}

	claimed, err := b.dedup.Claim(ctx, event.DedupKey())
	if err != nil {
		b.logger.Warn("Dedup store unavailable, processing anyway",
			slog.Any("error", err),
		)
		return true
	}
	if !claimed {
		b.logger.Debug("Duplicate event dropped",
			slog.String("key", event.DedupKey()),
		)
		return false
	}
	return true
}

// sendSequence: 렌더링된 메시지들을 순서대로 전송한다.
// 첫 실패에서 중단하며, 이후 메시지는 전송하지 않는다.
func (b *Bot) sendSequence(ctx context.Context, messages []domain.OutboundMessage) error {
	for idx, msg := range messages {
		if err := b.send(ctx, msg); err != nil {
			return fmt.Errorf("send message %d/%d: %w", idx+1, len(messages), err)
		}
	}
	return nil
}

func (b *Bot) send(ctx context.Context, msg domain.OutboundMessage) error {
	ctx, cancel := context.WithTimeout(ctx, constants.BotConfig.SendTimeout)
	defer cancel()
	return b.sender.PostMessage(ctx, msg)
}

// handleFailure: 파이프라인 실패를 로그로 남기고, 같은 스레드에 폴백 메시지를
// 정확히 1회 전송한다. 에러는 이 경계를 넘어 전파되지 않는다.
func (b *Bot) handleFailure(ctx context.Context, event domain.MessageEvent, stage string, err error) {
	b.logger.Error("Pipeline failed",
		slog.String("stage", stage),
		slog.String("channel", event.Channel),
		slog.Any("error", err),
	)

	fallback := domain.OutboundMessage{
		Channel:  event.Channel,
		ThreadTS: event.ThreadTS,
		Text:     adapter.MsgFallback,
	}
	if sendErr := b.send(ctx, fallback); sendErr != nil {
		b.logger.Error("Failed to send fallback message", slog.Any("error", sendErr))
	}
}
