package slack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/kapu/slack-reqbot-go/internal/constants"
	"github.com/kapu/slack-reqbot-go/internal/domain"
)

// errReconnect: Slack이 disconnect 외피로 재연결을 요청했을 때의 내부 신호.
var errReconnect = errors.New("slack requested reconnect")

// connectionOpener 는 Socket Mode URL 발급 인터페이스다.
type connectionOpener interface {
	OpenConnection(ctx context.Context) (string, error)
}

// SocketClient: Slack Socket Mode 수신 전용 클라이언트.
// 수신한 message 이벤트를 도메인 이벤트 채널로 내보낸다.
type SocketClient struct {
	opener connectionOpener
	logger *slog.Logger
	events chan domain.MessageEvent
	dialer *websocket.Dialer
}

// NewSocketClient: 새로운 Socket Mode 클라이언트를 생성한다.
func NewSocketClient(opener connectionOpener, logger *slog.Logger) *SocketClient {
	return &SocketClient{
		opener: opener,
		logger: logger,
		events: make(chan domain.MessageEvent, 16),
		dialer: &websocket.Dialer{
			HandshakeTimeout: constants.WebSocketConfig.HandshakeTimeout,
		},
	}
}

// Events: 인바운드 도메인 이벤트 채널을 반환한다.
func (s *SocketClient) Events() <-chan domain.MessageEvent {
	return s.events
}

// Run: ctx가 종료될 때까지 WebSocket 연결을 유지한다.
// 연결이 끊기거나 Slack이 재연결을 요청하면 잠시 대기 후 다시 연결한다.
// (언어 모델 호출의 no-retry 정책과 무관한, 소켓 전송 계층의 재연결이다)
func (s *SocketClient) Run(ctx context.Context) error {
	defer close(s.events)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.connectAndListen(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, errReconnect) {
				s.logger.Info("Reconnecting socket mode connection")
			} else {
				s.logger.Warn("Socket mode connection lost",
					slog.Any("error", err),
					slog.Duration("retry_in", constants.WebSocketConfig.ReconnectDelay),
				)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(constants.WebSocketConfig.ReconnectDelay):
		}
	}
}

func (s *SocketClient) connectAndListen(ctx context.Context) error {
	wsURL, err := s.opener.OpenConnection(ctx)
	if err != nil {
		return fmt.Errorf("open socket mode connection: %w", err)
	}

	conn, _, err := s.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial socket mode url: %w", err)
	}
	defer func() { _ = conn.Close() }()

	s.logger.Info("Socket mode connected")

	// ctx 취소 시 블로킹 중인 ReadMessage를 깨운다
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read socket frame: %w", err)
		}

		var envelope socketEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			s.logger.Warn("Malformed socket envelope", slog.Any("error", err))
			continue
		}

		if envelope.EnvelopeID != "" {
			if err := s.acknowledge(conn, envelope.EnvelopeID); err != nil {
				return fmt.Errorf("ack envelope: %w", err)
			}
		}

		switch envelope.Type {
		case "hello":
			s.logger.Debug("Socket mode hello received")
		case "disconnect":
			return errReconnect
		case "events_api":
			s.dispatchEvent(ctx, envelope.Payload)
		default:
			s.logger.Debug("Ignoring socket envelope", slog.String("type", envelope.Type))
		}
	}
}

func (s *SocketClient) acknowledge(conn *websocket.Conn, envelopeID string) error {
	payload, err := json.Marshal(socketAck{EnvelopeID: envelopeID})
	if err != nil {
		return fmt.Errorf("marshal ack: %w", err)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(constants.WebSocketConfig.WriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *SocketClient) dispatchEvent(ctx context.Context, raw json.RawMessage) {
	var payload eventsAPIPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.logger.Warn("Malformed events_api payload", slog.Any("error", err))
		return
	}
	if payload.Event.Type != "message" {
		return
	}

	select {
	case s.events <- payload.Event.toDomainEvent():
	case <-ctx.Done():
	}
}
