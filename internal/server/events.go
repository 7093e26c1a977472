package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kapu/slack-reqbot-go/internal/bot"
	"github.com/kapu/slack-reqbot-go/internal/domain"
	"github.com/kapu/slack-reqbot-go/internal/health"
	"github.com/kapu/slack-reqbot-go/internal/slack"
)

// EventSink: 수신한 메시지 이벤트를 처리 파이프라인으로 넘기는 인터페이스
type EventSink interface {
	HandleEvent(ctx context.Context, event domain.MessageEvent)
}

// StateReporter: 봇 수명주기 상태 조회 인터페이스
type StateReporter interface {
	State() bot.LifecycleState
}

// Handler: 헬스체크/상태/이벤트 웹훅을 처리하는 HTTP 핸들러.
// Socket Mode를 끈 배포에서는 /slack/events가 유일한 이벤트 수신 경로다.
type Handler struct {
	sink   EventSink
	state  StateReporter
	logger *slog.Logger
}

// NewHandler: 새로운 HTTP 핸들러를 생성한다.
func NewHandler(sink EventSink, state StateReporter, logger *slog.Logger) *Handler {
	return &Handler{
		sink:   sink,
		state:  state,
		logger: logger,
	}
}

// Healthz: 프로세스 생존 확인 응답
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, health.Current())
}

// Status: 봇 수명주기 상태와 uptime을 반환한다.
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":  h.state.State().String(),
		"uptime": health.Uptime(),
	})
}

// Events: Slack Events API 웹훅 엔드포인트.
// url_verification은 challenge를 그대로 돌려주고, message 이벤트는
// 즉시 200을 응답한 뒤 백그라운드에서 처리한다 (Slack 3초 응답 제한).
func (h *Handler) Events(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	challenge, event, err := slack.ParseEventsBody(body)
	if err != nil {
		h.logger.Warn("Malformed events payload", slog.Any("error", err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	if challenge != "" {
		c.JSON(http.StatusOK, gin.H{"challenge": challenge})
		return
	}

	c.Status(http.StatusOK)

	if event == nil {
		return
	}
	go h.sink.HandleEvent(context.WithoutCancel(c.Request.Context()), *event)
}
