package slack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/kapu/slack-reqbot-go/internal/constants"
	"github.com/kapu/slack-reqbot-go/internal/domain"
	apperrors "github.com/kapu/slack-reqbot-go/pkg/errors"
)

// Client: Slack Web API 클라이언트.
// 발신은 chat.postMessage 제한에 맞춰 rate limiter로 페이싱한다.
type Client struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	appToken   string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient: 새로운 Slack Web API 클라이언트를 생성한다.
func NewClient(botToken, appToken string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: constants.SlackConfig.RequestTimeout},
		baseURL:    constants.SlackConfig.APIBaseURL,
		botToken:   botToken,
		appToken:   appToken,
		limiter: rate.NewLimiter(
			rate.Limit(constants.SlackConfig.PostMessageRate),
			constants.SlackConfig.PostMessageBurst,
		),
		logger: logger,
	}
}

// PostMessage: 메시지 하나를 지정된 채널/스레드로 전송한다.
// 호출 순서가 곧 전송 순서다. 실패 시 재시도 없이 에러를 반환한다.
func (c *Client) PostMessage(ctx context.Context, msg domain.OutboundMessage) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	body, err := json.Marshal(postMessageRequest{
		Channel:  msg.Channel,
		Text:     msg.Text,
		ThreadTS: msg.ThreadTS,
	})
	if err != nil {
		return fmt.Errorf("marshal post message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build post message request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.botToken)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewAPIError("chat.postMessage", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return apperrors.NewAPIError("chat.postMessage", resp.StatusCode, err)
	}
	if !result.OK {
		return apperrors.NewAPIError("chat.postMessage", resp.StatusCode, fmt.Errorf("slack error: %s", result.Error))
	}

	c.logger.Debug("message posted",
		slog.String("channel", msg.Channel),
		slog.String("thread_ts", msg.ThreadTS),
	)
	return nil
}

// OpenConnection: apps.connections.open으로 Socket Mode WebSocket URL을 발급받는다.
// 앱 레벨 토큰을 사용한다.
func (c *Client) OpenConnection(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/apps.connections.open",
		strings.NewReader(url.Values{}.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("build connections open request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.appToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewAPIError("apps.connections.open", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewAPIError("apps.connections.open", resp.StatusCode, err)
	}

	var result connectionsOpenResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", apperrors.NewAPIError("apps.connections.open", resp.StatusCode, err)
	}
	if !result.OK || result.URL == "" {
		return "", apperrors.NewAPIError("apps.connections.open", resp.StatusCode, fmt.Errorf("slack error: %s", result.Error))
	}

	return result.URL, nil
}
