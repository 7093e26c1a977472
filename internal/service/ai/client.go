package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/genai"

	"github.com/kapu/slack-reqbot-go/internal/constants"
)

var (
	// ErrMissingAPIKey 는 모델 API 키가 없을 때 반환된다.
	ErrMissingAPIKey = errors.New("missing model api key")
	// ErrMissingModel 는 모델 식별자가 없을 때 반환된다.
	ErrMissingModel = errors.New("missing model identifier")
)

// Client 는 언어 모델 백엔드 호출을 담당한다.
// 재시도, 타임아웃, 백오프는 수행하지 않는다. 백엔드 에러는 그대로 전파된다.
type Client struct {
	apiKey string
	model  string
	logger *slog.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewClient 는 Gateway 클라이언트를 생성한다.
func NewClient(apiKey, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		return nil, ErrMissingModel
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}, nil
}

// SendMessage 는 시스템 프롬프트, 히스토리, 신규 유저 턴 순서로 턴 시퀀스를
// 구성하여 모델을 한 번 호출하고, 집계된 텍스트를 반환한다.
func (c *Client) SendMessage(ctx context.Context, message string, msgCtx *MessageContext) (*Response, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	turns := buildTurns(message, msgCtx)
	contents, systemPrompt := splitTurns(turns)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(constants.AIConfig.Temperature),
		MaxOutputTokens: constants.AIConfig.MaxOutputTokens,
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	response, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	return &Response{Content: extractText(response)}, nil
}

func (c *Client) ensureClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client, err := genai.NewClient(context.WithoutCancel(ctx), &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c.client = client
	return client, nil
}

// buildTurns: [system 턴(있으면)] + [히스토리 원래 순서] + [유저 턴] 시퀀스를 만든다.
func buildTurns(message string, msgCtx *MessageContext) []Turn {
	turns := make([]Turn, 0, 2)
	if msgCtx != nil {
		if msgCtx.SystemPrompt != "" {
			turns = append(turns, Turn{Role: RoleSystem, Content: msgCtx.SystemPrompt})
		}
		turns = append(turns, msgCtx.ConversationHistory...)
	}
	turns = append(turns, Turn{Role: RoleUser, Content: message})
	return turns
}

// splitTurns: system 턴은 SystemInstruction으로 분리하고 나머지를 contents로 변환한다.
func splitTurns(turns []Turn) ([]*genai.Content, string) {
	contents := make([]*genai.Content, 0, len(turns))
	systemPrompt := ""
	for _, turn := range turns {
		switch turn.Role {
		case RoleSystem:
			systemPrompt = turn.Content
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleUser))
		}
	}
	return contents, systemPrompt
}

func extractText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 {
		return ""
	}
	return response.Text()
}
