package slack

import (
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/kapu/slack-reqbot-go/internal/domain"
)

// socketEnvelope: Socket Mode 연결에서 수신하는 외피 메시지.
type socketEnvelope struct {
	EnvelopeID string          `json:"envelope_id"`
	Type       string          `json:"type"` // hello, events_api, disconnect
	Payload    json.RawMessage `json:"payload"`
}

// socketAck: Socket Mode 외피 수신 확인.
type socketAck struct {
	EnvelopeID string `json:"envelope_id"`
}

// eventsAPIPayload: events_api 외피의 내부 페이로드.
type eventsAPIPayload struct {
	Event messageEvent `json:"event"`
}

// messageEvent: Events API의 message 이벤트.
type messageEvent struct {
	Type     string `json:"type"`
	Subtype  string `json:"subtype"`
	Text     string `json:"text"`
	User     string `json:"user"`
	BotID    string `json:"bot_id"`
	Channel  string `json:"channel"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts"`
	EventTS  string `json:"event_ts"`
}

// eventsCallback: 웹훅 모드에서 수신하는 event_callback 바디.
type eventsCallback struct {
	Type      string       `json:"type"` // url_verification, event_callback
	Challenge string       `json:"challenge"`
	Event     messageEvent `json:"event"`
}

// ParseEventsBody: 이벤트 웹훅 바디를 파싱한다.
// url_verification이면 challenge 문자열을, event_callback의 message 이벤트면
// 도메인 이벤트를 반환한다. 그 외 이벤트 타입은 둘 다 비워서 돌려준다.
func ParseEventsBody(body []byte) (string, *domain.MessageEvent, error) {
	var callback eventsCallback
	if err := json.Unmarshal(body, &callback); err != nil {
		return "", nil, err
	}
	switch callback.Type {
	case "url_verification":
		return callback.Challenge, nil, nil
	case "event_callback":
		if callback.Event.Type != "message" {
			return "", nil, nil
		}
		event := callback.Event.toDomainEvent()
		return "", &event, nil
	default:
		return "", nil, nil
	}
}

// connectionsOpenResponse: apps.connections.open 응답.
type connectionsOpenResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	URL   string `json:"url"`
}

// postMessageRequest: chat.postMessage 요청 바디.
type postMessageRequest struct {
	Channel  string `json:"channel"`
	Text     string `json:"text"`
	ThreadTS string `json:"thread_ts,omitempty"`
}

// apiResponse: Slack Web API 공통 응답 필드.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// toDomainEvent: Slack message 이벤트를 도메인 이벤트로 변환한다.
// thread_ts가 없으면 ts를 스레드 앵커로 사용해 답장이 항상 스레드에 묶이게 한다.
func (e *messageEvent) toDomainEvent() domain.MessageEvent {
	threadTS := e.ThreadTS
	if threadTS == "" {
		threadTS = e.TS
	}
	eventTS := e.EventTS
	if eventTS == "" {
		eventTS = e.TS
	}
	return domain.MessageEvent{
		Text:      e.Text,
		User:      e.User,
		Channel:   e.Channel,
		ThreadTS:  threadTS,
		EventTS:   eventTS,
		Timestamp: parseSlackTS(e.TS),
		IsBot:     e.BotID != "" || e.Subtype == "bot_message",
	}
}

// parseSlackTS: "1756599000.000100" 형태의 Slack 타임스탬프를 time.Time으로 변환한다.
func parseSlackTS(ts string) time.Time {
	seconds := ts
	if idx := strings.IndexByte(ts, '.'); idx >= 0 {
		seconds = ts[:idx]
	}
	unix, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}
