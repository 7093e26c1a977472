package domain

import "time"

// MessageEvent: 채팅 플랫폼에서 수신한 인바운드 메시지 이벤트.
type MessageEvent struct {
	Text      string
	User      string
	Channel   string
	ThreadTS  string // 답장을 묶을 스레드 앵커 (thread_ts 없으면 ts)
	EventTS   string // 이벤트 고유 타임스탬프 (중복 판별 키)
	Timestamp time.Time
	IsBot     bool
}

// OutboundMessage: 발신 메시지 페이로드. 같은 스레드 앵커로 순서대로 전송된다.
type OutboundMessage struct {
	Channel  string
	ThreadTS string
	Text     string
}

// DedupKey: 이벤트의 중복 제거 키를 반환한다.
func (e *MessageEvent) DedupKey() string {
	return e.Channel + ":" + e.EventTS
}
