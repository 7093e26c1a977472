package constants

import "time"

// AIConfig 는 패키지 변수다.
// 샘플링 파라미터는 호출자가 조정할 수 없는 고정값이다 (비용/지연 상한).
var AIConfig = struct {
	MaxOutputTokens int32
	Temperature     float32
}{
	MaxOutputTokens: 2000,
	Temperature:     0.7,
}

// WebSocketConfig 는 패키지 변수다.
var WebSocketConfig = struct {
	ReconnectDelay   time.Duration
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
}{
	ReconnectDelay:   5 * time.Second,
	HandshakeTimeout: 10 * time.Second,
	WriteTimeout:     10 * time.Second,
}

// SlackConfig 는 패키지 변수다.
var SlackConfig = struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	// PostMessageRate: chat.postMessage는 채널당 초당 1건 수준으로 제한된다.
	PostMessageRate  float64
	PostMessageBurst int
	SignatureMaxAge  time.Duration
}{
	APIBaseURL:       "https://slack.com/api",
	RequestTimeout:   15 * time.Second,
	PostMessageRate:  1,
	PostMessageBurst: 1,
	SignatureMaxAge:  5 * time.Minute,
}

// ValkeyConfig 는 패키지 변수다.
var ValkeyConfig = struct {
	ReadyTimeout      time.Duration
	BlockingPoolSize  int
	PipelineMultiplex int
	DialTimeout       time.Duration
	ConnWriteTimeout  time.Duration
	// DedupTTL: 처리한 이벤트 키의 보존 기간
	DedupTTL time.Duration
}{
	ReadyTimeout:      5 * time.Second,
	BlockingPoolSize:  100,
	PipelineMultiplex: 4,
	DialTimeout:       10 * time.Second,
	ConnWriteTimeout:  10 * time.Second,
	DedupTTL:          10 * time.Minute,
}

// BotConfig 는 패키지 변수다.
var BotConfig = struct {
	// EventWorkers: 이벤트 파이프라인 동시 실행 상한
	EventWorkers int
	SendTimeout  time.Duration
}{
	EventWorkers: 8,
	SendTimeout:  15 * time.Second,
}

// ServerTimeout 는 HTTP 서버 타임아웃 설정이다.
var ServerTimeout = struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
}{
	ReadHeader: 5 * time.Second,
	Read:       15 * time.Second,
	Write:      15 * time.Second,
	Idle:       60 * time.Second,
}

// ServerConfig 는 서버 기본 설정이다.
var ServerConfig = struct {
	TrustedProxies []string
	// MaxEventBody: 이벤트 웹훅 본문 크기 상한 (바이트)
	MaxEventBody int64
}{
	TrustedProxies: []string{"127.0.0.1", "::1"},
	MaxEventBody:   1 << 20,
}

// AppTimeout 는 패키지 변수다.
var AppTimeout = struct {
	Build    time.Duration
	Shutdown time.Duration
}{
	Build:    30 * time.Second,
	Shutdown: 10 * time.Second,
}
