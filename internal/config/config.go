package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/kapu/slack-reqbot-go/internal/util"
)

// Config: 봇 전체 동작에 필요한 설정을 담는 구조체
type Config struct {
	AI      AIConfig
	Slack   SlackConfig
	Server  ServerConfig
	Valkey  ValkeyConfig
	Logging LoggingConfig
	Version string
}

// AIConfig: 언어 모델 백엔드 설정
type AIConfig struct {
	Model  string
	APIKey string
}

// SlackConfig: Slack 연결 및 인증 설정
type SlackConfig struct {
	BotToken      string
	SigningSecret string
	AppToken      string
	// SocketMode: false면 WebSocket 연결 없이 이벤트 웹훅으로만 수신한다.
	SocketMode bool
}

// ServerConfig: 헬스체크 및 이벤트 웹훅용 HTTP 서버 설정
type ServerConfig struct {
	Port int
}

// ValkeyConfig: 이벤트 중복 제거용 Valkey 연결 설정.
// Host가 비어있으면 중복 제거 없이 동작한다.
type ValkeyConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LoggingConfig: 애플리케이션 로그 설정 (레벨, 디렉토리, 로테이션 정책)
type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load: .env 파일 및 환경 변수로부터 설정을 로드하고, 기본값을 적용하여 Config 객체를 생성한다.
// 필수 키가 비어있으면 에러를 반환하며 의존 컴포넌트 초기화는 진행되지 않는다.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AI: AIConfig{
			Model:  os.Getenv("AI_MODEL"),
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		Slack: SlackConfig{
			BotToken:      os.Getenv("SLACK_BOT_TOKEN"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
			AppToken:      os.Getenv("SLACK_APP_TOKEN"),
			SocketMode:    getEnvBool("SLACK_SOCKET_MODE", true),
		},
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 30011),
		},
		Valkey: ValkeyConfig{
			Host:     getEnv("CACHE_HOST", ""),
			Port:     getEnvInt("CACHE_PORT", 6379),
			Password: getEnv("CACHE_PASSWORD", ""),
			DB:       getEnvInt("CACHE_DB", 0),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Dir:        getEnv("LOG_DIR", "logs"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Version: util.TrimSpace(getEnv("APP_VERSION", "0.2.0-go")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate: 필수 설정값이 누락되지 않았는지 검증한다.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"AI_MODEL", c.AI.Model},
		{"GEMINI_API_KEY", c.AI.APIKey},
		{"SLACK_BOT_TOKEN", c.Slack.BotToken},
		{"SLACK_SIGNING_SECRET", c.Slack.SigningSecret},
		{"SLACK_APP_TOKEN", c.Slack.AppToken},
	}
	for _, entry := range required {
		if util.TrimSpace(entry.value) == "" {
			return fmt.Errorf("required configuration value is missing: %s", entry.key)
		}
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port)
	}
	return nil
}

// DedupEnabled: 중복 제거 스토어 사용 여부를 반환한다.
func (c *Config) DedupEnabled() bool {
	return util.TrimSpace(c.Valkey.Host) != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
