package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/kapu/slack-reqbot-go/internal/constants"
	"github.com/kapu/slack-reqbot-go/pkg/errors"
)

const keyPrefix = "reqbot:event:"

// Store: 처리한 인바운드 이벤트 키를 기억하는 Valkey 기반 스토어.
// 커넥터는 at-least-once 전달이므로 재전달된 이벤트를 걸러낸다.
type Store struct {
	client    valkey.Client
	logger    *slog.Logger
	ttl       time.Duration
	closeOnce sync.Once
}

// Config: Valkey 연결 설정을 담는 구조체
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewStore: 새로운 중복 제거 스토어를 생성하고 연결을 수립한다.
func NewStore(cfg Config, logger *slog.Logger) (*Store, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Password:          cfg.Password,
		SelectDB:          cfg.DB,
		ConnWriteTimeout:  constants.ValkeyConfig.ConnWriteTimeout,
		BlockingPoolSize:  constants.ValkeyConfig.BlockingPoolSize,
		PipelineMultiplex: constants.ValkeyConfig.PipelineMultiplex,
		Dialer:            net.Dialer{Timeout: constants.ValkeyConfig.DialTimeout},
	})
	if err != nil {
		return nil, errors.NewCacheError("init", "", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ValkeyConfig.ReadyTimeout)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, errors.NewCacheError("ping", "", err)
	}

	logger.Info("Dedup store connected",
		slog.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		slog.Int("db", cfg.DB),
	)

	return &Store{
		client: client,
		logger: logger,
		ttl:    constants.ValkeyConfig.DedupTTL,
	}, nil
}

// Claim: 이벤트 키를 선점한다. 최초 선점이면 true, 이미 처리된 키면 false.
// SET NX + TTL이므로 보존 기간이 지난 키는 다시 선점될 수 있다.
func (s *Store) Claim(ctx context.Context, key string) (bool, error) {
	resp := s.client.Do(ctx, s.client.B().Set().
		Key(keyPrefix+key).
		Value("1").
		Nx().
		Ex(s.ttl).
		Build())

	if valkey.IsValkeyNil(resp.Error()) {
		return false, nil // 이미 존재 - 중복 이벤트
	}
	if resp.Error() != nil {
		return false, errors.NewCacheError("claim", key, resp.Error())
	}
	return true, nil
}

// Close: 스토어 연결을 닫는다.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.client.Close()
	})
	return nil
}
