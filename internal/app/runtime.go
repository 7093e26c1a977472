package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc/pool"

	"github.com/kapu/slack-reqbot-go/internal/adapter"
	"github.com/kapu/slack-reqbot-go/internal/bot"
	"github.com/kapu/slack-reqbot-go/internal/config"
	"github.com/kapu/slack-reqbot-go/internal/constants"
	"github.com/kapu/slack-reqbot-go/internal/health"
	"github.com/kapu/slack-reqbot-go/internal/server"
	"github.com/kapu/slack-reqbot-go/internal/service/ai"
	"github.com/kapu/slack-reqbot-go/internal/service/dedup"
	"github.com/kapu/slack-reqbot-go/internal/service/requirements"
	"github.com/kapu/slack-reqbot-go/internal/slack"
)

// BotRuntime 는 타입이다.
type BotRuntime struct {
	Config *config.Config
	Logger *slog.Logger

	Bot    *bot.Bot
	Socket *slack.SocketClient // 웹훅 전용 배포에서는 nil
	Dedup  *dedup.Store        // 비활성화 시 nil

	Router *gin.Engine
	Addr   string
	Server *http.Server
}

// BuildRuntime: 설정으로부터 전체 의존성 그래프를 수동 조립한다.
func BuildRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*BotRuntime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	health.Init(cfg.Version)

	gateway, err := ai.NewClient(cfg.AI.APIKey, cfg.AI.Model, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build model gateway: %w", err)
	}

	detector := requirements.NewDetector(gateway, logger)
	generator := requirements.NewGenerator(gateway, logger)
	slackClient := slack.NewClient(cfg.Slack.BotToken, cfg.Slack.AppToken, logger)

	deps := &bot.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Detector:  detector,
		Generator: generator,
		Formatter: adapter.NewDeliveryFormatter(),
		Sender:    slackClient,
	}

	var dedupStore *dedup.Store
	if cfg.DedupEnabled() {
		dedupStore, err = dedup.NewStore(dedup.Config{
			Host:     cfg.Valkey.Host,
			Port:     cfg.Valkey.Port,
			Password: cfg.Valkey.Password,
			DB:       cfg.Valkey.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect dedup store: %w", err)
		}
		deps.Dedup = dedupStore
	}

	reqBot, err := bot.NewBot(deps)
	if err != nil {
		if dedupStore != nil {
			dedupStore.Close()
		}
		return nil, fmt.Errorf("failed to build bot: %w", err)
	}

	handler := server.NewHandler(reqBot, reqBot, logger)
	router, err := ProvideRouter(ctx, cfg, logger, handler)
	if err != nil {
		if dedupStore != nil {
			dedupStore.Close()
		}
		return nil, err
	}

	addr := ProvideAddr(cfg)
	runtime := &BotRuntime{
		Config: cfg,
		Logger: logger,
		Bot:    reqBot,
		Dedup:  dedupStore,
		Router: router,
		Addr:   addr,
		Server: ProvideHTTPServer(addr, router),
	}
	if cfg.Slack.SocketMode {
		runtime.Socket = slack.NewSocketClient(slackClient, logger)
	}

	return runtime, nil
}

// Close - 런타임 리소스 정리 (캐시 연결 해제)
func (r *BotRuntime) Close() {
	if r == nil {
		return
	}
	if r.Dedup != nil {
		r.Dedup.Close()
	}
}

// Start: 봇, 소켓 수신 루프, HTTP 서버를 기동한다.
func (r *BotRuntime) Start(ctx context.Context, errCh chan<- error) error {
	if err := r.Bot.Start(ctx); err != nil {
		return err
	}

	if r.Socket != nil {
		go func() {
			if err := r.Socket.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("socket mode connection error: %w", err)
			}
		}()
		go r.consumeEvents(ctx)
		r.Logger.Info("Socket mode receiver started")
	}

	go func() {
		if err := r.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
	r.Logger.Info("HTTP server started", slog.String("addr", r.Addr))

	return nil
}

// consumeEvents: 소켓 이벤트 채널을 워커 풀로 소비한다.
// 이벤트 간 순서 보장이 없으므로 동시 처리해도 의미가 달라지지 않는다.
func (r *BotRuntime) consumeEvents(ctx context.Context) {
	workers := pool.New().WithMaxGoroutines(constants.BotConfig.EventWorkers)
	for event := range r.Socket.Events() {
		workers.Go(func() {
			r.Bot.HandleEvent(ctx, event)
		})
	}
	workers.Wait()
	r.Logger.Info("Event consumer drained")
}

// Shutdown: HTTP 서버와 봇을 순서대로 내린다.
func (r *BotRuntime) Shutdown(ctx context.Context) {
	if err := r.Server.Shutdown(ctx); err != nil {
		r.Logger.Error("HTTP server shutdown error", slog.Any("error", err))
	}
	r.Bot.Stop()
}

// Run: 종료 시그널 또는 치명적 에러가 발생할 때까지 봇을 실행한다.
func (r *BotRuntime) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	if err := r.Start(ctx, errCh); err != nil {
		return fmt.Errorf("failed to start runtime: %w", err)
	}
	r.Logger.Info("Bot running, waiting for signals...")

	select {
	case sig := <-sigCh:
		r.Logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-errCh:
		r.Logger.Error("Fatal runtime error", slog.Any("error", err))
	}

	r.Logger.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.AppTimeout.Shutdown)
	defer shutdownCancel()

	r.Shutdown(shutdownCtx)
	r.Logger.Info("Shutdown complete")
	return nil
}
