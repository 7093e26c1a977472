package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kapu/slack-reqbot-go/internal/config"
	"github.com/kapu/slack-reqbot-go/internal/constants"
	"github.com/kapu/slack-reqbot-go/internal/server"
)

// ProvideAddr: HTTP 서버가 리슨할 주소를 반환한다.
func ProvideAddr(cfg *config.Config) string {
	return fmt.Sprintf(":%d", cfg.Server.Port)
}

// ProvideHTTPServer: 헬스체크/이벤트 웹훅용 HTTP 서버 인스턴스를 생성한다.
func ProvideHTTPServer(addr string, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: constants.ServerTimeout.ReadHeader,
		ReadTimeout:       constants.ServerTimeout.Read,
		WriteTimeout:      constants.ServerTimeout.Write,
		IdleTimeout:       constants.ServerTimeout.Idle,
	}
}

// ProvideRouter: 헬스체크와 Slack 이벤트 웹훅을 서빙하는 Gin 라우터를 설정한다.
// /slack/events에는 서명 검증 미들웨어가 걸려 있어 비서명 요청은 401로 거부된다.
func ProvideRouter(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	handler *server.Handler,
) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if err := router.SetTrustedProxies(constants.ServerConfig.TrustedProxies); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	router.Use(gin.Recovery())
	router.Use(server.LoggerMiddleware(ctx, logger, "/healthz"))

	router.GET("/healthz", handler.Healthz)
	router.GET("/status", handler.Status)

	events := router.Group("/slack")
	events.Use(server.SignatureMiddleware(cfg.Slack.SigningSecret, nil))
	events.POST("/events", handler.Events)

	return router, nil
}
