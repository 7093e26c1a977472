package server

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kapu/slack-reqbot-go/internal/constants"
)

// SignatureMiddleware: Slack v0 서명 검증 미들웨어.
// 본문을 읽어 서명을 확인한 뒤, 핸들러가 다시 읽을 수 있도록 복원한다.
// 타임스탬프가 허용 범위를 벗어나면 재전송 공격으로 간주하고 거부한다.
func SignatureMiddleware(signingSecret string, now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, constants.ServerConfig.MaxEventBody))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		timestamp := c.GetHeader("X-Slack-Request-Timestamp")
		signature := c.GetHeader("X-Slack-Signature")
		if err := verifySlackSignature(signingSecret, timestamp, signature, body, now()); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}

		c.Next()
	}
}

// verifySlackSignature: v0=HMAC-SHA256("v0:<ts>:<body>") 서명을 검증한다.
func verifySlackSignature(secret, timestamp, signature string, body []byte, now time.Time) error {
	seconds, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid request timestamp: %q", timestamp)
	}

	age := now.Sub(time.Unix(seconds, 0))
	if age < 0 {
		age = -age
	}
	if age > constants.SlackConfig.SignatureMaxAge {
		return fmt.Errorf("request timestamp outside allowed window: %s", age)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}
