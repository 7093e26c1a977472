package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func signBody(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func newSignedRequest(secret, body string, issued time.Time) *http.Request {
	timestamp := strconv.FormatInt(issued.Unix(), 10)
	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", signBody(secret, timestamp, []byte(body)))
	return req
}

func newSignatureTestRouter(secret string, now time.Time) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	var seenBody string
	router.POST("/slack/events", SignatureMiddleware(secret, func() time.Time { return now }), func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		seenBody = string(raw)
		c.Status(http.StatusOK)
	})
	return router, &seenBody
}

func TestSignatureMiddleware_ValidSignaturePassesBodyThrough(t *testing.T) {
	now := time.Unix(1756600000, 0)
	router, seenBody := newSignatureTestRouter("secret", now)

	body := `{"type":"url_verification"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, newSignedRequest("secret", body, now))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if *seenBody != body {
		t.Fatalf("expected handler to see original body, got %q", *seenBody)
	}
}

func TestSignatureMiddleware_WrongSecretRejected(t *testing.T) {
	now := time.Unix(1756600000, 0)
	router, _ := newSignatureTestRouter("secret", now)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, newSignedRequest("other-secret", `{}`, now))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestSignatureMiddleware_TamperedBodyRejected(t *testing.T) {
	now := time.Unix(1756600000, 0)
	router, _ := newSignatureTestRouter("secret", now)

	req := newSignedRequest("secret", `{"a":1}`, now)
	req.Body = io.NopCloser(strings.NewReader(`{"a":2}`))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestSignatureMiddleware_StaleTimestampRejected(t *testing.T) {
	now := time.Unix(1756600000, 0)
	router, _ := newSignatureTestRouter("secret", now)

	// 서명 자체는 유효하지만 허용 시각 범위를 벗어남
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, newSignedRequest("secret", `{}`, now.Add(-10*time.Minute)))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestSignatureMiddleware_MissingHeadersRejected(t *testing.T) {
	now := time.Unix(1756600000, 0)
	router, _ := newSignatureTestRouter("secret", now)

	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(`{}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}
