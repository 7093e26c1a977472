// Package health: 프로세스 상태 스냅샷
package health

import (
	"runtime"
	"sync"
	"time"
)

var (
	startTime time.Time
	version   = "dev"
	initOnce  sync.Once
)

// Init: 서비스 시작 시 한 번 호출한다 (버전 기록, uptime 기준점)
func Init(v string) {
	initOnce.Do(func() {
		startTime = time.Now()
		if v != "" {
			version = v
		}
	})
}

// Snapshot: /healthz 응답 본문
type Snapshot struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
	Goroutines int    `json:"goroutines"`
}

// Current: 현재 프로세스 상태를 반환한다
func Current() Snapshot {
	return Snapshot{
		Status:     "ok",
		Version:    version,
		Uptime:     Uptime(),
		Goroutines: runtime.NumGoroutine(),
	}
}

// Uptime: 기동 후 경과 시간 (사람이 읽는 형식)
func Uptime() string {
	return time.Since(startTime).Round(time.Second).String()
}
