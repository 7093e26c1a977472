package domain

import (
	"fmt"
	"strings"
	"time"
)

// QuestionType 는 타입이다.
type QuestionType string

// QuestionType 상수 목록.
const (
	// QuestionMultipleChoice 는 상수다.
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionText           QuestionType = "text"
	QuestionNumber         QuestionType = "number"
)

// Question: 요구사항 구체화를 위한 개별 질문. 생성 후 불변이다.
type Question struct {
	ID       string
	Text     string
	Type     QuestionType
	Options  []string // multiple_choice에서만 의미 있음
	Required bool
}

// QuestionSet: 하나의 업무 요청에 대해 생성된 질문 목록.
// Questions의 순서는 생성 순서이며 전달 순서의 기준이 된다.
// 전달 완료 후 폐기되며 영속화하지 않는다.
type QuestionSet struct {
	Questions []Question
	SessionID string
	CreatedAt time.Time
}

// NewSessionID: 트리거가 된 스레드 앵커와 생성 시각으로 세션 ID를 만든다.
func NewSessionID(threadTS string, createdAt time.Time) string {
	anchor := strings.ReplaceAll(strings.TrimSpace(threadTS), ".", "-")
	if anchor == "" {
		anchor = "unknown"
	}
	return fmt.Sprintf("req-%s-%d", anchor, createdAt.Unix())
}
