package ai

// Role 는 타입이다.
type Role string

// Role 상수 목록.
const (
	// RoleSystem 는 상수다.
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn: 모델 호출에 포함되는 단일 대화 턴. 생성 후 불변이다.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// MessageContext: 모델 호출에 선택적으로 첨부되는 컨텍스트.
// 비어있는 필드는 턴 시퀀스에서 생략된다.
type MessageContext struct {
	SystemPrompt        string
	ConversationHistory []Turn
}

// Response: 모델 응답. Content는 항상 문자열이며, 백엔드가 텍스트를
// 반환하지 않으면 빈 문자열이다 (null/absent 없음).
type Response struct {
	Content string
}
