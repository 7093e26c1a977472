package ai

import "context"

// Gateway 는 언어 모델 단건 호출 인터페이스다.
// 테스트에서 stub 구현을 주입할 수 있도록 한다.
type Gateway interface {
	// SendMessage 는 메시지와 선택적 컨텍스트로 모델을 한 번 호출한다.
	SendMessage(ctx context.Context, message string, msgCtx *MessageContext) (*Response, error)
}

// Client가 Gateway 인터페이스를 구현하는지 컴파일 타임 확인
var _ Gateway = (*Client)(nil)
