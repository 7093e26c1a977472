package adapter

// 사용자에게 노출되는 고정 문구 모음.

const (
	// MsgIntro: 질문 전달 시퀀스의 첫 메시지.
	MsgIntro = "📋 업무 요청을 확인했습니다. 요구사항을 구체화하기 위해 몇 가지 질문을 드릴게요."

	// MsgMultipleChoiceHint: 객관식 질문의 답변 안내.
	MsgMultipleChoiceHint = "번호 또는 자유 텍스트로 답변해 주세요."

	// MsgNumberHint: 수치형 질문의 답변 예시 안내.
	MsgNumberHint = "(예: 10 또는 25%)"

	// MsgTextHint: 서술형 질문의 답변 안내.
	MsgTextHint = "자유롭게 답변해 주세요."

	// MsgSummaryFormat: 마지막 요약 메시지. 세션 ID를 그대로 포함한다.
	MsgSummaryFormat = "🗂️ 세션 ID: %s\n모든 질문에 답변해 주시면 요구사항 정리가 완료됩니다."

	// MsgFallback: 처리 중 오류가 발생했을 때 스레드에 1회 전송되는 안내.
	MsgFallback = "❌ 죄송합니다. 일시적인 문제가 발생했습니다. 잠시 후 다시 시도해주세요."
)
