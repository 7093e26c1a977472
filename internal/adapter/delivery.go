package adapter

import (
	"fmt"
	"strings"

	"github.com/kapu/slack-reqbot-go/internal/domain"
)

// DeliveryFormatter: 질문 목록을 순서가 보장된 발신 메시지 시퀀스로 렌더링하는 포맷터.
// 순수 렌더링만 담당하며 전송은 하지 않는다.
type DeliveryFormatter struct{}

// NewDeliveryFormatter: 새로운 DeliveryFormatter 인스턴스를 생성한다.
func NewDeliveryFormatter() *DeliveryFormatter {
	return &DeliveryFormatter{}
}

// RenderDelivery: 질문 세트를 [인트로] + [질문 1..N] + [요약] 시퀀스로 렌더링한다.
// 모든 페이로드는 같은 채널과 스레드 앵커를 가지며, 질문 순서는
// questionSet.Questions 순서를 그대로 따른다.
func (f *DeliveryFormatter) RenderDelivery(questionSet *domain.QuestionSet, channel, threadTS string) []domain.OutboundMessage {
	messages := make([]domain.OutboundMessage, 0, len(questionSet.Questions)+2)

	emit := func(text string) {
		messages = append(messages, domain.OutboundMessage{
			Channel:  channel,
			ThreadTS: threadTS,
			Text:     text,
		})
	}

	emit(MsgIntro)

	for idx, question := range questionSet.Questions {
		emit(f.renderQuestion(idx+1, question))
	}

	emit(fmt.Sprintf(MsgSummaryFormat, questionSet.SessionID))

	return messages
}

// renderQuestion: 질문 타입별 렌더링을 수행한다.
// 알 수 없는 타입은 서술형과 동일하게 처리한다.
func (f *DeliveryFormatter) renderQuestion(seq int, question domain.Question) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Q%d. %s", seq, question.Text))

	switch question.Type {
	case domain.QuestionMultipleChoice:
		for optIdx, option := range question.Options {
			builder.WriteString(fmt.Sprintf("\n%d. %s", optIdx+1, option))
		}
		builder.WriteString("\n" + MsgMultipleChoiceHint)
	case domain.QuestionNumber:
		builder.WriteString(" " + MsgNumberHint)
	default:
		builder.WriteString("\n" + MsgTextHint)
	}

	return builder.String()
}
