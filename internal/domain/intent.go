package domain

import (
	"github.com/kapu/slack-reqbot-go/internal/util"
)

// WorkRequestIntentType 는 타입이다.
type WorkRequestIntentType string

// WorkRequestIntentType 상수 목록.
const (
	// IntentFeatureRequest 는 상수다.
	IntentFeatureRequest      WorkRequestIntentType = "feature_request"
	IntentBugReport           WorkRequestIntentType = "bug_report"
	IntentModificationRequest WorkRequestIntentType = "modification_request"
	IntentGeneralInquiry      WorkRequestIntentType = "general_inquiry"
	IntentOther               WorkRequestIntentType = "other"
)

// NormalizeIntentType: 임의의 문자열을 알려진 의도 타입으로 정규화한다.
// 알 수 없는 값은 거부하지 않고 IntentOther로 강제 변환한다.
func NormalizeIntentType(raw string) WorkRequestIntentType {
	switch util.Normalize(raw) {
	case string(IntentFeatureRequest):
		return IntentFeatureRequest
	case string(IntentBugReport):
		return IntentBugReport
	case string(IntentModificationRequest):
		return IntentModificationRequest
	case string(IntentGeneralInquiry):
		return IntentGeneralInquiry
	case string(IntentOther):
		return IntentOther
	default:
		return IntentOther
	}
}

// DetectResult: 업무 요청 판별 결과.
// IntentType은 생성 시점에 항상 알려진 enum 멤버로 고정된다.
type DetectResult struct {
	IsWorkRequest bool
	IntentType    WorkRequestIntentType
}

// NewDetectResult: 판별 결과를 생성한다. intentType 정규화는 IsWorkRequest 값과
// 무관하게 무조건 수행되므로 생성은 실패하지 않는다.
func NewDetectResult(isWorkRequest bool, rawIntentType string) DetectResult {
	return DetectResult{
		IsWorkRequest: isWorkRequest,
		IntentType:    NormalizeIntentType(rawIntentType),
	}
}
