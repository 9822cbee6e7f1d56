package application

import (
	"fmt"
	"strings"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

const baseReplyPrompt = `당신은 네이버 스마트플레이스에서 사업장을 운영하는 사장님입니다.
고객의 리뷰에 대해 %s 톤으로 답변을 작성해야 합니다.

답변 작성 가이드라인:
1. 고객의 방문과 리뷰 작성에 대해 감사 인사를 표현하세요
2. 리뷰 내용에 대해 구체적으로 언급하세요
3. 긍정적인 리뷰에는 감사의 마음을 표현하세요
4. 부정적인 리뷰에는 진심 어린 사과와 개선 의지를 보여주세요
5. 답변 길이는 50-150자 정도로 적당히 작성하세요
6. 자연스러운 한국어로 작성하세요
7. 과도한 이모지나 특수문자는 사용하지 마세요

고객 리뷰:
%s

위 리뷰에 대한 답변을 작성해주세요:`

var businessTypeGuides = map[string]string{
	"음식점": "당신은 음식점을 운영하는 사장님입니다. 음식 맛, 서비스, 분위기에 대한 리뷰에 적절히 답변하세요.\n특히 음식의 맛이나 서비스에 대한 구체적인 언급이 있다면 그에 대해 감사하거나 개선하겠다는 의지를 보여주세요.",
	"카페":  "당신은 카페를 운영하는 사장님입니다. 커피 맛, 디저트, 분위기, 좌석에 대한 리뷰에 적절히 답변하세요.\n아늑한 분위기나 좋은 커피에 대한 언급이 있다면 감사 인사를 표현하세요.",
	"미용실": "당신은 미용실을 운영하는 사장님입니다. 시술 결과, 서비스, 가격에 대한 리뷰에 적절히 답변하세요.\n헤어 스타일이나 컷에 대한 만족도가 언급되면 그에 대해 구체적으로 감사 인사를 표현하세요.",
	"병원":  "당신은 병원을 운영하는 원장님입니다. 진료, 치료 결과, 직원 서비스에 대한 리뷰에 전문적이고 신중하게 답변하세요.\n의료진의 친절함이나 치료 효과에 대한 언급이 있다면 감사 인사를 표현하되, 의료적 조언은 피하세요.",
	"일반":  "고객의 리뷰 내용을 꼼꼼히 읽고 적절한 답변을 작성하세요.",
}

var toneGuides = map[string]string{
	"친절하고 정중한": "상냥하고 예의바른 표현을 사용하세요",
	"전문적인":     "전문성을 보여주되 친근함을 잃지 않도록 하세요",
	"캐주얼한":     "친근하고 편안한 말투를 사용하되 예의는 지키세요",
	"감사한":      "고객에 대한 감사함이 잘 드러나도록 표현하세요",
}

const truncationMarker = "..."

// BuildReplyPrompt renders the prompt for one review. A custom prompt takes
// precedence over the tone and business-type catalogue.
func BuildReplyPrompt(reviewText string, authorName string, cfg domain.ReplyConfig) string {
	if custom := strings.TrimSpace(cfg.CustomPrompt); custom != "" {
		prompt := cfg.CustomPrompt
		if authorName != "" {
			prompt = strings.ReplaceAll(prompt, domain.AuthorPlaceholder, authorName)
		}
		return fmt.Sprintf("%s\n\n리뷰:\n%s\n\n답변:", prompt, reviewText)
	}

	cfg = cfg.WithDefaults()
	businessGuide, ok := businessTypeGuides[cfg.BusinessType]
	if !ok {
		businessGuide = businessTypeGuides[domain.DefaultBusinessType]
	}
	toneGuide, ok := toneGuides[cfg.Tone]
	if !ok {
		toneGuide = toneGuides[domain.DefaultTone]
	}

	var b strings.Builder
	fmt.Fprintf(&b, baseReplyPrompt, cfg.Tone, reviewText)
	fmt.Fprintf(&b, "\n\n추가 가이드:\n%s\n%s", businessGuide, toneGuide)
	if storeName := strings.TrimSpace(cfg.StoreName); storeName != "" {
		fmt.Fprintf(&b, "\n\n사업장명: %s", storeName)
	}

	return b.String()
}

// CleanReplyText trims the model output, drops one layer of wrapping quotes,
// removes blank lines and caps the result at domain.MaxReplyLength runes.
func CleanReplyText(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}

	for _, quote := range []string{`"`, `'`} {
		if len(cleaned) >= 2 && strings.HasPrefix(cleaned, quote) && strings.HasSuffix(cleaned, quote) {
			cleaned = cleaned[1 : len(cleaned)-1]
			break
		}
	}

	lines := strings.Split(cleaned, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	cleaned = strings.Join(kept, "\n")

	runes := []rune(cleaned)
	if len(runes) > domain.MaxReplyLength {
		keep := domain.MaxReplyLength - len(truncationMarker)
		cleaned = string(runes[:keep]) + truncationMarker
	}

	return cleaned
}
