package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

func TestBuildReplyPromptDefaults(t *testing.T) {
	t.Parallel()

	prompt := BuildReplyPrompt("맛있어요", "Kim", domain.ReplyConfig{})

	assert.Contains(t, prompt, "친절하고 정중한 톤으로")
	assert.Contains(t, prompt, "고객 리뷰:\n맛있어요\n")
	assert.Contains(t, prompt, "추가 가이드:\n"+businessTypeGuides["일반"]+"\n"+toneGuides["친절하고 정중한"])
	assert.NotContains(t, prompt, "사업장명")
}

func TestBuildReplyPromptCatalogue(t *testing.T) {
	t.Parallel()

	prompt := BuildReplyPrompt("커피가 좋아요", "", domain.ReplyConfig{
		Tone:         "캐주얼한",
		BusinessType: "카페",
		StoreName:    "행복카페",
	})

	assert.Contains(t, prompt, "캐주얼한 톤으로")
	assert.Contains(t, prompt, businessTypeGuides["카페"])
	assert.Contains(t, prompt, toneGuides["캐주얼한"])
	assert.True(t, strings.HasSuffix(prompt, "\n\n사업장명: 행복카페"))
}

func TestBuildReplyPromptUnknownCatalogueEntriesFallBack(t *testing.T) {
	t.Parallel()

	prompt := BuildReplyPrompt("좋아요", "", domain.ReplyConfig{
		Tone:         "엄격한",
		BusinessType: "세탁소",
	})

	assert.Contains(t, prompt, "엄격한 톤으로")
	assert.Contains(t, prompt, businessTypeGuides["일반"])
	assert.Contains(t, prompt, toneGuides["친절하고 정중한"])
}

func TestBuildReplyPromptCustom(t *testing.T) {
	t.Parallel()

	cfg := domain.ReplyConfig{CustomPrompt: "{작성자}님께 짧게 답하세요."}

	assert.Equal(t, "Kim님께 짧게 답하세요.\n\n리뷰:\n좋아요\n\n답변:", BuildReplyPrompt("좋아요", "Kim", cfg))
	assert.Equal(t, "{작성자}님께 짧게 답하세요.\n\n리뷰:\n좋아요\n\n답변:", BuildReplyPrompt("좋아요", "", cfg))
}

func TestCleanReplyText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "   ", want: ""},
		{name: "trims", raw: "  감사합니다  ", want: "감사합니다"},
		{name: "double quotes", raw: `"감사합니다"`, want: "감사합니다"},
		{name: "single quotes", raw: `'감사합니다'`, want: "감사합니다"},
		{name: "one layer only", raw: `""감사합니다""`, want: `"감사합니다"`},
		{name: "mismatched quotes kept", raw: `"감사합니다'`, want: `"감사합니다'`},
		{name: "blank lines dropped", raw: "첫 줄\n\n   \n  둘째 줄  ", want: "첫 줄\n둘째 줄"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CleanReplyText(tt.raw))
		})
	}
}

func TestCleanReplyTextTruncatesByRune(t *testing.T) {
	t.Parallel()

	cleaned := CleanReplyText(strings.Repeat("가", 300))

	assert.Len(t, []rune(cleaned), domain.MaxReplyLength)
	assert.True(t, strings.HasSuffix(cleaned, "..."))
	assert.Equal(t, strings.Repeat("가", 247)+"...", cleaned)
}

func TestCleanReplyTextIsIdempotentWithoutNestedQuotes(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`"감사합니다.\n\n또 오세요"`,
		strings.Repeat("abc ", 100),
		"  단정한 답변  ",
	}
	for _, input := range inputs {
		once := CleanReplyText(input)
		assert.Equal(t, once, CleanReplyText(once))
	}
}
