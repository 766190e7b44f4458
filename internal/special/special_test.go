package special

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckQueryAboutBot(t *testing.T) {
	result := CheckQuery("chatbot này là gì")
	require.True(t, result.IsSpecial)
	assert.Equal(t, AboutBot, result.Category)

	expected, ok := Response(AboutBot)
	require.True(t, ok)
	assert.Equal(t, expected, result.Response)
}

func TestCheckQueryCaseInsensitive(t *testing.T) {
	result := CheckQuery("HƯỚNG DẪN SỬ DỤNG giúp mình với")
	require.True(t, result.IsSpecial)
	assert.Equal(t, UsageGuide, result.Category)
}

func TestCheckQueryMatchesEveryCategory(t *testing.T) {
	cases := map[string]Category{
		"bạn là ai":           AboutBot,
		"chatbot này do ai":   AboutCreator,
		"mình đang gặp lỗi":   ErrorSupport,
		"cách sử dụng ra sao": UsageGuide,
		"xin chào":            Greeting,
		"không biết hỏi gì":   Suggestions,
		"cảm ơn nhiều":        ThanksOrFeedback,
	}
	for query, category := range cases {
		result := CheckQuery(query)
		require.True(t, result.IsSpecial, "query %q", query)
		assert.Equal(t, category, result.Category, "query %q", query)
	}
}

func TestCheckQueryFirstMatchWins(t *testing.T) {
	// "bạn là gì" matches ABOUT_BOT which precedes GREETING in the table,
	// even when a greeting pattern is also present in the text.
	result := CheckQuery("xin chào, bạn là gì vậy")
	require.True(t, result.IsSpecial)
	assert.Equal(t, AboutBot, result.Category)
}

func TestCheckQueryNoMatch(t *testing.T) {
	result := CheckQuery("học phí kỳ này là bao nhiêu?")
	assert.False(t, result.IsSpecial)
	assert.Empty(t, result.Response)
}

func TestCheckQueryEmptyInput(t *testing.T) {
	result := CheckQuery("")
	assert.False(t, result.IsSpecial)
}
