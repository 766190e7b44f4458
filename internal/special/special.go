// Package special short-circuits a fixed set of conversational queries with
// canned responses, so they never reach the RAG backend.
package special

import "regexp"

// Category identifies a special-query category.
type Category string

// Known categories, in match priority order.
const (
	AboutBot         Category = "ABOUT_BOT"
	AboutCreator     Category = "ABOUT_CREATOR"
	ErrorSupport     Category = "ERROR_SUPPORT"
	UsageGuide       Category = "USAGE_GUIDE"
	Greeting         Category = "GREETING"
	Suggestions      Category = "SUGGESTIONS"
	ThanksOrFeedback Category = "THANKS_OR_FEEDBACK"
)

type entry struct {
	category Category
	patterns []*regexp.Regexp
	response string
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile("(?i)"+pattern))
	}
	return compiled
}

// Categories are matched in insertion order; within a category, pattern order.
var entries = []entry{
	{
		category: AboutBot,
		patterns: compile(
			`chatbot này là gì`,
			`bot này là gì`,
			`đây là chatbot gì`,
			`giới thiệu về chatbot`,
			`bạn là (gì|ai)`,
			`cho mình hỏi về chatbot`,
		),
		response: "🤖 Xin chào! Tôi là chatbot RAG (Retrieval-Augmented Generation) được phát triển dành riêng cho Trường Đại học Vinh.\n\n📚 Tôi giúp bạn tìm kiếm thông tin về quy chế, quy định, thông báo và các tài liệu quan trọng của trường.\n\n🔍 Hãy đặt câu hỏi, tôi sẽ cố gắng cung cấp câu trả lời chính xác nhất!",
	},
	{
		category: AboutCreator,
		patterns: compile(
			`ai (tạo|phát triển|làm|viết) ra bạn`,
			`ai là người (tạo|phát triển|làm|viết)`,
			`chatbot này do ai`,
			`người (tạo|phát triển|làm|viết)`,
		),
		response: "👨‍💻 Chatbot này được nghiên cứu và phát triển bởi Đặng Ngọc Anh (Penguin🐧) cùng nhóm Công nghệ Thông tin của Trường Đại học Vinh.\n\n🦆 Penguin luôn sẵn sàng cải tiến chatbot để hỗ trợ bạn tốt hơn!\n\n📞 Nếu bạn muốn biết thêm thông tin hoặc đóng góp ý kiến, vui lòng liên hệ với Phòng Công nghệ Thông tin của trường.",
	},
	{
		category: ErrorSupport,
		patterns: compile(
			`gặp lỗi`,
			`không hoạt động`,
			`bị lỗi`,
			`lỗi liên hệ`,
			`liên hệ ở đâu`,
			`liên hệ với ai`,
			`hỗ trợ ở đâu`,
		),
		response: "⚠️ Nếu bạn gặp sự cố khi sử dụng chatbot, vui lòng liên hệ với bộ phận hỗ trợ theo các cách sau:\n\n📧 Email: support@vinhuni.edu.vn\n📞 Hotline: [Số hotline hỗ trợ]\n🏢 Trực tiếp tại Phòng Công nghệ Thông tin - Tầng X, Tòa nhà Y, Trường Đại học Vinh.",
	},
	{
		category: UsageGuide,
		patterns: compile(
			`hướng dẫn sử dụng`,
			`sử dụng như thế nào`,
			`cách sử dụng`,
			`dùng như thế nào`,
			`dùng sao`,
		),
		response: "📒 Hướng dẫn sử dụng chatbot:\n\n1️⃣ Nhập câu hỏi của bạn một cách rõ ràng và cụ thể.\n2️⃣ Chọn tập tài liệu liên quan trong thanh điều hướng bên trái (nếu có).\n3️⃣ Điều chỉnh các tùy chọn nâng cao để có kết quả chính xác hơn.\n4️⃣ Đọc kỹ các trích dẫn từ tài liệu đi kèm để kiểm chứng thông tin.\n\n🛠️ Nếu cần thêm hỗ trợ, hãy liên hệ với đội ngũ kỹ thuật của chúng tôi!",
	},
	{
		category: Greeting,
		patterns: compile(
			`xin chào`,
			`chào bạn`,
			`hello`,
			`hi bot`,
			`bắt đầu`,
			`start`,
		),
		response: "👋 Xin chào bạn! Tôi là trợ lý ảo của Trường Đại học Vinh. Bạn muốn tôi giúp gì hôm nay? 📚",
	},
	{
		category: Suggestions,
		patterns: compile(
			`không biết hỏi gì`,
			`hỏi gì được`,
			`bạn giúp được gì`,
			`gợi ý câu hỏi`,
			`tư vấn giúp`,
		),
		response: "🤖 Tôi có thể giúp bạn tra cứu thông tin về:\n- 📘 Quy chế đào tạo, học phí, điểm thi\n- 🏫 Thông tin phòng ban, giảng viên\n- 🗓️ Lịch học, lịch thi\n\nBạn có thể hỏi ví dụ như:\n• *“Làm lại môn có tốn học phí không?”*\n• *“Liên hệ phòng đào tạo thế nào?”*\n• *“Cách tính điểm học phần là gì?”*",
	},
	{
		category: ThanksOrFeedback,
		patterns: compile(
			`cảm ơn`,
			`thanks`,
			`tốt quá`,
			`hay ghê`,
			`giỏi quá`,
			`yêu bot`,
		),
		response: "🥰 Cảm ơn bạn nhiều lắm! Mình sẽ tiếp tục cố gắng để hỗ trợ bạn tốt hơn mỗi ngày. Nếu còn gì cần, cứ hỏi nhé!",
	},
}

// Result of a special-query check.
type Result struct {
	IsSpecial bool
	Category  Category
	Response  string
}

// CheckQuery matches the given text against the category table, first match
// wins. It is a total function with no side effects.
func CheckQuery(text string) Result {
	for _, e := range entries {
		for _, pattern := range e.patterns {
			if pattern.MatchString(text) {
				return Result{IsSpecial: true, Category: e.category, Response: e.response}
			}
		}
	}
	return Result{}
}

// Response returns the canned response for a category. Used by tests and by
// surfaces that want to display a canned answer directly.
func Response(category Category) (string, bool) {
	for _, e := range entries {
		if e.category == category {
			return e.response, true
		}
	}
	return "", false
}
