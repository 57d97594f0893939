package flow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
	"github.com/ymguan3-boop/line-bot-assistant/internal/report"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

const menuReply = "📋 功能選單\n\n" +
	"📅 行程管理:\n" +
	"• 新增行程 - 記錄重大行程\n" +
	"• 查詢行程 - 查詢特定日期區間\n" +
	"• 所有行程 - 查看所有行程\n\n" +
	"💰 花費管理:\n" +
	"• 記帳 - 記錄花費\n" +
	"• 查詢花費 - 查詢花費明細\n" +
	"• 花費統計 - 查看分類統計\n\n" +
	"📧 其他功能:\n" +
	"• 轉寄對話 - 寄送對話紀錄\n" +
	"• 取消 - 取消目前操作\n" +
	"• 功能 - 顯示此選單"

// route is an ordered (predicate, handler) pair. Trigger phrases are not
// prefix-disjoint (轉寄對話 also contains 轉寄), so evaluation order is the
// dispatch contract: first match wins.
type route struct {
	match  func(message, lower string) bool
	handle func(c *Controller, userID, userName string) string
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// startFlow registers a fresh state for the user and returns the opening prompt.
func startFlow(action models.Action, prompt string) func(c *Controller, userID, userName string) string {
	return func(c *Controller, userID, _ string) string {
		slog.Info("Controller.route: starting flow", "user_id", userID, "action", action)
		c.states.Set(userID, models.ConversationState{Action: action, Step: 1})
		return prompt
	}
}

var routes = []route{
	{
		match:  func(m, _ string) bool { return containsAny(m, "新增行程", "記錄行程") },
		handle: startFlow(models.ActionAddEvent, addEventStartPrompt),
	},
	{
		match:  func(m, _ string) bool { return strings.Contains(m, "查詢行程") },
		handle: startFlow(models.ActionQueryEvents, queryEventsPrompt),
	},
	{
		match: func(m, _ string) bool { return strings.Contains(m, "所有行程") },
		handle: func(c *Controller, _, _ string) string {
			return report.AllEvents(c.loadEvents())
		},
	},
	{
		match:  func(m, _ string) bool { return containsAny(m, "記帳", "記錄花費") },
		handle: startFlow(models.ActionAddExpense, addExpenseStartPrompt),
	},
	{
		match:  func(m, _ string) bool { return containsAny(m, "查詢花費", "花費查詢") },
		handle: startFlow(models.ActionQueryExpenses, queryExpensesPrompt),
	},
	{
		match: func(m, _ string) bool { return strings.Contains(m, "花費統計") },
		handle: func(c *Controller, _, _ string) string {
			start, end := timeutil.MonthRange(c.now())
			return report.CategoryStats(c.loadExpenses(), start, end, "本月")
		},
	},
	{
		match:  func(m, _ string) bool { return containsAny(m, "轉寄對話", "轉寄") },
		handle: startFlow(models.ActionSendEmail, sendEmailPrompt),
	},
	{
		match: func(m, lower string) bool {
			return containsAny(m, "功能", "幫助") || lower == "help" || m == "?"
		},
		handle: func(_ *Controller, _, _ string) string { return menuReply },
	},
}

// route keyword-matches a fresh message against the command table, falling
// through to the canned-reply classifier when nothing matches.
func (c *Controller) route(ctx context.Context, userID, userName, message string) string {
	lower := strings.ToLower(message)
	for _, r := range routes {
		if r.match(message, lower) {
			return r.handle(c, userID, userName)
		}
	}
	return autoReply(message, lower)
}

// autoReply is the canned-response classifier for non-command messages:
// greeting, thanks, service-hours, then a default advertising the commands.
func autoReply(message, lower string) string {
	switch {
	case containsAny(lower, "你好", "哈囉") || lower == "hi" || lower == "hello":
		return "您好!我是您的智能助手 😊\n\n輸入「功能」查看可用功能"
	case containsAny(lower, "謝謝", "感謝"):
		return "不客氣!很高興能幫助您 😊\n有其他需要隨時告訴我"
	case containsAny(lower, "營業時間", "服務時間"):
		return "我是 24/7 全天候為您服務的智能助手!\n隨時都可以使用記帳、行程管理等功能 😊"
	default:
		return "我收到您的訊息了!\n\n如需使用功能,請輸入:\n• 「功能」- 查看功能選單\n• 「記帳」- 記錄花費\n• 「新增行程」- 記錄行程\n• 「轉寄對話」- 匯出紀錄"
	}
}
