package flow

import (
	"github.com/ymguan3-boop/line-bot-assistant/internal/report"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

// ThisMonthKeyword selects the current calendar month as the query window.
const ThisMonthKeyword = "本月"

const (
	queryEventsPrompt       = "請輸入查詢日期區間:\n\n格式: YYYY/MM/DD - YYYY/MM/DD\n例如: 2026/01/01 - 2026/01/31\n\n或直接輸入「本月」查詢本月行程"
	queryEventsInvalidReply = "❌ 格式錯誤,請重新輸入\n格式: YYYY/MM/DD - YYYY/MM/DD\n或輸入「本月」"
)

// advanceQueryEvents handles the single step of the query-events flow: the
// literal 本月 keyword or an explicit "date - date" range. Unrecognized input
// re-prompts with the state unchanged.
func (c *Controller) advanceQueryEvents(userID, message string) string {
	start, end, startText, endText, ok := timeutil.ParseRange(message)
	if !ok {
		if message != ThisMonthKeyword {
			return queryEventsInvalidReply
		}
		start, end = timeutil.MonthRange(c.now())
		startText, endText = timeutil.FormatDate(start), timeutil.FormatDate(end)
	}

	c.states.Clear(userID)
	return report.EventsInRange(c.loadEvents(), start, end, startText, endText)
}
