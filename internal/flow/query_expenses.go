package flow

import (
	"strconv"
	"strings"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
	"github.com/ymguan3-boop/line-bot-assistant/internal/report"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

// Step numbers of the query-expenses flow. Step 2 is only reachable through
// the custom-range menu choice.
const (
	queryExpensesStepChoice = 1
	queryExpensesStepRange  = 2
)

const (
	queryExpensesPrompt        = "請選擇查詢方式:\n\n1. 本月花費\n2. 本週花費\n3. 今日花費\n4. 自訂日期區間\n\n請輸入數字 1-4"
	queryExpensesChoiceInvalid = "❌ 請輸入有效的選項(1-4)"
	queryExpensesRangePrompt   = "請輸入查詢日期區間:\n\n格式: YYYY/MM/DD - YYYY/MM/DD\n例如: 2026/01/01 - 2026/01/31"
	queryExpensesRangeInvalid  = "❌ 格式錯誤,請重新輸入\n格式: YYYY/MM/DD - YYYY/MM/DD"
)

// advanceQueryExpenses handles the query-expenses flow. Step 1 accepts a menu
// choice 1-4: the first three are predefined periods, 4 advances to a custom
// range step. An unparseable range at step 2 re-prompts rather than silently
// matching everything.
func (c *Controller) advanceQueryExpenses(userID, message string, st models.ConversationState) string {
	if st.Step == queryExpensesStepRange {
		start, end, _, _, ok := timeutil.ParseRange(message)
		if !ok {
			return queryExpensesRangeInvalid
		}
		c.states.Clear(userID)
		return report.ExpensesInRange(c.loadExpenses(), start, end, "自訂區間")
	}

	choice, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil {
		return queryExpensesChoiceInvalid
	}
	now := c.now()
	switch choice {
	case 1:
		start, end := timeutil.MonthRange(now)
		c.states.Clear(userID)
		return report.ExpensesInRange(c.loadExpenses(), start, end, "本月")
	case 2:
		start, end := timeutil.WeekRange(now)
		c.states.Clear(userID)
		return report.ExpensesInRange(c.loadExpenses(), start, end, "本週")
	case 3:
		start, end := timeutil.DayRange(now)
		c.states.Clear(userID)
		return report.ExpensesInRange(c.loadExpenses(), start, end, "今日")
	case 4:
		st.Step = queryExpensesStepRange
		c.states.Set(userID, st)
		return queryExpensesRangePrompt
	default:
		return queryExpensesChoiceInvalid
	}
}
