package flow

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
	"github.com/ymguan3-boop/line-bot-assistant/internal/report"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

// Step numbers of the add-expense flow.
const (
	addExpenseStepItem     = 1
	addExpenseStepAmount   = 2
	addExpenseStepCategory = 3
)

const (
	addExpenseStartPrompt        = "💰 請輸入消費項目\n例如: 午餐"
	addExpenseAmountPrompt       = "💰 請輸入金額\n例如: 150"
	addExpenseAmountInvalidReply = "❌ 請輸入有效的金額(數字)"
	addExpenseCategoryPrompt     = "📂 請選擇類別:\n\n1. 飲食\n2. 交通\n3. 娛樂\n4. 購物\n5. 生活\n6. 其他\n\n請輸入數字 1-6"
	addExpenseCategoryInvalid    = "❌ 請輸入有效的類別編號(1-6)"
)

// advanceAddExpense handles one step of the 3-step add-expense flow: item,
// positive amount, category chosen by menu number.
func (c *Controller) advanceAddExpense(userID, userName, message string, st models.ConversationState) string {
	switch st.Step {
	case addExpenseStepItem:
		st.Expense.Item = message
		st.Step = addExpenseStepAmount
		c.states.Set(userID, st)
		return addExpenseAmountPrompt

	case addExpenseStepAmount:
		amount, err := strconv.ParseFloat(strings.TrimSpace(message), 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
			return addExpenseAmountInvalidReply
		}
		st.Expense.Amount = amount
		st.Step = addExpenseStepCategory
		c.states.Set(userID, st)
		return addExpenseCategoryPrompt

	case addExpenseStepCategory:
		choice, err := strconv.Atoi(strings.TrimSpace(message))
		if err != nil {
			return addExpenseCategoryInvalid
		}
		category, err := models.CategoryByIndex(choice)
		if err != nil {
			return addExpenseCategoryInvalid
		}

		now := c.now()
		expense := models.ExpenseEntry{
			ID:       now.UnixMilli(),
			User:     userName,
			UserID:   userID,
			Item:     st.Expense.Item,
			Amount:   st.Expense.Amount,
			Category: category,
			Date:     timeutil.FormatDate(now),
			Datetime: timeutil.FormatDatetime(now),
		}
		if err := c.store.AppendExpense(expense); err != nil {
			slog.Error("Controller.advanceAddExpense: persist failed", "error", err, "user_id", userID)
		}
		c.states.Clear(userID)
		slog.Info("Controller.advanceAddExpense: expense created", "user_id", userID, "expense_id", expense.ID, "category", category)

		var b strings.Builder
		b.WriteString("✅ 花費已記錄!\n\n")
		fmt.Fprintf(&b, "📝 %s\n", expense.Item)
		fmt.Fprintf(&b, "💰 NT$ %s\n", report.FormatAmount(expense.Amount))
		fmt.Fprintf(&b, "📂 %s\n", expense.Category)
		fmt.Fprintf(&b, "📅 %s\n", expense.Datetime)
		b.WriteString("\n輸入「查詢花費」可查看明細")
		return b.String()

	default:
		slog.Error("Controller.advanceAddExpense: unknown step, clearing state", "user_id", userID, "step", st.Step)
		c.states.Clear(userID)
		return cancelledReply
	}
}
