package flow

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

// Step numbers of the add-event flow.
const (
	addEventStepTitle       = 1
	addEventStepDate        = 2
	addEventStepDescription = 3
)

const (
	addEventStartPrompt       = "📅 請輸入行程標題:"
	addEventDatePrompt        = "📅 請輸入日期\n格式: YYYY/MM/DD\n例如: 2026/01/15"
	addEventDateInvalidReply  = "❌ 日期格式錯誤,請重新輸入\n格式: YYYY/MM/DD"
	addEventDescriptionPrompt = "📝 請輸入行程描述或備註\n(可選,直接輸入「略過」跳過)"
)

// advanceAddEvent handles one step of the 3-step add-event flow: title, date,
// optional description. The title and description are stored verbatim; the
// date is validated against the date grammar but stored as entered.
func (c *Controller) advanceAddEvent(userID, userName, message string, st models.ConversationState) string {
	switch st.Step {
	case addEventStepTitle:
		st.Event.Title = message
		st.Step = addEventStepDate
		c.states.Set(userID, st)
		return addEventDatePrompt

	case addEventStepDate:
		if _, ok := timeutil.ParseDateIn(message); !ok {
			return addEventDateInvalidReply
		}
		st.Event.Date = message
		st.Step = addEventStepDescription
		c.states.Set(userID, st)
		return addEventDescriptionPrompt

	case addEventStepDescription:
		description := message
		if message == SkipKeyword {
			description = ""
		}

		now := c.now()
		event := models.CalendarEvent{
			ID:          now.UnixMilli(),
			User:        userName,
			UserID:      userID,
			Title:       st.Event.Title,
			Date:        st.Event.Date,
			Description: description,
			CreatedAt:   timeutil.FormatDatetime(now),
		}
		if err := c.store.AppendEvent(event); err != nil {
			slog.Error("Controller.advanceAddEvent: persist failed", "error", err, "user_id", userID)
		}
		c.states.Clear(userID)
		slog.Info("Controller.advanceAddEvent: event created", "user_id", userID, "event_id", event.ID)

		var b strings.Builder
		b.WriteString("✅ 行程已新增!\n\n")
		fmt.Fprintf(&b, "📌 %s\n", event.Title)
		fmt.Fprintf(&b, "📅 %s\n", event.Date)
		if description != "" {
			fmt.Fprintf(&b, "📝 %s\n", description)
		}
		b.WriteString("\n輸入「查詢行程」可查看所有行程")
		return b.String()

	default:
		slog.Error("Controller.advanceAddEvent: unknown step, clearing state", "user_id", userID, "step", st.Step)
		c.states.Clear(userID)
		return cancelledReply
	}
}
