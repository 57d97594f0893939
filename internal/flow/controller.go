package flow

import (
	"context"
	"log/slog"
	"time"

	"github.com/ymguan3-boop/line-bot-assistant/internal/mailer"
	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
	"github.com/ymguan3-boop/line-bot-assistant/internal/store"
	"github.com/ymguan3-boop/line-bot-assistant/internal/timeutil"
)

// CancelKeyword aborts any in-progress flow. It is checked before
// flow-specific dispatch, so it works at every step of every flow.
const CancelKeyword = "取消"

// SkipKeyword skips the optional description step of the add-event flow.
const SkipKeyword = "略過"

const cancelledReply = "❌ 操作已取消"

// Controller advances per-user conversation flows. Given an inbound text
// message it either dispatches to the command router (no state) or advances
// the user's in-progress flow by one step, producing the reply text and the
// resulting state transition.
type Controller struct {
	states *StateStore
	store  store.Store
	mailer mailer.Mailer
	now    func() time.Time
}

// NewController creates a flow controller. The mailer may be nil, in which
// case the email-export flow reports the feature as unavailable.
func NewController(states *StateStore, st store.Store, m mailer.Mailer) *Controller {
	return &Controller{
		states: states,
		store:  st,
		mailer: m,
		now:    func() time.Time { return time.Now().In(timeutil.Location) },
	}
}

// SetClock overrides the controller's time source. Used in tests.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// Advance processes one inbound text message for a user and returns the reply
// text. The user's whole read-advance-write cycle runs under a per-user lock.
func (c *Controller) Advance(ctx context.Context, userID, userName, message string) string {
	unlock := c.states.LockUser(userID)
	defer unlock()

	st, ok := c.states.Get(userID)
	if !ok {
		return c.route(ctx, userID, userName, message)
	}

	if message == CancelKeyword {
		slog.Info("Controller.Advance: flow cancelled", "user_id", userID, "action", st.Action, "step", st.Step)
		c.states.Clear(userID)
		return cancelledReply
	}

	slog.Debug("Controller.Advance: advancing flow", "user_id", userID, "action", st.Action, "step", st.Step)
	switch st.Action {
	case models.ActionAddEvent:
		return c.advanceAddEvent(userID, userName, message, st)
	case models.ActionQueryEvents:
		return c.advanceQueryEvents(userID, message)
	case models.ActionAddExpense:
		return c.advanceAddExpense(userID, userName, message, st)
	case models.ActionQueryExpenses:
		return c.advanceQueryExpenses(userID, message, st)
	case models.ActionSendEmail:
		return c.advanceSendEmail(ctx, userID, message)
	default:
		// Unknown action can only come from a stale state shape; drop it.
		slog.Error("Controller.Advance: unknown flow action, clearing state", "user_id", userID, "action", st.Action)
		c.states.Clear(userID)
		return c.route(ctx, userID, userName, message)
	}
}

// loadEvents reads the events collection, degrading to empty on failure.
func (c *Controller) loadEvents() []models.CalendarEvent {
	events, err := c.store.Events()
	if err != nil {
		slog.Error("Controller.loadEvents: read failed, using empty collection", "error", err)
		return nil
	}
	return events
}

// loadExpenses reads the expenses collection, degrading to empty on failure.
func (c *Controller) loadExpenses() []models.ExpenseEntry {
	expenses, err := c.store.Expenses()
	if err != nil {
		slog.Error("Controller.loadExpenses: read failed, using empty collection", "error", err)
		return nil
	}
	return expenses
}
