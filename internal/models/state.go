// Package models defines conversation flow state structures.
package models

// Action identifies which multi-step flow a user is currently in.
type Action string

const (
	// ActionAddEvent is the 3-step calendar event creation flow.
	ActionAddEvent Action = "add_event"
	// ActionQueryEvents is the date-range event query flow.
	ActionQueryEvents Action = "query_events"
	// ActionAddExpense is the 3-step expense recording flow.
	ActionAddExpense Action = "add_expense"
	// ActionQueryExpenses is the period/range expense query flow.
	ActionQueryExpenses Action = "query_expenses"
	// ActionSendEmail is the conversation export flow.
	ActionSendEmail Action = "send_email"
)

// EventDraft accumulates add-event inputs across steps.
type EventDraft struct {
	Title string
	Date  string
}

// ExpenseDraft accumulates add-expense inputs across steps.
type ExpenseDraft struct {
	Item   string
	Amount float64
}

// ConversationState is the ephemeral in-memory state of one user's
// in-progress flow. At most one state exists per user; its presence means the
// user's next text message is flow input rather than a command.
type ConversationState struct {
	Action  Action
	Step    int
	Event   EventDraft   // populated only for ActionAddEvent
	Expense ExpenseDraft // populated only for ActionAddExpense
}
