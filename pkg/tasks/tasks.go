package tasks

import "github.com/hibiken/asynq"

const (
	TypeRefreshRates   = "rates:refresh"
	TypeSweepReminders = "reminders:sweep"
	TypeRearmReminders = "reminders:rearm"
)

// NewRefreshRatesTask updates the exchange rate table from the external
// provider.
func NewRefreshRatesTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeRefreshRates, nil), nil
}

// NewSweepRemindersTask checks every armed reminder against its
// subscription's due date and fires the ones inside their window.
func NewSweepRemindersTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeSweepReminders, nil), nil
}

// NewRearmRemindersTask recomputes due dates and re-arms reminders for the
// next billing cycle.
func NewRearmRemindersTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeRearmReminders, nil), nil
}
