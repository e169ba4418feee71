package worker

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/hibiken/asynq"

	"subtrackr/internal/billing"
	"subtrackr/internal/currency"
	"subtrackr/internal/db"
	"subtrackr/internal/mailer"
	"subtrackr/internal/models"
)

type TaskHandler struct {
	mailer mailer.Mailer
}

func NewTaskHandler(m mailer.Mailer) *TaskHandler {
	return &TaskHandler{mailer: m}
}

// HandleRefreshRatesTask updates the exchange rate table. RefreshRates does
// its own per-currency error handling, so the task itself never fails.
func (h *TaskHandler) HandleRefreshRatesTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Refreshing exchange rates...")
	currency.RefreshRates()
	return nil
}

// HandleSweepRemindersTask walks every armed reminder and fires the ones
// whose subscription is due within the configured lead time. One bad
// reminder never aborts the rest of the sweep.
func (h *TaskHandler) HandleSweepRemindersTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Sweeping reminders...")

	reminders, err := db.GetUnsentReminders()
	if err != nil {
		return fmt.Errorf("failed to get unsent reminders: %w", err)
	}

	now := time.Now().UTC()
	for _, reminder := range reminders {
		h.checkReminder(reminder, now)
	}

	log.Println("Finished sweeping reminders.")
	return nil
}

func (h *TaskHandler) checkReminder(reminder models.Reminder, now time.Time) {
	sub, err := db.GetSubscriptionByID(reminder.SubscriptionID)
	if err != nil {
		log.Printf("Skipping reminder %d: subscription %d not found: %v", reminder.ID, reminder.SubscriptionID, err)
		return
	}
	user, err := db.GetUserByID(reminder.UserID)
	if err != nil {
		log.Printf("Skipping reminder %d: user %d not found: %v", reminder.ID, reminder.UserID, err)
		return
	}

	if !sub.IsActive || sub.NextPaymentDate == nil {
		return
	}

	daysUntil := daysBetween(now, *sub.NextPaymentDate)
	if daysUntil > reminder.DaysBefore {
		return
	}

	// Dispatch failure is logged but the reminder still moves to Fired:
	// at most one attempt per due date, no retry within the cycle.
	if reminder.EmailNotification && user.Email != "" {
		if err := h.mailer.SendPaymentReminder(user, sub, daysUntil); err != nil {
			log.Printf("Failed to send reminder email to %s for %s: %v", user.Email, sub.Name, err)
		}
	}

	if err := db.MarkReminderSent(reminder.ID); err != nil {
		return
	}
	log.Printf("Reminder sent for subscription %s to user %s", sub.Name, user.Username)
}

// HandleRearmRemindersTask recomputes each active subscription's due date and
// re-arms its reminders for the next billing cycle.
func (h *TaskHandler) HandleRearmRemindersTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Re-arming reminders...")

	subs, err := db.GetActiveSubscriptions()
	if err != nil {
		return fmt.Errorf("failed to get active subscriptions: %w", err)
	}

	now := time.Now().UTC()
	for _, sub := range subs {
		RearmSubscription(sub, now)
	}

	log.Println("Finished re-arming reminders.")
	return nil
}

// RearmSubscription recomputes the next payment date and resets every
// reminder under the subscription to unsent.
//
// The reset is unconditional whenever the subscription has a recurring due
// date, even if recomputation left the date unchanged. Should re-arming ever
// need to trigger only on an actual date change, this function is the single
// place to decide that.
func RearmSubscription(sub models.Subscription, now time.Time) {
	next := billing.NextPaymentDate(sub.StartDate, sub.BillingCycle, sub.NextPaymentDate, now)
	if next == nil {
		// Lifetime subscriptions have nothing to re-arm.
		return
	}

	if err := db.UpdateSubscriptionNextPayment(sub.ID, next); err != nil {
		return
	}
	if err := db.ResetRemindersForSubscription(sub.ID); err != nil {
		return
	}
}

// daysBetween is the number of whole days from now until the due date,
// rounded toward negative infinity so an overdue date counts as inside any
// reminder window.
func daysBetween(now, due time.Time) int {
	return int(math.Floor(due.Sub(now).Hours() / 24))
}
