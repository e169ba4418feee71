package db

import (
	"log"

	"subtrackr/internal/models"
)

func CreateReminder(userID, subscriptionID int64, daysBefore int, emailNotification, pushNotification bool) (*models.Reminder, error) {
	query := `
		INSERT INTO reminders (user_id, subscription_id, days_before, email_notification, push_notification)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`
	reminder := &models.Reminder{}
	err := DB.Get(reminder, query, userID, subscriptionID, daysBefore, emailNotification, pushNotification)
	if err != nil {
		log.Printf("Error creating reminder for subscription %d: %v", subscriptionID, err)
		return nil, err
	}
	return reminder, nil
}

func GetRemindersBySubscriptionID(subscriptionID int64) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := DB.Select(&reminders, "SELECT * FROM reminders WHERE subscription_id = $1 ORDER BY days_before", subscriptionID)
	if err != nil {
		log.Printf("Error getting reminders for subscription %d: %v", subscriptionID, err)
		return nil, err
	}
	return reminders, nil
}

// GetUnsentReminders returns every reminder still armed for the current
// billing cycle, across all users. Used by the hourly sweep.
func GetUnsentReminders() ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := DB.Select(&reminders, "SELECT * FROM reminders WHERE is_sent = FALSE ORDER BY id")
	if err != nil {
		log.Printf("Error getting unsent reminders: %v", err)
		return nil, err
	}
	return reminders, nil
}

func MarkReminderSent(id int64) error {
	_, err := DB.Exec("UPDATE reminders SET is_sent = TRUE WHERE id = $1", id)
	if err != nil {
		log.Printf("Error marking reminder %d sent: %v", id, err)
	}
	return err
}

// ResetRemindersForSubscription re-arms every reminder under a subscription
// for the next billing cycle.
func ResetRemindersForSubscription(subscriptionID int64) error {
	_, err := DB.Exec("UPDATE reminders SET is_sent = FALSE WHERE subscription_id = $1", subscriptionID)
	if err != nil {
		log.Printf("Error resetting reminders for subscription %d: %v", subscriptionID, err)
	}
	return err
}

func DeleteRemindersBySubscriptionID(subscriptionID int64) error {
	_, err := DB.Exec("DELETE FROM reminders WHERE subscription_id = $1", subscriptionID)
	if err != nil {
		log.Printf("Error deleting reminders for subscription %d: %v", subscriptionID, err)
	}
	return err
}
