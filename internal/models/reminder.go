package models

import "time"

// Reminder is a configured lead time before a subscription's due date at
// which a notification fires, once per billing cycle.
type Reminder struct {
	ID                int64     `db:"id" json:"id"`
	UserID            int64     `db:"user_id" json:"user_id"`
	SubscriptionID    int64     `db:"subscription_id" json:"subscription_id"`
	DaysBefore        int       `db:"days_before" json:"days_before"`
	EmailNotification bool      `db:"email_notification" json:"email_notification"`
	PushNotification  bool      `db:"push_notification" json:"push_notification"`
	IsSent            bool      `db:"is_sent" json:"is_sent"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
