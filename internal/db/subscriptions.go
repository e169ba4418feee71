package db

import (
	"log"
	"time"

	"subtrackr/internal/models"
)

func CreateSubscription(sub *models.Subscription) (*models.Subscription, error) {
	query := `
		INSERT INTO subscriptions (user_id, name, url, logo_url, amount, currency, billing_cycle, start_date, next_payment_date, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING *
	`
	created := &models.Subscription{}
	err := DB.Get(created, query,
		sub.UserID, sub.Name, sub.URL, sub.LogoURL, sub.Amount, sub.Currency,
		sub.BillingCycle, sub.StartDate, sub.NextPaymentDate, sub.Notes, sub.IsActive)
	if err != nil {
		log.Printf("Error adding subscription for user %d: %v", sub.UserID, err)
		return nil, err
	}
	return created, nil
}

func GetSubscriptionByID(id int64) (models.Subscription, error) {
	sub := models.Subscription{}
	err := DB.Get(&sub, "SELECT * FROM subscriptions WHERE id = $1", id)
	return sub, err
}

// GetSubscriptionForUser scopes the lookup to the owner so a handler cannot
// touch another user's subscription.
func GetSubscriptionForUser(id, userID int64) (models.Subscription, error) {
	sub := models.Subscription{}
	err := DB.Get(&sub, "SELECT * FROM subscriptions WHERE id = $1 AND user_id = $2", id, userID)
	return sub, err
}

func GetSubscriptionsByUserID(userID int64) ([]models.Subscription, error) {
	query := `
		SELECT * FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	var subs []models.Subscription
	err := DB.Select(&subs, query, userID)
	if err != nil {
		log.Printf("Error getting subscriptions for user %d: %v", userID, err)
		return nil, err
	}
	return subs, nil
}

func GetSubscriptionByName(userID int64, name string) (models.Subscription, error) {
	sub := models.Subscription{}
	err := DB.Get(&sub, "SELECT * FROM subscriptions WHERE user_id = $1 AND name = $2", userID, name)
	return sub, err
}

// GetActiveSubscriptions returns every active subscription across all users.
// Used by the periodic re-arm sweep.
func GetActiveSubscriptions() ([]models.Subscription, error) {
	var subs []models.Subscription
	err := DB.Select(&subs, "SELECT * FROM subscriptions WHERE is_active = TRUE ORDER BY id")
	if err != nil {
		log.Printf("Error getting active subscriptions: %v", err)
		return nil, err
	}
	return subs, nil
}

// GetUpcomingPayments returns the next payments due after the given instant,
// soonest first.
func GetUpcomingPayments(userID int64, after time.Time, limit int) ([]models.Subscription, error) {
	query := `
		SELECT * FROM subscriptions
		WHERE user_id = $1 AND is_active = TRUE AND next_payment_date IS NOT NULL AND next_payment_date > $2
		ORDER BY next_payment_date
		LIMIT $3
	`
	var subs []models.Subscription
	err := DB.Select(&subs, query, userID, after, limit)
	if err != nil {
		log.Printf("Error getting upcoming payments for user %d: %v", userID, err)
		return nil, err
	}
	return subs, nil
}

// GetPaymentsDueBetween returns active subscriptions due inside the window,
// soonest first.
func GetPaymentsDueBetween(userID int64, from, to time.Time) ([]models.Subscription, error) {
	query := `
		SELECT * FROM subscriptions
		WHERE user_id = $1 AND is_active = TRUE AND next_payment_date IS NOT NULL AND next_payment_date BETWEEN $2 AND $3
		ORDER BY next_payment_date
	`
	var subs []models.Subscription
	err := DB.Select(&subs, query, userID, from, to)
	if err != nil {
		log.Printf("Error getting due payments for user %d: %v", userID, err)
		return nil, err
	}
	return subs, nil
}

func UpdateSubscription(sub *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET name = $1, url = $2, logo_url = $3, amount = $4, currency = $5, billing_cycle = $6,
		    start_date = $7, next_payment_date = $8, notes = $9, is_active = $10, updated_at = NOW()
		WHERE id = $11 AND user_id = $12
	`
	_, err := DB.Exec(query,
		sub.Name, sub.URL, sub.LogoURL, sub.Amount, sub.Currency, sub.BillingCycle,
		sub.StartDate, sub.NextPaymentDate, sub.Notes, sub.IsActive, sub.ID, sub.UserID)
	if err != nil {
		log.Printf("Error updating subscription %d: %v", sub.ID, err)
	}
	return err
}

func UpdateSubscriptionNextPayment(id int64, next *time.Time) error {
	_, err := DB.Exec("UPDATE subscriptions SET next_payment_date = $1, updated_at = NOW() WHERE id = $2", next, id)
	if err != nil {
		log.Printf("Error updating next payment date for subscription %d: %v", id, err)
	}
	return err
}

func DeleteSubscription(userID, subscriptionID int64) error {
	_, err := DB.Exec("DELETE FROM subscriptions WHERE id = $1 AND user_id = $2", subscriptionID, userID)
	if err != nil {
		log.Printf("Error deleting subscription %d for user %d: %v", subscriptionID, userID, err)
	}
	return err
}
