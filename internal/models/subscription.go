package models

import (
	"time"

	"subtrackr/internal/billing"
)

// Subscription represents a recurring service a user pays for.
type Subscription struct {
	ID              int64         `db:"id" json:"id"`
	UserID          int64         `db:"user_id" json:"user_id"`
	Name            string        `db:"name" json:"name"`
	URL             string        `db:"url" json:"url"`
	LogoURL         string        `db:"logo_url" json:"logo_url"`
	Amount          float64       `db:"amount" json:"amount"`
	Currency        string        `db:"currency" json:"currency"`
	BillingCycle    billing.Cycle `db:"billing_cycle" json:"billing_cycle"`
	StartDate       time.Time     `db:"start_date" json:"start_date"`
	NextPaymentDate *time.Time    `db:"next_payment_date" json:"next_payment_date"`
	Notes           string        `db:"notes" json:"notes"`
	IsActive        bool          `db:"is_active" json:"is_active"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}
