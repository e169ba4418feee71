package models

import "time"

// ExchangeRate is a directed conversion factor: 1 unit of BaseCurrency equals
// Rate units of TargetCurrency. The opposite direction is stored as its own
// row and may drift from 1/Rate.
type ExchangeRate struct {
	ID             int64     `db:"id" json:"id"`
	BaseCurrency   string    `db:"base_currency" json:"base_currency"`
	TargetCurrency string    `db:"target_currency" json:"target_currency"`
	Rate           float64   `db:"rate" json:"rate"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
