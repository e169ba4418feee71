package db

import (
	"log"

	"subtrackr/internal/models"
)

func GetExchangeRate(base, target string) (models.ExchangeRate, error) {
	rate := models.ExchangeRate{}
	err := DB.Get(&rate, "SELECT * FROM exchange_rates WHERE base_currency = $1 AND target_currency = $2", base, target)
	return rate, err
}

// UpsertExchangeRate inserts a directed rate or overwrites the existing row.
// Rates are never deleted, only refreshed in place.
func UpsertExchangeRate(base, target string, rate float64) error {
	query := `
		INSERT INTO exchange_rates (base_currency, target_currency, rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (base_currency, target_currency) DO UPDATE SET
			rate = EXCLUDED.rate,
			updated_at = NOW()
	`
	_, err := DB.Exec(query, base, target, rate)
	if err != nil {
		log.Printf("Error upserting exchange rate %s->%s: %v", base, target, err)
	}
	return err
}

func CountExchangeRates() (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM exchange_rates")
	return count, err
}
