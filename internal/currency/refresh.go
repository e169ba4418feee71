package currency

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"subtrackr/internal/db"
)

const defaultRateAPIURL = "https://open.er-api.com/v6/latest"

// TrackedCurrencies is the fixed set of currencies the refresher maintains
// rates between.
var TrackedCurrencies = []string{"USD", "EUR", "CZK", "PLN"}

// Short timeout so an unreachable rate provider cannot stall the daily job.
var httpClient = &http.Client{Timeout: 5 * time.Second}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// RefreshRates fetches the latest rates for every tracked base currency and
// upserts the directed pairs. A failed fetch for one base is logged and does
// not stop the others. If the store is still empty afterwards (every fetch
// failed and none ever succeeded before), a static default table is seeded so
// the converter always has data to work with. Safe to call repeatedly.
func RefreshRates() {
	apiURL := os.Getenv("EXCHANGE_RATE_API_URL")
	if apiURL == "" {
		apiURL = defaultRateAPIURL
	}

	for _, base := range TrackedCurrencies {
		if err := refreshBase(apiURL, base); err != nil {
			log.Printf("Failed to fetch exchange rates for %s: %v", base, err)
			continue
		}
		log.Printf("Exchange rates for %s updated successfully", base)
	}

	count, err := db.CountExchangeRates()
	if err != nil {
		log.Printf("Error counting exchange rates: %v", err)
		return
	}
	if count == 0 {
		seedDefaultRates()
	}
}

func refreshBase(apiURL, base string) error {
	resp, err := httpClient.Get(fmt.Sprintf("%s/%s", apiURL, base))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode rates response: %w", err)
	}

	for _, target := range TrackedCurrencies {
		if target == base {
			continue
		}
		rate, ok := parsed.Rates[target]
		if !ok {
			continue
		}
		// db.UpsertExchangeRate logs its own failures; one bad row should
		// not abort the rest of the table.
		_ = db.UpsertExchangeRate(base, target, rate)
	}
	return nil
}

// defaultRates is the fallback table used when no rates have ever been
// fetched. Twelve directed pairs among the four tracked currencies.
var defaultRates = []struct {
	Base   string
	Target string
	Rate   float64
}{
	{"USD", "EUR", 0.92},
	{"USD", "CZK", 22.89},
	{"USD", "PLN", 3.95},
	{"EUR", "USD", 1.09},
	{"EUR", "CZK", 24.97},
	{"EUR", "PLN", 4.31},
	{"CZK", "USD", 0.044},
	{"CZK", "EUR", 0.040},
	{"CZK", "PLN", 0.17},
	{"PLN", "USD", 0.25},
	{"PLN", "EUR", 0.23},
	{"PLN", "CZK", 5.79},
}

func seedDefaultRates() {
	for _, r := range defaultRates {
		_ = db.UpsertExchangeRate(r.Base, r.Target, r.Rate)
	}
	log.Println("Default exchange rates added")
}
