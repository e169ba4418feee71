package currency

import (
	"errors"
	"log"

	"subtrackr/internal/db"
)

// ErrRateUnavailable means no stored rate path exists between the two
// currencies. The amount returned alongside it is the input unchanged; the
// condition is a degradation, not a failure.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// Convert turns an amount in one currency into another using stored rates.
//
// A direct directed rate wins. Failing that, the conversion goes through USD:
// the from-leg is stored as from->USD so it is inverted, the to-leg USD->to is
// applied as is. If neither path resolves the amount comes back unchanged
// with ErrRateUnavailable.
func Convert(amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}

	if direct, err := db.GetExchangeRate(from, to); err == nil {
		return amount * direct.Rate, nil
	}

	fromUSD, errFrom := db.GetExchangeRate(from, "USD")
	usdTo, errTo := db.GetExchangeRate("USD", to)
	if errFrom == nil && errTo == nil {
		usdAmount := amount * (1 / fromUSD.Rate)
		return usdAmount * usdTo.Rate, nil
	}

	log.Printf("Could not find exchange rate from %s to %s", from, to)
	return amount, ErrRateUnavailable
}
