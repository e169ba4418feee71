package currency

import "fmt"

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"CZK": "Kč",
	"PLN": "zł",
}

// FormatAmount renders an amount with its currency symbol. CZK and PLN use
// suffix notation, everything else prefixes.
func FormatAmount(amount float64, code string) string {
	symbol, ok := symbols[code]
	if !ok {
		symbol = code
	}

	if code == "CZK" || code == "PLN" {
		return fmt.Sprintf("%.2f %s", amount, symbol)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
