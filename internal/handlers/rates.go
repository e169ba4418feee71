package handlers

import (
	"net/http"

	"subtrackr/internal/currency"
	"subtrackr/internal/db"
	"subtrackr/pkg/tasks"
)

// GetExchangeRates returns the tracked rates for a base currency. Missing
// pairs fall back to 1.0 so the UI always has something to render.
func (h *Handlers) GetExchangeRates(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	if base == "" {
		base = "USD"
	}

	rates := map[string]float64{}
	for _, target := range currency.TrackedCurrencies {
		if target == base {
			rates[target] = 1.0
			continue
		}
		stored, err := db.GetExchangeRate(base, target)
		if err != nil {
			rates[target] = 1.0
			continue
		}
		rates[target] = stored.Rate
	}

	respondJSON(w, http.StatusOK, rates)
}

// RefreshExchangeRates enqueues an immediate refresh instead of waiting for
// the daily tick.
func (h *Handlers) RefreshExchangeRates(w http.ResponseWriter, r *http.Request) {
	task, err := tasks.NewRefreshRatesTask()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create refresh task")
		return
	}
	if _, err := h.asynqClient.Enqueue(task); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to enqueue refresh task")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "refresh scheduled"})
}
