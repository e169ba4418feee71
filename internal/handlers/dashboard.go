package handlers

import (
	"net/http"
	"time"

	"subtrackr/internal/billing"
	"subtrackr/internal/currency"
	"subtrackr/internal/db"
	"subtrackr/internal/models"
)

// monthlyFactor normalizes a cycle's amount to a per-month figure.
// 4.33 is the average number of weeks in a month.
func monthlyFactor(cycle billing.Cycle) float64 {
	switch cycle {
	case billing.CycleWeekly:
		return 4.33
	case billing.CycleMonthly:
		return 1
	case billing.CycleQuarterly:
		return 1.0 / 3
	case billing.CycleBiAnnually:
		return 1.0 / 6
	case billing.CycleYearly:
		return 1.0 / 12
	}
	// Lifetime has no recurring cost.
	return 0
}

// monthlySpending sums the user's active recurring subscriptions in their
// preferred currency. A missing rate degrades to the unconverted amount.
func monthlySpending(subs []models.Subscription, preferredCurrency string) float64 {
	var total float64
	for _, sub := range subs {
		if !sub.IsActive || sub.BillingCycle == billing.CycleLifetime {
			continue
		}
		converted, _ := currency.Convert(sub.Amount, sub.Currency, preferredCurrency)
		total += converted * monthlyFactor(sub.BillingCycle)
	}
	return total
}

// refreshNextPaymentDates recomputes stale due dates in a freshly loaded
// list, persisting any that moved.
func refreshNextPaymentDates(subs []models.Subscription, now time.Time) {
	for i := range subs {
		sub := &subs[i]
		next := billing.NextPaymentDate(sub.StartDate, sub.BillingCycle, sub.NextPaymentDate, now)
		if next == sub.NextPaymentDate {
			continue
		}
		if next != nil && sub.NextPaymentDate != nil && next.Equal(*sub.NextPaymentDate) {
			continue
		}
		sub.NextPaymentDate = next
		_ = db.UpdateSubscriptionNextPayment(sub.ID, next)
	}
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "User not found in context")
		return
	}

	subs, err := db.GetSubscriptionsByUserID(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get subscriptions")
		return
	}

	now := time.Now().UTC()
	refreshNextPaymentDates(subs, now)

	upcoming, err := db.GetUpcomingPayments(user.ID, now, 5)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get upcoming payments")
		return
	}

	active := 0
	cycleCounts := map[string]int{}
	for _, cycle := range billing.Cycles {
		cycleCounts[cycle.String()] = 0
	}
	for _, sub := range subs {
		if sub.IsActive {
			active++
			cycleCounts[sub.BillingCycle.String()]++
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"subscriptions":        subs,
		"upcoming_payments":    upcoming,
		"monthly_spending":     monthlySpending(subs, user.PreferredCurrency),
		"preferred_currency":   user.PreferredCurrency,
		"total_subscriptions":  len(subs),
		"active_subscriptions": active,
		"cycle_counts":         cycleCounts,
	})
}

func (h *Handlers) Reports(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "User not found in context")
		return
	}

	subs, err := db.GetSubscriptionsByUserID(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get subscriptions")
		return
	}

	spendingByCycle := map[string]float64{}
	for _, cycle := range billing.Cycles {
		if cycle == billing.CycleLifetime {
			continue
		}
		spendingByCycle[cycle.String()] = 0
	}
	var totalMonthly float64
	for _, sub := range subs {
		if !sub.IsActive || sub.BillingCycle == billing.CycleLifetime {
			continue
		}
		converted, _ := currency.Convert(sub.Amount, sub.Currency, user.PreferredCurrency)
		monthly := converted * monthlyFactor(sub.BillingCycle)
		spendingByCycle[sub.BillingCycle.String()] += monthly
		totalMonthly += monthly
	}

	now := time.Now().UTC()
	upcoming, err := db.GetPaymentsDueBetween(user.ID, now, now.AddDate(0, 0, 30))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get upcoming payments")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"spending_by_cycle":  spendingByCycle,
		"upcoming_payments":  upcoming,
		"total_monthly":      totalMonthly,
		"total_yearly":       totalMonthly * 12,
		"preferred_currency": user.PreferredCurrency,
	})
}
