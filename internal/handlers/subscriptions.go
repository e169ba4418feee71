package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"subtrackr/internal/billing"
	"subtrackr/internal/db"
	"subtrackr/internal/models"
)

// defaultReminderDays are the lead times created for every new non-lifetime
// subscription.
var defaultReminderDays = []int{1, 7, 14}

// suggestedSubscriptions is a static catalog offered on the add form.
var suggestedSubscriptions = []map[string]string{
	{"name": "Apple TV", "url": "https://www.apple.com/apple-tv-plus/"},
	{"name": "GitHub", "url": "https://github.com/"},
	{"name": "Netflix", "url": "https://www.netflix.com/"},
	{"name": "Notion", "url": "https://www.notion.so/"},
	{"name": "Spotify", "url": "https://www.spotify.com/"},
	{"name": "Todoist", "url": "https://todoist.com/"},
	{"name": "YouTube Premium", "url": "https://www.youtube.com/premium"},
}

func (h *Handlers) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusOK, subs)
}

func (h *Handlers) SuggestedSubscriptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, suggestedSubscriptions)
}

func (h *Handlers) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "User not found in context")
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	sub, errMsg := subscriptionFromForm(r, &models.Subscription{UserID: user.ID, IsActive: true})
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	now := time.Now().UTC()
	sub.NextPaymentDate = billing.NextPaymentDate(sub.StartDate, sub.BillingCycle, nil, now)

	created, err := db.CreateSubscription(sub)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add subscription")
		return
	}

	createDefaultReminders(created)

	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "User not found in context")
		return
	}
	id, err := subscriptionID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid subscription ID")
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	sub, err := db.GetSubscriptionForUser(id, user.ID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Subscription not found")
		return
	}

	updated, errMsg := subscriptionFromForm(r, &sub)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}
	updated.IsActive = r.Form.Has("is_active")

	now := time.Now().UTC()
	updated.NextPaymentDate = billing.NextPaymentDate(updated.StartDate, updated.BillingCycle, updated.NextPaymentDate, now)

	if err := db.UpdateSubscription(updated); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update subscription")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "User not found in context")
		return
	}
	id, err := subscriptionID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid subscription ID")
		return
	}

	if err := db.DeleteSubscription(user.ID, id); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete subscription")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MarkPaid records a user-triggered renewal: the due date is recomputed from
// scratch, ignoring whatever was stored, and the subscription's reminders are
// re-armed for the new cycle.
func (h *Handlers) MarkPaid(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "User not found in context")
		return
	}
	id, err := subscriptionID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid subscription ID")
		return
	}

	sub, err := db.GetSubscriptionForUser(id, user.ID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Subscription not found")
		return
	}

	now := time.Now().UTC()
	next := billing.NextPaymentDate(sub.StartDate, sub.BillingCycle, nil, now)
	sub.NextPaymentDate = next

	if err := db.UpdateSubscriptionNextPayment(sub.ID, next); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update subscription")
		return
	}
	if next != nil {
		if err := db.ResetRemindersForSubscription(sub.ID); err != nil {
			log.Printf("Failed to re-arm reminders for subscription %d: %v", sub.ID, err)
		}
	}

	respondJSON(w, http.StatusOK, sub)
}

func subscriptionID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// subscriptionFromForm applies submitted fields on top of the given
// subscription and validates them.
func subscriptionFromForm(r *http.Request, sub *models.Subscription) (*models.Subscription, string) {
	sub.Name = r.FormValue("name")
	if sub.Name == "" {
		return nil, "Name is required"
	}
	sub.URL = r.FormValue("url")
	sub.LogoURL = r.FormValue("logo_url")
	sub.Notes = r.FormValue("notes")

	if raw := r.FormValue("amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || amount < 0 {
			return nil, "Invalid amount"
		}
		sub.Amount = amount
	}

	if currency := r.FormValue("currency"); currency != "" {
		sub.Currency = currency
	}
	if sub.Currency == "" {
		sub.Currency = "USD"
	}

	cycle, err := billing.ParseCycle(r.FormValue("billing_cycle"))
	if err != nil {
		return nil, "Invalid billing cycle"
	}
	sub.BillingCycle = cycle

	if raw := r.FormValue("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, "Invalid start date"
		}
		sub.StartDate = start
	}
	if sub.StartDate.IsZero() {
		sub.StartDate = time.Now().UTC()
	}

	return sub, ""
}

// createDefaultReminders sets up the standard lead times for a new
// subscription. Lifetime subscriptions never get reminders.
func createDefaultReminders(sub *models.Subscription) {
	if sub.BillingCycle == billing.CycleLifetime {
		return
	}
	for _, days := range defaultReminderDays {
		if _, err := db.CreateReminder(sub.UserID, sub.ID, days, true, false); err != nil {
			log.Printf("Failed to create default reminder for subscription %d: %v", sub.ID, err)
		}
	}
}
