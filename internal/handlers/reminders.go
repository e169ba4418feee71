package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"subtrackr/internal/db"
)

// maxRemindersPerSubscription caps how many lead times one subscription can
// have configured.
const maxRemindersPerSubscription = 3

func (h *Handlers) GetReminders(w http.ResponseWriter, r *http.Request) {
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

	if _, err := db.GetSubscriptionForUser(id, user.ID); err != nil {
		respondError(w, http.StatusNotFound, "Subscription not found")
		return
	}

	reminders, err := db.GetRemindersBySubscriptionID(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get reminders")
		return
	}
	respondJSON(w, http.StatusOK, reminders)
}

// UpdateReminders replaces a subscription's reminder set with the submitted
// one. Fields come in numbered: days_before_1, email_notification_1, and so
// on, with reminder_count saying how many there are.
func (h *Handlers) UpdateReminders(w http.ResponseWriter, r *http.Request) {
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

	if _, err := db.GetSubscriptionForUser(id, user.ID); err != nil {
		respondError(w, http.StatusNotFound, "Subscription not found")
		return
	}

	count, _ := strconv.Atoi(r.FormValue("reminder_count"))
	if count > maxRemindersPerSubscription {
		count = maxRemindersPerSubscription
	}

	if err := db.DeleteRemindersBySubscriptionID(id); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update reminders")
		return
	}

	for i := 1; i <= count; i++ {
		daysBefore, err := strconv.Atoi(r.FormValue(fmt.Sprintf("days_before_%d", i)))
		if err != nil || daysBefore < 0 {
			daysBefore = 7
		}
		email := r.Form.Has(fmt.Sprintf("email_notification_%d", i))
		push := r.Form.Has(fmt.Sprintf("push_notification_%d", i))

		if _, err := db.CreateReminder(user.ID, id, daysBefore, email, push); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update reminders")
			return
		}
	}

	reminders, err := db.GetRemindersBySubscriptionID(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get reminders")
		return
	}
	respondJSON(w, http.StatusOK, reminders)
}
