package handlers

import (
	"net/http"

	"subtrackr/internal/auth"
	"subtrackr/internal/db"
)

// UpdateSettings saves language and preferred currency, and optionally
// changes the password when all three password fields are submitted.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "User not found in context")
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	language := r.FormValue("language")
	if language == "" {
		language = user.Language
	}
	preferredCurrency := r.FormValue("preferred_currency")
	if preferredCurrency == "" {
		preferredCurrency = user.PreferredCurrency
	}

	currentPassword := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirmPassword := r.FormValue("confirm_password")

	if currentPassword != "" && newPassword != "" && confirmPassword != "" {
		ok, err := auth.CheckPassword(user.PasswordHash, currentPassword)
		if err != nil || !ok {
			respondError(w, http.StatusBadRequest, "Current password is incorrect")
			return
		}
		if newPassword != confirmPassword {
			respondError(w, http.StatusBadRequest, "New passwords do not match")
			return
		}
		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update password")
			return
		}
		if err := db.UpdateUserPassword(user.ID, hash); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update password")
			return
		}
	}

	if err := db.UpdateUserSettings(user.ID, language, preferredCurrency); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "settings updated"})
}
