package handlers

import (
	"net/http"
	"time"

	"subtrackr/internal/auth"
	"subtrackr/internal/db"
)

// Register creates a new account from a submitted form.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")
	language := r.FormValue("language")
	preferredCurrency := r.FormValue("preferred_currency")

	if username == "" || email == "" || password == "" {
		respondError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}
	if password != confirm {
		respondError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}
	if language == "" {
		language = "en"
	}
	if preferredCurrency == "" {
		preferredCurrency = "USD"
	}

	if _, err := db.GetUserByUsername(username); err == nil {
		respondError(w, http.StatusConflict, "Username already exists")
		return
	}
	if _, err := db.GetUserByEmail(email); err == nil {
		respondError(w, http.StatusConflict, "Email already exists")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user, err := db.CreateUser(username, email, hash, language, preferredCurrency)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login checks credentials and issues the session cookie.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := db.GetUserByUsername(username)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil || !ok {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(72 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]string{"status": "authenticated"})
}

// Logout clears the session cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
