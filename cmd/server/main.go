package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"subtrackr/internal/db"
	"subtrackr/internal/handlers"
	"subtrackr/internal/middleware"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	db.InitDB()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	h := handlers.New(asynqClient)
	rl := middleware.NewRateLimiterMiddleware(rate.Limit(5), 10)

	r := mux.NewRouter()

	// Public routes.
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)

	// Everything else requires a session.
	authed := r.PathPrefix("/").Subrouter()
	authed.Use(middleware.AuthMiddleware, rl.Middleware)

	authed.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	authed.HandleFunc("/reports", h.Reports).Methods(http.MethodGet)
	authed.HandleFunc("/settings", h.UpdateSettings).Methods(http.MethodPost)

	authed.HandleFunc("/subscriptions", h.ListSubscriptions).Methods(http.MethodGet)
	authed.HandleFunc("/subscriptions", h.CreateSubscription).Methods(http.MethodPost)
	authed.HandleFunc("/subscriptions/suggested", h.SuggestedSubscriptions).Methods(http.MethodGet)
	authed.HandleFunc("/subscriptions/{id:[0-9]+}", h.UpdateSubscription).Methods(http.MethodPost, http.MethodPut)
	authed.HandleFunc("/subscriptions/{id:[0-9]+}", h.DeleteSubscription).Methods(http.MethodDelete)
	authed.HandleFunc("/subscriptions/{id:[0-9]+}/paid", h.MarkPaid).Methods(http.MethodPost)
	authed.HandleFunc("/subscriptions/{id:[0-9]+}/reminders", h.GetReminders).Methods(http.MethodGet)
	authed.HandleFunc("/subscriptions/{id:[0-9]+}/reminders", h.UpdateReminders).Methods(http.MethodPost)

	authed.HandleFunc("/export_csv", h.ExportCSV).Methods(http.MethodGet)
	authed.HandleFunc("/import_csv", h.ImportCSV).Methods(http.MethodPost)

	authed.HandleFunc("/api/exchange_rates", h.GetExchangeRates).Methods(http.MethodGet)
	authed.HandleFunc("/api/exchange_rates/refresh", h.RefreshExchangeRates).Methods(http.MethodPost)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on :%s (commit: %s)", port, CommitSHA)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
