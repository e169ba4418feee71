package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"subtrackr/internal/billing"
	"subtrackr/internal/db"
	"subtrackr/internal/middleware"
	"subtrackr/internal/models"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	mockDb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { mockDb.Close() })

	originalDB := db.DB
	db.DB = sqlx.NewDb(mockDb, "sqlmock")
	t.Cleanup(func() { db.DB = originalDB })

	return mock
}

func subscriptionRows(subs ...models.Subscription) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "url", "logo_url", "amount", "currency", "billing_cycle", "start_date", "next_payment_date", "notes", "is_active", "created_at", "updated_at"})
	for _, s := range subs {
		rows.AddRow(s.ID, s.UserID, s.Name, s.URL, s.LogoURL, s.Amount, s.Currency, s.BillingCycle, s.StartDate, s.NextPaymentDate, s.Notes, s.IsActive, time.Now(), time.Now())
	}
	return rows
}

func reminderRows(reminders ...models.Reminder) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "subscription_id", "days_before", "email_notification", "push_notification", "is_sent", "created_at"})
	for _, r := range reminders {
		rows.AddRow(r.ID, r.UserID, r.SubscriptionID, r.DaysBefore, r.EmailNotification, r.PushNotification, r.IsSent, time.Now())
	}
	return rows
}

func authedRequest(t *testing.T, method, target string, form url.Values, user *models.User) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, user)
	return req.WithContext(ctx)
}

func TestCreateSubscriptionCreatesDefaultReminders(t *testing.T) {
	mock := setupMockDB(t)
	h := New(nil)

	user := &models.User{ID: 1, Username: "alice", PreferredCurrency: "USD"}
	created := models.Subscription{ID: 5, UserID: 1, Name: "Netflix", Amount: 15.99, Currency: "USD", BillingCycle: billing.CycleMonthly, StartDate: time.Now().UTC().AddDate(0, -1, 0), IsActive: true}

	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(int64(1), "Netflix", "", "", 15.99, "USD", billing.CycleMonthly, sqlmock.AnyArg(), sqlmock.AnyArg(), "", true).
		WillReturnRows(subscriptionRows(created))
	for i, days := range []int{1, 7, 14} {
		mock.ExpectQuery(`INSERT INTO reminders`).
			WithArgs(int64(1), int64(5), days, true, false).
			WillReturnRows(reminderRows(models.Reminder{ID: int64(i + 1), UserID: 1, SubscriptionID: 5, DaysBefore: days, EmailNotification: true}))
	}

	form := url.Values{}
	form.Set("name", "Netflix")
	form.Set("amount", "15.99")
	form.Set("currency", "USD")
	form.Set("billing_cycle", "monthly")
	form.Set("start_date", "2024-01-15")

	req := authedRequest(t, http.MethodPost, "/subscriptions", form, user)
	rr := httptest.NewRecorder()
	h.CreateSubscription(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubscriptionLifetimeSkipsReminders(t *testing.T) {
	mock := setupMockDB(t)
	h := New(nil)

	user := &models.User{ID: 1, Username: "alice"}
	created := models.Subscription{ID: 6, UserID: 1, Name: "WinRAR", Currency: "USD", BillingCycle: billing.CycleLifetime, StartDate: time.Now().UTC(), IsActive: true}

	// Lifetime: next payment date stays null and no reminders are created.
	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(int64(1), "WinRAR", "", "", 0.0, "USD", billing.CycleLifetime, sqlmock.AnyArg(), nil, "", true).
		WillReturnRows(subscriptionRows(created))

	form := url.Values{}
	form.Set("name", "WinRAR")
	form.Set("billing_cycle", "lifetime")

	req := authedRequest(t, http.MethodPost, "/subscriptions", form, user)
	rr := httptest.NewRecorder()
	h.CreateSubscription(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubscriptionRejectsUnknownCycle(t *testing.T) {
	mock := setupMockDB(t)
	h := New(nil)

	form := url.Values{}
	form.Set("name", "Netflix")
	form.Set("billing_cycle", "fortnightly")

	req := authedRequest(t, http.MethodPost, "/subscriptions", form, &models.User{ID: 1})
	rr := httptest.NewRecorder()
	h.CreateSubscription(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaidRecomputesAndRearms(t *testing.T) {
	mock := setupMockDB(t)
	h := New(nil)

	user := &models.User{ID: 1, Username: "alice"}
	future := time.Now().UTC().Add(10 * 24 * time.Hour)
	sub := models.Subscription{ID: 3, UserID: 1, Name: "Netflix", Currency: "USD", BillingCycle: billing.CycleMonthly, StartDate: future.AddDate(0, -3, 0), NextPaymentDate: &future, IsActive: true}

	mock.ExpectQuery(`SELECT \* FROM subscriptions WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(3), int64(1)).
		WillReturnRows(subscriptionRows(sub))
	mock.ExpectExec(`UPDATE subscriptions SET next_payment_date = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE reminders SET is_sent = FALSE WHERE subscription_id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(1, 3))

	req := authedRequest(t, http.MethodPost, "/subscriptions/3/paid", nil, user)
	req = mux.SetURLVars(req, map[string]string{"id": "3"})
	rr := httptest.NewRecorder()
	h.MarkPaid(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSubscription(t *testing.T) {
	mock := setupMockDB(t)
	h := New(nil)

	mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(4), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := authedRequest(t, http.MethodDelete, "/subscriptions/4", nil, &models.User{ID: 1})
	req = mux.SetURLVars(req, map[string]string{"id": "4"})
	rr := httptest.NewRecorder()
	h.DeleteSubscription(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
