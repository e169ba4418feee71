package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"subtrackr/internal/auth"
	"subtrackr/internal/db"
	"subtrackr/internal/models"
)

func TestAuthMiddlewareLoadsUserFromCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	mockDb, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer mockDb.Close()
	originalDB := db.DB
	db.DB = sqlx.NewDb(mockDb, "sqlmock")
	defer func() { db.DB = originalDB }()

	mock.ExpectQuery(`SELECT \* FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "language", "preferred_currency", "created_at", "updated_at"}).
			AddRow(7, "alice", "alice@example.com", "x", "en", "USD", time.Now(), time.Now()))

	token, err := auth.GenerateToken(7)
	assert.NoError(t, err)

	var gotUser *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = r.Context().Value(UserContextKey).(*models.User)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	rr := httptest.NewRecorder()

	AuthMiddleware(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, gotUser)
	assert.Equal(t, "alice", gotUser.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rr := httptest.NewRecorder()

	called := false
	AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()

	called := false
	AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}
