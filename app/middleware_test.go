package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string {
	return &s
}

func TestRecoverPanic(t *testing.T) {
	app, _ := newTestApplication(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	middleware := app.recoverPanic(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	middleware.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
}

func TestAuthenticate(t *testing.T) {
	app, _ := newTestApplication(t)

	setup := func(db *sql.DB) (*string, error) {
		ctx := context.Background()

		_, err := app.userService.CreateUser(ctx, "testuser", "Test User", "sekret")
		if err != nil {
			return nil, err
		}

		token, err := app.userService.LoginUser(ctx, "testuser", "sekret")
		if err != nil {
			return nil, err
		}

		return &token.Plain, nil
	}

	tests := []struct {
		name           string
		authHeader     func(db *sql.DB) (*string, error)
		expectedStatus int
	}{
		{
			name:           "No Authentication Header",
			authHeader:     func(db *sql.DB) (*string, error) { return nil, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Malformed Authentication Header",
			authHeader:     func(db *sql.DB) (*string, error) { return strptr("invalid-token"), nil },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown Token",
			authHeader:     func(db *sql.DB) (*string, error) { return strptr("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), nil },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid Authentication Header",
			authHeader:     setup,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			middleware := app.authenticate(handler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != nil {
				token, err := tt.authHeader(nil)
				assert.NoError(t, err)

				if token != nil {
					req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
				}
			}

			res := httptest.NewRecorder()

			middleware.ServeHTTP(res, req)

			assert.Equal(t, tt.expectedStatus, res.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	app := &application{
		config: &Config{
			LimiterRPS:     2,
			LimiterBurst:   4,
			LimiterEnabled: true,
		},
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := app.rateLimit(handler)

	server := httptest.NewServer(middleware)
	defer server.Close()

	tests := []struct {
		name           string
		requests       int
		expectedStatus int
	}{
		{
			name:           "Within Limit",
			requests:       4,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Over Limit",
			requests:       6,
			expectedStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastStatusCode int

			for i := 0; i < tt.requests; i++ {
				res, err := http.Get(server.URL)
				assert.NoError(t, err)

				lastStatusCode = res.StatusCode
			}

			assert.Equal(t, tt.expectedStatus, lastStatusCode)
		})
	}
}
