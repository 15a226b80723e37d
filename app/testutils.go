package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/mailservice"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	if len(responseBody) == 0 {
		return res.StatusCode, res.Header, nil
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	rabbitURI := common.TestRabbitMQ(t)
	rabbitmq, err := common.NewMessageBroker(rabbitURI)
	assert.NoError(t, err)

	err = common.SetupUserExchange(rabbitmq)
	assert.NoError(t, err)

	cfg, err := loadConfig("../.test.env")
	assert.NoError(t, err)

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, rabbitmq),
		mailService: mailservice.NewMailService(rabbitmq, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailAdmin, cfg.MailPort, logger),
		broker:      rabbitmq,
		blogService: blogservice.NewBlogService(db, cache),
	}

	return app, db
}

func (ts *testServer) post(t *testing.T, path string, data any, token *string) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewReader(jsonPayload)
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) put(t *testing.T, path string, token *string, payload any) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewReader(jsonPayload)
	req, err := http.NewRequest(http.MethodPut, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

// registerAndLogin creates a user through the API and returns a live token.
func (ts *testServer) registerAndLogin(t *testing.T, username, name, password string) string {
	status, _, _ := ts.post(t, "/api/users", map[string]any{
		"username": username,
		"name":     name,
		"password": password,
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("could not register %s: got status %d", username, status)
	}

	status, _, body := ts.post(t, "/api/login", map[string]any{
		"username": username,
		"password": password,
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("could not log in %s: got status %d", username, status)
	}

	token, ok := body["token"].(map[string]any)["token"].(string)
	if !ok {
		t.Fatalf("login response missing token: %s", body.JSON())
	}

	return token
}
