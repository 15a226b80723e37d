package main

import (
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutes(t *testing.T) {
	app := &application{
		config: &Config{},
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	// registering the full route table must not trip httprouter's
	// static-versus-wildcard conflict check
	var h http.Handler
	assert.NotPanics(t, func() { h = app.routes() })
	assert.NotNil(t, h)
}
