package main

import (
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeGracefulShutdown(t *testing.T) {
	app := &application{
		config: &Config{},
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.serve(":0")
	}()

	// give the server time to register its signal handler
	time.Sleep(500 * time.Millisecond)

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
