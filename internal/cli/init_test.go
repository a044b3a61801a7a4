package cli

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	applog "networth/internal/log"
)

func bufferLogger(buf *bytes.Buffer) *applog.Logger {
	return applog.New(applog.Config{
		Component: applog.ComponentApp,
		Handler:   slog.NewTextHandler(buf, nil),
	})
}

func TestShutdownRunsCleanup(t *testing.T) {
	var buf bytes.Buffer
	called := false

	shutdown(bufferLogger(&buf), "terminated", time.Second, func(ctx context.Context) {
		called = true
		_, ok := ctx.Deadline()
		assert.True(t, ok, "cleanup gets a bounded context")
	})

	assert.True(t, called)
	out := buf.String()
	assert.Contains(t, out, "signal=terminated")
	assert.Contains(t, out, "operation=shutdown")
	assert.NotContains(t, out, "Shutdown timeout reached")
}

func TestShutdownReportsTimeout(t *testing.T) {
	var buf bytes.Buffer

	shutdown(bufferLogger(&buf), "interrupt", 10*time.Millisecond, func(ctx context.Context) {
		<-ctx.Done()
	})

	assert.Contains(t, buf.String(), "Shutdown timeout reached")
}

func TestShutdownWithoutCleanup(t *testing.T) {
	var buf bytes.Buffer
	shutdown(bufferLogger(&buf), "interrupt", time.Second, nil)
	assert.Contains(t, buf.String(), "operation=shutdown")
}
