package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finapp/internal/api"
	"finapp/internal/events"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "ping", "tail-events"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("port"))
	assert.NotNil(t, root.PersistentFlags().Lookup("api-base"))
}

func TestPing(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != api.PathStatus {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"ready":true}`))
	}))
	defer backend.Close()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("FINAPP_API_BASE", "")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"ping", "--api-base", backend.URL})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "API reachable.")
}

func TestPing_BackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Index not built"}`))
	}))
	defer backend.Close()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("FINAPP_API_BASE", "")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"ping", "--api-base", backend.URL})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Index not built")
}

func TestTailEvents_RequiresBroker(t *testing.T) {
	t.Setenv("AMQP_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"tail-events"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AMQP_URL")
}

func TestFormatSubmission(t *testing.T) {
	s := events.NewSubmission("budget", api.PathAnalyze, events.OutcomeAPIError, 400, 1500*time.Millisecond)

	line := formatSubmission(s)

	assert.Contains(t, line, "budget")
	assert.Contains(t, line, api.PathAnalyze)
	assert.Contains(t, line, events.OutcomeAPIError)
	assert.Contains(t, line, "400")
	assert.True(t, strings.HasSuffix(line, "1.5s"), line)
}
