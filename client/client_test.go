package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains a Run channel, failing the test if the turn does not
// finish promptly.
func collect(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("turn did not finish")
		}
	}
}

func TestInvokeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoke", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req InvokeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deploy service-a to staging", req.Query)

		json.NewEncoder(w).Encode(InvokeResponse{Response: "Deployment triggered."})
	}))
	defer srv.Close()

	c := New(srv.URL)
	text, err := c.Invoke(context.Background(), "deploy service-a to staging")
	require.NoError(t, err)
	assert.Equal(t, "Deployment triggered.", text)
}

func TestInvokeErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Detail: "quota exceeded"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Invoke(context.Background(), "query costs")
	require.Error(t, err)
	assert.Equal(t, "quota exceeded", err.Error())
}

func TestInvokeErrorNoDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Invoke(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, "HTTP error 502", err.Error())
}

func TestInvokeErrorNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>Internal Server Error</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Invoke(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, "HTTP error 500", err.Error())
}

func TestRunBlockingSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(InvokeResponse{Response: "All services healthy."})
	}))
	defer srv.Close()

	c := New(srv.URL)
	events := collect(t, c.Run(context.Background(), "check health"))

	require.Len(t, events, 1)
	assert.Equal(t, EventResponse, events[0].Kind)
	assert.Equal(t, "All services healthy.", events[0].Text)
}

func TestRunBlockingFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(ErrorResponse{Detail: "agent pool exhausted"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	events := collect(t, c.Run(context.Background(), "check health"))

	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Kind)
	assert.Equal(t, "agent pool exhausted", events[0].Text)
}

func TestRunNetworkFailure(t *testing.T) {
	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	for _, streaming := range []bool{false, true} {
		c := New(srv.URL)
		c.Streaming = streaming
		events := collect(t, c.Run(context.Background(), "hello"))

		require.Len(t, events, 1)
		assert.Equal(t, EventError, events[0].Kind)
		assert.NotEmpty(t, events[0].Text)
	}
}

func TestEventTerminal(t *testing.T) {
	assert.False(t, Event{Kind: EventStatus}.Terminal())
	assert.False(t, Event{Kind: EventDone}.Terminal())
	assert.False(t, Event{Kind: EventWarning}.Terminal())
	assert.True(t, Event{Kind: EventResponse}.Terminal())
	assert.True(t, Event{Kind: EventError}.Terminal())
}
