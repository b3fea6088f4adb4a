package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathAnalyzeFreeform, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	resp, err := c.AnalyzeFreeform(context.Background(), "Income: Job 1 CHF (Salary)")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "Income: Job 1 CHF (Salary)", got["text"])
}

func TestPostNilPayloadSendsEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{}`, string(b))
		w.Write([]byte(`{"status":"ready"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).KBInit(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestPostMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathUploadStatement, r.URL.Path)
		f, hdr, err := r.FormFile(StatementField)
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)

		assert.Equal(t, "march.pdf", hdr.Filename)
		assert.Equal(t, StatementContentType, hdr.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4", string(data))
		w.Write([]byte(`{"currency":"CHF","transactions":[]}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).UploadStatement(context.Background(), "march.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestAnalyzeSendsEmptyExpenses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"income":3000,"expenses":[]}`, string(b))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Analyze(context.Background(), AnalyzeRequest{Income: 3000})
	require.NoError(t, err)
}

func TestKBSearchPicksEndpoint(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	req := SearchRequest{Query: "emergency fund", TopK: 4}
	_, err := c.KBSearch(context.Background(), req, true)
	require.NoError(t, err)
	_, err = c.KBSearch(context.Background(), req, false)
	require.NoError(t, err)

	assert.Equal(t, []string{PathKBAdvanced, PathKBSearch}, paths)
}

func TestErrorStatusIsNotTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad statement"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Get(context.Background(), PathStatus)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, "bad statement", resp.ErrorMessage("Failed to parse statement."))
}

func TestTransportError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = NewClient("http://"+addr).Post(context.Background(), PathAnalyze, nil, nil)
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.MethodPost, te.Method)
}

func TestGetTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, WithTimeouts(20*time.Millisecond, 0))
	_, err := c.Get(context.Background(), PathStatus)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStatusSharesConcurrentProbes(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(`{"ready":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := c.Status(context.Background())
			assert.NoError(t, err)
			assert.True(t, resp.OK())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}
