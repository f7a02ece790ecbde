package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(apiKey, baseURL string) *Client {
	return NewClient(Config{APIKey: apiKey, BaseURL: baseURL, Timeout: 5 * time.Second}, testLogger())
}

func TestReply_Success(t *testing.T) {
	var gotReq geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Try Go."}]}}]}`))
	}))
	defer srv.Close()

	reply, err := newTestClient("test-key", srv.URL).Reply(context.Background(), "Which language?")

	require.NoError(t, err)
	assert.Equal(t, "Try Go.", reply)
	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	assert.Equal(t, "Which language?", gotReq.Contents[0].Parts[0].Text)
}

func TestReply_EmptyCandidatesFallsBack(t *testing.T) {
	for name, body := range map[string]string{
		"no candidates": `{"candidates":[]}`,
		"no parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
		"empty text":    `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			reply, err := newTestClient("k", srv.URL).Reply(context.Background(), "hi")

			require.NoError(t, err)
			assert.Equal(t, FallbackReply, reply)
		})
	}
}

func TestReply_NoAPIKey(t *testing.T) {
	_, err := newTestClient("", "http://127.0.0.1:1").Reply(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestReply_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient("k", srv.URL).Reply(context.Background(), "hi")

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusTooManyRequests, upErr.StatusCode)
	assert.Contains(t, upErr.Body, "quota exceeded")
}

func TestReply_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient("secret-key", url).Reply(context.Background(), "hi")

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Zero(t, upErr.StatusCode)
	assert.NotContains(t, upErr.Error(), "secret-key")
}

func TestReply_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newTestClient("k", srv.URL).Reply(context.Background(), "hi")

	require.Error(t, err)
	var upErr *UpstreamError
	assert.False(t, errors.As(err, &upErr))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{}, testLogger())

	assert.Equal(t, DefaultModel, c.model)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
