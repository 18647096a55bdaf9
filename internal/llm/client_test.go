package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "sk-test"
	return cfg
}

type recordingObserver struct {
	events []LLMCallEvent
}

func (r *recordingObserver) OnCallComplete(e LLMCallEvent) {
	r.events = append(r.events, e)
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"model": "mistral:7b",
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
}

func TestChatClient_Complete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, CompletionsPath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistral:7b", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, 0.1, req.Temperature)
		assert.Equal(t, 800, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "the prompt", req.Messages[0].Content)

		writeCompletion(w, "Taux : 3,5% l'an")
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewChatClient(testConfig(srv.URL), obs)
	text, err := client.Complete(context.Background(), "the prompt")

	require.NoError(t, err)
	assert.Equal(t, "Taux : 3,5% l'an", text)
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, http.StatusOK, obs.events[0].StatusCode)
	assert.GreaterOrEqual(t, obs.events[0].LatencyMs, int64(0))
}

func TestChatClient_Complete_RawRequestBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.ElementsMatch(t,
			[]string{"model", "messages", "stream", "temperature", "max_tokens"},
			keys(raw))
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	_, err := NewChatClient(testConfig(srv.URL), nil).Complete(context.Background(), "p")
	require.NoError(t, err)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestChatClient_Complete_NoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""
	_, err := NewChatClient(cfg, nil).Complete(context.Background(), "p")
	require.NoError(t, err)
}

func TestChatClient_Complete_NonOKStatusIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	_, err := NewChatClient(testConfig(srv.URL), obs).Complete(context.Background(), "p")

	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrTransport)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, CodeUpstream, obs.events[0].ErrorCode)
	assert.Equal(t, http.StatusBadGateway, obs.events[0].StatusCode)
}

func TestChatClient_Complete_MissingChoicesIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewChatClient(testConfig(srv.URL), nil).Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestChatClient_Complete_UndecodableBodyIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>login</html>`))
	}))
	defer srv.Close()

	_, err := NewChatClient(testConfig(srv.URL), nil).Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestChatClient_Complete_EmptyContentIsReturned(t *testing.T) {
	for _, content := range []string{"", "   "} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeCompletion(w, content)
		}))

		obs := &recordingObserver{}
		got, err := NewChatClient(testConfig(srv.URL), obs).Complete(context.Background(), "p")
		srv.Close()

		require.NoError(t, err, "content %q", content)
		assert.Equal(t, content, got)
		require.Len(t, obs.events, 1)
		assert.True(t, obs.events[0].Success)
	}
}

func TestChatClient_Complete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
		writeCompletion(w, "too late")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50

	obs := &recordingObserver{}
	_, err := NewChatClient(cfg, obs).Complete(context.Background(), "p")

	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, ErrTransport)
	require.Len(t, obs.events, 1)
	assert.Equal(t, CodeTimeout, obs.events[0].ErrorCode)
}

func TestChatClient_Complete_Unreachable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.TimeoutMs = 1000

	_, err := NewChatClient(cfg, nil).Complete(context.Background(), "p")

	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestChatClient_Complete_NotConfigured(t *testing.T) {
	_, err := NewChatClient(DefaultConfig(), nil).Complete(context.Background(), "p")

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestChatClient_Complete_SingleAttempt(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewChatClient(testConfig(srv.URL), nil).Complete(context.Background(), "p")

	assert.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestChatClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, modelsPath, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewChatClient(testConfig(srv.URL), nil).Available(context.Background()))
	assert.False(t, NewChatClient(DefaultConfig(), nil).Available(context.Background()))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, CodeUpstream, ErrorCode(ErrUpstream))
	assert.Equal(t, CodeTransport, ErrorCode(ErrTransport))
	assert.Equal(t, CodeTimeout, ErrorCode(ErrTimeout))
	assert.Equal(t, CodeUnknown, ErrorCode(assert.AnError))
}
