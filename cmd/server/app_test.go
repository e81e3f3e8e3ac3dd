package main

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/distill-api/internal/config"
	"github.com/phrazzld/distill-api/internal/platform/logger"
	"github.com/phrazzld/distill-api/internal/runlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOllama serves /api/generate with a fixed model response.
func fakeOllama(t *testing.T, response string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(map[string]any{"response": response}))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Port: 8000, LogLevel: "debug", RequestTimeoutSeconds: 30},
		LLM: config.LLMConfig{
			Provider:          "ollama",
			Model:             "llama3.1:8b",
			BaseURL:           baseURL,
			TimeoutSeconds:    5,
			MaxAttempts:       1,
			RetryDelaySeconds: 0,
			Temperature:       0.2,
		},
		RunLog: config.RunLogConfig{
			Driver: config.RunLogDriverFile,
			Path:   filepath.Join(t.TempDir(), "runlog", "api_runs.jsonl"),
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	l, _ := logger.NewTestLogger(t)
	app, err := newApplication(context.Background(), cfg, l)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestRouter_ExtractEndToEnd(t *testing.T) {
	llm := fakeOllama(t, "```json\n{\"summary\": \"Plan Q3.\", \"key_points\": [\"hire\",]}\n```")
	cfg := testConfig(t, llm.URL)
	srv := newTestServer(t, cfg)

	resp, body := post(t, srv.URL+"/extract", `{"text":"meeting notes"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, map[string]any{"summary": "Plan Q3.", "key_points": []any{"hire"}}, body["data"])

	f, err := os.Open(cfg.RunLog.Path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var rec runlog.Record
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
	assert.Equal(t, "/extract", rec.Endpoint)
	assert.Equal(t, "llama3.1:8b", rec.Model)
	assert.Equal(t, "meeting notes", rec.InputText)
	assert.False(t, scanner.Scan(), "exactly one record expected")
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, testConfig(t, "http://localhost:1"))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"ok": true, "model": "llama3.1:8b"}, body)
}

func TestRouter_ExtractorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		llmOutput  string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "unknown mode",
			llmOutput:  `{}`,
			body:       `{"text":"x","mode":"poem"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "mode must be 'summary' or 'action_items'",
		},
		{
			name:       "no json in output",
			llmOutput:  "I cannot help with that.",
			body:       `{"text":"x","mode":"summary"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Model returned invalid JSON",
		},
		{
			name:       "schema mismatch",
			llmOutput:  `{"summary": "only"}`,
			body:       `{"text":"x","mode":"summary"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "JSON schema validation failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, testConfig(t, fakeOllama(t, tc.llmOutput).URL))

			resp, body := post(t, srv.URL+"/extractor", tc.body)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, tc.wantError, body["error"])
			assert.NotEmpty(t, body["trace_id"])
		})
	}
}

func TestRouter_ActionItemsEmptyListIs500(t *testing.T) {
	srv := newTestServer(t, testConfig(t, fakeOllama(t, `{"action_items": []}`).URL))

	resp, body := post(t, srv.URL+"/action-items", `{"text":"nothing"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "No action items extracted.", body["error"])
}

func TestRouter_GenerationFailureIs500(t *testing.T) {
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	t.Cleanup(llm.Close)

	srv := newTestServer(t, testConfig(t, llm.URL))

	resp, body := post(t, srv.URL+"/extractor", `{"text":"x","mode":"action_items"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Model generation failed", body["error"])
}

func TestNewApplication_Errors(t *testing.T) {
	l, _ := logger.NewTestLogger(t)

	t.Run("gemini without key", func(t *testing.T) {
		cfg := testConfig(t, "http://localhost:1")
		cfg.LLM.Provider = "gemini"
		_, err := newApplication(context.Background(), cfg, l)
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := testConfig(t, "http://localhost:1")
		cfg.LLM.Provider = "llamafile"
		_, err := newApplication(context.Background(), cfg, l)
		assert.Error(t, err)
	})

	t.Run("run log disabled", func(t *testing.T) {
		cfg := testConfig(t, "http://localhost:1")
		cfg.RunLog = config.RunLogConfig{Driver: config.RunLogDriverNone}
		app, err := newApplication(context.Background(), cfg, l)
		require.NoError(t, err)
		assert.IsType(t, runlog.NopSink{}, app.runLog)
		assert.Nil(t, app.db)
	})
}

func TestStartHTTPServer_ContextCancel(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	cfg := testConfig(t, "http://localhost:1")
	cfg.Server.Port = 0
	app, err := newApplication(context.Background(), cfg, l)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, app.Run(ctx))
}
