// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a test server with throttling loosened
// so tests don't wait on the settings limiter.
func newTestClient(serverURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = serverURL
	cfg.SettingsPerSecond = 1000
	return NewClientWithConfig(cfg)
}

// =============================================================================
// MODEL ENDPOINT TESTS
// =============================================================================

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/models", r.URL.Path)
		json.NewEncoder(w).Encode(ListModelsResponse{Models: []string{"llama3", "mistral"}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3", "mistral"}, models)
}

func TestSetModel(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/set_model", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	require.NoError(t, client.SetModel(context.Background(), "mistral"))
	assert.Equal(t, "mistral", got["model"])
}

func TestSetModelSurfacesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "unknown model: gpt-9"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.SetModel(context.Background(), "gpt-9")
	require.Error(t, err)
	require.True(t, IsRequestError(err))
	assert.Equal(t, "unknown model: gpt-9", err.Error())
}

func TestRequestErrorFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.SetModel(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

// =============================================================================
// CHAT DIRECTORY TESTS
// =============================================================================

func TestCreateChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chats", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "groceries", body["name"])

		json.NewEncoder(w).Encode(CreateChatResponse{ChatID: "chat_42"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.CreateChat(context.Background(), "groceries")
	require.NoError(t, err)
	assert.Equal(t, "chat_42", id)
}

func TestLoadChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chats/chat_42", r.URL.Path)
		json.NewEncoder(w).Encode(LoadChatResponse{Messages: []ChatMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	msgs, err := client.LoadChat(context.Background(), "chat_42")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "assistant", msgs[1].Role)
}

func TestLoadChatEmptyIDUsesScratchChat(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewEncoder(w).Encode(LoadChatResponse{})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.LoadChat(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/api/chats/None", path)
}

// =============================================================================
// SETTINGS TESTS
// =============================================================================

func TestGetSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/get_settings", r.URL.Path)
		w.Write([]byte(`{"summarizeHistory": true, "summaryModel": "llama3", "maxMessagesToFeed": 20}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	settings, err := client.GetSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.SummarizeHistory)
	assert.Equal(t, "llama3", settings.SummaryModel)
	assert.Equal(t, 20, settings.MaxMessagesToFeed)
}

func TestSettingsSetters(t *testing.T) {
	type call struct {
		path string
		body string
	}
	var calls []call
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		calls = append(calls, call{path: r.URL.Path, body: string(buf)})
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	require.NoError(t, client.SetSummarization(ctx, true))
	require.NoError(t, client.SetSummarizationModel(ctx, "llama3"))
	require.NoError(t, client.SetMaxMessages(ctx, 10))
	require.NoError(t, client.DisableSummarization(ctx))

	require.Len(t, calls, 4)
	assert.Equal(t, "/api/set_summarization", calls[0].path)
	assert.JSONEq(t, `{"summarizeHistory": true}`, calls[0].body)
	assert.Equal(t, "/api/set_summarization_model", calls[1].path)
	assert.Equal(t, "/api/set_max_messages", calls[2].path)
	assert.JSONEq(t, `{"maxMessages": 10}`, calls[2].body)
	assert.Equal(t, "/api/disable_summarization", calls[3].path)
}

func TestSetMaxMessagesClampsNegative(t *testing.T) {
	var body map[string]int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	require.NoError(t, client.SetMaxMessages(context.Background(), -5))
	assert.Equal(t, 0, body["maxMessages"])
}

// =============================================================================
// TRANSPORT FAILURE TESTS
// =============================================================================

func TestListModelsBackendDown(t *testing.T) {
	// Point at a closed server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListModels(context.Background())
	require.Error(t, err)
	assert.True(t, IsNotReachable(err))
}
