// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the LLM Notepad backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8080).
	// Uses an explicit IPv4 address instead of localhost to avoid IPv6
	// resolution issues on Windows.
	BaseURL string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration

	// StreamTimeout for establishing streaming connections (default: 10s)
	StreamTimeout time.Duration

	// SettingsPerSecond caps how often the fire-and-forget settings setters
	// hit the backend; rapid UI toggles coalesce behind the limiter
	// (default: 4/s, burst 2).
	SettingsPerSecond float64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://127.0.0.1:8080",
		Timeout:           30 * time.Second,
		StreamTimeout:     10 * time.Second,
		SettingsPerSecond: 4,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the LLM Notepad backend.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client

	// streamClient has no overall timeout: a push stream stays open for
	// the whole response. Connection establishment is bounded separately.
	streamClient *http.Client

	settingsLimiter *rate.Limiter
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8080"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.StreamTimeout == 0 {
		config.StreamTimeout = 10 * time.Second
	}
	if config.SettingsPerSecond == 0 {
		config.SettingsPerSecond = 4
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		streamClient: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: config.StreamTimeout,
			},
		},
		settingsLimiter: rate.NewLimiter(rate.Limit(config.SettingsPerSecond), 2),
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// MODEL OPERATIONS
// =============================================================================

// ListModelsResponse is the payload of GET /api/models.
type ListModelsResponse struct {
	Models []string `json:"models"`
}

// ListModels retrieves the available model identifiers. The first entry is
// the backend's default.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var result ListModelsResponse
	if err := c.getJSON(ctx, "/api/models", &result); err != nil {
		return nil, err
	}
	return result.Models, nil
}

// SetModel switches the backend's active model.
func (c *Client) SetModel(ctx context.Context, model string) error {
	return c.postJSON(ctx, "/api/set_model", map[string]string{"model": model})
}

// =============================================================================
// CHAT DIRECTORY OPERATIONS
// =============================================================================

// ListChatsResponse is the payload of GET /api/chats.
type ListChatsResponse struct {
	Chats []string `json:"chats"`
}

// CreateChatResponse is the payload of POST /api/chats.
type CreateChatResponse struct {
	ChatID string `json:"chat_id"`
}

// ChatMessage is one stored message of a loaded chat.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LoadChatResponse is the payload of GET /api/chats/{id}.
type LoadChatResponse struct {
	Messages []ChatMessage `json:"messages"`
}

// ListChats retrieves the identifiers of all stored chats.
func (c *Client) ListChats(ctx context.Context) ([]string, error) {
	var result ListChatsResponse
	if err := c.getJSON(ctx, "/api/chats", &result); err != nil {
		return nil, err
	}
	return result.Chats, nil
}

// CreateChat creates a new stored chat with the given name and returns the
// generated chat identifier.
func (c *Client) CreateChat(ctx context.Context, name string) (string, error) {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/chats", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errorFromResponse(resp)
	}

	var result CreateChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return result.ChatID, nil
}

// LoadChat retrieves the stored messages of a chat, oldest first. An empty
// id loads the backend's unsaved scratch chat.
func (c *Client) LoadChat(ctx context.Context, id string) ([]ChatMessage, error) {
	if id == "" {
		id = "None"
	}
	var result LoadChatResponse
	if err := c.getJSON(ctx, "/api/chats/"+id, &result); err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// =============================================================================
// SETTINGS OPERATIONS
// =============================================================================

// Settings holds the backend's summarization settings.
type Settings struct {
	SummarizeHistory  bool   `json:"summarizeHistory"`
	SummaryModel      string `json:"summaryModel"`
	MaxMessagesToFeed int    `json:"maxMessagesToFeed"`
}

// GetSettings retrieves the summarization settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var result Settings
	if err := c.getJSON(ctx, "/api/get_settings", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetSummarization toggles chat history summarization.
func (c *Client) SetSummarization(ctx context.Context, enabled bool) error {
	if err := c.waitSettings(ctx); err != nil {
		return err
	}
	return c.postJSON(ctx, "/api/set_summarization", map[string]bool{"summarizeHistory": enabled})
}

// DisableSummarization clears the summarization model server-side.
func (c *Client) DisableSummarization(ctx context.Context) error {
	if err := c.waitSettings(ctx); err != nil {
		return err
	}
	return c.postJSON(ctx, "/api/disable_summarization", struct{}{})
}

// SetSummarizationModel selects the model used to summarize history.
func (c *Client) SetSummarizationModel(ctx context.Context, model string) error {
	if err := c.waitSettings(ctx); err != nil {
		return err
	}
	return c.postJSON(ctx, "/api/set_summarization_model", map[string]string{"model": model})
}

// SetMaxMessages bounds how many prior messages are fed to the model.
func (c *Client) SetMaxMessages(ctx context.Context, n int) error {
	if n < 0 {
		n = 0
	}
	if err := c.waitSettings(ctx); err != nil {
		return err
	}
	return c.postJSON(ctx, "/api/set_max_messages", map[string]int{"maxMessages": n})
}

// waitSettings throttles the fire-and-forget settings setters.
func (c *Client) waitSettings(ctx context.Context) error {
	if err := c.settingsLimiter.Wait(ctx); err != nil {
		return &ClientError{Type: ErrTypeTimeout, Message: "settings request throttled", Cause: err}
	}
	return nil
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// postJSON performs a POST request with a JSON body, discarding any
// success payload.
func (c *Client) postJSON(ctx context.Context, path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}

// transportError maps a low-level HTTP error to a client error.
func (c *Client) transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &ClientError{Type: ErrTypeNotReachable, Message: "backend is not reachable", Cause: err}
}

// errorFromResponse converts a non-success response into a RequestError,
// preserving the server-provided detail message when present.
func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return &RequestError{Status: resp.StatusCode, Detail: detail.Detail}
	}
	return &RequestError{Status: resp.StatusCode}
}
