// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the LLM Notepad backend.
package api

import (
	"errors"
	"strconv"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotReachable
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidResponse
	ErrTypeRequestFailed
)

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for easy checking.
var (
	ErrNotReachable = &ClientError{Type: ErrTypeNotReachable, Message: "backend is not reachable"}
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// =============================================================================
// REQUEST FAILURES
// =============================================================================

// RequestError is a non-success response from a backend REST endpoint. It
// carries the server-provided detail message when one was returned.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "request failed with status " + strconv.Itoa(e.Status)
}

// IsRequestError reports whether err is a RequestError.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// IsNotReachable reports whether err indicates the backend is down.
func IsNotReachable(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeNotReachable
	}
	return false
}

// UserMessage converts a client error into text suitable for direct display.
// Server-provided detail text wins when present; transport errors get a
// short fixed phrasing instead of wrapped Go error chains.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var re *RequestError
	if errors.As(err, &re) {
		return re.Error()
	}

	var ce *ClientError
	if errors.As(err, &ce) {
		switch ce.Type {
		case ErrTypeNotReachable:
			return "Backend is not reachable. Is the server running?"
		case ErrTypeTimeout:
			return "Request timed out."
		}
		return ce.Message
	}
	return err.Error()
}

// IsTimeout reports whether err indicates a timeout.
func IsTimeout(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeTimeout
	}
	return false
}
