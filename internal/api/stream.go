// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
)

// =============================================================================
// STREAMING CONSTANTS
// =============================================================================

// MaxEventSize is the maximum allowed size for a single SSE event (64KB).
const MaxEventSize = 64 * 1024

// ErrStreamClosed is returned when the push stream ends without a [DONE]
// sentinel. This is a transport-level failure, not a server-signaled error.
var ErrStreamClosed = errors.New("stream closed before completion")

// =============================================================================
// SSE READER
// =============================================================================

// SSEReader parses Server-Sent Events from a stream.
type SSEReader struct {
	reader *bufio.Reader
}

// NewSSEReader creates a new SSE reader from an io.Reader.
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{
		reader: bufio.NewReader(r),
	}
}

// ReadEvent reads the next SSE event and returns its data payload.
// Multi-line data fields are joined with a newline per the SSE spec.
// Returns io.EOF when the stream ends.
func (s *SSEReader) ReadEvent() ([]byte, error) {
	var dataLines [][]byte
	total := 0

	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				// Flush any buffered data before reporting EOF
				if len(dataLines) > 0 {
					return bytes.Join(dataLines, []byte("\n")), nil
				}
				return nil, io.EOF
			}
			return nil, err
		}

		line = bytes.TrimRight(line, "\r\n")

		// Empty line signals end of event
		if len(line) == 0 {
			if len(dataLines) > 0 {
				return bytes.Join(dataLines, []byte("\n")), nil
			}
			continue
		}

		if bytes.HasPrefix(line, []byte("data: ")) {
			line = line[6:]
		} else if bytes.HasPrefix(line, []byte("data:")) {
			line = bytes.TrimSpace(line[5:])
		} else {
			// Ignore other fields (event:, id:, retry:, comments)
			continue
		}

		total += len(line)
		if total > MaxEventSize {
			return nil, errors.New("sse event exceeds maximum size")
		}
		dataLines = append(dataLines, line)
	}
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// StreamChat opens a push stream for one outbound user message and feeds
// each decoded event to fn, in delivery order. The message must already be
// trimmed; it is URL-encoded here.
//
// fn is called for every event including the terminal ChunkDone or
// ChunkError, after which StreamChat returns nil. A stream that ends
// without a terminal chunk, or any connection-level failure, is reported
// as a non-nil error; fragments already delivered stand.
//
// Cancelling ctx closes the transport; no further events are delivered.
func (c *Client) StreamChat(ctx context.Context, message string, fn func(Chunk)) error {
	endpoint := c.config.BaseURL + "/api/chat/stream?message=" + url.QueryEscape(message)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(resp)
	}

	reader := NewSSEReader(resp.Body)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		data, err := reader.ReadEvent()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err == io.EOF {
				return ErrStreamClosed
			}
			return &ClientError{Type: ErrTypeConnection, Message: "stream read failed", Cause: err}
		}

		chunk := DecodeChunk(string(data))
		fn(chunk)

		if chunk.Kind == ChunkDone || chunk.Kind == ChunkError {
			return nil
		}
	}
}
