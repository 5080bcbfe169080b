// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "strings"

// =============================================================================
// CHUNK DECODING
// =============================================================================

// Stream sentinels. Any payload that is not a sentinel is a literal fragment
// of the assistant's reply.
const (
	doneSentinel  = "[DONE]"
	errorSentinel = "[ERROR]"
)

// ChunkKind classifies a decoded stream event payload.
type ChunkKind int

const (
	// ChunkFragment carries one unit of incremental assistant text.
	ChunkFragment ChunkKind = iota
	// ChunkDone signals normal stream completion.
	ChunkDone
	// ChunkError signals a server-side failure reported in-band.
	ChunkError
)

// Chunk is the decoded form of one stream event payload.
type Chunk struct {
	Kind ChunkKind

	// Text is the fragment text with escaped newlines rewritten. Set only
	// for ChunkFragment.
	Text string

	// Raw is the full payload, kept for diagnostics. Set only for ChunkError.
	Raw string
}

// DecodeChunk classifies one raw stream event payload. Decoding is pure and
// total: every string maps to exactly one chunk kind.
//
// The backend escapes newlines inside fragments as the two-character
// sequence `\n` so each SSE data line stays single-line; fragments are
// rewritten back to real newlines here.
func DecodeChunk(payload string) Chunk {
	if payload == doneSentinel {
		return Chunk{Kind: ChunkDone}
	}
	if strings.HasPrefix(payload, errorSentinel) {
		return Chunk{Kind: ChunkError, Raw: payload}
	}
	return Chunk{Kind: ChunkFragment, Text: strings.ReplaceAll(payload, `\n`, "\n")}
}
