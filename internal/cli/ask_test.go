// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"strings"
	"testing"
)

func TestRenderReplyPipedOutputStaysRaw(t *testing.T) {
	// Test binaries never run with a TTY stdout, so this exercises the
	// pipe-friendly path.
	out := renderReply("# heading\n\nsome **bold** text")
	if !strings.Contains(out, "# heading") || !strings.Contains(out, "**bold**") {
		t.Errorf("Piped output was rendered: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Output must end with a newline")
	}
}

func TestRenderReplyEmpty(t *testing.T) {
	if out := renderReply(""); out != "" {
		t.Errorf("Empty reply rendered as %q", out)
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	if err := Ask(context.Background(), nil, "   "); err == nil {
		t.Error("Expected an error for a blank question")
	}
}
