// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "testing"

func TestDragGrowsAndShrinks(t *testing.T) {
	d := NewDragResizer(500, 800)

	d.PointerDown(600)
	d.PointerMove(580) // toward the content area grows
	if got := d.Size(); got != 520 {
		t.Errorf("Size after upward drag = %d, want 520", got)
	}
	d.PointerMove(610) // away shrinks
	if got := d.Size(); got != 490 {
		t.Errorf("Size after downward drag = %d, want 490", got)
	}
	d.PointerUp()
}

func TestDragTrackingIsIncremental(t *testing.T) {
	d := NewDragResizer(500, 800)

	d.PointerDown(600)
	d.PointerMove(590)
	d.PointerMove(580)
	d.PointerMove(570)
	if got := d.Size(); got != 530 {
		t.Errorf("Size after three 10-unit moves = %d, want 530", got)
	}
}

func TestClampUpperBound(t *testing.T) {
	// Maximum is viewport extent minus the reserved margin.
	d := NewDragResizer(500, 800)

	d.PointerDown(600)
	d.PointerMove(100) // would push size to 1000
	if got := d.Size(); got != 800-DefaultMaxMargin {
		t.Errorf("Size = %d, want clamped %d", got, 800-DefaultMaxMargin)
	}
	// Further movement past the bound stays at the bound.
	d.PointerMove(50)
	if got := d.Size(); got != 800-DefaultMaxMargin {
		t.Errorf("Size after further drag = %d, want %d", got, 800-DefaultMaxMargin)
	}
}

func TestClampLowerBound(t *testing.T) {
	d := NewDragResizer(500, 800)

	d.PointerDown(100)
	d.PointerMove(900) // would push size below zero
	if got := d.Size(); got != DefaultMinSize {
		t.Errorf("Size = %d, want clamped %d", got, DefaultMinSize)
	}
}

func TestMoveIgnoredWhenIdle(t *testing.T) {
	d := NewDragResizer(500, 800)

	d.PointerMove(100)
	if got := d.Size(); got != 500 {
		t.Errorf("Size changed without an active gesture: %d", got)
	}

	d.PointerDown(600)
	d.PointerUp()
	d.PointerMove(100)
	if got := d.Size(); got != 500 {
		t.Errorf("Size changed after pointer-up: %d", got)
	}
}

func TestListenerLifetimeScopedToGesture(t *testing.T) {
	d := NewDragResizer(500, 800)

	var attached, detached int
	d.SetListenerHooks(
		func() { attached++ },
		func() { detached++ },
	)

	d.PointerDown(600)
	if attached != 1 || detached != 0 {
		t.Fatalf("After pointer-down: attached=%d detached=%d", attached, detached)
	}

	// Repeated press during a gesture must not re-attach.
	d.PointerDown(590)
	if attached != 1 {
		t.Errorf("Re-attach during gesture: attached=%d", attached)
	}

	d.PointerUp()
	if detached != 1 {
		t.Errorf("After pointer-up: detached=%d", detached)
	}

	// Pointer-up outside a gesture must not detach again.
	d.PointerUp()
	if detached != 1 {
		t.Errorf("Detach without gesture: detached=%d", detached)
	}
}

func TestTeardownReleasesListeners(t *testing.T) {
	d := NewDragResizer(500, 800)

	var detached int
	d.SetListenerHooks(nil, func() { detached++ })

	d.PointerDown(600)
	d.Teardown()
	if detached != 1 {
		t.Errorf("Teardown mid-gesture: detached=%d, want 1", detached)
	}
	if d.Dragging() {
		t.Error("Still dragging after teardown")
	}

	d.Teardown()
	if detached != 1 {
		t.Errorf("Idle teardown must not detach: detached=%d", detached)
	}
}

func TestSetViewportReclamps(t *testing.T) {
	d := NewDragResizer(600, 800)
	if got := d.Size(); got != 600 {
		t.Fatalf("Initial size = %d", got)
	}

	// Shrinking the viewport pulls the size back inside the new bound.
	d.SetViewport(500)
	if got := d.Size(); got != 500-DefaultMaxMargin {
		t.Errorf("Size after viewport shrink = %d, want %d", got, 500-DefaultMaxMargin)
	}
}

func TestCustomBoundsGovernInitialClamp(t *testing.T) {
	// Row-scaled bounds must apply at construction; the package defaults
	// would swallow a 4-row starting size inside a 24-row viewport.
	d := NewDragResizerWithBounds(4, 24, 3, 10)
	if got := d.Size(); got != 4 {
		t.Fatalf("Initial size = %d, want 4", got)
	}

	d.PointerDown(16)
	d.PointerMove(30) // far past the bottom
	if got := d.Size(); got != 3 {
		t.Errorf("Size below custom minimum = %d, want 3", got)
	}
	d.PointerMove(0) // far past the top
	if got := d.Size(); got != 24-10 {
		t.Errorf("Size above custom maximum = %d, want %d", got, 24-10)
	}
}

func TestTinyViewportMinimumWins(t *testing.T) {
	d := NewDragResizer(500, 100)
	if got := d.Size(); got != DefaultMinSize {
		t.Errorf("Size in tiny viewport = %d, want %d", got, DefaultMinSize)
	}
}
