// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the drag-resize state machine for the input region.
// The controller is unit-agnostic: the TUI drives it with terminal rows, but
// the clamping policy works for any device-independent measure. Tracking is
// incremental (delta between consecutive pointer positions), never absolute,
// so the size cannot drift when events are dropped.
package chat

// =============================================================================
// DRAG RESIZE DEFAULTS
// =============================================================================

const (
	// DefaultMinSize is the smallest the controlled dimension may shrink to.
	DefaultMinSize = 60

	// DefaultMaxMargin is reserved viewport space: the dimension may grow to
	// at most (viewport extent - DefaultMaxMargin).
	DefaultMaxMargin = 150
)

// =============================================================================
// DRAG RESIZER
// =============================================================================

// DragResizer controls one resizable dimension via pointer drags.
//
// States are idle and dragging. The attach/detach hooks bracket the dragging
// state exactly: attach fires on pointer-down, detach on every exit path
// (pointer-up and teardown). Callers use them to scope global pointer
// listeners to the gesture.
type DragResizer struct {
	Min       int
	MaxMargin int

	size     int
	viewport int

	dragging    bool
	lastPointer int

	attach func()
	detach func()
}

// NewDragResizer creates a resizer at the given starting size within the
// given viewport extent, using the default clamp bounds.
func NewDragResizer(size, viewport int) *DragResizer {
	return NewDragResizerWithBounds(size, viewport, DefaultMinSize, DefaultMaxMargin)
}

// NewDragResizerWithBounds creates a resizer with custom clamp bounds, for
// callers whose dimension is measured in units where the package defaults
// make no sense (terminal rows, for instance). The starting size is clamped
// against the given bounds, not the defaults.
func NewDragResizerWithBounds(size, viewport, min, maxMargin int) *DragResizer {
	d := &DragResizer{
		Min:       min,
		MaxMargin: maxMargin,
		viewport:  viewport,
	}
	d.size = d.clamp(size)
	return d
}

// SetListenerHooks registers the functions called on entering and leaving
// the dragging state. Either may be nil.
func (d *DragResizer) SetListenerHooks(attach, detach func()) {
	d.attach = attach
	d.detach = detach
}

// Size returns the current committed dimension.
func (d *DragResizer) Size() int {
	return d.size
}

// Dragging reports whether a gesture is in progress.
func (d *DragResizer) Dragging() bool {
	return d.dragging
}

// SetViewport updates the viewport extent and re-clamps the committed size
// against the new bounds.
func (d *DragResizer) SetViewport(extent int) {
	d.viewport = extent
	d.size = d.clamp(d.size)
}

// PointerDown starts a gesture at the given coordinate along the resize
// axis. A pointer-down during an active gesture restarts tracking from the
// new coordinate without re-attaching.
func (d *DragResizer) PointerDown(pos int) {
	d.lastPointer = pos
	if d.dragging {
		return
	}
	d.dragging = true
	if d.attach != nil {
		d.attach()
	}
}

// PointerMove commits a new size from the delta between the previous and
// current pointer coordinate. Moving toward the content area (decreasing
// coordinate) grows the dimension. Ignored when no gesture is active.
func (d *DragResizer) PointerMove(pos int) {
	if !d.dragging {
		return
	}
	delta := d.lastPointer - pos
	d.size = d.clamp(d.size + delta)
	d.lastPointer = pos
}

// PointerUp ends the gesture and releases the listeners.
func (d *DragResizer) PointerUp() {
	d.leaveDragging()
}

// Teardown cancels any in-progress gesture. Called when the owning view is
// discarded so listeners never outlive it.
func (d *DragResizer) Teardown() {
	d.leaveDragging()
}

func (d *DragResizer) leaveDragging() {
	if !d.dragging {
		return
	}
	d.dragging = false
	if d.detach != nil {
		d.detach()
	}
}

// clamp bounds v to [Min, viewport-MaxMargin]. When the viewport is too
// small to honor both bounds, the minimum wins.
func (d *DragResizer) clamp(v int) int {
	max := d.viewport - d.MaxMargin
	if v > max {
		v = max
	}
	if v < d.Min {
		v = d.Min
	}
	return v
}
