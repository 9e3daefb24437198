//go:build !ebiten

package ui

import "window-frost/internal/sims/frost"

// Overlay is a no-op placeholder for headless builds.
type Overlay struct{}

// NewOverlay returns nil in the headless build.
func NewOverlay(*frost.Sim, float64) *Overlay { return nil }

// Update is a no-op in the headless build.
func (o *Overlay) Update() {}

// Draw is a no-op in the headless build.
func (o *Overlay) Draw(any, frost.Viewport, frost.Rect, []frost.Rect) {}
