//go:build !ebiten

package ui

import "wolfsheep/internal/core"

// HUD is a no-op placeholder when the viewer is built without ebiten.
type HUD struct{}

// NewHUD returns a placeholder HUD.
func NewHUD(core.Sim, int) *HUD { return &HUD{} }

// Width always reports zero for the placeholder HUD.
func (h *HUD) Width() int { return 0 }

// Overlay is a no-op placeholder when the viewer is built without ebiten.
type Overlay struct{}

// NewOverlay returns a placeholder overlay.
func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }
