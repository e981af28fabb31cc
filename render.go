// render.go - renderer-facing presentation surface
//
// The controller never draws to a window itself; it exposes VRAM and
// display-mode state through the Renderer interface and periodically
// ticks UpdateFrame the way the rest of the engine's chips drive their
// own refresh loop.

package main

import "time"

const refreshInterval = 16 * time.Millisecond
const hiddenRefreshInterval = 250 * time.Millisecond

// DisplayConfig mirrors the CONTROL register's renderer-relevant bits.
type DisplayConfig struct {
	TextMode   bool
	Hidden     bool
	Fullscreen bool
	Portrait   bool
}

// VRAMSnapshot is a point-in-time copy of the 64x36 display buffer plus
// the colors needed to interpret it. Renderers re-read on the next
// frame, so momentary tearing during a concurrent draw is tolerated.
type VRAMSnapshot struct {
	Width, Height int
	Pixels        [vramSize]byte
	BGColor       byte
	FGColor       byte
	Config        DisplayConfig
}

// Renderer is the external presentation collaborator.
type Renderer interface {
	UpdateFrame(snap VRAMSnapshot)
	SetDisplayConfig(cfg DisplayConfig)
	MarkDirty()
}

// HeadlessRenderer discards frames; it exists so the controller can run
// (and be tested) without a real windowing backend attached.
type HeadlessRenderer struct {
	frames int
	cfg    DisplayConfig
}

func NewHeadlessRenderer() *HeadlessRenderer { return &HeadlessRenderer{} }

func (h *HeadlessRenderer) UpdateFrame(VRAMSnapshot)         { h.frames++ }
func (h *HeadlessRenderer) SetDisplayConfig(cfg DisplayConfig) { h.cfg = cfg }
func (h *HeadlessRenderer) MarkDirty()                        {}
func (h *HeadlessRenderer) Frames() int                       { return h.frames }

func (ctl *IOController) snapshot() VRAMSnapshot {
	ctl.mu.Lock()
	var snap VRAMSnapshot
	copy(snap.Pixels[:], ctl.reg[:vramSize])
	snap.BGColor = ctl.reg[offBGColor]
	snap.FGColor = ctl.reg[offFGColor]
	ctl.mu.Unlock()

	snap.Width, snap.Height = vramWidth, vramHeight
	snap.Config = DisplayConfig{
		TextMode:   ctl.textMode.Load(),
		Hidden:     ctl.hidden.Load(),
		Fullscreen: ctl.fullscreen.Load(),
		Portrait:   ctl.portrait.Load(),
	}
	return snap
}

// renderLoop presents the current VRAM state on a short fixed interval,
// yielding for longer while the display is hidden.
func (ctl *IOController) renderLoop() {
	for !ctl.isShutdown() {
		interval := refreshInterval
		if ctl.hidden.Load() {
			interval = hiddenRefreshInterval
		}
		if !sleepInterruptible(ctl.clock, interval, ctl.isShutdown) {
			return
		}
		ctl.renderer.UpdateFrame(ctl.snapshot())
	}
}

// DecodeColor expands an RRRGGGBB byte to 24-bit RGB, per the
// graphics-mode color contract.
func DecodeColor(v byte) (r, g, b byte) {
	r = ((v & 0xE0) >> 5) * 32
	g = ((v & 0x1C) >> 2) * 32
	b = (v & 0x03) * 64
	return
}
