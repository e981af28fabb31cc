//go:build !headless

// video_backend_ebiten.go - ebiten-backed presentation of the 64x36 display

package main

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const ebitenScale = 12

var (
	glyphCacheMu sync.Mutex
	glyphCache   = map[byte]*ebiten.Image{}
)

// glyphImage renders (and caches) the basicfont bitmap for a single
// text-mode character cell, keyed by its 7-bit ASCII code.
func glyphImage(ch byte) *ebiten.Image {
	glyphCacheMu.Lock()
	defer glyphCacheMu.Unlock()
	if img, ok := glyphCache[ch]; ok {
		return img
	}
	face := basicfont.Face7x13
	rgba := image.NewRGBA(image.Rect(0, 0, face.Advance, face.Height))
	if ch >= 0x20 && ch < 0x7F {
		d := &font.Drawer{
			Dst:  rgba,
			Src:  image.White,
			Face: face,
			Dot:  fixed.P(0, face.Ascent),
		}
		d.DrawString(string(rune(ch)))
	}
	img := ebiten.NewImageFromImage(rgba)
	glyphCache[ch] = img
	return img
}

// EbitenRenderer implements Renderer and ebiten.Game: it upscales the
// controller's 64x36 VRAM grid into a window and forwards keyboard
// input to an attached EventSource the way the rest of the engine's
// backends drive their own window loop.
type EbitenRenderer struct {
	mu     sync.RWMutex
	snap   VRAMSnapshot
	cfg    DisplayConfig
	dirty  bool
	events EventSource
}

func newEbitenRenderer() *EbitenRenderer {
	r := &EbitenRenderer{}
	ebiten.SetWindowSize(vramWidth*ebitenScale, vramHeight*ebitenScale)
	ebiten.SetWindowTitle("sixtyfiveemu")
	ebiten.SetWindowResizable(true)
	go func() {
		if err := ebiten.RunGame(r); err != nil {
			logErrorf("ebiten exited: %v", err)
		}
	}()
	return r
}

// AttachEventSource lets the main wiring hand the renderer a live
// controller to post keyboard activity into.
func (r *EbitenRenderer) AttachEventSource(src EventSource) {
	r.mu.Lock()
	r.events = src
	r.mu.Unlock()
}

func (r *EbitenRenderer) UpdateFrame(snap VRAMSnapshot) {
	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()
}

func (r *EbitenRenderer) SetDisplayConfig(cfg DisplayConfig) {
	r.mu.Lock()
	r.cfg = cfg
	fullscreen := cfg.Fullscreen
	r.mu.Unlock()
	ebiten.SetFullscreen(fullscreen)
}

func (r *EbitenRenderer) MarkDirty() {
	r.mu.Lock()
	r.dirty = true
	r.mu.Unlock()
}

func (r *EbitenRenderer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		r.mu.Lock()
		r.cfg.Fullscreen = !r.cfg.Fullscreen
		fullscreen := r.cfg.Fullscreen
		r.mu.Unlock()
		ebiten.SetFullscreen(fullscreen)
	}

	r.mu.RLock()
	events := r.events
	r.mu.RUnlock()
	if events == nil {
		return nil
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if code, ok := ebitenKeycode(k); ok {
			events.PostKey(true, code, ebitenModifiers())
		}
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		if code, ok := ebitenKeycode(k); ok {
			events.PostKey(false, code, ebitenModifiers())
		}
	}
	return nil
}

func (r *EbitenRenderer) Draw(screen *ebiten.Image) {
	r.mu.RLock()
	snap := r.snap
	r.mu.RUnlock()

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			v := snap.Pixels[y*snap.Width+x]
			drawX, drawY := x, y
			if snap.Config.Portrait {
				drawX, drawY = y, x
			}

			if snap.Config.TextMode {
				r.drawTextCell(screen, v, snap.BGColor, snap.FGColor, drawX, drawY)
				continue
			}

			rr, gg, bb := DecodeColor(v)
			col := color.RGBA{R: rr, G: gg, B: bb, A: 0xFF}
			for dy := 0; dy < ebitenScale; dy++ {
				for dx := 0; dx < ebitenScale; dx++ {
					screen.Set(drawX*ebitenScale+dx, drawY*ebitenScale+dy, col)
				}
			}
		}
	}
}

// drawTextCell paints a character cell at grid position (cellX, cellY):
// the low 7 bits of v select the glyph, bit 7 swaps foreground/
// background (inverse video).
func (r *EbitenRenderer) drawTextCell(screen *ebiten.Image, v, bg, fg byte, cellX, cellY int) {
	ch, inverse := v&0x7F, v&0x80 != 0
	bgColor, fgColor := bg, fg
	if inverse {
		bgColor, fgColor = fg, bg
	}
	bgR, bgG, bgB := DecodeColor(bgColor)
	fgR, fgG, fgB := DecodeColor(fgColor)

	originX, originY := cellX*ebitenScale, cellY*ebitenScale
	col := color.RGBA{R: bgR, G: bgG, B: bgB, A: 0xFF}
	for dy := 0; dy < ebitenScale; dy++ {
		for dx := 0; dx < ebitenScale; dx++ {
			screen.Set(originX+dx, originY+dy, col)
		}
	}

	glyph := glyphImage(ch)
	gb := glyph.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(ebitenScale)/float64(gb.Dx()), float64(ebitenScale)/float64(gb.Dy()))
	op.GeoM.Translate(float64(originX), float64(originY))
	op.ColorScale.SetR(float32(fgR) / 255)
	op.ColorScale.SetG(float32(fgG) / 255)
	op.ColorScale.SetB(float32(fgB) / 255)
	screen.DrawImage(glyph, op)
}

func (r *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return vramWidth * ebitenScale, vramHeight * ebitenScale
}

func ebitenModifiers() byte {
	var m byte
	if ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		m |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		m |= ModControl
	}
	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		m |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		m |= ModSystem
	}
	return m
}

// ebitenKeycode maps a subset of ebiten's key constants onto plain
// ASCII-ish byte codes for KEY_CODE; unmapped keys are ignored.
func ebitenKeycode(k ebiten.Key) (byte, bool) {
	if k >= ebiten.KeyA && k <= ebiten.KeyZ {
		return byte('a' + (k - ebiten.KeyA)), true
	}
	if k >= ebiten.Key0 && k <= ebiten.Key9 {
		return byte('0' + (k - ebiten.Key0)), true
	}
	switch k {
	case ebiten.KeyEnter:
		return '\r', true
	case ebiten.KeySpace:
		return ' ', true
	case ebiten.KeyBackspace:
		return 0x08, true
	case ebiten.KeyTab:
		return '\t', true
	case ebiten.KeyEscape:
		return 0x1B, true
	}
	return 0, false
}
