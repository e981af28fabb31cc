// io_draw.go - drawing command pipeline and VRAM rasterization
//
// One producer (the CPU thread, via writes to DRAW_METHOD) and one
// consumer (the drawing task) share a bounded FIFO guarded by a mutex
// and condition variable. VRAM itself lives in the low vramSize bytes
// of the controller's register file.

package main

import "sync"

// Draw-method codes.
const (
	DrawRectangle    byte = 0x00
	DrawSquare       byte = 0x01
	DrawDot          byte = 0x02
	DrawLine         byte = 0x03
	DrawBrushBody    byte = 0x80
	DrawBrushOutline byte = 0x81
)

// drawQueueLimit bounds the pipeline so a runaway producer cannot grow
// it without limit; the oldest pending instruction is dropped and a
// warning logged, per the spec's documented open question on overflow
// behavior.
const drawQueueLimit = 4096

type DrawInstruction struct {
	Method             byte
	Arg1, Arg2, Arg3, Arg4 byte
}

type drawPipeline struct {
	ctl *IOController

	mu    sync.Mutex
	cond  *sync.Cond
	queue []DrawInstruction
}

func newDrawPipeline(ctl *IOController) *drawPipeline {
	d := &drawPipeline{ctl: ctl}
	d.cond = sync.NewCond(&d.mu)
	return d
}

func (ctl *IOController) enqueueDraw(method byte) {
	instr := DrawInstruction{
		Method: method,
		Arg1:   ctl.regByte(offDrawArg1),
		Arg2:   ctl.regByte(offDrawArg2),
		Arg3:   ctl.regByte(offDrawArg3),
		Arg4:   ctl.regByte(offDrawArg4),
	}

	switch method {
	case DrawBrushBody:
		ctl.brushBody.Store(uint32(instr.Arg1))
		return
	case DrawBrushOutline:
		ctl.brushOutline.Store(uint32(instr.Arg1))
		return
	}

	d := ctl.draw
	d.mu.Lock()
	if len(d.queue) >= drawQueueLimit {
		logWarnf("draw pipeline overflow: dropping oldest instruction")
		d.queue = d.queue[1:]
	}
	d.queue = append(d.queue, instr)
	d.mu.Unlock()
	d.cond.Signal()
}

func (d *drawPipeline) wake() { d.cond.Broadcast() }

func (d *drawPipeline) run() {
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.ctl.isShutdown() {
			d.cond.Wait()
		}
		if len(d.queue) == 0 && d.ctl.isShutdown() {
			d.mu.Unlock()
			return
		}
		instr := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.ctl.apply(instr)
	}
}

func (ctl *IOController) apply(instr DrawInstruction) {
	body := byte(ctl.brushBody.Load())
	outline := byte(ctl.brushOutline.Load())

	switch instr.Method {
	case DrawRectangle:
		ctl.drawOutlinedBox(instr.Arg1, instr.Arg2, instr.Arg3, instr.Arg4, body, outline)
	case DrawSquare:
		ctl.drawOutlinedBox(instr.Arg1, instr.Arg2, instr.Arg3, instr.Arg3, body, outline)
	case DrawDot:
		ctl.setPixel(instr.Arg1, instr.Arg2, body)
	case DrawLine:
		ctl.drawLine(instr.Arg1, instr.Arg2, instr.Arg3, instr.Arg4, body)
	}
	ctl.renderer.MarkDirty()
}

func vramIndex(x, y byte) (int, bool) {
	if int(x) >= vramWidth || int(y) >= vramHeight {
		return 0, false
	}
	return int(y)*vramWidth + int(x), true
}

func (ctl *IOController) setPixel(x, y, color byte) {
	idx, ok := vramIndex(x, y)
	if !ok {
		return
	}
	ctl.mu.Lock()
	ctl.reg[idx] = color
	ctl.mu.Unlock()
}

// drawOutlinedBox draws a w-by-h box anchored at (x,y): perimeter
// pixels use outline, interior pixels use body.
func (ctl *IOController) drawOutlinedBox(x, y, w, h, body, outline byte) {
	for row := 0; row < int(h); row++ {
		for col := 0; col < int(w); col++ {
			px := int(x) + col
			py := int(y) + row
			if px < 0 || py < 0 || px >= vramWidth || py >= vramHeight {
				continue
			}
			color := body
			if row == 0 || col == 0 || row == int(h)-1 || col == int(w)-1 {
				color = outline
			}
			ctl.setPixel(byte(px), byte(py), color)
		}
	}
}

// drawLine plots a Bresenham line between the two endpoints.
func (ctl *IOController) drawLine(x1, y1, x2, y2, color byte) {
	x0, y0 := int(x1), int(y1)
	xEnd, yEnd := int(x2), int(y2)

	dx := abs(xEnd - x0)
	dy := -abs(yEnd - y0)
	sx, sy := 1, 1
	if x0 > xEnd {
		sx = -1
	}
	if y0 > yEnd {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 >= 0 && y0 >= 0 && x0 < vramWidth && y0 < vramHeight {
			ctl.setPixel(byte(x0), byte(y0), color)
		}
		if x0 == xEnd && y0 == yEnd {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
