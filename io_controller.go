// io_controller.go - memory-mapped I/O controller register file
//
// The controller backs the bus's I/O region: reads return the stored
// byte verbatim, writes update the byte and then dispatch side effects
// (control-mode decode, draw pipeline enqueue, audio channel decode,
// timer/counter arming). Peripheral tasks (clocks, timers, counters,
// the drawing consumer, the event source) hold a back-reference to the
// owning Bus solely to assert interrupts.

package main

import (
	"sync"
	"sync/atomic"
)

const (
	offControl      = 0x900
	offBGColor      = 0x901
	offFGColor      = 0x902
	offEventType    = 0x903
	offKeyCodeMX    = 0x904
	offKeyModMY     = 0x905
	offClock1       = 0x906
	offClock2       = 0x907
	offAudio1       = 0x908
	offAudio2       = 0x909
	offAudio3       = 0x90A
	offDrawMethod   = 0x90B
	offDrawArg1     = 0x90C
	offDrawArg2     = 0x90D
	offDrawArg3     = 0x90E
	offDrawArg4     = 0x90F
	offTimer1Lo     = 0x910
	offTimer1Hi     = 0x911
	offTimer2Lo     = 0x912
	offTimer2Hi     = 0x913
	offCounter1     = 0x914
	offCounter2     = 0x915
	vramWidth       = 64
	vramHeight      = 36
	vramSize        = vramWidth * vramHeight
)

// Event codes written to EVENT_TYPE.
const (
	EventUnspecified byte = 0x00
	EventKeyDown     byte = 0x01
	EventKeyUp       byte = 0x02
	EventMouseMove   byte = 0x03
	EventMouseDown   byte = 0x04
	EventMouseUp     byte = 0x05
	EventClock1      byte = 0x06
	EventClock2      byte = 0x07
	EventTimer1      byte = 0x08
	EventTimer2      byte = 0x09
	EventCounter1    byte = 0x0A
	EventCounter2    byte = 0x0B
)

// CONTROL bit masks, MSB to LSB: mode, visibility, fullscreen,
// orientation, keyboard-disabled, mouse-disabled, reserved, reserved.
const (
	ctrlMouseDisabled byte = 1 << 2
	ctrlKeyDisabled   byte = 1 << 3
	ctrlOrientation   byte = 1 << 4
	ctrlFullscreen    byte = 1 << 5
	ctrlVisibility    byte = 1 << 6
	ctrlMode          byte = 1 << 7
)

// IOController is the peripheral control-plane device. Rendering and
// audio synthesis are delegated to the Renderer and AudioSink
// collaborators; the controller only fixes register semantics and the
// interrupts they generate.
type IOController struct {
	bus *Bus

	mu  sync.Mutex
	reg [ioSize]byte

	textMode    atomic.Bool
	hidden      atomic.Bool
	fullscreen  atomic.Bool
	portrait    atomic.Bool
	kbDisabled  atomic.Bool
	mouseOff    atomic.Bool

	brushBody    atomic.Uint32
	brushOutline atomic.Uint32

	draw     *drawPipeline
	clocks   [2]*periodicTask
	counters [2]*counterSet

	renderer Renderer
	audio    AudioSink
	clock    Clock

	shutdown atomic.Bool
	wg       sync.WaitGroup
}

// NewIOController builds a controller wired to bus for interrupt
// assertion and to renderer/audio for presentation. A nil renderer or
// audio sink is replaced with a headless no-op, matching how the
// controller behaves with the window hidden.
func NewIOController(bus *Bus, renderer Renderer, audio AudioSink, clock Clock) *IOController {
	if renderer == nil {
		renderer = NewHeadlessRenderer()
	}
	if audio == nil {
		audio = NewHeadlessAudioSink()
	}
	if clock == nil {
		clock = realClock{}
	}
	ctl := &IOController{bus: bus, renderer: renderer, audio: audio, clock: clock}
	ctl.draw = newDrawPipeline(ctl)
	ctl.counters[0] = newCounterSet()
	ctl.counters[1] = newCounterSet()
	return ctl
}

func (ctl *IOController) Read(addr uint16) byte {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.reg[addr]
}

func (ctl *IOController) Write(addr uint16, v byte) {
	ctl.mu.Lock()
	ctl.reg[addr] = v
	ctl.mu.Unlock()

	switch addr {
	case offControl:
		ctl.applyControl(v)
	case offAudio1:
		ctl.applyAudio(0, v)
	case offAudio2:
		ctl.applyAudio(1, v)
	case offAudio3:
		ctl.applyAudio(2, v)
	case offDrawMethod:
		ctl.enqueueDraw(v)
	case offTimer1Lo:
		ctl.armTimer(0)
	case offTimer2Lo:
		ctl.armTimer(1)
	case offCounter1:
		ctl.armOrCancelCounter(0, v)
	case offCounter2:
		ctl.armOrCancelCounter(1, v)
	}
}

func (ctl *IOController) regByte(off int) byte {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.reg[off]
}

func (ctl *IOController) setRegByte(off int, v byte) {
	ctl.mu.Lock()
	ctl.reg[off] = v
	ctl.mu.Unlock()
}

func (ctl *IOController) postEvent(code byte) {
	ctl.setRegByte(offEventType, code)
	ctl.bus.AssertIRQ()
}

func (ctl *IOController) applyControl(v byte) {
	ctl.textMode.Store(v&ctrlMode != 0)
	ctl.hidden.Store(v&ctrlVisibility != 0)
	ctl.fullscreen.Store(v&ctrlFullscreen != 0)
	ctl.portrait.Store(v&ctrlOrientation != 0)
	ctl.kbDisabled.Store(v&ctrlKeyDisabled != 0)
	ctl.mouseOff.Store(v&ctrlMouseDisabled != 0)
	ctl.renderer.SetDisplayConfig(DisplayConfig{
		TextMode:   ctl.textMode.Load(),
		Hidden:     ctl.hidden.Load(),
		Fullscreen: ctl.fullscreen.Load(),
		Portrait:   ctl.portrait.Load(),
	})
}

// Start spins up the controller's peripheral tasks: two clocks, the
// drawing consumer, and the renderer. Timer/counter tasks are spawned
// on demand when armed.
func (ctl *IOController) Start() {
	ctl.wg.Add(1)
	go func() { defer ctl.wg.Done(); ctl.draw.run() }()

	ctl.clocks[0] = newPeriodicTask(ctl, 0, offClock1, EventClock1)
	ctl.clocks[1] = newPeriodicTask(ctl, 1, offClock2, EventClock2)
	for _, cl := range ctl.clocks {
		ctl.wg.Add(1)
		go func(t *periodicTask) { defer ctl.wg.Done(); t.run() }(cl)
	}

	ctl.wg.Add(1)
	go func() { defer ctl.wg.Done(); ctl.renderLoop() }()
}

// Stop sets the shutdown flag, wakes the draw consumer, and joins every
// spawned task before returning.
func (ctl *IOController) Stop() {
	ctl.shutdown.Store(true)
	ctl.draw.wake()
	ctl.wg.Wait()
}

func (ctl *IOController) isShutdown() bool { return ctl.shutdown.Load() }
