// io_event.go - keyboard/mouse event ingestion
//
// The event source is an external collaborator (a host GUI backend);
// the controller only fixes how an incoming event is encoded into
// EVENT_TYPE and its payload bytes, and how CONTROL's disable bits gate
// it.

package main

// Keyboard modifier bit masks for KEY_MOD (offset 0x905 in keyboard
// mode).
const (
	ModAlt     byte = 0x01
	ModControl byte = 0x02
	ModShift   byte = 0x04
	ModSystem  byte = 0x08
)

// EventSource is the external input collaborator; PostKey/PostMouse*
// are called by whatever backend polls the host's real keyboard/mouse.
type EventSource interface {
	PostKey(down bool, keycode, modifiers byte)
	PostMouseMove(x, y byte)
	PostMouseButton(down bool, x, y byte)
}

func (ctl *IOController) PostKey(down bool, keycode, modifiers byte) {
	if ctl.kbDisabled.Load() {
		return
	}
	ctl.setRegByte(offKeyCodeMX, keycode)
	ctl.setRegByte(offKeyModMY, modifiers)
	code := EventKeyDown
	if !down {
		code = EventKeyUp
	}
	ctl.postEvent(code)
}

func (ctl *IOController) PostMouseMove(x, y byte) {
	if ctl.mouseOff.Load() {
		return
	}
	ctl.setRegByte(offKeyCodeMX, x)
	ctl.setRegByte(offKeyModMY, y)
	ctl.postEvent(EventMouseMove)
}

func (ctl *IOController) PostMouseButton(down bool, x, y byte) {
	if ctl.mouseOff.Load() {
		return
	}
	ctl.setRegByte(offKeyCodeMX, x)
	ctl.setRegByte(offKeyModMY, y)
	code := EventMouseDown
	if !down {
		code = EventMouseUp
	}
	ctl.postEvent(code)
}
