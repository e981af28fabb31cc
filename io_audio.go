// io_audio.go - per-channel audio register decode
//
// Each AUDIOn byte packs VVWWPPPP: two volume bits, two waveform bits,
// and four pitch bits. The controller only decodes the byte and hands
// the result to the attached AudioSink; synthesis itself is out of
// scope.

package main

type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// AudioChannelConfig is the decoded, host-facing form of an AUDIOn
// register write.
type AudioChannelConfig struct {
	Volume int // percent: 0, 25, 50, or 100
	Wave   Waveform
	Pitch  float64
	Paused bool
}

// AudioSink is the external audio-synthesis collaborator; the core only
// fixes what gets decoded and handed across this boundary.
type AudioSink interface {
	SetChannel(channel int, cfg AudioChannelConfig)
}

var volumeLevels = [4]int{0, 25, 50, 100}

func decodeAudioByte(v byte) AudioChannelConfig {
	volume := volumeLevels[(v>>6)&0x03]
	wave := Waveform((v >> 4) & 0x03)
	pitchRaw := v & 0x0F
	pitch := 0.2 + (float64(pitchRaw)/16.0)*2.0
	return AudioChannelConfig{
		Volume: volume,
		Wave:   wave,
		Pitch:  pitch,
		Paused: volume == 0,
	}
}

func (ctl *IOController) applyAudio(channel int, v byte) {
	ctl.audio.SetChannel(channel, decodeAudioByte(v))
}

// HeadlessAudioSink discards channel updates but records the last value
// set per channel, which is enough for tests and for running without an
// audio backend attached.
type HeadlessAudioSink struct {
	last [3]AudioChannelConfig
}

func NewHeadlessAudioSink() *HeadlessAudioSink { return &HeadlessAudioSink{} }

func (h *HeadlessAudioSink) SetChannel(channel int, cfg AudioChannelConfig) {
	if channel >= 0 && channel < len(h.last) {
		h.last[channel] = cfg
	}
}

func (h *HeadlessAudioSink) Last(channel int) AudioChannelConfig { return h.last[channel] }
