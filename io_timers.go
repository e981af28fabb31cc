// io_timers.go - clocks, one-shot timers, and 1 Hz counters
//
// Clocks are free-running; timers are armed once and cannot be
// cancelled but exit early on shutdown; counters are armed, tick once a
// second, and can be cancelled in flight by writing 0.

package main

import (
	"sync/atomic"
	"time"
)

// Clock abstracts the monotonic sleep primitive so tests can inject a
// fake clock instead of sleeping for real wall-clock milliseconds.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

const pollStep = 25 * time.Millisecond

// sleepInterruptible waits up to d, checking the shutdown flag every
// pollStep so an armed timer can still terminate early on shutdown even
// though it cannot otherwise be cancelled.
func sleepInterruptible(clock Clock, d time.Duration, shutdown func() bool) bool {
	for d > 0 {
		step := pollStep
		if d < step {
			step = d
		}
		<-clock.After(step)
		d -= step
		if shutdown() {
			return false
		}
	}
	return true
}

// periodicTask drives one CLOCKn register.
type periodicTask struct {
	ctl    *IOController
	index  int
	offset int
	event  byte
}

func newPeriodicTask(ctl *IOController, index, offset int, event byte) *periodicTask {
	return &periodicTask{ctl: ctl, index: index, offset: offset, event: event}
}

func (t *periodicTask) run() {
	for !t.ctl.isShutdown() {
		v := t.ctl.regByte(t.offset)
		if v == 0 {
			sleepInterruptible(t.ctl.clock, 500*time.Millisecond, t.ctl.isShutdown)
			continue
		}
		period := time.Duration(v) * 5 * time.Millisecond
		if !sleepInterruptible(t.ctl.clock, period, t.ctl.isShutdown) {
			return
		}
		t.ctl.postEvent(t.event)
	}
}

func (ctl *IOController) armTimer(index int) {
	var loOff, hiOff int
	var event byte
	if index == 0 {
		loOff, hiOff, event = offTimer1Lo, offTimer1Hi, EventTimer1
	} else {
		loOff, hiOff, event = offTimer2Lo, offTimer2Hi, EventTimer2
	}
	lo := ctl.regByte(loOff)
	hi := ctl.regByte(hiOff)
	duration := time.Duration(uint16(hi)<<8|uint16(lo)) * 10 * time.Millisecond

	ctl.wg.Add(1)
	go func() {
		defer ctl.wg.Done()
		if sleepInterruptible(ctl.clock, duration, ctl.isShutdown) {
			ctl.postEvent(event)
		}
	}()
}

// counterSet tracks arming and in-flight cancellation for one
// COUNTERn register.
type counterSet struct {
	generation atomic.Uint64
}

func newCounterSet() *counterSet { return &counterSet{} }

func (ctl *IOController) armOrCancelCounter(index int, v byte) {
	off := offCounter1
	event := EventCounter1
	cs := ctl.counters[0]
	if index == 1 {
		off = offCounter2
		event = EventCounter2
		cs = ctl.counters[1]
	}

	gen := cs.generation.Add(1)

	if v == 0 {
		return // writing 0 cancels any in-flight counter via the generation bump
	}

	ctl.wg.Add(1)
	go func() {
		defer ctl.wg.Done()
		for {
			if !sleepInterruptible(ctl.clock, time.Second, ctl.isShutdown) {
				return
			}
			if cs.generation.Load() != gen {
				return // superseded by a cancel or a re-arm
			}
			cur := ctl.regByte(off)
			if cur == 0 {
				return
			}
			cur--
			ctl.setRegByte(off, cur)
			ctl.postEvent(event)
			if cur == 0 {
				return
			}
		}
	}()
}
