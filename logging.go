// logging.go - ambient logging for peripheral-side diagnostics
//
// The CPU/bus hot path never logs. Peripheral tasks (draw overflow,
// renderer/audio backend failures) log through these thin wrappers over
// the standard library's global logger.

package main

import "log"

func logWarnf(format string, args ...any) {
	log.Printf("[warn] "+format, args...)
}

func logErrorf(format string, args ...any) {
	log.Printf("[error] "+format, args...)
}
