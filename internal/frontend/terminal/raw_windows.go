//go:build windows

package terminal

import "github.com/retroenv/retrogolib/log"

func makeRaw(uintptr) (func() error, error) {
	return nil, errNotTerminal
}

func checkGeometry(*log.Logger, uintptr) {}
