//go:build !statsview

package statsview

import "github.com/retroenv/retrogolib/log"

// Available returns whether the statistics server can be launched.
func Available() bool {
	return false
}

// Launch returns ErrNotAvailable.
func Launch(*log.Logger) (func(), error) {
	return nil, ErrNotAvailable
}
