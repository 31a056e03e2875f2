// Package statsview serves runtime statistics charts of the interpreter
// process over HTTP. It is only functional when built with the statsview
// build tag:
//
//	go build -tags statsview
//
// After launch the charts are available at
//
//	http://localhost:12600/debug/statsview
//
// and the standard pprof endpoints at
//
//	http://localhost:12600/debug/pprof/
package statsview

import "errors"

// Address is the listen address of the statistics server.
const Address = "localhost:12600"

const path = "/debug/statsview"

// ErrNotAvailable is returned by Launch if the binary was built without the
// statsview build tag.
var ErrNotAvailable = errors.New("statsview is not available, build with -tags statsview")
