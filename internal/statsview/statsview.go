//go:build statsview

package statsview

import (
	"errors"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Available returns whether the statistics server can be launched.
func Available() bool {
	return true
}

// Launch starts the statistics server in the background and returns the
// function that stops it.
func Launch(logger *log.Logger) (func(), error) {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()

	go func() {
		if err := mgr.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Stats server failed", log.Err(err))
		}
	}()

	logger.Info("Stats server available", log.String("url", "http://"+Address+path))
	return mgr.Stop, nil
}
