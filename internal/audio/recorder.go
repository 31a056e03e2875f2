package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Recorder collects every beep of a run at its position in time and writes
// the result as WAV file on Close. The audio data is buffered in memory.
type Recorder struct {
	logger   *log.Logger
	clock    chip8.Clock
	filename string
	sample   Sample
	start    time.Time
	buffer   []int16
	beeps    int
}

// NewRecorder returns a recorder that writes to filename. The recording
// starts at the current time of the clock.
func NewRecorder(logger *log.Logger, clock chip8.Clock, filename string, sample Sample) *Recorder {
	return &Recorder{
		logger:   logger,
		clock:    clock,
		filename: filename,
		sample:   sample,
		start:    clock.Now(),
	}
}

// Beep adds the sample at the current time. Beeps that start before the
// previous one finished are appended after it.
func (r *Recorder) Beep() {
	elapsed := r.clock.Now().Sub(r.start)
	offset := int(elapsed * time.Duration(r.sample.Rate) / time.Second)
	if offset > len(r.buffer) {
		r.buffer = append(r.buffer, make([]int16, offset-len(r.buffer))...)
	}
	r.buffer = append(r.buffer, r.sample.Data...)
	r.beeps++
}

// Beeps returns the number of recorded beeps.
func (r *Recorder) Beeps() int {
	return r.beeps
}

// Close writes the recording to disk.
func (r *Recorder) Close() (rerr error) {
	f, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", r.filename, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing file %s: %w", r.filename, err)
		}
	}()

	r.logger.Info("Writing beep recording",
		log.String("file", r.filename),
		log.Int("beeps", r.beeps))
	return EncodeWAV(f, Sample{Rate: r.sample.Rate, Data: r.buffer})
}
