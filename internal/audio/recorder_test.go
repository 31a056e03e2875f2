package audio

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type mockClock struct {
	now time.Time
}

func (c *mockClock) Now() time.Time {
	return c.now
}

func TestRecorder(t *testing.T) {
	clock := &mockClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	path := filepath.Join(t.TempDir(), "record.wav")
	sample := Sample{Rate: 1000, Data: []int16{100, 200, 300}}

	r := NewRecorder(log.NewTestLogger(t), clock, path, sample)

	clock.now = clock.now.Add(10 * time.Millisecond)
	r.Beep()
	// overlaps the first beep and is appended after it
	clock.now = clock.now.Add(time.Millisecond)
	r.Beep()
	clock.now = clock.now.Add(9 * time.Millisecond)
	r.Beep()
	assert.Equal(t, 3, r.Beeps())

	assert.NoError(t, r.Close())

	recorded, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 1000, recorded.Rate)
	assert.Len(t, recorded.Data, 23)

	for i := range 10 {
		assert.Equal(t, int16(0), recorded.Data[i])
	}
	assert.Equal(t, int16(100), recorded.Data[10])
	assert.Equal(t, int16(300), recorded.Data[15])
	assert.Equal(t, int16(0), recorded.Data[16])
	assert.Equal(t, int16(0), recorded.Data[19])
	assert.Equal(t, int16(100), recorded.Data[20])
}

func TestRecorder_CreateError(t *testing.T) {
	clock := &mockClock{}
	path := filepath.Join(t.TempDir(), "missing", "record.wav")

	r := NewRecorder(log.NewTestLogger(t), clock, path, DefaultBeep())
	assert.ErrorContains(t, r.Close(), "creating file")
}
