// Package audio provides the beep sample of the interpreter and a recorder
// that writes the beeps of a run to a WAV file.
//
// Samples are mono signed 16 bit PCM. A sample is either generated as a
// square wave tone or loaded from a .wav or .mp3 file.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// Default beep parameters.
const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 440
	DefaultDuration   = 100 * time.Millisecond

	bitDepth      = 16
	amplitude     = 8000
	wavFormatPCM  = 1
	mp3FrameBytes = 4 // 16 bit little endian, 2 channels
)

var errUnsupportedFormat = errors.New("unsupported audio file format")

// Sample is a mono 16 bit PCM sound.
type Sample struct {
	Rate int
	Data []int16
}

// Duration returns the play time of the sample.
func (s Sample) Duration() time.Duration {
	if s.Rate == 0 {
		return 0
	}
	return time.Duration(len(s.Data)) * time.Second / time.Duration(s.Rate)
}

// Bytes returns the sample data as little endian byte stream.
func (s Sample) Bytes() []byte {
	b := make([]byte, 2*len(s.Data))
	for i, v := range s.Data {
		b[2*i] = byte(v)
		b[2*i+1] = byte(uint16(v) >> 8)
	}
	return b
}

// Tone generates a square wave of the given frequency and duration.
func Tone(rate int, frequency float64, duration time.Duration) Sample {
	count := int(duration * time.Duration(rate) / time.Second)
	halfPeriod := float64(rate) / frequency / 2

	data := make([]int16, count)
	for i := range data {
		if int(float64(i)/halfPeriod)%2 == 0 {
			data[i] = amplitude
		} else {
			data[i] = -amplitude
		}
	}
	return Sample{Rate: rate, Data: data}
}

// DefaultBeep returns the generated default beep tone.
func DefaultBeep() Sample {
	return Tone(DefaultSampleRate, DefaultFrequency, DefaultDuration)
}

// Load reads a sample from a .wav or .mp3 file. Only the first channel of
// multi channel files is used.
func Load(path string) (Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return Sample{}, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return decodeWAV(file)
	case ".mp3":
		return decodeMP3(file)
	default:
		return Sample{}, fmt.Errorf("%w: %s", errUnsupportedFormat, ext)
	}
}

func decodeWAV(r io.ReadSeeker) (Sample, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Sample{}, errors.New("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Sample{}, fmt.Errorf("wav: %w", err)
	}

	channels := int(dec.NumChans)
	if channels == 0 {
		channels = 1
	}
	data := make([]int16, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		data = append(data, scaleTo16(buf.Data[i], int(dec.BitDepth)))
	}
	return Sample{Rate: int(dec.SampleRate), Data: data}, nil
}

// scaleTo16 converts a PCM value of the given bit depth to 16 bit. 8 bit
// PCM is unsigned.
func scaleTo16(v, depth int) int16 {
	switch {
	case depth == 8:
		return int16((v - 128) << 8)
	case depth > 16:
		return int16(v >> (depth - 16))
	default:
		return int16(v)
	}
}

func decodeMP3(r io.Reader) (Sample, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Sample{}, fmt.Errorf("mp3: %w", err)
	}

	// the decoded stream is always 16 bit little endian stereo
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return Sample{}, fmt.Errorf("mp3: %w", err)
	}

	data := make([]int16, 0, len(pcm)/mp3FrameBytes)
	for i := 0; i+1 < len(pcm); i += mp3FrameBytes {
		data = append(data, int16(uint16(pcm[i])|uint16(pcm[i+1])<<8))
	}
	return Sample{Rate: dec.SampleRate(), Data: data}, nil
}

// EncodeWAV writes the sample as 16 bit mono WAV stream.
func EncodeWAV(w io.WriteSeeker, s Sample) error {
	enc := wav.NewEncoder(w, s.Rate, bitDepth, 1, wavFormatPCM)

	data := make([]int, len(s.Data))
	for i, v := range s.Data {
		data[i] = int(v)
	}
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  s.Rate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}
