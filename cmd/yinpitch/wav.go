package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// wavSource reads a WAV file as mono samples, averaging the channels that
// beep delivers as stereo pairs.
type wavSource struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	gain     float64
	buf      [][2]float64
}

// decodeGain undoes the beep wav decoder's scaling of signed PCM, which
// divides by 2^bits-1 instead of 2^(bits-1)-1 and so yields half-scale
// samples for 16 and 24 bit files. 8 bit PCM decodes at full scale.
func decodeGain(precision int) float64 {
	switch precision {
	case 2:
		return (1<<16 - 1) / float64(1<<15-1)
	case 3:
		return (1<<24 - 1) / float64(1<<23-1)
	default:
		return 1
	}
}

func openWAV(path string) (*wavSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &wavSource{
		streamer: streamer,
		format:   format,
		gain:     decodeGain(format.Precision),
	}, nil
}

func (w *wavSource) SampleRate() int { return int(w.format.SampleRate) }

// Len returns the stream length in samples.
func (w *wavSource) Len() int { return w.streamer.Len() }

func (w *wavSource) Read(dst []float64) (int, error) {
	if cap(w.buf) < len(dst) {
		w.buf = make([][2]float64, len(dst))
	}
	buf := w.buf[:len(dst)]

	n, ok := w.streamer.Stream(buf)
	for i := 0; i < n; i++ {
		dst[i] = 0.5 * w.gain * (buf[i][0] + buf[i][1])
	}
	if !ok {
		if err := w.streamer.Err(); err != nil {
			return n, err
		}
		return n, io.EOF
	}
	return n, nil
}

func (w *wavSource) Close() error {
	// Closing the streamer closes the underlying file.
	return w.streamer.Close()
}
