package tuner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/yin"
)

const (
	// DefaultLevelGate is the peak level below which frames are skipped.
	DefaultLevelGate = 0.005

	progressInterval = 50
	pcm16Scale       = 1.0 / 32768
)

// ErrInvalidOption reports an out-of-range tracker option.
var ErrInvalidOption = errors.New("tuner: invalid option")

// Estimator is the pitch engine used by a Tracker. *yin.Engine satisfies it.
type Estimator interface {
	Config() yin.Config
	Estimate(frame []float64) (yin.Result, error)
}

// Source delivers mono samples. Read follows io.Reader conventions and
// returns io.EOF at the end of the stream.
type Source interface {
	Read(dst []float64) (int, error)
}

// Logger receives progress diagnostics. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
}

// Event describes one analyzed frame.
type Event struct {
	Index int     // frame number, from 0
	Start int     // position of the frame's first sample in the stream
	Peak  float64 // largest absolute sample in the frame
	Gated bool    // peak below the level gate; the engine was not run
	Found bool    // a pitch was detected; State is valid
	State State   // smoothed reading
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithHop sets the number of samples the frame advances between analyses.
func WithHop(hop int) Option {
	return func(t *Tracker) { t.hop = hop }
}

// WithLevelGate sets the peak level below which frames are skipped.
func WithLevelGate(level float64) Option {
	return func(t *Tracker) { t.gate = level }
}

// WithSmoothing sets the smoothing window in states; 1 disables smoothing.
func WithSmoothing(window int) Option {
	return func(t *Tracker) { t.smoother = NewSmoother(window) }
}

// WithLogger attaches a logger that receives periodic progress messages.
func WithLogger(l Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// Tracker runs a pitch engine over a rolling frame.
// It is not safe for concurrent use.
type Tracker struct {
	engine   Estimator
	frameLen int
	hop      int
	gate     float64
	smoother *Smoother
	logger   Logger

	rolling []float64
	frames  int
}

// NewTracker creates a tracker around engine.
func NewTracker(engine Estimator, opts ...Option) (*Tracker, error) {
	frameLen := engine.Config().FrameLength
	t := &Tracker{
		engine:   engine,
		frameLen: frameLen,
		hop:      max(frameLen/2, 1),
		gate:     DefaultLevelGate,
		smoother: NewSmoother(DefaultSmoothingWindow),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	if t.hop <= 0 || t.hop > frameLen {
		return nil, fmt.Errorf("%w: hop must be in [1,%d]: %d", ErrInvalidOption, frameLen, t.hop)
	}
	if math.IsNaN(t.gate) || t.gate < 0 {
		return nil, fmt.Errorf("%w: level gate must be >= 0: %f", ErrInvalidOption, t.gate)
	}

	t.rolling = make([]float64, frameLen)
	return t, nil
}

// Hop returns the frame advance in samples.
func (t *Tracker) Hop() int { return t.hop }

// Process analyzes one full frame. The returned event's Index and Start
// count frames processed so far.
func (t *Tracker) Process(frame []float64) (Event, error) {
	ev := Event{
		Index: t.frames,
		Start: t.frames * t.hop,
		Peak:  peakLevel(frame),
	}
	t.frames++

	if t.logger != nil && t.frames%progressInterval == 0 {
		t.logger.Debug("tuner progress", "frame", ev.Index, "peak", ev.Peak)
	}

	if ev.Peak < t.gate {
		ev.Gated = true
		return ev, nil
	}

	res, err := t.engine.Estimate(frame)
	if err != nil {
		return ev, fmt.Errorf("tuner: frame %d: %w", ev.Index, err)
	}

	hz, ok := res.Frequency()
	if !ok {
		return ev, nil
	}

	ev.Found = true
	ev.State = t.smoother.Add(NewState(hz))
	return ev, nil
}

// Run reads src until io.EOF or ctx is done, analyzing a frame every hop
// samples and passing each event to fn. A trailing partial hop is dropped.
func (t *Tracker) Run(ctx context.Context, src Source, fn func(Event)) error {
	filled, err := readFull(src, t.rolling)
	if err != nil {
		if errors.Is(err, io.EOF) {
			if t.logger != nil {
				t.logger.Debug("tuner stream shorter than one frame", "samples", filled, "frame_length", t.frameLen)
			}
			return nil
		}
		return fmt.Errorf("tuner: read: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev, err := t.Process(t.rolling)
		if err != nil {
			return err
		}
		fn(ev)

		copy(t.rolling, t.rolling[t.hop:])
		if _, err := readFull(src, t.rolling[t.frameLen-t.hop:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("tuner: read: %w", err)
		}
	}
}

// Reset clears smoothing history and frame counters.
func (t *Tracker) Reset() {
	t.frames = 0
	t.smoother.Reset()
	clear(t.rolling)
}

// readFull fills dst from src. It returns io.EOF if the stream ends first.
func readFull(src Source, dst []float64) (int, error) {
	n := 0
	for n < len(dst) {
		m, err := src.Read(dst[n:])
		n += m
		if err != nil {
			if errors.Is(err, io.EOF) && n == len(dst) {
				return n, nil
			}
			return n, err
		}
		if m == 0 {
			return n, io.ErrNoProgress
		}
	}
	return n, nil
}

func peakLevel(frame []float64) float64 {
	var peak float64
	for _, v := range frame {
		peak = max(peak, math.Abs(v))
	}
	return peak
}

// PCM16ToFloat converts signed 16-bit samples to [-1, 1) floats in dst.
// dst must be at least as long as src.
func PCM16ToFloat(dst []float64, src []int16) {
	for i, v := range src {
		dst[i] = float64(v) * pcm16Scale
	}
}

// SliceSource is a Source over an in-memory sample slice.
type SliceSource struct {
	samples []float64
	pos     int
}

// NewSliceSource returns a Source reading samples.
func NewSliceSource(samples []float64) *SliceSource {
	return &SliceSource{samples: samples}
}

// Read implements Source.
func (s *SliceSource) Read(dst []float64) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}
	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	return n, nil
}
