package yin

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/realfft"
	"github.com/cwbudde/algo-vecmath"
)

// minSearchLag is the first lag considered a period candidate.
const minSearchLag = 2

// Config is the immutable configuration of an Engine.
type Config struct {
	SampleRate   int
	FrameLength  int
	PaddedLength int
	Threshold    float64
	Backend      realfft.Backend
}

// CurveLength returns the number of lags in the difference curve.
func (c Config) CurveLength() int { return c.FrameLength / 2 }

// FrequencyRange returns the lowest and highest detectable pitch in Hz, or
// zeros when the frame is too short to hold any candidate lag.
func (c Config) FrequencyRange() (lo, hi float64) {
	maxLag := c.CurveLength() - 1
	if maxLag < minSearchLag {
		return 0, 0
	}
	sr := float64(c.SampleRate)
	return sr / float64(maxLag), sr / minSearchLag
}

// Engine estimates pitch for frames of a fixed length.
//
// The engine exclusively owns its scratch buffers and overwrites them on
// every call, so calls must not overlap. An Engine is not safe for concurrent
// use.
type Engine struct {
	cfg    Config
	logger Logger
	closed bool

	transform realfft.Transform

	padded   []float64    // PaddedLength, frame then zeros
	spectrum []complex128 // PaddedLength/2+1
	re       []float64
	im       []float64
	power    []float64
	acf      []float64 // PaddedLength, circular autocorrelation by lag
	prefix   []float64 // FrameLength+1, prefix sums of squares
	curve    []float64 // FrameLength/2, difference then normalized difference
}

// New creates an engine for frames of frameLength samples at sampleRate Hz.
//
// Frames shorter than six samples have no searchable lag; such engines are
// valid but always report NotFound.
func New(sampleRate, frameLength int, opts ...Option) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidConfiguration, sampleRate)
	}
	if frameLength <= 0 {
		return nil, fmt.Errorf("%w: frame length must be > 0: %d", ErrInvalidConfiguration, frameLength)
	}

	s := applyOptions(opts)
	if math.IsNaN(s.threshold) || s.threshold <= 0 || s.threshold >= 1 {
		return nil, fmt.Errorf("%w: threshold must be in (0,1): %f", ErrInvalidConfiguration, s.threshold)
	}

	cfg := Config{
		SampleRate:   sampleRate,
		FrameLength:  frameLength,
		PaddedLength: nextPowerOf2(frameLength),
		Threshold:    s.threshold,
		Backend:      s.backend,
	}

	e := &Engine{
		cfg:    cfg,
		logger: s.logger,
		curve:  make([]float64, cfg.CurveLength()),
	}

	if cfg.CurveLength() > minSearchLag {
		transform, err := realfft.New(s.backend, cfg.PaddedLength)
		if err != nil {
			return nil, fmt.Errorf("yin: %w", err)
		}

		bins := realfft.Bins(cfg.PaddedLength)
		e.transform = transform
		e.padded = make([]float64, cfg.PaddedLength)
		e.spectrum = make([]complex128, bins)
		e.re = make([]float64, bins)
		e.im = make([]float64, bins)
		e.power = make([]float64, bins)
		e.acf = make([]float64, cfg.PaddedLength)
		e.prefix = make([]float64, frameLength+1)
	}

	if e.logger != nil {
		e.logger.Debug("yin engine created",
			"sample_rate", cfg.SampleRate,
			"frame_length", cfg.FrameLength,
			"padded_length", cfg.PaddedLength,
			"threshold", cfg.Threshold,
			"backend", cfg.Backend.String(),
		)
	}

	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Estimate returns the pitch of frame, which must hold exactly FrameLength
// samples. A length mismatch is reported before any internal state changes.
func (e *Engine) Estimate(frame []float64) (Result, error) {
	if err := e.check(len(frame)); err != nil {
		return NotFound, err
	}
	if e.transform == nil {
		return NotFound, nil
	}

	copy(e.padded, frame)
	clear(e.padded[len(frame):])
	return e.run()
}

// EstimateFloat32 is Estimate for float32 frames, as produced by most audio
// hosts. Samples are widened into the engine's own buffer without allocating.
func (e *Engine) EstimateFloat32(frame []float32) (Result, error) {
	if err := e.check(len(frame)); err != nil {
		return NotFound, err
	}
	if e.transform == nil {
		return NotFound, nil
	}

	for i, v := range frame {
		e.padded[i] = float64(v)
	}
	clear(e.padded[len(frame):])
	return e.run()
}

// Close releases the scratch buffers. Further calls to Estimate return
// ErrClosed. Close is idempotent.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}

	e.closed = true
	e.transform = nil
	e.padded, e.spectrum, e.acf = nil, nil, nil
	e.re, e.im, e.power = nil, nil, nil
	e.prefix, e.curve = nil, nil

	if e.logger != nil {
		e.logger.Debug("yin engine closed",
			"sample_rate", e.cfg.SampleRate,
			"frame_length", e.cfg.FrameLength,
		)
	}
	return nil
}

func (e *Engine) check(n int) error {
	if e.closed {
		return ErrClosed
	}
	if n != e.cfg.FrameLength {
		return fmt.Errorf("%w: got %d samples, want %d", ErrFrameLengthMismatch, n, e.cfg.FrameLength)
	}
	return nil
}

// run executes the pipeline on the frame already copied into e.padded.
func (e *Engine) run() (Result, error) {
	if err := e.autocorrelate(); err != nil {
		return NotFound, err
	}

	frame := e.padded[:e.cfg.FrameLength]
	prefixSumSquares(e.prefix, frame)
	difference(e.curve, e.prefix, e.acf)
	normalize(e.curve)

	tau := search(e.curve, e.cfg.Threshold)
	if tau < 0 {
		return NotFound, nil
	}

	refined := refine(e.curve, tau)
	if refined <= 0 {
		return NotFound, nil
	}

	return Result{
		hz:           float64(e.cfg.SampleRate) / refined,
		tau:          refined,
		aperiodicity: e.curve[tau],
		found:        true,
	}, nil
}

// autocorrelate fills e.acf with the circular autocorrelation of the padded
// frame over PaddedLength samples, via its power spectrum. Lags up to
// PaddedLength-FrameLength carry no wrap-around and equal the linear
// autocorrelation; larger lags also sum x[j]*x[j+tau-PaddedLength].
func (e *Engine) autocorrelate() error {
	if err := e.transform.Forward(e.spectrum, e.padded); err != nil {
		return fmt.Errorf("yin: %w", err)
	}

	for k, c := range e.spectrum {
		e.re[k] = real(c)
		e.im[k] = imag(c)
	}
	vecmath.Power(e.power, e.re, e.im)
	for k, p := range e.power {
		e.spectrum[k] = complex(p, 0)
	}

	if err := e.transform.Inverse(e.acf, e.spectrum); err != nil {
		return fmt.Errorf("yin: %w", err)
	}
	return nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
