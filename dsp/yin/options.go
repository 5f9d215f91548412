package yin

import "github.com/cwbudde/algo-pitch/dsp/realfft"

// DefaultThreshold is the default absolute threshold on the normalized
// difference curve.
const DefaultThreshold = 0.10

// Logger receives lifecycle diagnostics. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
}

type settings struct {
	threshold float64
	backend   realfft.Backend
	logger    Logger
}

// Option configures an Engine.
type Option func(*settings)

// WithThreshold sets the detection threshold. It must lie in (0, 1); lower
// values accept fewer, more clearly periodic frames.
func WithThreshold(threshold float64) Option {
	return func(s *settings) {
		s.threshold = threshold
	}
}

// WithBackend selects the FFT backend used for the autocorrelation.
func WithBackend(b realfft.Backend) Option {
	return func(s *settings) {
		s.backend = b
	}
}

// WithLogger attaches a logger for construction and close events. Estimate
// never logs.
func WithLogger(l Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

func applyOptions(opts []Option) settings {
	s := settings{
		threshold: DefaultThreshold,
		backend:   realfft.BackendAlgoFFT,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
