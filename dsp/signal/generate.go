// Package signal generates deterministic test tones for pitch analysis.
package signal

import (
	"fmt"
	"math"
	"math/rand"
)

// Generator creates deterministic signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator for sampleRate Hz.
func NewGenerator(sampleRate float64, opts ...Option) (*Generator, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("signal sample rate must be positive and finite: %f", sampleRate)
	}
	g := &Generator{sampleRate: sampleRate, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Sine generates a sine wave starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.Harmonic(freqHz, amplitude, 1, samples)
}

// Harmonic generates a tone with the given number of partials at integer
// multiples of freqHz, partial k having amplitude/k. Partials at or above
// Nyquist are omitted.
func (g *Generator) Harmonic(freqHz, amplitude float64, partials, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("tone samples must be > 0: %d", samples)
	}
	if !(freqHz > 0) {
		return nil, fmt.Errorf("tone frequency must be > 0: %f", freqHz)
	}
	if partials < 1 {
		return nil, fmt.Errorf("tone partials must be >= 1: %d", partials)
	}

	out := make([]float64, samples)
	nyquist := g.sampleRate / 2
	for k := 1; k <= partials; k++ {
		f := freqHz * float64(k)
		if f >= nyquist {
			break
		}
		step := 2 * math.Pi * f / g.sampleRate
		a := amplitude / float64(k)
		for i := range out {
			out[i] += a * math.Sin(step*float64(i))
		}
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Silence returns samples zeros.
func (g *Generator) Silence(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("silence samples must be > 0: %d", samples)
	}
	return make([]float64, samples), nil
}

// AddInPlace adds src into dst sample by sample. Lengths must match.
func AddInPlace(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("add length mismatch: %d vs %d", len(dst), len(src))
	}
	for i, v := range src {
		dst[i] += v
	}
	return nil
}
