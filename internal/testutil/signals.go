package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude]
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Float32 converts samples to float32, as delivered by audio hosts.
func Float32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

// DirectAutocorrelation computes r[tau] = sum_j x[j]*x[j+tau] for
// tau in [0, maxLag) by brute force.
func DirectAutocorrelation(x []float64, maxLag int) []float64 {
	out := make([]float64, maxLag)
	for tau := range out {
		var sum float64
		for j := 0; j+tau < len(x); j++ {
			sum += x[j] * x[j+tau]
		}
		out[tau] = sum
	}
	return out
}

// CircularAutocorrelation computes r[tau] = sum_j x[j]*x[(j+tau) mod n] for
// tau in [0, n), with x zero-padded to n samples.
func CircularAutocorrelation(x []float64, n int) []float64 {
	padded := make([]float64, n)
	copy(padded, x)
	out := make([]float64, n)
	for tau := range out {
		var sum float64
		for j := range padded {
			sum += padded[j] * padded[(j+tau)%n]
		}
		out[tau] = sum
	}
	return out
}
