// Package realfft adapts third-party FFT libraries to a real-input transform
// contract.
//
// A [Transform] of length n maps n real samples to the n/2+1 non-negative
// frequency bins of their spectrum and back:
//
//   - Forward is unscaled: X[k] = sum x[j]*exp(-2*pi*i*j*k/n).
//   - Inverse is scaled by 1/n, so Inverse(Forward(x)) == x.
//
// Lengths must be powers of two. Three backends are available:
//
//   - [BackendAlgoFFT]: algo-fft complex plan with Hermitian packing (default).
//   - [BackendGonum]:   gonum dsp/fourier real transform.
//   - [BackendGoDSP]:   mjibson/go-dsp, allocates on every call; useful as a
//     reference when validating the other two.
//
// Transforms hold preallocated work buffers and are not safe for concurrent use.
package realfft
