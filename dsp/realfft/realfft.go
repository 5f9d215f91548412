package realfft

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by transforms.
var (
	ErrInvalidLength  = errors.New("realfft: length must be a positive power of two")
	ErrLengthMismatch = errors.New("realfft: buffer length mismatch")
	ErrUnknownBackend = errors.New("realfft: unknown backend")
)

// Transform is a real-to-complex / complex-to-real FFT of a fixed length.
type Transform interface {
	// Len returns the transform length n.
	Len() int
	// Forward writes the n/2+1 unscaled spectrum bins of src (length n) to dst.
	Forward(dst []complex128, src []float64) error
	// Inverse writes the real sequence of the half spectrum src (length n/2+1)
	// to dst (length n), scaled by 1/n.
	Inverse(dst []float64, src []complex128) error
}

// Backend selects a Transform implementation.
type Backend int

const (
	// BackendAlgoFFT uses algo-fft plans. It is the default and does not
	// allocate per call.
	BackendAlgoFFT Backend = iota

	// BackendGonum uses gonum's real FFT.
	BackendGonum

	// BackendGoDSP uses mjibson/go-dsp and serves as a reference for
	// cross-checks only. It allocates on every call, and its radix-2 path
	// fans each transform out to GOMAXPROCS worker goroutines (go-dsp's
	// package-level worker pool), so it is not single-threaded.
	BackendGoDSP
)

var backendNames = map[Backend]string{
	BackendAlgoFFT: "algofft",
	BackendGonum:   "gonum",
	BackendGoDSP:   "godsp",
}

// String returns the backend's short name.
func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// Backends lists all available backends.
func Backends() []Backend {
	return []Backend{BackendAlgoFFT, BackendGonum, BackendGoDSP}
}

// ParseBackend resolves a backend from its short name (case-insensitive).
func ParseBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for b, n := range backendNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// New creates a transform of length n using backend b.
func New(b Backend, n int) (Transform, error) {
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	switch b {
	case BackendAlgoFFT:
		return newAlgoFFT(n)
	case BackendGonum:
		return newGonum(n), nil
	case BackendGoDSP:
		return newGoDSP(n), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownBackend, b)
	}
}

// Bins returns the number of spectrum bins of a length-n real transform.
func Bins(n int) int {
	return n/2 + 1
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func checkLengths(n, spectrum, sequence int) error {
	if spectrum != Bins(n) || sequence != n {
		return fmt.Errorf("%w: spectrum %d (want %d), sequence %d (want %d)",
			ErrLengthMismatch, spectrum, Bins(n), sequence, n)
	}
	return nil
}

// unpackHermitian fills full (length n) from the half spectrum half
// (length n/2+1) using X[n-k] = conj(X[k]).
func unpackHermitian(full, half []complex128) {
	n := len(full)
	copy(full, half)
	for k := 1; k < n-n/2; k++ {
		c := half[k]
		full[n-k] = complex(real(c), -imag(c))
	}
}
