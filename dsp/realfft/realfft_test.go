package realfft

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func naiveDFT(x []float64) []complex128 {
	n := len(x)
	out := make([]complex128, Bins(n))
	for k := range out {
		var sum complex128
		for j, v := range x {
			angle := -2 * math.Pi * float64(j*k) / float64(n)
			sum += complex(v, 0) * cmplx.Exp(complex(0, angle))
		}
		out[k] = sum
	}
	return out
}

func TestForwardMatchesDFT(t *testing.T) {
	x := testutil.DeterministicNoise(7, 1, 32)
	want := naiveDFT(x)

	for _, b := range Backends() {
		t.Run(b.String(), func(t *testing.T) {
			tr, err := New(b, len(x))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if tr.Len() != len(x) {
				t.Fatalf("Len() = %d, want %d", tr.Len(), len(x))
			}

			got := make([]complex128, Bins(len(x)))
			if err := tr.Forward(got, x); err != nil {
				t.Fatalf("Forward() error = %v", err)
			}
			for k := range want {
				if cmplx.Abs(got[k]-want[k]) > 1e-9 {
					t.Fatalf("bin %d: got %v, want %v", k, got[k], want[k])
				}
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{8, 64, 1024} {
		x := testutil.DeterministicNoise(int64(n), 0.8, n)
		for _, b := range Backends() {
			tr, err := New(b, n)
			if err != nil {
				t.Fatalf("%v n=%d: New() error = %v", b, n, err)
			}

			coeffs := make([]complex128, Bins(n))
			back := make([]float64, n)
			if err := tr.Forward(coeffs, x); err != nil {
				t.Fatalf("%v n=%d: Forward() error = %v", b, n, err)
			}
			if err := tr.Inverse(back, coeffs); err != nil {
				t.Fatalf("%v n=%d: Inverse() error = %v", b, n, err)
			}
			testutil.RequireSliceNearlyEqual(t, back, x, 1e-10)
		}
	}
}

// The inverse of the power spectrum of a zero-padded signal is its linear
// autocorrelation for lags below the padding.
func TestPowerSpectrumInverseIsAutocorrelation(t *testing.T) {
	const (
		n      = 64
		padded = 128
	)
	x := testutil.DeterministicSine(3, 64, 1, n)
	in := make([]float64, padded)
	copy(in, x)
	want := testutil.DirectAutocorrelation(x, n)

	for _, b := range Backends() {
		t.Run(b.String(), func(t *testing.T) {
			tr, err := New(b, padded)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			coeffs := make([]complex128, Bins(padded))
			if err := tr.Forward(coeffs, in); err != nil {
				t.Fatalf("Forward() error = %v", err)
			}
			for k, c := range coeffs {
				coeffs[k] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
			}
			out := make([]float64, padded)
			if err := tr.Inverse(out, coeffs); err != nil {
				t.Fatalf("Inverse() error = %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, out[:n], want, 1e-9)
		})
	}
}

func TestNewRejectsInvalidLength(t *testing.T) {
	for _, n := range []int{0, -4, 3, 100} {
		if _, err := New(BackendAlgoFFT, n); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("New(%d) error = %v, want ErrInvalidLength", n, err)
		}
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := New(Backend(99), 8); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("New() error = %v, want ErrUnknownBackend", err)
	}
}

func TestLengthMismatch(t *testing.T) {
	for _, b := range Backends() {
		tr, err := New(b, 8)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if err := tr.Forward(make([]complex128, 4), make([]float64, 8)); !errors.Is(err, ErrLengthMismatch) {
			t.Fatalf("%v Forward() error = %v, want ErrLengthMismatch", b, err)
		}
		if err := tr.Inverse(make([]float64, 7), make([]complex128, 5)); !errors.Is(err, ErrLengthMismatch) {
			t.Fatalf("%v Inverse() error = %v, want ErrLengthMismatch", b, err)
		}
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{in: "algofft", want: BackendAlgoFFT},
		{in: " Gonum ", want: BackendGonum},
		{in: "GODSP", want: BackendGoDSP},
		{in: "fftw", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBackend(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("ParseBackend(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBackendString(t *testing.T) {
	if got := BackendGonum.String(); got != "gonum" {
		t.Fatalf("String() = %q, want gonum", got)
	}
	if got := Backend(42).String(); got != "Backend(42)" {
		t.Fatalf("String() = %q, want Backend(42)", got)
	}
}
