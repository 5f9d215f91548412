package realfft

import (
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

// gonumFFT wraps gonum's real FFT. gonum leaves the inverse unscaled, so the
// result is multiplied by 1/n afterwards.
type gonumFFT struct {
	n     int
	fft   *fourier.FFT
	scale float64
}

func newGonum(n int) *gonumFFT {
	return &gonumFFT{
		n:     n,
		fft:   fourier.NewFFT(n),
		scale: 1 / float64(n),
	}
}

func (g *gonumFFT) Len() int { return g.n }

func (g *gonumFFT) Forward(dst []complex128, src []float64) error {
	if err := checkLengths(g.n, len(dst), len(src)); err != nil {
		return err
	}

	g.fft.Coefficients(dst, src)
	return nil
}

func (g *gonumFFT) Inverse(dst []float64, src []complex128) error {
	if err := checkLengths(g.n, len(src), len(dst)); err != nil {
		return err
	}

	g.fft.Sequence(dst, src)
	vecmath.ScaleBlock(dst, dst, g.scale)
	return nil
}
