package realfft

import (
	"github.com/mjibson/go-dsp/fft"
)

// goDSP wraps mjibson/go-dsp. Both directions allocate inside the library
// and run on go-dsp's shared worker pool; go-dsp's IFFT already divides by n.
type goDSP struct {
	n    int
	work []complex128
}

func newGoDSP(n int) *goDSP {
	return &goDSP{
		n:    n,
		work: make([]complex128, n),
	}
}

func (g *goDSP) Len() int { return g.n }

func (g *goDSP) Forward(dst []complex128, src []float64) error {
	if err := checkLengths(g.n, len(dst), len(src)); err != nil {
		return err
	}

	copy(dst, fft.FFTReal(src))
	return nil
}

func (g *goDSP) Inverse(dst []float64, src []complex128) error {
	if err := checkLengths(g.n, len(src), len(dst)); err != nil {
		return err
	}

	unpackHermitian(g.work, src)
	seq := fft.IFFT(g.work)
	for i := range dst {
		dst[i] = real(seq[i])
	}
	return nil
}
