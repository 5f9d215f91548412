package realfft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// algoFFT runs a complex algo-fft plan over a packed work buffer.
// algo-fft normalizes its inverse by 1/n, which matches the contract.
type algoFFT struct {
	n    int
	plan *algofft.Plan[complex128]
	work []complex128
}

func newAlgoFFT(n int) (*algoFFT, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("realfft: failed to create FFT plan: %w", err)
	}

	return &algoFFT{
		n:    n,
		plan: plan,
		work: make([]complex128, n),
	}, nil
}

func (a *algoFFT) Len() int { return a.n }

func (a *algoFFT) Forward(dst []complex128, src []float64) error {
	if err := checkLengths(a.n, len(dst), len(src)); err != nil {
		return err
	}

	for i, v := range src {
		a.work[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.work, a.work); err != nil {
		return fmt.Errorf("realfft: forward FFT failed: %w", err)
	}

	copy(dst, a.work[:len(dst)])
	return nil
}

func (a *algoFFT) Inverse(dst []float64, src []complex128) error {
	if err := checkLengths(a.n, len(src), len(dst)); err != nil {
		return err
	}

	unpackHermitian(a.work, src)

	if err := a.plan.Inverse(a.work, a.work); err != nil {
		return fmt.Errorf("realfft: inverse FFT failed: %w", err)
	}

	for i := range dst {
		dst[i] = real(a.work[i])
	}
	return nil
}
