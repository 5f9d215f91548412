package yin

// search returns the first lag >= 2 whose normalized difference is below
// threshold, advanced while the next value is strictly smaller. It returns -1
// when no lag qualifies.
//
// The walk stops at the first local minimum after the crossing; it is not a
// global minimum search, which would change the chosen octave on some inputs.
func search(d []float64, threshold float64) int {
	for tau := minSearchLag; tau < len(d); tau++ {
		if d[tau] < threshold {
			for tau+1 < len(d) && d[tau+1] < d[tau] {
				tau++
			}
			return tau
		}
	}
	return -1
}

// refine fits a parabola through d[tau-1], d[tau], d[tau+1] and returns the lag
// of its vertex. Lags at either end of d, and flat neighborhoods with no
// curvature, are returned unrefined.
func refine(d []float64, tau int) float64 {
	if tau <= 0 || tau >= len(d)-1 {
		return float64(tau)
	}

	s0, s1, s2 := d[tau-1], d[tau], d[tau+1]
	den := 2 * (2*s1 - s2 - s0)
	if den == 0 {
		return float64(tau)
	}
	return float64(tau) + (s2-s0)/den
}
