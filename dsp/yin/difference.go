package yin

// prefixSumSquares sets p[0] = 0 and p[i+1] = p[i] + x[i]^2.
// len(p) must be len(x)+1.
func prefixSumSquares(p, x []float64) {
	p[0] = 0
	for i, v := range x {
		p[i+1] = p[i] + v*v
	}
}

// difference computes the YIN difference function
//
//	d(tau) = sum_{j<N-tau} x[j]^2 + sum_{j>=tau} x[j]^2 - 2*r(tau)
//
// from prefix sums p of a frame of length N = len(p)-1 and its
// autocorrelation r. d(0) is defined as 0.
func difference(d, p, r []float64) {
	n := len(p) - 1
	d[0] = 0
	for tau := 1; tau < len(d); tau++ {
		head := p[n-tau] - p[0]
		tail := p[n] - p[tau]
		d[tau] = head + tail - 2*r[tau]
	}
}

// normalize turns d into the cumulative mean normalized difference in place.
// Lags whose running sum is not positive are set to 1.
func normalize(d []float64) {
	if len(d) == 0 {
		return
	}

	d[0] = 1
	var sum float64
	for tau := 1; tau < len(d); tau++ {
		sum += d[tau]
		if sum > 0 {
			d[tau] = d[tau] * float64(tau) / sum
		} else {
			d[tau] = 1
		}
	}
}
