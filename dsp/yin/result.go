package yin

import "fmt"

// Result is the outcome of one pitch estimate: a frequency, or NotFound.
type Result struct {
	hz           float64
	tau          float64
	aperiodicity float64
	found        bool
}

// NotFound is the result for frames without a detectable pitch.
var NotFound = Result{}

// Found returns a result carrying frequency hz.
func Found(hz float64) Result {
	return Result{hz: hz, found: true}
}

// Frequency returns the estimated pitch in Hz and whether one was found.
func (r Result) Frequency() (float64, bool) { return r.hz, r.found }

// Found reports whether a pitch was detected.
func (r Result) Found() bool { return r.found }

// Tau returns the refined period in samples, or 0 for NotFound.
func (r Result) Tau() float64 { return r.tau }

// Aperiodicity returns the normalized difference at the selected lag.
// Values near 0 indicate a strongly periodic frame.
func (r Result) Aperiodicity() float64 { return r.aperiodicity }

func (r Result) String() string {
	if !r.found {
		return "not found"
	}
	return fmt.Sprintf("%.2f Hz", r.hz)
}
