package tuner

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// DefaultSmoothingWindow is the number of states averaged by a Smoother.
const DefaultSmoothingWindow = 5

// Smoother averages the most recent states: mean frequency, median cents,
// and the note of the newest state.
type Smoother struct {
	window int
	states []State
	hz     []float64
	cents  []float64
}

// NewSmoother creates a smoother over the last window states. A window below
// 1 is treated as 1, which passes states through unchanged.
func NewSmoother(window int) *Smoother {
	window = max(window, 1)
	return &Smoother{
		window: window,
		states: make([]State, 0, window),
		hz:     make([]float64, 0, window),
		cents:  make([]float64, 0, window),
	}
}

// Add records s and returns the smoothed state.
func (m *Smoother) Add(s State) State {
	if len(m.states) == m.window {
		copy(m.states, m.states[1:])
		m.states = m.states[:m.window-1]
	}
	m.states = append(m.states, s)

	m.hz = m.hz[:0]
	m.cents = m.cents[:0]
	for _, st := range m.states {
		m.hz = append(m.hz, st.Hz)
		m.cents = append(m.cents, st.Cents)
	}
	slices.Sort(m.cents)

	return State{
		Hz:    stat.Mean(m.hz, nil),
		Note:  s.Note,
		Cents: m.cents[len(m.cents)/2],
	}
}

// Len returns the number of states currently held.
func (m *Smoother) Len() int { return len(m.states) }

// Reset drops all held states.
func (m *Smoother) Reset() {
	m.states = m.states[:0]
}
