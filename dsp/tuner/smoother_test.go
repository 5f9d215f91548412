package tuner

import (
	"math"
	"testing"
)

func TestSmootherAveragesWindow(t *testing.T) {
	m := NewSmoother(3)

	inputs := []float64{440, 442, 444, 446}
	var got State
	for _, hz := range inputs {
		got = m.Add(NewState(hz))
	}

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	if math.Abs(got.Hz-444) > 1e-9 {
		t.Fatalf("smoothed Hz = %v, want 444 (mean of last 3)", got.Hz)
	}
	if want := NewState(444).Cents; math.Abs(got.Cents-want) > 1e-9 {
		t.Fatalf("smoothed cents = %v, want median %v", got.Cents, want)
	}
	if got.Note.Name != "A4" {
		t.Fatalf("smoothed note = %q, want A4", got.Note.Name)
	}
}

func TestSmootherMedianRejectsOutlier(t *testing.T) {
	m := NewSmoother(DefaultSmoothingWindow)
	for _, hz := range []float64{440, 440, 470, 440, 440} {
		m.Add(NewState(hz))
	}
	got := m.Add(NewState(440))
	if math.Abs(got.Cents) > 1e-9 {
		t.Fatalf("median cents = %v, want 0", got.Cents)
	}
}

func TestSmootherWindowOnePassesThrough(t *testing.T) {
	m := NewSmoother(0)
	s := NewState(330)
	if got := m.Add(s); got != s {
		t.Fatalf("Add() = %+v, want %+v", got, s)
	}
}

func TestSmootherReset(t *testing.T) {
	m := NewSmoother(4)
	m.Add(NewState(100))
	m.Add(NewState(200))
	m.Reset()
	if m.Len() != 0 {
		t.Fatalf("Len() after Reset = %d", m.Len())
	}
	if got := m.Add(NewState(300)); got.Hz != 300 {
		t.Fatalf("Add() after Reset Hz = %v, want 300", got.Hz)
	}
}
