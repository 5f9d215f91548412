package tuner

import (
	"fmt"
	"math"
)

// ReferencePitch is the frequency of A4 (MIDI note 69).
const ReferencePitch = 440.0

const referenceMIDI = 69

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is an equal-tempered note.
type Note struct {
	MIDI      int
	Name      string // pitch class and octave, e.g. "A4"
	Frequency float64
}

// NoteForMIDI returns the note with MIDI number midi.
func NoteForMIDI(midi int) Note {
	class := ((midi % 12) + 12) % 12
	octave := floorDiv(midi, 12) - 1
	return Note{
		MIDI:      midi,
		Name:      fmt.Sprintf("%s%d", noteNames[class], octave),
		Frequency: ReferencePitch * math.Pow(2, float64(midi-referenceMIDI)/12),
	}
}

// State is one tuner reading.
type State struct {
	Hz    float64
	Note  Note
	Cents float64 // offset of Hz from Note.Frequency
}

// NewState returns the reading for a positive frequency hz: the nearest note
// and the offset from it in cents, within [-50, 50].
func NewState(hz float64) State {
	midi := int(math.Round(referenceMIDI + 12*math.Log2(hz/ReferencePitch)))
	note := NoteForMIDI(midi)
	return State{
		Hz:    hz,
		Note:  note,
		Cents: 1200 * math.Log2(hz/note.Frequency),
	}
}

func (s State) String() string {
	return fmt.Sprintf("%.2f Hz %s %+.1f cents", s.Hz, s.Note.Name, s.Cents)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
