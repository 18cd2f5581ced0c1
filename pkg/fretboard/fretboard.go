// Package fretboard models notes on a six-string guitar in standard tuning.
//
// A note is identified by its string (1 = high E through 6 = low E) and fret.
// Its frequency is always derived from the open-string frequency via
// equal-tempered semitone scaling, and its name from a per-string chromatic
// table. Neither is ever stored independently of that derivation.
package fretboard

import "math"

// NumStrings is the number of strings on the instrument.
const NumStrings = 6

// openFrequencies holds the open-string frequencies in Hz for standard
// tuning, indexed by string number (1 = high E, 6 = low E).
var openFrequencies = map[int]float64{
	6: 82.41,  // E2
	5: 110.00, // A2
	4: 146.83, // D3
	3: 196.00, // G3
	2: 246.94, // B3
	1: 329.63, // E4
}

// noteNames maps each string to the chromatic cycle starting at its open
// note. Fret n on a string resolves to entry n mod 12.
var noteNames = map[int][12]string{
	6: {"E", "F", "F#", "G", "G#", "A", "A#", "B", "C", "C#", "D", "D#"},
	5: {"A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#"},
	4: {"D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B", "C", "C#"},
	3: {"G", "G#", "A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#"},
	2: {"B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#"},
	1: {"E", "F", "F#", "G", "G#", "A", "A#", "B", "C", "C#", "D", "D#"},
}

// Note is an immutable value describing a fretted note.
type Note struct {
	Fret      int
	String    int
	Frequency float64
	Name      string
}

// OpenFrequency returns the open-string frequency for the given string.
// It panics on an unknown string number; strings are static program data,
// never user input.
func OpenFrequency(stringNum int) float64 {
	f, ok := openFrequencies[stringNum]
	if !ok {
		panic("fretboard: invalid string number")
	}
	return f
}

// Frequency returns the frequency in Hz of the given string and fret:
// open frequency times 2^(fret/12).
func Frequency(stringNum, fret int) float64 {
	return OpenFrequency(stringNum) * math.Pow(2, float64(fret)/12)
}

// Name returns the pitch-class name of the given string and fret.
func Name(stringNum, fret int) string {
	names, ok := noteNames[stringNum]
	if !ok {
		panic("fretboard: invalid string number")
	}
	return names[fret%12]
}

// New builds a Note with its frequency and name derived from (string, fret).
func New(stringNum, fret int) Note {
	return Note{
		Fret:      fret,
		String:    stringNum,
		Frequency: Frequency(stringNum, fret),
		Name:      Name(stringNum, fret),
	}
}
