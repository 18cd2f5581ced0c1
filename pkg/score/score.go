// Package score grades a recorded practice pass against the expected
// note sequence, one beat-sized window per note.
package score

import (
	"errors"
	"math"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/fretboard"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/pitch"
)

// Verdict grades a single expected note.
type Verdict struct {
	Index        int            // position in the expected sequence
	Expected     fretboard.Note // the note that should have sounded
	Detected     float64        // detected frequency in Hz, 0 if none
	DetectedName string         // note name of the detection, "" if none
	Correct      bool
	NoDetection  bool // window held no detectable pitch
}

// Report is the outcome of scoring one pass.
type Report struct {
	Verdicts []Verdict
	Correct  int     // verdicts graded correct
	Expected int     // notes expected
	Accuracy float64 // percentage, 0..100
}

// Perfect reports whether every expected note was graded correct.
func (r *Report) Perfect() bool {
	return r.Expected > 0 && r.Correct == r.Expected
}

// Engine scores recordings. Each expected note is graded from its own
// beat window, so a missed beat costs exactly that note and never
// shifts the grading of its neighbors.
type Engine struct {
	detector   *pitch.Detector
	sampleRate int
	countIn    int     // beats to skip at the start of the recording
	tolerance  float64 // max semitone distance counted as correct
}

// NewEngine returns an Engine grading with the given pitch detector.
func NewEngine(detector *pitch.Detector, sampleRate, countIn int, tolerance float64) *Engine {
	return &Engine{
		detector:   detector,
		sampleRate: sampleRate,
		countIn:    countIn,
		tolerance:  tolerance,
	}
}

// Score grades a recording against the expected note sequence at the
// given tempo. The recording is expected to start at beat zero of the
// count-in; windows that fall past the end of the recording are graded
// as missed.
func (e *Engine) Score(recording []float64, sequence []fretboard.Note, bpm int) *Report {
	beatSamples := int(60.0 / float64(bpm) * float64(e.sampleRate))
	rep := &Report{
		Verdicts: make([]Verdict, 0, len(sequence)),
		Expected: len(sequence),
	}

	for i, note := range sequence {
		start := (e.countIn + i) * beatSamples
		end := start + beatSamples
		if start > len(recording) {
			start = len(recording)
		}
		if end > len(recording) {
			end = len(recording)
		}

		v := Verdict{Index: i, Expected: note}
		freq, err := e.detector.Detect(recording[start:end])
		switch {
		case errors.Is(err, pitch.ErrNoDetection):
			v.NoDetection = true
		case err == nil:
			v.Detected = freq
			v.DetectedName = pitch.NoteName(freq)
			v.Correct = SemitoneDistance(freq, note.Frequency) <= e.tolerance
		}
		if v.Correct {
			rep.Correct++
		}
		rep.Verdicts = append(rep.Verdicts, v)
	}

	if rep.Expected > 0 {
		rep.Accuracy = float64(rep.Correct) / float64(rep.Expected) * 100
	}
	return rep
}

// SemitoneDistance returns the absolute distance between two
// frequencies in semitones.
func SemitoneDistance(f1, f2 float64) float64 {
	return math.Abs(12 * math.Log2(f1/f2))
}
