package score

import (
	"math"
	"testing"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/pitch"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/scale"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/synth"
)

const (
	testRate    = 44100
	testCountIn = 4
	testBPM     = 120
)

func newTestEngine() *Engine {
	det := pitch.NewDetector(testRate, 1024, 0.1)
	return NewEngine(det, testRate, testCountIn, 0.5)
}

func TestScorePerfectPass(t *testing.T) {
	s := synth.New(synth.Options{})
	seq := scale.ByID("position1").Sequence()

	beatSamples := s.BeatSamples(testBPM)
	rec := make([]float64, (testCountIn+len(seq))*beatSamples)
	for i, note := range seq {
		tone := s.Note(note.Frequency, 60.0/float64(testBPM))
		copy(rec[(testCountIn+i)*beatSamples:], tone)
	}

	rep := newTestEngine().Score(rec, seq, testBPM)
	if !rep.Perfect() {
		t.Fatalf("correct = %d of %d, accuracy %.1f", rep.Correct, rep.Expected, rep.Accuracy)
	}
	if rep.Accuracy != 100 {
		t.Errorf("accuracy = %g, want 100", rep.Accuracy)
	}
}

func TestScoreOneMissedBeat(t *testing.T) {
	s := synth.New(synth.Options{})
	seq := scale.ByID("position1").Sequence()

	beatSamples := s.BeatSamples(testBPM)
	rec := make([]float64, (testCountIn+len(seq))*beatSamples)
	const mutedBeat = 7
	for i, note := range seq {
		if i == mutedBeat {
			continue
		}
		tone := s.Note(note.Frequency, 60.0/float64(testBPM))
		copy(rec[(testCountIn+i)*beatSamples:], tone)
	}

	rep := newTestEngine().Score(rec, seq, testBPM)
	if want := len(seq) - 1; rep.Correct != want {
		t.Fatalf("correct = %d, want %d", rep.Correct, want)
	}

	// The silent beat costs exactly that note; neighbors keep their
	// own windows.
	v := rep.Verdicts[mutedBeat]
	if !v.NoDetection || v.Correct {
		t.Errorf("muted beat verdict = %+v, want NoDetection", v)
	}
	for i, v := range rep.Verdicts {
		if i != mutedBeat && !v.Correct {
			t.Errorf("beat %d incorrectly penalized: %+v", i, v)
		}
	}

	want := float64(len(seq)-1) / float64(len(seq)) * 100
	if math.Abs(rep.Accuracy-want) > 1e-9 {
		t.Errorf("accuracy = %g, want %g", rep.Accuracy, want)
	}
}

func TestScoreWrongNote(t *testing.T) {
	s := synth.New(synth.Options{})
	seq := scale.ByID("position1").Sequence()

	beatSamples := s.BeatSamples(testBPM)
	rec := make([]float64, (testCountIn+len(seq))*beatSamples)
	for i, note := range seq {
		freq := note.Frequency
		if i == 0 {
			// A whole step sharp, well past the tolerance.
			freq *= math.Pow(2, 2.0/12)
		}
		tone := s.Note(freq, 60.0/float64(testBPM))
		copy(rec[(testCountIn+i)*beatSamples:], tone)
	}

	rep := newTestEngine().Score(rec, seq, testBPM)
	if rep.Verdicts[0].Correct {
		t.Error("sharp note graded correct")
	}
	if rep.Verdicts[0].NoDetection {
		t.Error("sharp note graded as missing instead of wrong")
	}
	if want := len(seq) - 1; rep.Correct != want {
		t.Errorf("correct = %d, want %d", rep.Correct, want)
	}
}

func TestScoreEmptyRecording(t *testing.T) {
	seq := scale.ByID("position1").Sequence()
	rep := newTestEngine().Score(nil, seq, testBPM)
	if rep.Accuracy != 0 {
		t.Errorf("accuracy = %g, want 0", rep.Accuracy)
	}
	if rep.Correct != 0 {
		t.Errorf("correct = %d, want 0", rep.Correct)
	}
	for _, v := range rep.Verdicts {
		if !v.NoDetection {
			t.Errorf("verdict %d = %+v, want NoDetection", v.Index, v)
		}
	}
}

func TestScoreEmptySequence(t *testing.T) {
	rep := newTestEngine().Score(make([]float64, testRate), nil, testBPM)
	if rep.Accuracy != 0 || rep.Perfect() {
		t.Errorf("empty sequence: accuracy = %g, perfect = %v", rep.Accuracy, rep.Perfect())
	}
}

func TestSemitoneDistance(t *testing.T) {
	cases := []struct {
		f1, f2, want float64
	}{
		{440, 440, 0},
		{440, 220, 12},
		{220, 440, 12},
		{466.16, 440, 1},
	}
	for _, c := range cases {
		if got := SemitoneDistance(c.f1, c.f2); math.Abs(got-c.want) > 0.01 {
			t.Errorf("SemitoneDistance(%g, %g) = %g, want %g", c.f1, c.f2, got, c.want)
		}
	}
}
