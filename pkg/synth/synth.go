// Package synth generates the trainer's audio: guitar-like notes built
// from a small harmonic series with an ADSR envelope, metronome clicks,
// and complete demonstration and metronome tracks.
package synth

import (
	"math"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/fretboard"
)

// Options configures a Synthesizer. Zero values fall back to the
// built-in defaults.
type Options struct {
	SampleRate      int       // samples per second
	HarmonicWeights []float64 // fundamental first, then overtones
	Gain            float64   // final output scale (0..1)

	AttackMillis  int     // envelope fade-in
	DecayMillis   int     // envelope decay to the sustain level
	Sustain       float64 // sustain level (0..1)
	ReleaseMillis int     // envelope fade-out

	ClickFreq   float64 // metronome click frequency in Hz
	ClickMillis int     // metronome click duration
}

// Synthesizer renders notes and click tracks as float64 PCM.
type Synthesizer struct {
	opts Options
}

// New returns a Synthesizer with the given options, filling in defaults
// for any zero field.
func New(opts Options) *Synthesizer {
	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if len(opts.HarmonicWeights) == 0 {
		opts.HarmonicWeights = []float64{1.0, 0.5, 0.3, 0.2}
	}
	if opts.Gain == 0 {
		opts.Gain = 0.3
	}
	if opts.AttackMillis == 0 {
		opts.AttackMillis = 20
	}
	if opts.DecayMillis == 0 {
		opts.DecayMillis = 100
	}
	if opts.Sustain == 0 {
		opts.Sustain = 0.7
	}
	if opts.ReleaseMillis == 0 {
		opts.ReleaseMillis = 300
	}
	if opts.ClickFreq == 0 {
		opts.ClickFreq = 1000
	}
	if opts.ClickMillis == 0 {
		opts.ClickMillis = 50
	}
	return &Synthesizer{opts: opts}
}

// SampleRate returns the synthesizer's sample rate.
func (s *Synthesizer) SampleRate() int { return s.opts.SampleRate }

// BeatSamples returns the number of samples in one beat at the given tempo.
func (s *Synthesizer) BeatSamples(bpm int) int {
	return int(60.0 / float64(bpm) * float64(s.opts.SampleRate))
}

// Note renders a single note of the given frequency and duration in
// seconds: the weighted harmonic series, shaped by the envelope and
// scaled by the gain.
func (s *Synthesizer) Note(frequency, duration float64) []float64 {
	n := int(float64(s.opts.SampleRate) * duration)
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	for j := 0; j < n; j++ {
		// Time axis spans [0, duration] inclusive, so the phase step
		// depends on the sample count, not the raw sample rate.
		t := timeAt(j, n, duration)
		var v float64
		for h, w := range s.opts.HarmonicWeights {
			v += w * math.Sin(2*math.Pi*frequency*float64(h+1)*t)
		}
		out[j] = v
	}

	s.applyEnvelope(out)
	for j := range out {
		out[j] *= s.opts.Gain
	}
	return out
}

// applyEnvelope shapes the buffer in place: linear attack to full
// level, linear decay to the sustain level, then a linear release
// over the final samples. Segments are clamped to the buffer so short
// notes at high tempos stay well formed.
func (s *Synthesizer) applyEnvelope(buf []float64) {
	n := len(buf)
	sr := float64(s.opts.SampleRate)
	attack := int(float64(s.opts.AttackMillis) / 1000 * sr)
	decay := int(float64(s.opts.DecayMillis) / 1000 * sr)
	release := int(float64(s.opts.ReleaseMillis) / 1000 * sr)

	if attack > n {
		attack = n
	}
	decayEnd := attack + decay
	if decayEnd > n {
		decayEnd = n
	}
	releaseStart := n - release
	if releaseStart < 0 {
		releaseStart = 0
	}

	for j := 0; j < n; j++ {
		var env float64
		switch {
		// The release takes precedence over attack and decay when a
		// short buffer makes the segments overlap.
		case j >= releaseStart:
			env = ramp(j-releaseStart, n-releaseStart, s.opts.Sustain, 0)
		case j < attack:
			env = ramp(j, attack, 0, 1)
		case j < decayEnd:
			env = ramp(j-attack, decayEnd-attack, 1, s.opts.Sustain)
		default:
			env = s.opts.Sustain
		}
		buf[j] *= env
	}
}

// Click renders one metronome click: a decaying sine burst.
func (s *Synthesizer) Click() []float64 {
	dur := float64(s.opts.ClickMillis) / 1000
	n := int(dur * float64(s.opts.SampleRate))
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		t := timeAt(j, n, dur)
		out[j] = math.Sin(2*math.Pi*s.opts.ClickFreq*t) * math.Exp(-10*t) * s.opts.Gain
	}
	return out
}

// Metronome renders beats clicks spaced evenly at the given tempo. Each
// click sits at the start of its beat; the rest of the beat is silence.
func (s *Synthesizer) Metronome(bpm, beats int) []float64 {
	beatSamples := s.BeatSamples(bpm)
	click := s.Click()
	if len(click) > beatSamples {
		click = click[:beatSamples]
	}

	out := make([]float64, beats*beatSamples)
	for b := 0; b < beats; b++ {
		copy(out[b*beatSamples:], click)
	}
	return out
}

// DemoTrack renders a full demonstration: countIn click beats, then one
// beat per note with the click mixed over the note's onset.
func (s *Synthesizer) DemoTrack(notes []fretboard.Note, bpm, countIn int) []float64 {
	beatSamples := s.BeatSamples(bpm)
	secondsPerBeat := 60.0 / float64(bpm)
	click := s.Click()
	if len(click) > beatSamples {
		click = click[:beatSamples]
	}

	out := make([]float64, (countIn+len(notes))*beatSamples)
	for b := 0; b < countIn; b++ {
		copy(out[b*beatSamples:], click)
	}
	for i, note := range notes {
		beat := out[(countIn+i)*beatSamples : (countIn+i+1)*beatSamples]
		tone := s.Note(note.Frequency, secondsPerBeat)
		copy(beat, tone)
		for j := range click {
			beat[j] += click[j]
		}
	}
	return out
}

// timeAt maps sample j of n onto the inclusive interval [0, duration].
func timeAt(j, n int, duration float64) float64 {
	if n <= 1 {
		return 0
	}
	return duration * float64(j) / float64(n-1)
}

// ramp interpolates linearly from a to b over m samples, endpoint
// included (the last sample equals b).
func ramp(j, m int, a, b float64) float64 {
	if m <= 1 {
		return a
	}
	return a + (b-a)*float64(j)/float64(m-1)
}
