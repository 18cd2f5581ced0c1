// Package capture records a live performance in fixed-size chunks and
// maps the running sample count onto metronome beats, announcing which
// note is expected as each beat arrives.
package capture

import (
	"context"
	"fmt"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/fretboard"
)

// Source delivers successive chunks of mono audio from a live input.
type Source interface {
	// ReadChunk blocks until the next chunk is available.
	ReadChunk() ([]float64, error)
}

// Event announces the expected note for a beat.
type Event struct {
	Beat       int  // absolute beat index, count-in included
	CountIn    bool // true during the count-in beats
	Index      int  // index into the expected note sequence
	Descending bool // true on the second, mirrored half of the pass
	Note       fretboard.Note
}

// Session describes one practice pass: the ascending note run, the
// count-in length, and the tempo.
type Session struct {
	Notes      []fretboard.Note // ascending half of the pass
	CountIn    int              // count-in beats before the first note
	BPM        int
	SampleRate int
}

// TotalBeats returns the length of the pass in beats: the count-in plus
// one beat per note, ascending then descending.
func (s *Session) TotalBeats() int {
	return s.CountIn + 2*len(s.Notes)
}

// BeatSamples returns the number of samples per beat.
func (s *Session) BeatSamples() int {
	return int(60.0 / float64(s.BPM) * float64(s.SampleRate))
}

// TotalSamples returns the length of the pass in samples.
func (s *Session) TotalSamples() int {
	return s.TotalBeats() * s.BeatSamples()
}

// Event resolves the expected-note event for an absolute beat, or
// false when the beat is outside the pass.
func (s *Session) Event(beat int) (Event, bool) {
	n := len(s.Notes)
	switch {
	case beat < 0 || beat >= s.TotalBeats():
		return Event{}, false
	case beat < s.CountIn:
		return Event{Beat: beat, CountIn: true}, true
	case beat < s.CountIn+n:
		idx := beat - s.CountIn
		return Event{Beat: beat, Index: idx, Note: s.Notes[idx]}, true
	default:
		idx := beat - s.CountIn
		rev := n - (idx - n) - 1
		return Event{Beat: beat, Index: idx, Descending: true, Note: s.Notes[rev]}, true
	}
}

// Run records from src until the session's full length has been
// captured, invoking onEvent at each beat transition. The beat index
// only ever moves forward: a short read never re-announces an earlier
// beat. Cancelling ctx stops the loop between chunks.
func Run(ctx context.Context, src Source, sess *Session, onEvent func(Event)) ([]float64, error) {
	total := sess.TotalSamples()
	beatSamples := sess.BeatSamples()
	recording := make([]float64, 0, total)

	lastBeat := -1
	announce := func(beat int) {
		if beat <= lastBeat {
			return
		}
		lastBeat = beat
		if ev, ok := sess.Event(beat); ok && onEvent != nil {
			onEvent(ev)
		}
	}
	announce(0)

	for len(recording) < total {
		select {
		case <-ctx.Done():
			return recording, ctx.Err()
		default:
		}

		chunk, err := src.ReadChunk()
		if err != nil {
			return recording, fmt.Errorf("capture: read chunk: %w", err)
		}
		recording = append(recording, chunk...)
		announce(len(recording) / beatSamples)
	}
	return recording, nil
}
