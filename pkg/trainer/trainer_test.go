package trainer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/capture"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/config"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/progress"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/scale"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/synth"
)

// fakeAudio satisfies Audio without touching any device. Playback
// completes instantly, reporting progress in chunk-sized steps; input
// is served from a canned recording followed by silence.
type fakeAudio struct {
	chunkSize int
	input     []float64
	inputErr  error
	opened    chan struct{} // closed when OpenInput succeeds
	gate      chan struct{} // when non-nil, ReadChunk blocks on it
}

func (f *fakeAudio) Play(ctx context.Context, samples []float64, onProgress func(int)) error {
	for written := 0; written < len(samples); {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n := f.chunkSize
		if rest := len(samples) - written; rest < n {
			n = rest
		}
		written += n
		if onProgress != nil {
			onProgress(written)
		}
	}
	return nil
}

func (f *fakeAudio) OpenInput() (InputSource, error) {
	if f.inputErr != nil {
		return nil, f.inputErr
	}
	if f.opened != nil {
		close(f.opened)
		f.opened = nil
	}
	return &fakeInput{audio: f}, nil
}

type fakeInput struct {
	audio *fakeAudio
	pos   int
}

func (s *fakeInput) ReadChunk() ([]float64, error) {
	if s.audio.gate != nil {
		<-s.audio.gate
	}
	chunk := make([]float64, s.audio.chunkSize)
	if s.pos < len(s.audio.input) {
		copy(chunk, s.audio.input[s.pos:])
	}
	s.pos += s.audio.chunkSize
	return chunk, nil
}

func (s *fakeInput) Close() error { return nil }

// renderPass synthesizes a clean performance of the position at the
// given tempo: silent count-in, then every expected note on its beat.
func renderPass(cfg *config.Config, pos *scale.Position, bpm int) []float64 {
	s := synth.New(synth.Options{SampleRate: cfg.SampleRate})
	seq := pos.Sequence()
	beatSamples := s.BeatSamples(bpm)
	rec := make([]float64, (cfg.CountInBeats+len(seq))*beatSamples)
	for i, note := range seq {
		tone := s.Note(note.Frequency, 60.0/float64(bpm))
		copy(rec[(cfg.CountInBeats+i)*beatSamples:], tone)
	}
	return rec
}

func newTestTrainer(t *testing.T, aud Audio) (*Trainer, *progress.MemStore) {
	t.Helper()
	cfg := config.Default()
	store := &progress.MemStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := progress.NewController(context.Background(), store, cfg.TempoStep, logger)
	return New(cfg, aud, ctrl, logger), store
}

func TestPracticePerfectPass(t *testing.T) {
	cfg := config.Default()
	pos := scale.ByID("position1")
	const bpm = 120

	aud := &fakeAudio{chunkSize: cfg.ChunkSize, input: renderPass(cfg, pos, bpm)}
	tr, store := newTestTrainer(t, aud)

	var events []capture.Event
	report, update, err := tr.Practice(context.Background(), pos, bpm, func(ev capture.Event) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("Practice: %v", err)
	}

	if !report.Perfect() {
		for _, v := range report.Verdicts {
			if !v.Correct {
				t.Logf("beat %d: expected %s, detected %g (%s), missing=%v",
					v.Index, v.Expected.Name, v.Detected, v.DetectedName, v.NoDetection)
			}
		}
		t.Fatalf("accuracy = %.1f, want 100", report.Accuracy)
	}

	if !update.Perfect || update.NewTempo != bpm+5 {
		t.Errorf("update = %+v, want perfect with tempo %d", update, bpm+5)
	}
	if update.Unlocked != "position2" {
		t.Errorf("Unlocked = %q, want position2", update.Unlocked)
	}
	if store.Saves != 1 {
		t.Errorf("saves = %d, want 1", store.Saves)
	}
	if len(events) != 28 {
		t.Errorf("beat events = %d, want 28", len(events))
	}
}

func TestPracticeSilentPass(t *testing.T) {
	cfg := config.Default()
	pos := scale.ByID("position1")

	aud := &fakeAudio{chunkSize: cfg.ChunkSize} // all-silence input
	tr, _ := newTestTrainer(t, aud)

	report, update, err := tr.Practice(context.Background(), pos, 120, nil)
	if err != nil {
		t.Fatalf("Practice: %v", err)
	}
	if report.Accuracy != 0 {
		t.Errorf("accuracy = %g, want 0", report.Accuracy)
	}
	if update.Perfect || update.Unlocked != "" {
		t.Errorf("silent pass advanced progression: %+v", update)
	}
}

func TestPracticeLockedPosition(t *testing.T) {
	cfg := config.Default()
	aud := &fakeAudio{chunkSize: cfg.ChunkSize}
	tr, store := newTestTrainer(t, aud)

	_, _, err := tr.Practice(context.Background(), scale.ByID("position3"), 120, nil)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
	if store.Saves != 0 {
		t.Errorf("saves = %d, want 0", store.Saves)
	}
}

func TestPracticeDeviceFailureLeavesProgressUntouched(t *testing.T) {
	cfg := config.Default()
	deviceErr := errors.New("no input device")
	aud := &fakeAudio{chunkSize: cfg.ChunkSize, inputErr: deviceErr}
	tr, store := newTestTrainer(t, aud)

	_, _, err := tr.Practice(context.Background(), scale.ByID("position1"), 120, nil)
	if !errors.Is(err, deviceErr) {
		t.Fatalf("err = %v, want wrapped device error", err)
	}
	if store.Saves != 0 {
		t.Errorf("saves = %d, want 0", store.Saves)
	}
}

func TestPracticeRejectsConcurrentPass(t *testing.T) {
	cfg := config.Default()
	aud := &fakeAudio{
		chunkSize: cfg.ChunkSize,
		opened:    make(chan struct{}),
		gate:      make(chan struct{}),
	}
	tr, _ := newTestTrainer(t, aud)

	done := make(chan struct{})
	go func() {
		defer close(done)
		tr.Practice(context.Background(), scale.ByID("position1"), 120, nil)
	}()

	select {
	case <-aud.opened:
	case <-time.After(5 * time.Second):
		t.Fatal("first pass never opened the input")
	}

	if err := tr.Demo(context.Background(), scale.ByID("position1"), 120, nil); !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}

	close(aud.gate)
	<-done
}

func TestDemoEvents(t *testing.T) {
	cfg := config.Default()
	aud := &fakeAudio{chunkSize: cfg.ChunkSize}
	tr, _ := newTestTrainer(t, aud)

	pos := scale.ByID("position1")
	var events []capture.Event
	err := tr.Demo(context.Background(), pos, 120, func(ev capture.Event) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("Demo: %v", err)
	}

	if len(events) != 28 {
		t.Fatalf("events = %d, want 28", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Beat != events[i-1].Beat+1 {
			t.Fatalf("beats not consecutive at event %d", i)
		}
	}
	if !events[0].CountIn {
		t.Error("first event not count-in")
	}
	last := events[len(events)-1]
	if !last.Descending || last.Note != pos.Notes[0] {
		t.Errorf("last event = %+v, want descent back to %s", last, pos.Notes[0].Name)
	}
}

func TestDemoCancelled(t *testing.T) {
	cfg := config.Default()
	aud := &fakeAudio{chunkSize: cfg.ChunkSize}
	tr, _ := newTestTrainer(t, aud)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := tr.Demo(ctx, scale.ByID("position1"), 120, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
