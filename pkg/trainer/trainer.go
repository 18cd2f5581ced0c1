// Package trainer drives complete practice and demonstration passes:
// it wires the synthesizer, audio engine, capture loop, scoring engine
// and progression controller together behind two blocking operations.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/audio"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/capture"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/config"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/pitch"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/progress"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/scale"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/score"
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/synth"
)

// ErrBusy is returned when a pass is started while another is running.
var ErrBusy = errors.New("trainer: a session is already running")

// ErrLocked is returned when practicing a position that has not been
// unlocked yet.
var ErrLocked = errors.New("trainer: position is locked")

// InputSource is a closeable live input.
type InputSource interface {
	capture.Source
	Close() error
}

// Audio is the device layer the trainer plays through and records from.
type Audio interface {
	// Play blocks until the samples have been written or ctx is
	// cancelled. onProgress reports the running sample count.
	Play(ctx context.Context, samples []float64, onProgress func(written int)) error

	// OpenInput opens the live input for chunked capture.
	OpenInput() (InputSource, error)
}

// EngineAudio adapts an audio.Engine to the Audio interface.
type EngineAudio struct {
	*audio.Engine
}

func (e EngineAudio) OpenInput() (InputSource, error) {
	return e.Engine.OpenInput()
}

// Trainer runs demonstration and practice passes. At most one pass is
// active at a time; concurrent starts are rejected with ErrBusy.
type Trainer struct {
	cfg      *config.Config
	audio    Audio
	synth    *synth.Synthesizer
	scorer   *score.Engine
	progress *progress.Controller
	logger   *slog.Logger

	busy atomic.Bool
}

// New assembles a Trainer from its parts.
func New(cfg *config.Config, aud Audio, ctrl *progress.Controller, logger *slog.Logger) *Trainer {
	if logger == nil {
		logger = slog.Default()
	}
	syn := synth.New(synth.Options{
		SampleRate:      cfg.SampleRate,
		HarmonicWeights: cfg.HarmonicWeights,
		Gain:            cfg.Gain,
		AttackMillis:    cfg.Envelope.AttackMillis,
		DecayMillis:     cfg.Envelope.DecayMillis,
		Sustain:         cfg.Envelope.Sustain,
		ReleaseMillis:   cfg.Envelope.ReleaseMillis,
		ClickFreq:       cfg.ClickFreq,
		ClickMillis:     cfg.ClickMillis,
	})
	det := pitch.NewDetector(cfg.SampleRate, cfg.ChunkSize, cfg.PeakHeight)
	return &Trainer{
		cfg:      cfg,
		audio:    aud,
		synth:    syn,
		scorer:   score.NewEngine(det, cfg.SampleRate, cfg.CountInBeats, cfg.ToleranceSemitones),
		progress: ctrl,
		logger:   logger,
	}
}

// Progress exposes the progression controller.
func (t *Trainer) Progress() *progress.Controller { return t.progress }

// session builds the capture geometry for one pass of a position.
func (t *Trainer) session(pos *scale.Position, bpm int) *capture.Session {
	return &capture.Session{
		Notes:      pos.Notes,
		CountIn:    t.cfg.CountInBeats,
		BPM:        bpm,
		SampleRate: t.cfg.SampleRate,
	}
}

// Demo plays the position's notes at the given tempo, count-in first.
// onBeat, when non-nil, is invoked as playback crosses each beat, in
// step with what is audible.
func (t *Trainer) Demo(ctx context.Context, pos *scale.Position, bpm int, onBeat func(capture.Event)) error {
	if !t.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer t.busy.Store(false)

	sess := t.session(pos, bpm)
	track := t.synth.DemoTrack(pos.Sequence(), bpm, t.cfg.CountInBeats)
	t.logger.Info("playing demonstration", "position", pos.ID, "bpm", bpm)

	beatSamples := sess.BeatSamples()
	lastBeat := -1
	emit := func(written int) {
		beat := written / beatSamples
		if beat <= lastBeat {
			return
		}
		lastBeat = beat
		if ev, ok := sess.Event(beat); ok && onBeat != nil {
			onBeat(ev)
		}
	}
	emit(0)

	if err := t.audio.Play(ctx, track, emit); err != nil {
		return fmt.Errorf("trainer: demo playback: %w", err)
	}
	return nil
}

// Practice runs one scored practice pass: the metronome plays for the
// count-in plus one beat per expected note while the live input is
// recorded, then the recording is graded and the progression updated.
// The progression is only mutated after a recording has been captured
// and scored; device failures abort the pass untouched.
func (t *Trainer) Practice(ctx context.Context, pos *scale.Position, bpm int, onBeat func(capture.Event)) (*score.Report, *progress.Update, error) {
	if !t.busy.CompareAndSwap(false, true) {
		return nil, nil, ErrBusy
	}
	defer t.busy.Store(false)

	if !t.progress.Record().IsUnlocked(pos.ID) {
		return nil, nil, ErrLocked
	}

	in, err := t.audio.OpenInput()
	if err != nil {
		return nil, nil, fmt.Errorf("trainer: open input: %w", err)
	}
	defer in.Close()

	sess := t.session(pos, bpm)
	track := t.synth.Metronome(bpm, sess.TotalBeats())
	t.logger.Info("starting practice pass",
		"position", pos.ID, "bpm", bpm, "beats", sess.TotalBeats())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	playErr := make(chan error, 1)
	go func() {
		playErr <- t.audio.Play(ctx, track, nil)
	}()

	recording, err := capture.Run(ctx, in, sess, onBeat)
	if err != nil {
		cancel()
		<-playErr
		return nil, nil, err
	}
	if err := <-playErr; err != nil && !errors.Is(err, context.Canceled) {
		return nil, nil, fmt.Errorf("trainer: metronome playback: %w", err)
	}

	report := t.scorer.Score(recording, pos.Sequence(), bpm)
	t.logger.Info("pass scored",
		"position", pos.ID, "bpm", bpm,
		"correct", report.Correct, "expected", report.Expected,
		"accuracy", report.Accuracy)

	update, err := t.progress.Apply(ctx, pos, bpm, report.Accuracy)
	if err != nil {
		return report, nil, fmt.Errorf("trainer: record progress: %w", err)
	}
	return report, update, nil
}
