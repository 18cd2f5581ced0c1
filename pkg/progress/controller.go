package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/scale"
)

// Update describes what a scored pass changed in the progression.
type Update struct {
	Perfect     bool
	NewTempo    int    // tempo for the next pass
	Achievement string // non-empty when the pass earned one
	Unlocked    string // newly unlocked position ID, if any
}

// Controller owns the progression record. It is the only writer; the
// display layer reads snapshots via Record.
type Controller struct {
	store  Store
	step   int // tempo increase per perfect pass
	logger *slog.Logger

	mu  sync.Mutex
	rec *Record
}

// NewController loads the saved record from the store. A missing or
// unreadable record falls back to a fresh default rather than failing.
func NewController(ctx context.Context, store Store, step int, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	rec, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("could not load saved progress, starting fresh", "error", err)
		}
		rec = DefaultRecord()
	}
	return &Controller{store: store, step: step, logger: logger, rec: rec}
}

// Record returns a snapshot of the current progression state.
func (c *Controller) Record() *Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec.clone()
}

// CurrentBPM returns the tempo the next pass should be played at.
func (c *Controller) CurrentBPM() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec.HighestBPM
}

// Apply records the accuracy of a scored pass for the given position
// and tempo, advancing the progression on a perfect pass. The record is
// persisted before Apply returns.
func (c *Controller) Apply(ctx context.Context, pos *scale.Position, bpm int, accuracy float64) (*Update, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := LevelKey(pos.Name, bpm)
	c.rec.LevelAccuracies[key] = append(c.rec.LevelAccuracies[key], accuracy)

	up := &Update{NewTempo: bpm}
	if accuracy == 100 {
		up.Perfect = true
		up.Achievement = fmt.Sprintf("%s at %d BPM", pos.Name, bpm)
		c.rec.GamesWon = append(c.rec.GamesWon, up.Achievement)

		newTempo := bpm + c.step
		if newTempo > c.rec.TargetBPM {
			newTempo = c.rec.TargetBPM
		}
		up.NewTempo = newTempo
		if newTempo > c.rec.HighestBPM {
			c.rec.HighestBPM = newTempo
		}

		if next := scale.Next(pos.ID); next != "" && !c.rec.IsUnlocked(next) {
			c.rec.Unlocked = append(c.rec.Unlocked, next)
			up.Unlocked = next
		}
	}

	if err := c.store.Save(ctx, c.rec); err != nil {
		return nil, err
	}
	c.logger.Debug("progress updated",
		"level", key, "accuracy", accuracy, "tempo", up.NewTempo)
	return up, nil
}

// SetTarget updates the target tempo. Values outside
// [MinTargetBPM, MaxTargetBPM] are rejected.
func (c *Controller) SetTarget(ctx context.Context, bpm int) error {
	if bpm < MinTargetBPM || bpm > MaxTargetBPM {
		return fmt.Errorf("progress: target %d out of range [%d, %d]", bpm, MinTargetBPM, MaxTargetBPM)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec.TargetBPM = bpm
	return c.store.Save(ctx, c.rec)
}

// Reset discards all progression state and persists a fresh record.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = DefaultRecord()
	return c.store.Save(ctx, c.rec)
}
