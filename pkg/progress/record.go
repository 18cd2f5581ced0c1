// Package progress tracks the player's progression: tempo, unlocked
// positions, achievements, and per-level accuracy history. The record
// is persisted after every mutation.
package progress

import "fmt"

// Record is the persisted progression state. Field names match the
// JSON document written by earlier versions of the trainer so existing
// progress files keep loading.
type Record struct {
	TotalScore      int                  `json:"total_score"`
	GamesWon        []string             `json:"games_won"`
	TargetBPM       int                  `json:"target_bpm"`
	LevelAccuracies map[string][]float64 `json:"level_accuracies"`
	HighestBPM      int                  `json:"highest_bpm"`
	Unlocked        []string             `json:"positions_unlocked"`
}

const (
	// StartBPM is the tempo of a fresh progression.
	StartBPM = 120
	// DefaultTargetBPM is the goal tempo of a fresh progression.
	DefaultTargetBPM = 240

	// MinTargetBPM and MaxTargetBPM bound the configurable target.
	MinTargetBPM = 60
	MaxTargetBPM = 300
)

// DefaultRecord returns a fresh progression with only the first
// position unlocked.
func DefaultRecord() *Record {
	return &Record{
		GamesWon:        []string{},
		TargetBPM:       DefaultTargetBPM,
		LevelAccuracies: map[string][]float64{},
		HighestBPM:      StartBPM,
		Unlocked:        []string{"position1"},
	}
}

// LevelKey identifies one (sequence, tempo) accuracy history.
func LevelKey(name string, bpm int) string {
	return fmt.Sprintf("%s_%d", name, bpm)
}

// IsUnlocked reports whether the position with the given ID is playable.
func (r *Record) IsUnlocked(id string) bool {
	for _, u := range r.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// Accuracies returns the accuracy history for a (sequence, tempo) level.
func (r *Record) Accuracies(name string, bpm int) []float64 {
	return r.LevelAccuracies[LevelKey(name, bpm)]
}

// Best returns the highest value in an accuracy history, or 0 when the
// history is empty.
func Best(accuracies []float64) float64 {
	best := 0.0
	for _, a := range accuracies {
		if a > best {
			best = a
		}
	}
	return best
}

// Average returns the mean of an accuracy history, or 0 when the
// history is empty.
func Average(accuracies []float64) float64 {
	if len(accuracies) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range accuracies {
		sum += a
	}
	return sum / float64(len(accuracies))
}

// clone returns a deep copy, so readers never alias controller state.
func (r *Record) clone() *Record {
	c := *r
	c.GamesWon = append([]string(nil), r.GamesWon...)
	c.Unlocked = append([]string(nil), r.Unlocked...)
	c.LevelAccuracies = make(map[string][]float64, len(r.LevelAccuracies))
	for k, v := range r.LevelAccuracies {
		c.LevelAccuracies[k] = append([]float64(nil), v...)
	}
	return &c
}
