// Package scale defines the practice positions of the A minor pentatonic
// scale. Each position is an ordered run of twelve notes, played ascending
// and then descending during a practice pass.
package scale

import (
	"github.com/fmerenda/Pentatonic-Guitar-Trainer/pkg/fretboard"
)

// Position is one box of the pentatonic scale on the fretboard.
type Position struct {
	ID          string // stable identifier ("position1" .. "position5")
	Name        string // display name
	Description string
	Notes       []fretboard.Note // ascending order
	Tab         string           // tab-notation diagram, presentation only
}

// Sequence returns the full expected note sequence for one practice pass:
// the position's notes ascending followed by the same notes reversed.
func (p *Position) Sequence() []fretboard.Note {
	seq := make([]fretboard.Note, 0, 2*len(p.Notes))
	seq = append(seq, p.Notes...)
	for i := len(p.Notes) - 1; i >= 0; i-- {
		seq = append(seq, p.Notes[i])
	}
	return seq
}

// notes builds the note list for a position from (string, fret) pairs.
func notes(pairs ...[2]int) []fretboard.Note {
	ns := make([]fretboard.Note, len(pairs))
	for i, p := range pairs {
		ns[i] = fretboard.New(p[0], p[1])
	}
	return ns
}

// All contains the five positions in progression order. The first is
// unlocked from the start; each subsequent one is unlocked by a perfect
// pass on its predecessor.
var All = []Position{
	{
		ID:          "position1",
		Name:        "Position 1 - A Minor Pentatonic",
		Description: "The foundation position starting on the root note A",
		Notes: notes(
			[2]int{6, 5}, [2]int{6, 8},
			[2]int{5, 5}, [2]int{5, 7},
			[2]int{4, 5}, [2]int{4, 7},
			[2]int{3, 5}, [2]int{3, 7},
			[2]int{2, 5}, [2]int{2, 8},
			[2]int{1, 5}, [2]int{1, 8},
		),
		Tab: `
e|---5--8-------------------------
b|---5--8-------------------------
G|---5--7-------------------------
D|---5--7-------------------------
A|---5--7-------------------------
E|---5--8-------------------------`,
	},
	{
		ID:          "position2",
		Name:        "Position 2 - A Minor Pentatonic",
		Description: "The second position, starting on C",
		Notes: notes(
			[2]int{6, 8}, [2]int{6, 10},
			[2]int{5, 7}, [2]int{5, 10},
			[2]int{4, 7}, [2]int{4, 10},
			[2]int{3, 7}, [2]int{3, 9},
			[2]int{2, 8}, [2]int{2, 10},
			[2]int{1, 8}, [2]int{1, 10},
		),
		Tab: `
e|---8--10------------------------
b|---8--10------------------------
G|---7--9-------------------------
D|---7--10------------------------
A|---7--10------------------------
E|---8--10------------------------`,
	},
	{
		ID:          "position3",
		Name:        "Position 3 - A Minor Pentatonic",
		Description: "The third position, starting on D",
		Notes: notes(
			[2]int{6, 10}, [2]int{6, 12},
			[2]int{5, 10}, [2]int{5, 12},
			[2]int{4, 10}, [2]int{4, 12},
			[2]int{3, 9}, [2]int{3, 12},
			[2]int{2, 10}, [2]int{2, 12},
			[2]int{1, 10}, [2]int{1, 12},
		),
		Tab: `
e|---10-12------------------------
b|---10-12------------------------
G|---9--12------------------------
D|---10-12------------------------
A|---10-12------------------------
E|---10-12------------------------`,
	},
	{
		ID:          "position4",
		Name:        "Position 4 - A Minor Pentatonic",
		Description: "The fourth position, starting on E",
		Notes: notes(
			[2]int{6, 12}, [2]int{6, 15},
			[2]int{5, 12}, [2]int{5, 15},
			[2]int{4, 12}, [2]int{4, 14},
			[2]int{3, 12}, [2]int{3, 14},
			[2]int{2, 12}, [2]int{2, 15},
			[2]int{1, 12}, [2]int{1, 15},
		),
		Tab: `
e|---12-15------------------------
b|---12-15------------------------
G|---12-14------------------------
D|---12-14------------------------
A|---12-15------------------------
E|---12-15------------------------`,
	},
	{
		ID:          "position5",
		Name:        "Position 5 - A Minor Pentatonic",
		Description: "The fifth position, starting on G",
		Notes: notes(
			[2]int{6, 15}, [2]int{6, 17},
			[2]int{5, 15}, [2]int{5, 17},
			[2]int{4, 14}, [2]int{4, 17},
			[2]int{3, 14}, [2]int{3, 17},
			[2]int{2, 15}, [2]int{2, 17},
			[2]int{1, 15}, [2]int{1, 17},
		),
		Tab: `
e|---15-17------------------------
b|---15-17------------------------
G|---14-17------------------------
D|---14-17------------------------
A|---15-17------------------------
E|---15-17------------------------`,
	},
}

// ByID returns the position with the given ID, or nil if not found.
func ByID(id string) *Position {
	for i := range All {
		if All[i].ID == id {
			return &All[i]
		}
	}
	return nil
}

// IDs returns all position IDs in progression order.
func IDs() []string {
	ids := make([]string, len(All))
	for i := range All {
		ids[i] = All[i].ID
	}
	return ids
}

// Next returns the ID of the position after the given one in the
// progression, or "" when the given position is the last (or unknown).
func Next(id string) string {
	for i := range All {
		if All[i].ID == id && i+1 < len(All) {
			return All[i+1].ID
		}
	}
	return ""
}
