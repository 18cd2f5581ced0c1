package scale

import "testing"

func TestAllPositionsTwelveNotes(t *testing.T) {
	if len(All) != 5 {
		t.Fatalf("positions = %d, want 5", len(All))
	}
	for _, p := range All {
		if len(p.Notes) != 12 {
			t.Errorf("%s: notes = %d, want 12", p.ID, len(p.Notes))
		}
		if p.Tab == "" {
			t.Errorf("%s: missing tab", p.ID)
		}
	}
}

func TestPentatonicNoteNames(t *testing.T) {
	// Every note in every position belongs to the A minor pentatonic.
	allowed := map[string]bool{"A": true, "C": true, "D": true, "E": true, "G": true}
	for _, p := range All {
		for _, n := range p.Notes {
			if !allowed[n.Name] {
				t.Errorf("%s: note %s (string %d fret %d) outside pentatonic",
					p.ID, n.Name, n.String, n.Fret)
			}
		}
	}
}

func TestPositionOneStartsOnRoot(t *testing.T) {
	p := ByID("position1")
	if p == nil {
		t.Fatal("position1 not found")
	}
	first := p.Notes[0]
	if first.Name != "A" {
		t.Errorf("first note = %s, want A", first.Name)
	}
	if got, want := first.Frequency, 110.0; !approx(got, want) {
		t.Errorf("first note frequency = %g, want %g", got, want)
	}
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.01
}

func TestSequence(t *testing.T) {
	p := ByID("position1")
	seq := p.Sequence()
	if len(seq) != 24 {
		t.Fatalf("sequence length = %d, want 24", len(seq))
	}
	for i := 0; i < 12; i++ {
		if seq[i] != p.Notes[i] {
			t.Errorf("ascending[%d] mismatch", i)
		}
		if seq[23-i] != p.Notes[i] {
			t.Errorf("descending[%d] mismatch", i)
		}
	}
}

func TestNext(t *testing.T) {
	cases := []struct {
		id, want string
	}{
		{"position1", "position2"},
		{"position4", "position5"},
		{"position5", ""},
		{"nope", ""},
	}
	for _, c := range cases {
		if got := Next(c.id); got != c.want {
			t.Errorf("Next(%q) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestByIDUnknown(t *testing.T) {
	if p := ByID("position9"); p != nil {
		t.Errorf("ByID(position9) = %v, want nil", p)
	}
}
