package commands

import "testing"

func TestResolvePosition(t *testing.T) {
	pos, err := resolvePosition(nil)
	if err != nil || pos.ID != "position1" {
		t.Errorf("default = %v, %v; want position1", pos, err)
	}

	pos, err = resolvePosition([]string{"position3"})
	if err != nil || pos.ID != "position3" {
		t.Errorf("position3 = %v, %v", pos, err)
	}

	if _, err := resolvePosition([]string{"position9"}); err == nil {
		t.Error("unknown position accepted")
	}
}

func TestResolveBPM(t *testing.T) {
	cases := []struct {
		flag, current, want int
		wantErr             bool
	}{
		{0, 120, 120, false},
		{90, 120, 90, false},
		{40, 120, 40, false},
		{300, 120, 300, false},
		{39, 120, 0, true},
		{301, 120, 0, true},
		{0, 500, 0, true},
	}
	for _, c := range cases {
		got, err := resolveBPM(c.flag, c.current)
		if (err != nil) != c.wantErr || got != c.want {
			t.Errorf("resolveBPM(%d, %d) = %d, %v; want %d, err=%v",
				c.flag, c.current, got, err, c.want, c.wantErr)
		}
	}
}

func TestSplitLevel(t *testing.T) {
	name, bpm := splitLevel("Position 1 - A Minor Pentatonic_120")
	if name != "Position 1 - A Minor Pentatonic" || bpm != "120" {
		t.Errorf("splitLevel = %q, %q", name, bpm)
	}
}
