package shmoo

import "testing"

func TestValueLabels_Formatting(t *testing.T) {
	t.Parallel()
	labels := ValueLabels([]Sample{
		{X: 0, Y: 0, Z: 3.14159},
		{X: 1, Y: 0, Z: 1234567},
		{X: 2, Y: 0, Z: 0.000123456},
	})
	want := []string{"3.14", "1.23e+06", "0.000123"}
	if len(labels) != len(want) {
		t.Fatalf("got %d labels, want %d", len(labels), len(want))
	}
	for i, w := range want {
		if labels[i].Text != w {
			t.Errorf("labels[%d].Text = %q, want %q", i, labels[i].Text, w)
		}
	}
}

func TestValueLabels_FirstOccurrenceWins(t *testing.T) {
	t.Parallel()
	labels := ValueLabels([]Sample{
		{X: 1, Y: 1, Z: 5},
		{X: 2, Y: 1, Z: 6},
		{X: 1, Y: 1, Z: 9},
	})
	if len(labels) != 2 {
		t.Fatalf("got %d labels, want 2 (duplicate position collapsed)", len(labels))
	}
	if labels[0].Text != "5" {
		t.Errorf("label at (1,1) = %q, want the first value \"5\"", labels[0].Text)
	}
}

// A re-measured point ends up annotated with its first value while the grid
// holds its last; the two dedup policies point in opposite directions.
func TestValueLabels_DisagreeWithGridOnDuplicates(t *testing.T) {
	t.Parallel()
	samples := []Sample{
		{X: 1, Y: 1, Z: 5},
		{X: 2, Y: 1, Z: 6},
		{X: 1, Y: 2, Z: 7},
		{X: 2, Y: 2, Z: 8},
		{X: 1, Y: 1, Z: 9},
	}

	g, err := BuildGrid(samples)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if got := g.Z(0, 0); got != 9 {
		t.Errorf("grid cell (1,1) = %v, want 9 (last sample wins)", got)
	}

	labels := ValueLabels(samples)
	if labels[0].Text != "5" {
		t.Errorf("label at (1,1) = %q, want \"5\" (first sample wins)", labels[0].Text)
	}
}
