package shmoo

import "strconv"

// ValueLabel is one text annotation at a sample position.
type ValueLabel struct {
	X    float64
	Y    float64
	Text string
}

// ValueLabels produces one label per unique (x,y) position showing its Z
// value to 3 significant digits. Deduplication is first-occurrence-wins.
// Note this differs from BuildGrid, where the last sample for a cell wins,
// so a duplicated point can be labeled with a value the grid no longer
// holds.
func ValueLabels(samples []Sample) []ValueLabel {
	type pos struct{ x, y float64 }
	seen := make(map[pos]struct{}, len(samples))
	out := make([]ValueLabel, 0, len(samples))
	for _, s := range samples {
		p := pos{s.X, s.Y}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, ValueLabel{
			X:    s.X,
			Y:    s.Y,
			Text: strconv.FormatFloat(s.Z, 'g', 3, 64),
		})
	}
	return out
}
