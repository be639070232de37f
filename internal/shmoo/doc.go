// Package shmoo renders two-dimensional parameter-sweep ("shmoo")
// visualizations: given samples carrying two swept parameters (X, Y) and one
// measured value (Z), it produces a heatmap or scatter surface colored by Z,
// optionally classified against pass/fail thresholds, contoured, and
// annotated with per-point value labels.
//
// The pipeline is a single synchronous pass per call to Render: column
// selection, sample cleaning, grid classification, optional interpolation of
// scattered samples onto a dense grid, optional safe-floor log scaling,
// threshold classification, and drawing via gonum/plot. Blocking errors
// (too few columns, too few valid samples) abort the render; everything else
// degrades to a simpler surface and is reported as a warning.
package shmoo
