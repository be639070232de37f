package shmoo

import "errors"

// Blocking errors abort the render with no partial surface. Recoverable
// conditions (interpolation unavailable, degenerate scale, unparseable
// threshold bounds) never surface as errors; they degrade the surface and
// are reported on RenderResult.Warnings.
var (
	// ErrInsufficientColumns is returned when the data source exposes fewer
	// than three numeric columns.
	ErrInsufficientColumns = errors.New("shmoo: requires at least 3 numeric columns (X, Y, Z)")

	// ErrInsufficientData is returned when fewer than three valid samples
	// remain after NaN removal.
	ErrInsufficientData = errors.New("shmoo: fewer than 3 valid data points after removing NaN values")

	// ErrInterpolationUnavailable reports that the requested interpolation
	// method cannot run, typically because the sample geometry is degenerate
	// (collinear points) or a solve failed. The renderer recovers by falling
	// back to scatter rendering.
	ErrInterpolationUnavailable = errors.New("shmoo: interpolation unavailable")
)
