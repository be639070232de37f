// Package sqlite contains the SQLite repository for sweep runs and their
// raw samples. It persists input data only; computed grids and
// interpolation results are recomputed on every render and never stored.
//
// A stored run doubles as a shmoo.DataSource, so the renderer can draw
// directly from the database without an intermediate export.
package sqlite
