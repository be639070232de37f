package monitoring

import "testing"

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = format
	})
	Logf("warn: %v", 1)
	if got != "warn: %v" {
		t.Errorf("custom logger not called, got %q", got)
	}

	// nil installs a no-op logger rather than panicking.
	got = ""
	SetLogger(nil)
	Logf("dropped")
	if got != "" {
		t.Errorf("no-op logger should not record, got %q", got)
	}
}
