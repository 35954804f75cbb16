package audio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTimestamp(t *testing.T) {
	tests := []struct {
		t     int64
		comma bool
		want  string
	}{
		{0, false, "00:00:00.000"},
		{0, true, "00:00:00,000"},
		{6000, false, "00:01:00.000"},
		{6000, true, "00:01:00,000"},
		{1, false, "00:00:00.010"},
		{123, false, "00:00:01.230"},
		{360000, false, "01:00:00.000"},
		// Hours are unbounded, not wrapped at 24.
		{9000000, false, "25:00:00.000"},
	}
	for _, tt := range tests {
		if got := Timestamp(tt.t, tt.comma); got != tt.want {
			t.Errorf("Timestamp(%d, %v): expected %q, got %q", tt.t, tt.comma, tt.want, got)
		}
	}
}

func TestTimestampToSample(t *testing.T) {
	const n = 160000 // 10 s at 16 kHz

	if got := TimestampToSample(100, n, SampleRate); got != 16000 {
		t.Errorf("1 s tick: expected sample 16000, got %d", got)
	}
	if got := TimestampToSample(0, n, SampleRate); got != 0 {
		t.Errorf("tick 0: expected sample 0, got %d", got)
	}
	// Clamped to [0, n).
	if got := TimestampToSample(-50, n, SampleRate); got != 0 {
		t.Errorf("negative tick: expected clamp to 0, got %d", got)
	}
	if got := TimestampToSample(99999999, n, SampleRate); got != n-1 {
		t.Errorf("huge tick: expected clamp to %d, got %d", n-1, got)
	}
}

func TestSampleToTimestamp(t *testing.T) {
	if got := SampleToTimestamp(16000, SampleRate); got != 100 {
		t.Errorf("expected tick 100, got %d", got)
	}
	if got := SampleToTimestamp(0, SampleRate); got != 0 {
		t.Errorf("expected tick 0, got %d", got)
	}
	if got := SampleToTimestamp(8000, SampleRate); got != 50 {
		t.Errorf("expected tick 50, got %d", got)
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.txt")
	if FileExists(path) {
		t.Error("missing file reported as existing")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if !FileExists(path) {
		t.Error("existing file reported as missing")
	}
}
