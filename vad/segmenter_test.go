package vad

import (
	"testing"
	"time"

	"github.com/skypro1111/speechkit/audio"
)

func testSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		SampleRate:         16000,
		WindowMS:           30,
		Threshold:          0.02,
		FreqThreshold:      100,
		MinSpeechDuration:  200 * time.Millisecond,
		MinSilenceDuration: 300 * time.Millisecond,
		MaxSegmentDuration: 30 * time.Second,
	}
}

// speechBuffer builds silence + tone + silence at 16 kHz.
func speechBuffer(leadSec, toneSec, tailSec float64) []float32 {
	lead := make([]float32, int(leadSec*16000))
	tone := sine(int(toneSec*16000), 1000, 0.3, 16000)
	tail := make([]float32, int(tailSec*16000))

	out := append([]float32{}, lead...)
	out = append(out, tone...)
	return append(out, tail...)
}

func TestSegmenterSingleSegment(t *testing.T) {
	pcm := speechBuffer(0.5, 1.0, 1.0)
	s := NewSegmenter(testSegmenterConfig())

	segments := s.Segments(pcm)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}

	seg := segments[0]
	if seg.ID == "" {
		t.Error("segment must carry an ID")
	}
	// Tone spans samples [8000, 24000); bounds land on window boundaries.
	const winTol = 2 * 480
	if seg.Start < 8000-winTol || seg.Start > 8000+winTol {
		t.Errorf("segment start %d not near sample 8000", seg.Start)
	}
	if seg.End < 24000-winTol || seg.End > 24000+winTol {
		t.Errorf("segment end %d not near sample 24000", seg.End)
	}
	if seg.T0 != audio.SampleToTimestamp(seg.Start, 16000) {
		t.Errorf("T0 %d does not match start sample %d", seg.T0, seg.Start)
	}
	if seg.T1 != audio.SampleToTimestamp(seg.End, 16000) {
		t.Errorf("T1 %d does not match end sample %d", seg.T1, seg.End)
	}
	if seg.Energy <= 0.02 {
		t.Errorf("segment energy %f should exceed the threshold", seg.Energy)
	}
	if s.SegmentsCreated() != 1 {
		t.Errorf("expected created counter 1, got %d", s.SegmentsCreated())
	}
}

func TestSegmenterTwoSegments(t *testing.T) {
	pcm := speechBuffer(0.5, 1.0, 1.0)
	pcm = append(pcm, speechBuffer(0, 1.0, 0.5)...)

	s := NewSegmenter(testSegmenterConfig())
	segments := s.Segments(pcm)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].ID == segments[1].ID {
		t.Error("segment IDs must be unique")
	}
	if segments[0].End > segments[1].Start {
		t.Errorf("segments must not overlap: %d > %d", segments[0].End, segments[1].Start)
	}
}

func TestSegmenterBelowThreshold(t *testing.T) {
	// Quiet tone below the energy threshold.
	pcm := sine(32000, 1000, 0.01, 16000)
	s := NewSegmenter(testSegmenterConfig())
	if segments := s.Segments(pcm); len(segments) != 0 {
		t.Errorf("expected no segments for sub-threshold audio, got %d", len(segments))
	}
}

func TestSegmenterShortBuffer(t *testing.T) {
	s := NewSegmenter(testSegmenterConfig())
	if segments := s.Segments(make([]float32, 100)); segments != nil {
		t.Errorf("expected nil for buffer shorter than one window, got %v", segments)
	}
}

func TestSegmenterMaxDurationSplits(t *testing.T) {
	cfg := testSegmenterConfig()
	cfg.MaxSegmentDuration = time.Second

	pcm := sine(48000, 1000, 0.3, 16000) // 3 s of continuous tone
	s := NewSegmenter(cfg)
	segments := s.Segments(pcm)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments from 3 s of speech at 1 s cap, got %d", len(segments))
	}
	maxSamples := 16000 + 480 // cap plus one window of slack
	for i, seg := range segments {
		if seg.End-seg.Start > maxSamples {
			t.Errorf("segment %d length %d exceeds the cap", i, seg.End-seg.Start)
		}
		if i > 0 && seg.Start != segments[i-1].End {
			t.Errorf("forced split should continue where the previous segment ended: %d != %d",
				seg.Start, segments[i-1].End)
		}
	}
}

func TestSegmenterSpeechAtEndIsFlushed(t *testing.T) {
	pcm := speechBuffer(0.5, 1.0, 0) // buffer ends mid-speech
	s := NewSegmenter(testSegmenterConfig())
	segments := s.Segments(pcm)
	if len(segments) != 1 {
		t.Fatalf("expected trailing speech to be flushed as 1 segment, got %d", len(segments))
	}
	if end := segments[0].End; end < 23000 {
		t.Errorf("flushed segment should extend to the buffer end, got %d", end)
	}
}

func TestSegmenterWindowCounters(t *testing.T) {
	pcm := speechBuffer(0.5, 1.0, 1.0)
	s := NewSegmenter(testSegmenterConfig())
	s.Segments(pcm)

	total := uint64(len(pcm) / 480) // full 30 ms windows at 16 kHz
	if got := s.WindowsProcessed(); got != total {
		t.Errorf("expected %d windows processed, got %d", total, got)
	}
	speech := s.SpeechWindows()
	if speech == 0 || speech >= total {
		t.Fatalf("speech windows %d should be a strict subset of %d", speech, total)
	}
	// Roughly one second of tone, so about 33 speech windows.
	if speech < 25 || speech > 40 {
		t.Errorf("expected around 33 speech windows, got %d", speech)
	}
}

func TestSegmenterAccumulatesSpeechAcrossDips(t *testing.T) {
	// Four 120 ms bursts separated by single-window dips: each burst alone is
	// under the 200 ms speech minimum, but together they commit one segment.
	const nWindow = 480
	pcm := make([]float32, 0, 64*nWindow)
	pcm = append(pcm, make([]float32, 10*nWindow)...)
	for i := 0; i < 4; i++ {
		pcm = append(pcm, sine(4*nWindow, 1000, 0.3, 16000)...)
		if i < 3 {
			pcm = append(pcm, make([]float32, nWindow)...)
		}
	}
	pcm = append(pcm, make([]float32, 34*nWindow)...)

	s := NewSegmenter(testSegmenterConfig())
	segments := s.Segments(pcm)
	if len(segments) != 1 {
		t.Fatalf("expected dips shorter than the silence minimum to stay inside one segment, got %d", len(segments))
	}
}

func TestSegmenterIgnoresShortBlips(t *testing.T) {
	// 60 ms of tone is under the 200 ms speech minimum.
	pcm := speechBuffer(0.5, 0.06, 1.0)
	s := NewSegmenter(testSegmenterConfig())
	if segments := s.Segments(pcm); len(segments) != 0 {
		t.Errorf("expected short blip to be ignored, got %d segments", len(segments))
	}
}
