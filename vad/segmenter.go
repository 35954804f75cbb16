package vad

import (
	"time"

	"github.com/google/uuid"

	"github.com/skypro1111/speechkit/audio"
)

// segState tracks where the segmenter is in the speech/silence cycle.
type segState int

const (
	stateIdle       segState = iota // waiting for speech to start
	stateCollecting                 // inside a candidate segment
)

// SegmenterConfig contains the segmentation parameters.
type SegmenterConfig struct {
	SampleRate         int
	WindowMS           int     // classification window length
	Threshold          float32 // energy threshold per window
	FreqThreshold      float32 // high-pass cutoff in Hz, 0 disables
	MinSpeechDuration  time.Duration
	MinSilenceDuration time.Duration
	MaxSegmentDuration time.Duration
}

// Segment is a continuous stretch of detected speech, positioned both in
// sample indices and in 10 ms ticks, ready to hand to the transcription side.
type Segment struct {
	ID     string  `json:"id"`
	Start  int     `json:"start"`  // first sample, inclusive
	End    int     `json:"end"`    // last sample, exclusive
	T0     int64   `json:"t0"`     // start tick
	T1     int64   `json:"t1"`     // end tick
	Energy float32 `json:"energy"` // mean window energy inside the segment
}

// Duration returns the segment length at the given sample rate.
func (s Segment) Duration(sampleRate int) time.Duration {
	return time.Duration(s.End-s.Start) * time.Second / time.Duration(sampleRate)
}

// Segmenter walks a decoded buffer window by window and cuts it into speech
// segments with hysteresis: a segment opens once it has accumulated
// MinSpeechDuration of speech, closes after MinSilenceDuration of silence, and
// is force-closed at MaxSegmentDuration. Each Segments call processes one
// buffer from a clean state; only the lifetime counters carry over.
type Segmenter struct {
	config SegmenterConfig

	state      segState
	start      int // first sample of the candidate segment
	speechRun  int // speech windows since the segment opened, dips included
	silenceRun int // consecutive silence windows
	energySum  float32
	energyN    int

	windowsProcessed uint64
	speechWindows    uint64
	segmentsCreated  uint64
}

// NewSegmenter returns a Segmenter with unset config fields replaced by
// defaults: 30 ms windows, 200 ms minimum speech, 300 ms minimum silence,
// 30 s maximum segment.
func NewSegmenter(config SegmenterConfig) *Segmenter {
	if config.WindowMS <= 0 {
		config.WindowMS = 30
	}
	if config.MinSpeechDuration <= 0 {
		config.MinSpeechDuration = 200 * time.Millisecond
	}
	if config.MinSilenceDuration <= 0 {
		config.MinSilenceDuration = 300 * time.Millisecond
	}
	if config.MaxSegmentDuration <= 0 {
		config.MaxSegmentDuration = 30 * time.Second
	}
	return &Segmenter{config: config}
}

// Segments cuts pcm into speech segments. The buffer is not mutated; window
// filtering happens on copies. A trailing partial window is ignored.
func (s *Segmenter) Segments(pcm []float32) []Segment {
	cfg := s.config
	nWindow := cfg.SampleRate * cfg.WindowMS / 1000
	if nWindow <= 0 || len(pcm) < nWindow {
		return nil
	}

	windowDur := time.Duration(cfg.WindowMS) * time.Millisecond
	minSpeechWin := int(cfg.MinSpeechDuration / windowDur)
	minSilenceWin := int(cfg.MinSilenceDuration / windowDur)
	maxSamples := int(cfg.MaxSegmentDuration.Seconds() * float64(cfg.SampleRate))

	s.reset()
	var out []Segment

	for winStart := 0; winStart+nWindow <= len(pcm); winStart += nWindow {
		winEnd := winStart + nWindow
		energy := windowEnergy(pcm[winStart:winEnd], cfg.SampleRate, cfg.FreqThreshold)
		speech := energy > cfg.Threshold

		s.windowsProcessed++
		if speech {
			s.speechWindows++
		}

		switch s.state {
		case stateIdle:
			if speech {
				s.state = stateCollecting
				s.start = winStart
				s.speechRun = 1
				s.silenceRun = 0
				s.energySum = energy
				s.energyN = 1
			}

		case stateCollecting:
			s.energySum += energy
			s.energyN++
			if speech {
				s.speechRun++
				s.silenceRun = 0
			} else {
				s.silenceRun++
			}

			committed := s.speechRun >= minSpeechWin
			switch {
			case s.silenceRun >= minSilenceWin:
				if committed {
					// Close at the start of the silence run.
					out = append(out, s.emit(pcm, winEnd-s.silenceRun*nWindow))
				}
				s.reset()
			case committed && winEnd-s.start >= maxSamples:
				out = append(out, s.emit(pcm, winEnd))
				// Keep collecting from here; long speech continues in the
				// next segment without re-arming the speech hysteresis.
				s.start = winEnd
				s.silenceRun = 0
				s.energySum = 0
				s.energyN = 0
			}
		}
	}

	// Flush a committed segment cut off by the end of the buffer.
	if s.state == stateCollecting && s.speechRun >= minSpeechWin && s.start < len(pcm) {
		end := len(pcm) - len(pcm)%nWindow
		if end > s.start {
			out = append(out, s.emit(pcm, end))
		}
	}
	s.reset()
	return out
}

// SegmentsCreated returns the number of segments emitted over the lifetime of
// the Segmenter.
func (s *Segmenter) SegmentsCreated() uint64 {
	return s.segmentsCreated
}

// WindowsProcessed returns the number of windows classified over the lifetime
// of the Segmenter.
func (s *Segmenter) WindowsProcessed() uint64 {
	return s.windowsProcessed
}

// SpeechWindows returns how many of the processed windows were classified as
// speech.
func (s *Segmenter) SpeechWindows() uint64 {
	return s.speechWindows
}

func (s *Segmenter) emit(pcm []float32, end int) Segment {
	var energy float32
	if s.energyN > 0 {
		energy = s.energySum / float32(s.energyN)
	}
	s.segmentsCreated++
	return Segment{
		ID:     uuid.NewString(),
		Start:  s.start,
		End:    end,
		T0:     audio.SampleToTimestamp(s.start, s.config.SampleRate),
		T1:     audio.SampleToTimestamp(end, s.config.SampleRate),
		Energy: energy,
	}
}

func (s *Segmenter) reset() {
	s.state = stateIdle
	s.start = 0
	s.speechRun = 0
	s.silenceRun = 0
	s.energySum = 0
	s.energyN = 0
}

// windowEnergy is the per-window classification energy: mean absolute
// amplitude of a high-pass filtered copy of win.
func windowEnergy(win []float32, sampleRate int, freqThreshold float32) float32 {
	buf := make([]float32, len(win))
	copy(buf, win)
	if freqThreshold > 0 {
		HighPass(buf, freqThreshold, float32(sampleRate))
	}
	return meanAbs(buf)
}
