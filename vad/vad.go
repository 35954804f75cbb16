package vad

import "log/slog"

// Detect classifies the trailing lastMS milliseconds of pcm as speech or
// silence. The window is high-pass filtered at freqThreshold Hz (0 disables
// filtering) on a copy, so pcm is never mutated, and the mean absolute
// amplitude of the filtered window is compared against threshold. A buffer
// shorter than the window fails closed: no speech.
func Detect(pcm []float32, sampleRate, lastMS int, threshold, freqThreshold float32) bool {
	speech, _, _ := classify(pcm, sampleRate, lastMS, threshold, freqThreshold)
	return speech
}

// classify returns the speech decision together with the windowed and
// whole-buffer energies for diagnostics.
func classify(pcm []float32, sampleRate, lastMS int, threshold, freqThreshold float32) (speech bool, energyWindow, energyAll float32) {
	nWindow := sampleRate * lastMS / 1000
	if nWindow <= 0 || len(pcm) < nWindow {
		return false, 0, 0
	}

	window := make([]float32, nWindow)
	copy(window, pcm[len(pcm)-nWindow:])
	if freqThreshold > 0 {
		HighPass(window, freqThreshold, float32(sampleRate))
	}

	energyWindow = meanAbs(window)
	energyAll = meanAbs(pcm)
	return energyWindow > threshold, energyWindow, energyAll
}

func meanAbs(data []float32) float32 {
	if len(data) == 0 {
		return 0
	}
	var sum float32
	for _, s := range data {
		if s < 0 {
			s = -s
		}
		sum += s
	}
	return sum / float32(len(data))
}

// Stats holds running Detector counters.
type Stats struct {
	TotalWindows  uint64 `json:"total_windows"`
	SpeechWindows uint64 `json:"speech_windows"`
}

// Detector wraps Detect with fixed parameters, running statistics, and
// optional diagnostic logging. The zero value is unusable; the threshold and
// window must be set. A Detector is derived state only — each call classifies
// a fresh buffer slice, nothing persists between calls beyond the counters.
type Detector struct {
	Threshold     float32      // mean absolute amplitude above which the window is speech
	FreqThreshold float32      // high-pass cutoff in Hz, 0 disables
	WindowMS      int          // trailing window length in milliseconds
	Logger        *slog.Logger // window energy diagnostics at debug level; nil disables

	stats Stats
}

// SpeechInTail reports whether the trailing window of pcm contains speech.
func (d *Detector) SpeechInTail(pcm []float32, sampleRate int) bool {
	speech, energyWindow, energyAll := classify(pcm, sampleRate, d.WindowMS, d.Threshold, d.FreqThreshold)

	d.stats.TotalWindows++
	if speech {
		d.stats.SpeechWindows++
	}

	if d.Logger != nil {
		d.Logger.Debug("vad window",
			slog.Float64("energy_window", float64(energyWindow)),
			slog.Float64("energy_all", float64(energyAll)),
			slog.Float64("threshold", float64(d.Threshold)),
			slog.Bool("speech", speech),
		)
	}
	return speech
}

// Stats returns a copy of the running counters.
func (d *Detector) Stats() Stats {
	return d.stats
}
