package vad

import "math"

// HighPass applies a first-order recursive high-pass filter to data in place,
// suppressing energy below cutoff Hz (DC offset, rumble). The coefficient
// comes from the one-pole RC time constant: alpha = rc/(rc+dt) with
// rc = 1/(2*pi*cutoff) and dt = 1/sampleRate. The first sample passes through
// unchanged since there is no prior history.
func HighPass(data []float32, cutoff, sampleRate float32) {
	if len(data) == 0 {
		return
	}

	rc := 1.0 / (2.0 * math.Pi * float64(cutoff))
	dt := 1.0 / float64(sampleRate)
	alpha := float32(rc / (rc + dt))

	prev := data[0] // previous raw input, saved before overwrite
	y := data[0]
	for i := 1; i < len(data); i++ {
		x := data[i]
		y = alpha * (y + x - prev)
		prev = x
		data[i] = y
	}
}
