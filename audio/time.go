package audio

import "fmt"

// Recognized segments are positioned in ticks of 10 ms, the unit the
// recognition pipeline reports offsets in.

// Timestamp renders a tick count as "HH:MM:SS.mmm", zero-padded, hours
// unbounded. With comma set the millisecond separator is "," instead of "."
// (SRT subtitle convention).
func Timestamp(t int64, comma bool) string {
	msec := t * 10
	hr := msec / (1000 * 60 * 60)
	msec -= hr * (1000 * 60 * 60)
	min := msec / (1000 * 60)
	msec -= min * (1000 * 60)
	sec := msec / 1000
	msec -= sec * 1000

	sep := "."
	if comma {
		sep = ","
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hr, min, sec, sep, msec)
}

// TimestampToSample converts a tick count to an absolute sample index at the
// given rate, clamped to [0, nSamples).
func TimestampToSample(t int64, nSamples, sampleRate int) int {
	return max(0, min(nSamples-1, int(t*int64(sampleRate)/100)))
}

// SampleToTimestamp converts a sample index to a tick count at the given rate.
func SampleToTimestamp(sample, sampleRate int) int64 {
	return int64(sample) * 100 / int64(sampleRate)
}
