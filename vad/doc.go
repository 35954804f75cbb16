// Package vad provides energy-based voice activity detection over normalized
// float32 PCM buffers. It implements the one-pole high-pass pre-filter, a
// stateless trailing-window speech classifier, and a hysteresis segmenter
// that turns a decoded buffer into speech segments for transcription.
package vad
