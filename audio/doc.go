// Package audio implements the PCM WAV container codec used around the
// recognition pipeline. Decoding produces normalized float32 PCM at the fixed
// 16 kHz pipeline rate with optional stereo channel separation; encoding
// streams float32 samples into a canonical 44-byte-header WAV file that stays
// valid after every write. The package also provides the timestamp and sample
// index conversions used when rendering recognized segments.
package audio
