package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

// SampleRate is the fixed sample rate the recognition pipeline operates at.
// Decoding fails for any other rate; this package does not resample.
const SampleRate = 16000

// Audio format tags from the WAVE specification.
const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

// Decode failures collapse to one of a small closed set of kinds so callers
// can branch with errors.Is without parsing messages.
var (
	ErrNotWAV                = errors.New("not a RIFF/WAVE buffer")
	ErrMalformed             = errors.New("malformed WAV container")
	ErrUnsupportedFormat     = errors.New("unsupported audio format")
	ErrUnsupportedSampleRate = errors.New("unsupported sample rate")
	ErrUnsupportedBitDepth   = errors.New("unsupported bit depth")
	ErrUnsupportedChannels   = errors.New("unsupported channel count")
)

// format holds the fields of the "fmt " subchunk needed for decoding.
type format struct {
	audioFormat   uint16
	numChannels   uint16
	sampleRate    uint32
	byteRate      uint32
	blockAlign    uint16
	bitsPerSample uint16
}

// IsWAVBuffer reports whether buf looks like WAV container data rather than,
// say, a file path. Only the four-byte RIFF marker is inspected.
func IsWAVBuffer(buf []byte) bool {
	return len(buf) >= 4 && string(buf[:4]) == "RIFF"
}

// DecodeWAV parses a RIFF/WAVE container into normalized float32 PCM in
// [-1, 1]. Subchunks are located by scanning, so extra chunks before "data"
// are tolerated. Supported inputs: uncompressed PCM at 8, 16 or 32 bits, or
// 32-bit IEEE float, 1 or 2 channels, at exactly SampleRate Hz.
//
// The mono result is the average of both channels for stereo input, or a
// direct conversion for mono input. When stereo is true the two channels are
// additionally returned de-interleaved; requesting that for input that is not
// 2-channel is an error. A partial trailing frame is discarded. An empty data
// chunk yields an empty buffer, not an error. On error both results are nil.
func DecodeWAV(data []byte, stereo bool) ([]float32, [][]float32, error) {
	if !IsWAVBuffer(data) {
		return nil, nil, ErrNotWAV
	}
	if len(data) < 12 || string(data[8:12]) != "WAVE" {
		return nil, nil, fmt.Errorf("%w: missing WAVE form type", ErrNotWAV)
	}

	var (
		f        *format
		raw      []byte
		haveData bool
	)
	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := data[off+8:]
		if size > len(body) {
			// Truncated chunk; take what is actually present.
			size = len(body)
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return nil, nil, fmt.Errorf("%w: fmt chunk too short (%d bytes)", ErrMalformed, size)
			}
			f = &format{
				audioFormat:   binary.LittleEndian.Uint16(body[0:2]),
				numChannels:   binary.LittleEndian.Uint16(body[2:4]),
				sampleRate:    binary.LittleEndian.Uint32(body[4:8]),
				byteRate:      binary.LittleEndian.Uint32(body[8:12]),
				blockAlign:    binary.LittleEndian.Uint16(body[12:14]),
				bitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
			}
		case "data":
			raw = body[:size]
			haveData = true
		}
		if f != nil && haveData {
			break
		}
		// Chunks are word-aligned; odd sizes carry a pad byte.
		off += 8 + size + size&1
	}

	if f == nil {
		return nil, nil, fmt.Errorf("%w: no fmt chunk", ErrMalformed)
	}
	if !haveData {
		return nil, nil, fmt.Errorf("%w: no data chunk", ErrMalformed)
	}
	if err := f.validate(stereo); err != nil {
		return nil, nil, err
	}

	ch := int(f.numChannels)
	bytesPer := int(f.bitsPerSample) / 8
	frameSize := ch * bytesPer
	n := len(raw) / frameSize // partial trailing frame discarded

	mono := make([]float32, n)
	var channels [][]float32
	if stereo {
		channels = [][]float32{make([]float32, n), make([]float32, n)}
	}
	for i := 0; i < n; i++ {
		var sum float32
		for c := 0; c < ch; c++ {
			s := f.decodeSample(raw[(i*ch+c)*bytesPer:])
			sum += s
			if stereo {
				channels[c][i] = s
			}
		}
		mono[i] = sum / float32(ch)
	}
	return mono, channels, nil
}

// DecodeWAVFile reads path and decodes it with DecodeWAV.
func DecodeWAVFile(path string, stereo bool) ([]float32, [][]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeWAV(data, stereo)
}

// DecodeWAVSource decodes src as raw WAV bytes when it carries the RIFF
// marker, and otherwise treats it as a file path. This is the entry point for
// callers that receive either form in the same argument.
func DecodeWAVSource(src []byte, stereo bool) ([]float32, [][]float32, error) {
	if IsWAVBuffer(src) {
		return DecodeWAV(src, stereo)
	}
	return DecodeWAVFile(string(src), stereo)
}

func (f *format) validate(stereo bool) error {
	switch f.audioFormat {
	case formatPCM:
		switch f.bitsPerSample {
		case 8, 16, 32:
		default:
			return fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedBitDepth, f.bitsPerSample)
		}
	case formatIEEEFloat:
		if f.bitsPerSample != 32 {
			return fmt.Errorf("%w: %d-bit float", ErrUnsupportedBitDepth, f.bitsPerSample)
		}
	default:
		return fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, f.audioFormat)
	}
	if f.sampleRate != SampleRate {
		return fmt.Errorf("%w: %d Hz (need %d Hz)", ErrUnsupportedSampleRate, f.sampleRate, SampleRate)
	}
	if f.numChannels != 1 && f.numChannels != 2 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, f.numChannels)
	}
	if stereo && f.numChannels != 2 {
		return fmt.Errorf("%w: stereo split requested for %d-channel audio", ErrUnsupportedChannels, f.numChannels)
	}
	return nil
}

// decodeSample converts one raw sample starting at b[0] to a normalized
// float32. Integer samples are divided by the maximum magnitude of their
// representation; float samples pass through unchanged.
func (f *format) decodeSample(b []byte) float32 {
	if f.audioFormat == formatIEEEFloat {
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	}
	switch f.bitsPerSample {
	case 8:
		// 8-bit WAV is unsigned.
		return (float32(b[0]) - 128) / 128
	case 16:
		return float32(int16(binary.LittleEndian.Uint16(b))) / 32768
	default:
		return float32(int32(binary.LittleEndian.Uint32(b))) / 2147483648
	}
}

// FileExists reports whether path exists. It is an existence probe only and
// says nothing about permissions or file type.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
