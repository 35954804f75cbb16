package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// Header is the canonical 44-byte WAV header written by Writer.
type Header struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // 36 + data bytes, patched as data is written
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // data bytes, patched as data is written
}

// Byte offsets of the two size placeholders inside the canonical header.
const (
	chunkSizeOffset = 4
	dataSizeOffset  = 40
)

// ErrWriterClosed is returned by Write when no file is open.
var ErrWriterClosed = errors.New("wav writer: no open file")

// Writer incrementally writes normalized float32 PCM into a WAV file. The two
// header size fields are patched after every Write, so the file on disk is a
// valid container at all times, even if the process dies before Close.
//
// A Writer owns at most one open file and is not safe for concurrent use.
type Writer struct {
	file     *os.File
	path     string
	dataSize uint32
}

// Open creates (or truncates) path and writes the canonical header with
// zeroed size placeholders. Opening the path that is already open is a no-op;
// opening a different path closes the current file first.
func (w *Writer) Open(path string, sampleRate, bitsPerSample, channels int) error {
	if w.file != nil {
		if w.path == path {
			return nil
		}
		if err := w.Close(); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav writer: open %s: %w", path, err)
	}
	w.file = f
	w.path = path
	w.dataSize = 0

	h := Header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   formatPCM,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(channels) * uint32(bitsPerSample) / 8,
		BlockAlign:    uint16(channels) * uint16(bitsPerSample) / 8,
		BitsPerSample: uint16(bitsPerSample),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
	}
	if err := binary.Write(w.file, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("wav writer: write header: %w", err)
	}
	return nil
}

// Write appends samples, assumed normalized to [-1, 1], to the open file.
// Samples are scaled by 32767 and truncated to int16: the stream is always
// 16-bit PCM regardless of the bit depth given to Open. A header opened with
// a different depth is a known limitation that Write does not correct.
func (w *Writer) Write(samples []float32) error {
	if w.file == nil {
		return ErrWriterClosed
	}

	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(int16(s*32767)))
	}
	if _, err := w.file.Write(buf); err != nil {
		return fmt.Errorf("wav writer: write samples: %w", err)
	}
	w.dataSize += uint32(len(buf))
	return w.patchSizes()
}

// patchSizes rewrites the two header size placeholders in place. WriteAt does
// not disturb the append position.
func (w *Writer) patchSizes() error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], 36+w.dataSize)
	if _, err := w.file.WriteAt(b[:], chunkSizeOffset); err != nil {
		return fmt.Errorf("wav writer: patch riff size: %w", err)
	}
	binary.LittleEndian.PutUint32(b[:], w.dataSize)
	if _, err := w.file.WriteAt(b[:], dataSizeOffset); err != nil {
		return fmt.Errorf("wav writer: patch data size: %w", err)
	}
	return nil
}

// Close closes the underlying file. Calling Close on an already closed Writer
// is a no-op, so it is safe to defer unconditionally.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.path = ""
	return err
}

// Path returns the path of the currently open file, or "" when closed.
func (w *Writer) Path() string {
	return w.path
}
