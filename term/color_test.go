package term

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXterm256KnownValues(t *testing.T) {
	assert.Equal(t, 16, Xterm256(0, 0, 0), "black maps to the cube origin")
	assert.Equal(t, 231, Xterm256(255, 255, 255), "white maps to the cube top")
	assert.Equal(t, 196, Xterm256(255, 0, 0), "pure red maps to the cube red")
	assert.Equal(t, 244, Xterm256(128, 128, 128), "mid gray maps to the grayscale ramp")
}

func TestXterm256Range(t *testing.T) {
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				idx := Xterm256(r, g, b)
				assert.GreaterOrEqual(t, idx, 16, "rgb(%d,%d,%d)", r, g, b)
				assert.Less(t, idx, 256, "rgb(%d,%d,%d)", r, g, b)
			}
		}
	}
}

func TestXterm256Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, Xterm256(220, 5, 12), Xterm256(220, 5, 12))
	}
}

func TestForeground(t *testing.T) {
	assert.Equal(t, "\033[38;5;196m", Foreground(255, 0, 0))
	assert.True(t, strings.HasPrefix(Foreground(144, 201, 135), "\033[38;5;"))
	assert.True(t, strings.HasSuffix(Foreground(144, 201, 135), "m"))
}

func TestConfidencePalette(t *testing.T) {
	p := ConfidencePalette()
	assert.Len(t, p, 7)
	for i, c := range p {
		assert.True(t, strings.HasPrefix(c, "\033[38;5;"), "palette entry %d", i)
	}

	// Built once; subsequent calls return the identical values.
	again := ConfidencePalette()
	assert.Equal(t, p, again)

	// Low end is a red, high end is a green.
	assert.Equal(t, Foreground(220, 5, 12), p[0])
	assert.Equal(t, Foreground(78, 178, 101), p[6])
}
