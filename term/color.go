// Package term maps 24-bit RGB to xterm-256 terminal colors and exposes the
// fixed confidence palette used when rendering per-token scores.
package term

import (
	"fmt"
	"sync"
)

// Reset restores the default terminal foreground color.
const Reset = "\033[0m"

// cube holds the six channel levels of the xterm 6x6x6 color cube.
var cube = [6]int{0, 0x5f, 0x87, 0xaf, 0xd7, 0xff}

// uncube maps a channel value to its nearest color-cube level index.
func uncube(x int) int {
	if x < 48 {
		return 0
	}
	if x < 115 {
		return 1
	}
	return (x - 35) / 40
}

func sqr(x int) int { return x * x }

// Xterm256 quantizes a 24-bit RGB triple to an xterm-256 color index in
// [16,256). The luminance-weighted grayscale-ramp candidate and the nearest
// color-cube candidate are computed independently and the one with the lower
// squared RGB error wins; ties go to the cube.
func Xterm256(r, g, b int) int {
	av := int(float64(r)*0.299 + float64(g)*0.587 + float64(b)*0.114 + 0.5)
	il := 23
	if av <= 238 {
		il = (av - 3) / 10
	}
	ql := il*10 + 8

	ir, ig, ib := uncube(r), uncube(g), uncube(b)
	qr, qg, qb := cube[ir], cube[ig], cube[ib]

	if sqr(qr-r)+sqr(qg-g)+sqr(qb-b) <= sqr(ql-r)+sqr(ql-g)+sqr(ql-b) {
		return ir*36 + ig*6 + ib + 16
	}
	return il + 232
}

// Foreground returns the ANSI escape sequence selecting the quantized color
// as the terminal foreground.
func Foreground(r, g, b int) string {
	return fmt.Sprintf("\033[38;5;%dm", Xterm256(r, g, b))
}

var (
	paletteOnce sync.Once
	palette     []string
)

// ConfidencePalette returns seven foreground escape sequences ordered from
// low to high confidence: red through yellow to green. Color scheme from Paul
// Tol, colorblind friendly (https://personal.sron.nl/~pault/). The palette is
// built once and never mutated afterwards, so the shared slice is safe for
// concurrent readers.
func ConfidencePalette() []string {
	paletteOnce.Do(func() {
		palette = []string{
			Foreground(220, 5, 12),
			Foreground(232, 96, 28),
			Foreground(241, 147, 45),
			Foreground(246, 193, 65),
			Foreground(247, 240, 86),
			Foreground(144, 201, 135),
			Foreground(78, 178, 101),
		}
	})
	return palette
}
