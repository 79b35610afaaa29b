// Package draw renders the arena to ANSI terminals with a half-block canvas.
package draw

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/tomz197/battlecursor/internal/object"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Shades from lightest to darkest, for bars.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0 (empty) and 1 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	return Shades[int(intensity*float64(len(Shades)-1))]
}

// ColorReset clears all text attributes.
const ColorReset = "\033[0m"

// FgColor returns the 24-bit foreground escape for c.
func FgColor(c object.Color) string {
	r, g, b := c.RGB()
	return "\033[38;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)) + "m"
}

// BgColor returns the 24-bit background escape for c.
func BgColor(c object.Color) string {
	r, g, b := c.RGB()
	return "\033[48;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)) + "m"
}

// Bar renders a fraction as a fixed-width shaded bar.
func Bar(fraction float64, width int) string {
	fraction = max(0, min(fraction, 1))
	out := make([]rune, width)
	filled := fraction * float64(width)
	for i := range out {
		out[i] = ShadeLevel(filled - float64(i))
	}
	return string(out)
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// TerminalSize returns the size of the process's own terminal.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
