package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/battlecursor/internal/object"
)

const red object.Color = 0xff0000

func TestScaledPixels(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)

	c.SetFloat(600, 400, red)
	if c.Pixel(60, 40) != red {
		t.Fatal("center pixel not set")
	}

	c.SetFloat(-10, 5000, red)
	c.Clear()
	if c.Pixel(60, 40) != 0 {
		t.Fatal("clear left pixels behind")
	}
}

func TestDrawCircleFilled(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.DrawCircle(Point{X: 600, Y: 400}, 100, red, true)

	if c.Pixel(60, 40) != red {
		t.Error("circle center not filled")
	}
	if c.Pixel(60+12, 40) != 0 {
		t.Error("pixel outside the radius set")
	}
	if c.Pixel(60+9, 40) != red {
		t.Error("pixel inside the radius not set")
	}
}

func TestTinyCircleIsOnePixel(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.DrawCircle(Point{X: 100, Y: 100}, 2, red, true)

	set := 0
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			if c.Pixel(x, y) != 0 {
				set++
			}
		}
	}
	if set != 1 {
		t.Fatalf("tiny circle set %d pixels", set)
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	var buf bytes.Buffer

	c.SetFloat(5, 4, red)
	c.Render(&buf)
	first := buf.String()
	if !strings.Contains(first, FgColor(red)) || !strings.ContainsRune(first, BlockUpperHalf) {
		t.Fatalf("first frame missing the pixel: %q", first)
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", buf.String())
	}

	c.MarkTextDirty(1, 1, 3)
	c.Render(&buf)
	if got := strings.Count(buf.String(), " "); got != 3 {
		t.Fatalf("dirty cells repainted %d blanks: %q", got, buf.String())
	}
}

func TestGlyph(t *testing.T) {
	blue := object.Color(0x0000ff)
	tests := []struct {
		top, bottom object.Color
		ch          rune
		fg, bg      object.Color
	}{
		{0, 0, BlockEmpty, 0, 0},
		{red, 0, BlockUpperHalf, red, 0},
		{0, red, BlockLowerHalf, red, 0},
		{red, red, BlockFull, red, 0},
		{red, blue, BlockUpperHalf, red, blue},
	}
	for _, tt := range tests {
		ch, fg, bg := Glyph(tt.top, tt.bottom)
		if ch != tt.ch || fg != tt.fg || bg != tt.bg {
			t.Errorf("Glyph(%x, %x) = %q %x %x", tt.top, tt.bottom, ch, fg, bg)
		}
	}
}

func TestTerminalLogicalRoundTrip(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.SetOffset(3, 2)

	p := c.TerminalToLogical(64, 23)
	col, row := c.LogicalToTerminal(p.X, p.Y)
	if col+c.OffsetCol() != 64 || row+c.OffsetRow() != 23 {
		t.Fatalf("round trip = %d,%d from %+v", col, row, p)
	}
}

func TestBar(t *testing.T) {
	if got := Bar(0.5, 4); got != "██  " {
		t.Errorf("half bar = %q", got)
	}
	if got := Bar(2, 3); got != "███" {
		t.Errorf("overfull bar = %q", got)
	}
	if got := Bar(-1, 2); got != "  " {
		t.Errorf("negative bar = %q", got)
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[2;3Hhi" {
		t.Fatalf("output = %q", out.String())
	}
	if cw.Len() != 0 {
		t.Fatal("buffer not reset")
	}
}

func TestFitArea(t *testing.T) {
	tests := []struct {
		cols, rows int
		w, h       int
	}{
		{120, 40, 120, 40},
		{200, 40, 120, 40},
		{60, 40, 60, 20},
		{0, 0, 1, 1},
	}
	for _, tt := range tests {
		w, h := FitArea(tt.cols, tt.rows, 1200, 800)
		if w != tt.w || h != tt.h {
			t.Errorf("FitArea(%d, %d) = %d, %d; want %d, %d", tt.cols, tt.rows, w, h, tt.w, tt.h)
		}
	}
}
