package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tomz197/battlecursor/internal/object"
)

// cell is the pair of sub-pixels shown by one terminal character.
type cell struct {
	top, bottom object.Color
	dirty       bool // Force a rewrite, e.g. after text was drawn over it
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Pixels carry a color; zero means empty. Drawing happens in
// logical coordinates that are scaled to the terminal area.
type Canvas struct {
	termWidth      int            // Render area columns
	termHeight     int            // Render area rows
	subPixelHeight int            // termHeight * 2
	pixels         []object.Color // Flat slice: [y * termWidth + x]
	prev           []cell         // What the terminal currently shows

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // subPixelHeight / logicalHeight
	shiftX        float64 // Logical offset applied to every draw (screen shake)
	shiftY        float64

	// 0-based terminal offsets of the render area.
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new render dimensions while keeping the logical size.
// A real size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 1), max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]object.Color, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.ForceRedraw()
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row where the render area starts.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// SetShift offsets every following draw by a logical amount.
func (c *Canvas) SetShift(dx, dy float64) {
	c.shiftX, c.shiftY = dx, dy
}

// OffsetCol returns the column offset of the render area.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset of the render area.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels. The terminal keeps its content until Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i].dirty = true
	}
}

// MarkTextDirty marks cells covered by overlay text so the next Render
// repaints them. col and row are 1-based render area positions.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+width, c.termWidth); x++ {
		c.prev[r*c.termWidth+x].dirty = true
	}
}

func (c *Canvas) toPixel(x, y float64) (float64, float64) {
	return (x + c.shiftX) * c.scaleX, (y + c.shiftY) * c.scaleY
}

// setPixel sets a pixel at render area coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color object.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// Pixel returns the color at render area pixel coordinates.
func (c *Canvas) Pixel(x, y int) object.Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel at logical coordinates.
func (c *Canvas) SetFloat(x, y float64, color object.Color) {
	px, py := c.toPixel(x, y)
	c.setPixel(int(math.Round(px)), int(math.Round(py)), color)
}

// DrawLine draws a line with Bresenham's algorithm. Coordinates are logical.
func (c *Canvas) DrawLine(p1, p2 Point, color object.Color) {
	fx1, fy1 := c.toPixel(p1.X, p1.Y)
	fx2, fy2 := c.toPixel(p2.X, p2.Y)
	x1, y1 := int(math.Round(fx1)), int(math.Round(fy1))
	x2, y2 := int(math.Round(fx2)), int(math.Round(fy2))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1, color)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon outline, filling the interior when filled is set.
func (c *Canvas) DrawPolygon(points []Point, color object.Color, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, color)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], color)
	}
}

// circleSegments is the number of sides used to approximate a circle.
const circleSegments = 16

// DrawCircle draws a circle of logical radius r as a polygon.
// Circles smaller than a pixel collapse to a single pixel.
func (c *Canvas) DrawCircle(center Point, r float64, color object.Color, filled bool) {
	if r*c.scaleX < 1 && r*c.scaleY < 1 {
		c.SetFloat(center.X, center.Y, color)
		return
	}
	pts := c.BorrowPoints(circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	c.DrawPolygon(pts, color, filled)
}

// fillPolygon fills a polygon with the scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []Point, color object.Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		x, y := c.toPixel(p.X, p.Y)
		scaled[i] = Point{X: x, Y: y}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)
	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, color)
			}
		}
	}
}

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	var curFg, curBg object.Color
	styled := false
	for row := 0; row < c.termHeight; row++ {
		lastCol := -2
		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[row*2*c.termWidth+col]
			bottom := c.pixels[(row*2+1)*c.termWidth+col]

			idx := row*c.termWidth + col
			prev := c.prev[idx]
			if !prev.dirty && prev.top == top && prev.bottom == bottom {
				continue
			}
			c.prev[idx] = cell{top: top, bottom: bottom}

			if col != lastCol+1 {
				c.moveTo(col, row)
			}
			lastCol = col

			ch, fg, bg := Glyph(top, bottom)
			if fg != curFg || bg != curBg || !styled {
				c.renderBuf.WriteString(ColorReset)
				if fg != 0 {
					c.renderBuf.WriteString(FgColor(fg))
				}
				if bg != 0 {
					c.renderBuf.WriteString(BgColor(bg))
				}
				curFg, curBg, styled = fg, bg, true
			}
			c.renderBuf.WriteRune(ch)
		}
	}
	if styled {
		c.renderBuf.WriteString(ColorReset)
	}

	io.WriteString(w, c.renderBuf.String())
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}

// Glyph picks the character and colors showing a top/bottom pixel pair.
func Glyph(top, bottom object.Color) (rune, object.Color, object.Color) {
	switch {
	case top == 0 && bottom == 0:
		return BlockEmpty, 0, 0
	case bottom == 0:
		return BlockUpperHalf, top, 0
	case top == 0:
		return BlockLowerHalf, bottom, 0
	case top == bottom:
		return BlockFull, top, 0
	default:
		return BlockUpperHalf, top, bottom
	}
}

// FitArea returns the largest cols x rows area that shows a logical
// width x height field without distortion. Each row holds two pixels.
func FitArea(cols, rows int, logicalWidth, logicalHeight float64) (width, height int) {
	perRow := 2 * logicalWidth / logicalHeight
	width = min(cols, int(float64(rows)*perRow))
	height = min(rows, int(float64(width)/perRow))
	return max(width, 1), max(height, 1)
}

// LogicalToTerminal converts logical coordinates to a 1-based render area
// position (col, row). Useful for placing text over drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return int(math.Round(px)) + 1, int(math.Round(py))/2 + 1
}

// TerminalToLogical converts a 1-based absolute terminal position, such as a
// mouse report, to logical coordinates inside that cell.
func (c *Canvas) TerminalToLogical(col, row int) Point {
	px := float64(col - 1 - c.offsetCol)
	py := float64(row-1-c.offsetRow)*2 + 0.5
	return Point{X: px / c.scaleX, Y: py / c.scaleY}
}

// BorrowPoints returns a reusable slice of Points valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
