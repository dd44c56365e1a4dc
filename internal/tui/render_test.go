package tui

import (
	"strings"
	"testing"

	"go.viam.com/test"

	"quadmap/internal/geom"
)

func TestBrailleBuf(t *testing.T) {
	br := newBrailleBuf(4, 2)
	br.setPixel(0, 0)
	lines := br.toLines()
	test.That(t, lines, test.ShouldHaveLength, 2)
	test.That(t, []rune(lines[0])[0], test.ShouldEqual, rune(0x2801))

	// out-of-range pixels are ignored
	br.setPixel(-1, 0)
	br.setPixel(100, 100)

	// a second pixel in the same cell ORs into the mask
	br.setPixel(1, 0)
	test.That(t, []rune(br.toLines()[0])[0], test.ShouldEqual, rune(0x2800+0x01+0x08))
}

func TestBrailleLines(t *testing.T) {
	br := newBrailleBuf(4, 2)
	br.hline(0, 0, 7)
	br.vline(0, 0, 7)
	lines := br.toLines()
	for x := 0; x < 4; x++ {
		test.That(t, []rune(lines[0])[x], test.ShouldNotEqual, ' ')
	}
	test.That(t, []rune(lines[1])[0], test.ShouldNotEqual, ' ')

	// fully off-screen runs draw nothing
	empty := newBrailleBuf(4, 2)
	empty.hline(100, 0, 7)
	empty.vline(100, 0, 7)
	for _, line := range empty.toLines() {
		test.That(t, strings.TrimSpace(line), test.ShouldEqual, "")
	}
}

func TestScreenXYRoundTrip(t *testing.T) {
	m := Model{zoom: 1.0, bounds: geom.Rect{X: 0, Y: 0, W: 10, H: 10}}
	w, h := 80, 24

	sx, sy, ok := m.screenXY(0, 0, w, h)
	test.That(t, ok, test.ShouldBeTrue)
	x, y, ok := m.cellToXY(sx, sy, w, h)
	test.That(t, ok, test.ShouldBeTrue)
	// cell quantization loses at most one cell's worth of data space
	test.That(t, x, test.ShouldAlmostEqual, 0, 20.0/float64(w-1)*2)
	test.That(t, y, test.ShouldAlmostEqual, 0, 20.0/float64(h-1)*2)

	// no view window, no projection
	none := Model{zoom: 1.0}
	_, _, ok = none.screenXY(0, 0, w, h)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestRenderCanvasPullsFromTree(t *testing.T) {
	m := New()
	m.setPoints([]geom.Point{
		{X: 1, Y: 1}, {X: 2, Y: 2}, {X: -3, Y: 4}, {X: 5, Y: -5}, {X: 6, Y: 6},
	})
	test.That(t, m.tree, test.ShouldNotBeNil)
	test.That(t, m.tree.Len(), test.ShouldEqual, 5)

	out := m.renderCanvas(40, 12)
	lines := strings.Split(out, "\n")
	test.That(t, lines, test.ShouldHaveLength, 12)
	// the boundary outline alone guarantees a non-blank canvas
	test.That(t, strings.TrimSpace(out), test.ShouldNotEqual, "")

	// with no data the canvas shows the hint instead
	empty := New()
	test.That(t, empty.renderCanvas(40, 12), test.ShouldContainSubstring, "no data loaded")
}
