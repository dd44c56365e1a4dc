package tui

import (
	"strings"

	"quadmap/internal/geom"
	"quadmap/internal/quadtree"
)

// hasView reports whether there is a window to project into.
func (m Model) hasView() bool {
	return m.bounds.W > 0 && m.bounds.H > 0
}

// cellToXY converts a map cell coordinate back into data coordinates using
// the view window, zoom, and pan.
func (m Model) cellToXY(cx, cy, w, h int) (float64, float64, bool) {
	if !m.hasView() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	x := m.bounds.MinX() + nx*(m.bounds.MaxX()-m.bounds.MinX())
	y := m.bounds.MinY() + ny*(m.bounds.MaxY()-m.bounds.MinY())
	return x, y, true
}

// screenXY maps data coordinates to screen cell coordinates considering
// zoom and pan.
func (m Model) screenXY(x, y float64, w, h int) (int, int, bool) {
	if !m.hasView() {
		return 0, 0, false
	}
	nx := (x - m.bounds.MinX()) / (m.bounds.MaxX() - m.bounds.MinX())
	ny := (y - m.bounds.MinY()) / (m.bounds.MaxY() - m.bounds.MinY())
	// zoom around the view center
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// screenXYMicro maps data coordinates into the 2x4 microgrid per cell used
// for braille rendering.
func (m Model) screenXYMicro(x, y float64, w, h int) (int, int, bool) {
	if !m.hasView() {
		return 0, 0, false
	}
	nx := (x - m.bounds.MinX()) / (m.bounds.MaxX() - m.bounds.MinX())
	ny := (y - m.bounds.MinY()) / (m.bounds.MaxY() - m.bounds.MinY())
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// drawRectMicro draws the outline of r on the microgrid.
func (m Model) drawRectMicro(br *brailleBuf, r geom.Rect, w, h int) {
	x0, y0, ok := m.screenXYMicro(r.MinX(), r.MaxY(), w, h) // top-left
	if !ok {
		return
	}
	x1, y1, _ := m.screenXYMicro(r.MaxX(), r.MinY(), w, h) // bottom-right
	br.hline(y0, x0, x1)
	br.hline(y1, x0, x1)
	br.vline(x0, y0, y1)
	br.vline(x1, y0, y1)
}

// renderCanvas draws the index: every node outline and every stored point
// is pulled from the tree through its accessors, plus the query rectangle
// and highlighted hits.
func (m Model) renderCanvas(w, h int) string {
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		lines[y] = strings.Repeat(" ", w)
	}
	if m.tree == nil {
		msg := "no data loaded ─ Tab opens the file list, p pastes WKT"
		if h/2 < len(lines) {
			pad := max(0, (w-len([]rune(msg)))/2)
			lines[h/2] = strings.Repeat(" ", pad) + msg
		}
		return strings.Join(lines, "\n")
	}

	br := newBrailleBuf(w, h)

	if m.showOutlines {
		m.tree.Walk(func(n *quadtree.QuadTree) bool {
			m.drawRectMicro(br, n.Boundary(), w, h)
			return true
		})
	}
	if m.showPoints {
		m.tree.Walk(func(n *quadtree.QuadTree) bool {
			for _, p := range n.Points() {
				if mx, my, ok := m.screenXYMicro(p.X, p.Y, w, h); ok {
					br.setPixel(mx, my)
				}
			}
			return true
		})
	}
	if m.queryActive {
		m.drawRectMicro(br, m.query, w, h)
	}

	// Composite braille onto the base lines
	braLines := br.toLines()
	for y := 0; y < h && y < len(braLines); y++ {
		base := []rune(lines[y])
		over := []rune(braLines[y])
		for x := 0; x < len(base) && x < len(over); x++ {
			if over[x] != ' ' {
				base[x] = over[x]
			}
		}
		lines[y] = string(base)
	}

	// Colored cell overlays: query hits, then the hover marker. Styled
	// cells are substituted in a single pass per row so ANSI sequences
	// never shift later indices.
	overlay := map[[2]int]string{}
	if m.queryActive {
		for _, p := range m.found {
			sx, sy, ok := m.screenXY(p.X, p.Y, w, h)
			if !ok || sx < 0 || sx >= w || sy < 0 || sy >= h {
				continue
			}
			overlay[[2]int{sx, sy}] = hitStyle.Render("●")
		}
	}
	if m.hovering && m.hoverCellX >= 0 && m.hoverCellX < w && m.hoverCellY >= 0 && m.hoverCellY < h {
		overlay[[2]int{m.hoverCellX, m.hoverCellY}] = hoverStyle.Render("◯")
	}
	if len(overlay) > 0 {
		for y := 0; y < h; y++ {
			touched := false
			for pos := range overlay {
				if pos[1] == y {
					touched = true
					break
				}
			}
			if !touched {
				continue
			}
			var b strings.Builder
			for x, r := range []rune(lines[y]) {
				if cell, ok := overlay[[2]int{x, y}]; ok {
					b.WriteString(cell)
				} else {
					b.WriteRune(r)
				}
			}
			lines[y] = b.String()
		}
	}
	return strings.Join(lines, "\n")
}
