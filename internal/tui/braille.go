package tui

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
}

// hline draws a horizontal micro-pixel run at row my, clamped to the
// buffer so off-screen rectangle edges cost nothing.
func (b *brailleBuf) hline(my, mx0, mx1 int) {
	if mx0 > mx1 {
		mx0, mx1 = mx1, mx0
	}
	if my < 0 || my >= b.h*4 {
		return
	}
	mx0 = max(mx0, 0)
	mx1 = min(mx1, b.w*2-1)
	for x := mx0; x <= mx1; x++ {
		b.setPixel(x, my)
	}
}

// vline draws a vertical micro-pixel run at column mx, clamped like hline.
func (b *brailleBuf) vline(mx, my0, my1 int) {
	if my0 > my1 {
		my0, my1 = my1, my0
	}
	if mx < 0 || mx >= b.w*2 {
		return
	}
	my0 = max(my0, 0)
	my1 = min(my1, b.h*4-1)
	for y := my0; y <= my1; y++ {
		b.setPixel(mx, y)
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}
