// Package layout holds the geometry shared by editors and the canvas.
// Units are terminal cells: X and W in columns, Y and H in rows.
package layout

// Rect is an area on the canvas.
type Rect struct {
	X, Y, W, H int
}

// SingleLine returns r cut down to one line of the given height.
func (r Rect) SingleLine(lineHeight int) Rect {
	r.H = lineHeight
	return r
}

// Advance moves r down by n rows and shrinks it by the same amount.
func (r Rect) Advance(n int) Rect {
	r.Y += n
	r.H -= n
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// Below returns the area of height h directly under r's first n rows.
func (r Rect) Below(n, h int) Rect {
	return Rect{X: r.X, Y: r.Y + n, W: r.W, H: h}
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Bottom is the first row after r.
func (r Rect) Bottom() int { return r.Y + r.H }
