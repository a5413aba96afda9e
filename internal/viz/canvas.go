package viz

import "strings"

// Canvas is a rune grid for the wheel drawing. Terminal cells are roughly
// twice as tall as wide, so callers draw with x doubled.
type Canvas struct {
	Width  int
	Height int
	cells  [][]rune
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{Width: width, Height: height}
	c.cells = make([][]rune, height)
	for y := range c.cells {
		c.cells[y] = make([]rune, width)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = ' '
		}
	}
}

func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.cells[y][x] = r
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for y, row := range c.cells {
		sb.WriteString(string(row))
		if y < c.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
