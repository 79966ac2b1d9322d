package track

import "image/color"

// CellType represents the type of surface in a grid cell.
type CellType int

const (
	CellWall CellType = iota
	CellTarmac
	CellGravel
	CellStart
	CellFinish
	CellDirection // Heading hint painted on the tarmac
)

// Drivable reports whether the cell belongs to the track surface proper.
// Gravel is runoff, not track.
func (t CellType) Drivable() bool {
	switch t {
	case CellTarmac, CellStart, CellFinish, CellDirection:
		return true
	}
	return false
}

// Cell represents a single unit of the track.
type Cell struct {
	Type CellType
}

// Grid represents the discretized track image.
type Grid struct {
	Width, Height int
	Cells         [][]Cell
	Scale         float64 // World units per cell
}

// NewGrid creates a new grid of the specified size. Every cell starts as wall.
func NewGrid(width, height int) *Grid {
	cells := make([][]Cell, width)
	for i := range cells {
		cells[i] = make([]Cell, height)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  cells,
		Scale:  1.0,
	}
}

// Get returns the cell at (x, y). Returns Wall if out of bounds.
func (g *Grid) Get(x, y int) Cell {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return Cell{Type: CellWall}
	}
	return g.Cells[x][y]
}

// Set overwrites the cell type at (x, y). Out of bounds writes are dropped.
func (g *Grid) Set(x, y int, t CellType) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.Cells[x][y].Type = t
}

// Count returns how many cells have a type matching keep.
func (g *Grid) Count(keep func(CellType) bool) int {
	n := 0
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if keep(g.Cells[x][y].Type) {
				n++
			}
		}
	}
	return n
}

// ColorToCellType maps a pixel color to a cell type.
func ColorToCellType(c color.Color) CellType {
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := r>>8, g>>8, b>>8

	switch {
	// Red = Start line
	case r8 > 200 && g8 < 100 && b8 < 100:
		return CellStart
	// Blue = Finish line
	case b8 > 200 && r8 < 100 && g8 < 100:
		return CellFinish
	// Yellow = Direction hint
	case r8 > 200 && g8 > 200 && b8 < 100:
		return CellDirection
	// Green = Gravel
	case g8 > r8+50 && g8 > b8+50:
		return CellGravel
	// Dark = Wall
	case r8 < 50 && g8 < 50 && b8 < 50:
		return CellWall
	}

	// Anything else bright enough is tarmac, including anti-aliased edges.
	return CellTarmac
}
