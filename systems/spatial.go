package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biome/components"
)

// Neighbor holds a nearby entity with its distance and live-order index.
type Neighbor struct {
	E     ecs.Entity
	Order int     // index in the live order, used to break distance ties
	Dist  float64 // Euclidean distance from the query origin
}

type gridEntry struct {
	e     ecs.Entity
	order int
	pos   components.Position
}

// SpatialGrid provides radius lookups using a cell-based grid over the
// bounded world. Positions outside the world fall into the edge cells.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]gridEntry
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]gridEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, order int, pos components.Position) {
	col, row := g.cell(pos)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], gridEntry{e: e, order: order, pos: pos})
}

// QueryRadiusInto appends every entity strictly closer than radius to dst.
// Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, pos components.Position, radius float64, exclude ecs.Entity) []Neighbor {
	minCol, minRow := g.cell(components.Position{X: pos.X - radius, Y: pos.Y - radius})
	maxCol, maxRow := g.cell(components.Position{X: pos.X + radius, Y: pos.Y + radius})

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, entry := range g.cells[row*g.cols+col] {
				if entry.e == exclude {
					continue
				}
				d := pos.DistanceTo(entry.pos)
				if d < radius {
					dst = append(dst, Neighbor{E: entry.e, Order: entry.order, Dist: d})
				}
			}
		}
	}
	return dst
}

// cell returns the clamped column and row for a world position.
func (g *SpatialGrid) cell(pos components.Position) (int, int) {
	col := int(pos.X / g.cellSize)
	row := int(pos.Y / g.cellSize)

	if pos.X < 0 || col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if pos.Y < 0 || row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
