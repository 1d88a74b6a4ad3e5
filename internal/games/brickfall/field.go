// Package brickfall implements an endless brick breaker: the ball smashes
// through bricks without bouncing, and whenever the bottom rows empty out the
// whole field slides down and fresh rows spawn at the top.
package brickfall

import (
	"github.com/vovakirdan/brickfall/internal/core"
)

// Brick is one destructible cell of the field. Its rectangle is derived
// from its grid position, see Field.Rect.
type Brick struct {
	Color core.Color
}

// FieldLayout holds the spacing constants that place bricks on the surface.
type FieldLayout struct {
	Columns     int
	Rows        int
	BrickWidth  float64
	BrickHeight float64
	Padding     float64
	OffsetTop   float64
	OffsetLeft  float64
	ShiftSpeed  float64 // Row-shift animation pixels per tick
}

// RowHeight returns the vertical distance between two consecutive rows.
func (l FieldLayout) RowHeight() float64 {
	return l.BrickHeight + l.Padding
}

// RowShift is the state of the downward row-advance animation.
type RowShift struct {
	Active bool
	Offset float64 // Current animated offset, 0..Target
	Target float64 // Rows * row height
	Rows   int     // Rows the grid moves once the animation completes
}

// Field owns the brick grid and its row-advance cycle.
type Field struct {
	layout  FieldLayout
	palette []core.Color
	rng     core.Rand
	cells   [][]*Brick // [row][col], nil = empty
	shift   RowShift
}

// NewField creates an empty field. Call CreateGrid to populate it.
func NewField(layout FieldLayout, palette []core.Color, rng core.Rand) *Field {
	f := &Field{
		layout:  layout,
		palette: palette,
		rng:     rng,
		cells:   make([][]*Brick, layout.Rows),
	}
	for row := range f.cells {
		f.cells[row] = make([]*Brick, layout.Columns)
	}
	return f
}

// Layout returns the field's spacing constants.
func (f *Field) Layout() FieldLayout {
	return f.layout
}

// Columns returns the number of brick columns.
func (f *Field) Columns() int {
	return f.layout.Columns
}

// Rows returns the grid depth.
func (f *Field) Rows() int {
	return f.layout.Rows
}

// CreateGrid fills every cell with a new brick.
func (f *Field) CreateGrid() {
	for row := range f.cells {
		f.fillRow(row)
	}
	f.shift = RowShift{}
}

func (f *Field) fillRow(row int) {
	for col := range f.cells[row] {
		f.cells[row][col] = f.newBrick()
	}
}

// newBrick draws a brick color uniformly from the palette.
func (f *Field) newBrick() *Brick {
	if len(f.palette) == 0 {
		return &Brick{Color: core.ColorWhite}
	}
	return &Brick{Color: f.palette[f.rng.IntN(len(f.palette))]}
}

// Cell returns the brick at (col, row), or nil for empty or out-of-range cells.
func (f *Field) Cell(col, row int) *Brick {
	if !f.inBounds(col, row) {
		return nil
	}
	return f.cells[row][col]
}

func (f *Field) inBounds(col, row int) bool {
	return row >= 0 && row < f.layout.Rows && col >= 0 && col < f.layout.Columns
}

// Rect returns the current rectangle of cell (col, row), including the
// row-shift animation offset.
func (f *Field) Rect(col, row int) core.RectF {
	l := f.layout
	return core.RectF{
		X: l.OffsetLeft + float64(col)*(l.BrickWidth+l.Padding),
		Y: l.OffsetTop + float64(row)*l.RowHeight() + f.shift.Offset,
		W: l.BrickWidth,
		H: l.BrickHeight,
	}
}

// Bottom returns the y of the lowest brick edge of a full grid at rest.
func (f *Field) Bottom() float64 {
	l := f.layout
	return l.OffsetTop + float64(l.Rows-1)*l.RowHeight() + l.BrickHeight
}

// Count returns the number of live bricks.
func (f *Field) Count() int {
	n := 0
	for _, row := range f.cells {
		for _, b := range row {
			if b != nil {
				n++
			}
		}
	}
	return n
}

// Destroy clears cell (col, row) and returns the destroyed brick's center
// and color. ok is false if the cell was already empty.
func (f *Field) Destroy(col, row int) (center core.Vec2, color core.Color, ok bool) {
	b := f.Cell(col, row)
	if b == nil {
		return core.Vec2{}, core.ColorDefault, false
	}
	center = f.Rect(col, row).Center()
	f.cells[row][col] = nil
	return center, b.Color, true
}

// FindLowestOccupiedRow scans from the bottom row upward and returns the
// first row holding at least one brick. ok is false when the grid is empty.
func (f *Field) FindLowestOccupiedRow() (row int, ok bool) {
	for row := f.layout.Rows - 1; row >= 0; row-- {
		for _, b := range f.cells[row] {
			if b != nil {
				return row, true
			}
		}
	}
	return -1, false
}

// Shifting reports whether the row-shift animation is running.
func (f *Field) Shifting() bool {
	return f.shift.Active
}

// Shift returns the row-shift animation state.
func (f *Field) Shift() RowShift {
	return f.shift
}

// BeginRowShift arms the row-shift animation if rows at the bottom of the
// grid are empty. An empty grid shifts by its full depth. It returns the
// number of rows the field will move, 0 if nothing was armed.
func (f *Field) BeginRowShift() int {
	if f.shift.Active {
		return 0
	}

	amount := f.layout.Rows
	if lowest, ok := f.FindLowestOccupiedRow(); ok {
		amount = f.layout.Rows - 1 - lowest
	}
	if amount <= 0 {
		return 0
	}

	f.shift = RowShift{
		Active: true,
		Target: float64(amount) * f.layout.RowHeight(),
		Rows:   amount,
	}
	return amount
}

// Advance steps the row-shift animation by one tick. Once the offset reaches
// the target the grid moves down for good, the vacated top rows are
// refilled, and the animation resets. It returns true on that final tick.
func (f *Field) Advance() bool {
	if !f.shift.Active {
		return false
	}

	f.shift.Offset += f.layout.ShiftSpeed
	if f.shift.Offset < f.shift.Target {
		return false
	}

	f.shiftRows(f.shift.Rows)
	f.shift = RowShift{}
	return true
}

// shiftRows moves every row down by k. Rows pushed past the bottom are
// dropped and rows [0, k) get new bricks.
func (f *Field) shiftRows(k int) {
	for row := f.layout.Rows - 1; row >= 0; row-- {
		src := row - k
		if src >= 0 {
			f.cells[row], f.cells[src] = f.cells[src], make([]*Brick, f.layout.Columns)
		} else {
			f.fillRow(row)
		}
	}
}
