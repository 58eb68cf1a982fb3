package interp

import (
	"slices"

	"github.com/reusee/amc/ir"
)

// Tape is a deque of cells. Both ends grow in amortized constant time.
type Tape struct {
	cells []ir.Symbol
	start int
}

func NewTape(cells []ir.Symbol) *Tape {
	return &Tape{
		cells: slices.Clone(cells),
	}
}

func (t *Tape) Len() int {
	return len(t.cells) - t.start
}

// At returns the cell at i, blank outside the tape.
func (t *Tape) At(i int) ir.Symbol {
	if i < 0 || i >= t.Len() {
		return ir.Blank
	}
	return t.cells[t.start+i]
}

func (t *Tape) Set(i int, sym ir.Symbol) {
	t.cells[t.start+i] = sym
}

func (t *Tape) PushFront() {
	if t.start == 0 {
		n := t.Len()
		room := max(n, 8)
		cells := make([]ir.Symbol, room+n, room+n+max(cap(t.cells)-len(t.cells), 0))
		copy(cells[room:], t.cells)
		t.cells = cells
		t.start = room
	}
	t.start--
	t.cells[t.start] = ir.Blank
}

func (t *Tape) PushBack() {
	t.cells = append(t.cells, ir.Blank)
}

func (t *Tape) PopFront() {
	t.cells[t.start] = ir.Blank
	t.start++
}

func (t *Tape) PopBack() {
	t.cells = t.cells[:len(t.cells)-1]
}

// Cells returns a copy of the tape content.
func (t *Tape) Cells() []ir.Symbol {
	return slices.Clone(t.cells[t.start:])
}
