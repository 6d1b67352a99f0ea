// Package layout places markup text inside a fixed rectangle of the screen.
// Planning is pure; the console applies the resulting operations.
package layout

import (
	"github.com/lixenwraith/tconsole/cursor"
	"github.com/lixenwraith/tconsole/markup"
	"github.com/lixenwraith/tconsole/terminal"
)

// Region is an inclusive rectangle of screen cells
type Region struct {
	TopLeft     cursor.Point
	BottomRight cursor.Point
}

// Rect builds a region from inclusive corner coordinates
func Rect(left, top, right, bottom int) Region {
	return Region{
		TopLeft:     cursor.Point{X: left, Y: top},
		BottomRight: cursor.Point{X: right, Y: bottom},
	}
}

// Valid reports whether the top-left corner is not past the bottom-right corner
func (r Region) Valid() bool {
	return r.TopLeft.X >= 0 && r.TopLeft.Y >= 0 &&
		r.TopLeft.X <= r.BottomRight.X && r.TopLeft.Y <= r.BottomRight.Y
}

// Width returns the number of columns
func (r Region) Width() int {
	return r.BottomRight.X - r.TopLeft.X + 1
}

// Height returns the number of rows
func (r Region) Height() int {
	return r.BottomRight.Y - r.TopLeft.Y + 1
}

// Contains reports whether p is inside the region
func (r Region) Contains(p cursor.Point) bool {
	return p.X >= r.TopLeft.X && p.X <= r.BottomRight.X &&
		p.Y >= r.TopLeft.Y && p.Y <= r.BottomRight.Y
}

// OpKind selects what an Op does
type OpKind uint8

const (
	OpMove  OpKind = iota // move cursor to At
	OpText                // write Text at the current position
	OpColor               // switch foreground to Color
)

// Op is one screen operation
type Op struct {
	Kind  OpKind
	At    cursor.Point
	Text  []byte
	Cols  int
	Color terminal.Color
}

// Plan is the result of laying out a text
type Plan struct {
	Ops      []Op
	Complete bool // every character was placed
}

// planner accumulates ops while walking the region
type planner struct {
	r       Region
	pos     cursor.Point
	ops     []Op
	pending bool // cursor must be moved before the next write
}

func (p *planner) move() {
	p.ops = append(p.ops, Op{Kind: OpMove, At: p.pos})
	p.pending = false
}

func (p *planner) newline() {
	p.pos.X = p.r.TopLeft.X
	p.pos.Y++
	p.pending = true
}

// room wraps when the column is past the right edge; false once past the bottom
func (p *planner) room() bool {
	if p.pos.X > p.r.BottomRight.X {
		p.newline()
	}
	return p.pos.Y <= p.r.BottomRight.Y
}

func (p *planner) write(b []byte, cols int) {
	if p.pending {
		p.move()
	}
	n := len(p.ops)
	if n > 0 && p.ops[n-1].Kind == OpText {
		p.ops[n-1].Text = append(p.ops[n-1].Text, b...)
		p.ops[n-1].Cols += cols
	} else {
		t := make([]byte, 0, len(b))
		p.ops = append(p.ops, Op{Kind: OpText, Text: append(t, b...), Cols: cols})
	}
	p.pos.X += cols
}

// Build lays text out row by row. Directives are consumed when allowColor is set.
// A tab fills to the next multiple-of-8 column, clamped to the right edge.
// With predictWide, a wide glyph that would cross the right edge starts the next row instead.
// Without it the layout ends there, incomplete, since no cell may land past the edge.
func Build(text []byte, r Region, predictWide bool, profile terminal.Profile, allowColor bool) Plan {
	if !r.Valid() {
		return Plan{Complete: len(text) == 0}
	}

	p := &planner{r: r, pos: r.TopLeft}
	p.move()

	for i := 0; i < len(text); {
		c := text[i]

		if allowColor && c == '&' && i+1 < len(text) {
			if color, ok := markup.Directive(text[i+1]); ok {
				p.ops = append(p.ops, Op{Kind: OpColor, Color: color})
				i += 2
				continue
			}
		}

		switch c {
		case '\n':
			p.newline()
			i++
			continue
		case '\r':
			p.pos.X = r.TopLeft.X
			p.pending = true
			i++
			continue
		case '\t':
			if !p.room() {
				return Plan{Ops: p.ops}
			}
			stop := min((p.pos.X/8+1)*8, r.BottomRight.X+1)
			p.write(spaces(stop-p.pos.X), stop-p.pos.X)
			i++
			continue
		}

		n, cols := profile.Glyph(text[i:])
		if !p.room() {
			return Plan{Ops: p.ops}
		}
		if cols > 1 && p.pos.X+cols-1 > r.BottomRight.X {
			if !predictWide || cols > r.Width() {
				return Plan{Ops: p.ops}
			}
			p.newline()
			if !p.room() {
				return Plan{Ops: p.ops}
			}
		}
		p.write(text[i:i+n], cols)
		i += n
	}
	return Plan{Ops: p.ops, Complete: true}
}

// Fill covers every cell of the region with c
func Fill(c byte, r Region) Plan {
	if !r.Valid() {
		return Plan{Complete: true}
	}
	row := make([]byte, r.Width())
	for i := range row {
		row[i] = c
	}
	ops := make([]Op, 0, 2*r.Height())
	for y := r.TopLeft.Y; y <= r.BottomRight.Y; y++ {
		ops = append(ops,
			Op{Kind: OpMove, At: cursor.Point{X: r.TopLeft.X, Y: y}},
			Op{Kind: OpText, Text: row, Cols: len(row)},
		)
	}
	return Plan{Ops: ops, Complete: true}
}

func spaces(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return b
}
