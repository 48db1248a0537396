package loop

import (
	"fmt"

	"github.com/mirop/mirop/ir"
)

// Loop is a single natural loop: a set of basic blocks with one entry
// block (the header) that dominates them all.
type Loop struct {
	header *ir.Block
	blocks []*ir.Block // function block order, header included
	in     map[*ir.Block]bool

	parent   *Loop
	children []*Loop
	depth    int
}

// Header returns the loop header block.
func (l *Loop) Header() *ir.Block { return l.header }

// Blocks returns the loop member blocks in function block order.
func (l *Loop) Blocks() []*ir.Block { return l.blocks }

// Contains reports whether b is a member of the loop (or of one of its
// sub-loops, whose blocks are members too).
func (l *Loop) Contains(b *ir.Block) bool { return l.in[b] }

// Parent returns the immediately enclosing loop, or nil for a
// top-level loop.
func (l *Loop) Parent() *Loop { return l.parent }

// Sub returns the loops nested directly inside l.
func (l *Loop) Sub() []*Loop { return l.children }

// Depth returns the nesting depth; top-level loops have depth 1.
func (l *Loop) Depth() int { return l.depth }

// Preheader returns the unique block outside the loop through which
// every entry into the loop passes, or nil when the loop has several
// entry edges from outside or its sole outside predecessor branches
// elsewhere too. A preheader dominates the whole loop body.
func (l *Loop) Preheader() *ir.Block {
	var ph *ir.Block
	for _, p := range l.header.Preds {
		if l.in[p] {
			continue
		}
		if ph != nil {
			return nil
		}
		ph = p
	}
	if ph == nil || len(ph.Succs) != 1 {
		return nil
	}
	return ph
}

// Exits returns the blocks outside the loop that are reachable
// directly from inside it, in function block order without duplicates.
func (l *Loop) Exits() []*ir.Block {
	var (
		exits []*ir.Block
		seen  = make(map[*ir.Block]bool)
	)
	for _, b := range l.blocks {
		for _, s := range b.Succs {
			if !l.in[s] && !seen[s] {
				seen[s] = true
				exits = append(exits, s)
			}
		}
	}
	return exits
}

func (l *Loop) String() string {
	return fmt.Sprintf("loop@%s(depth=%d,blocks=%d)", l.header.Name, l.depth, len(l.blocks))
}
