// Package dom computes the dominator tree of a function.
//
// The tree is built with the iterative reverse-postorder intersection
// algorithm of Cooper, Harvey and Kennedy. Queries are read-only;
// callers must have computed the CFG edges (ir.Func.ComputeCFG) for
// the function first.
package dom

import "github.com/mirop/mirop/ir"

// Tree answers dominance queries over the blocks of one function.
type Tree struct {
	idom map[*ir.Block]*ir.Block
	po   map[*ir.Block]int // postorder numbers of reachable blocks
}

// New computes the dominator tree of f.
func New(f *ir.Func) *Tree {
	t := &Tree{
		idom: make(map[*ir.Block]*ir.Block),
		po:   make(map[*ir.Block]int),
	}
	entry := f.Entry()
	if entry == nil {
		return t
	}

	order := postorder(entry)
	for n, b := range order {
		t.po[b] = n
	}
	t.idom[entry] = entry

	// Iterate in reverse postorder until the idom assignment is stable.
	for changed := true; changed; {
		changed = false
		for n := len(order) - 2; n >= 0; n-- {
			b := order[n]
			var idom *ir.Block
			for _, p := range b.Preds {
				if t.idom[p] == nil {
					continue // unreachable or not yet processed
				}
				if idom == nil {
					idom = p
				} else {
					idom = t.intersect(p, idom)
				}
			}
			if idom != nil && t.idom[b] != idom {
				t.idom[b] = idom
				changed = true
			}
		}
	}
	return t
}

func (t *Tree) intersect(a, b *ir.Block) *ir.Block {
	for a != b {
		for t.po[a] < t.po[b] {
			a = t.idom[a]
		}
		for t.po[b] < t.po[a] {
			b = t.idom[b]
		}
	}
	return a
}

// Idom returns the immediate dominator of b. The entry block is its
// own immediate dominator; unreachable blocks have none.
func (t *Tree) Idom(b *ir.Block) *ir.Block { return t.idom[b] }

// Reachable reports whether b is reachable from the function entry.
func (t *Tree) Reachable(b *ir.Block) bool {
	_, ok := t.po[b]
	return ok
}

// Dominates reports whether a dominates b: every path from the entry
// to b passes through a. A block dominates itself.
func (t *Tree) Dominates(a, b *ir.Block) bool {
	for r := b; r != nil; {
		if r == a {
			return true
		}
		next := t.idom[r]
		if next == r {
			break
		}
		r = next
	}
	return false
}

func postorder(entry *ir.Block) []*ir.Block {
	var (
		order   []*ir.Block
		visited = make(map[*ir.Block]bool)
		visit   func(b *ir.Block)
	)
	visit = func(b *ir.Block) {
		visited[b] = true
		for _, s := range b.Succs {
			if !visited[s] {
				visit(s)
			}
		}
		order = append(order, b)
	}
	visit(entry)
	return order
}
