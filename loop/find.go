package loop

import (
	"sort"

	"github.com/mirop/mirop/dom"
	"github.com/mirop/mirop/ir"
)

// Forest is the loop-nest forest of one function.
type Forest struct {
	// Top holds the outermost loops in header order.
	Top []*Loop

	all []*Loop
	b2l map[*ir.Block]*Loop // innermost containing loop per block
}

// Find discovers the natural loops of f using the dominator tree t and
// assembles them into a nest forest. Irreducible regions (a cycle
// whose entry does not dominate the blocks jumping back to it) are not
// reported as loops.
func Find(f *ir.Func, t *dom.Tree) *Forest {
	fr := &Forest{b2l: make(map[*ir.Block]*Loop)}

	// A back edge u→h with h dominating u closes a loop with header h.
	byHeader := make(map[*ir.Block]*Loop)
	for _, b := range f.Blocks {
		if !t.Reachable(b) {
			continue
		}
		for _, s := range b.Succs {
			if !t.Dominates(s, b) {
				continue
			}
			l := byHeader[s]
			if l == nil {
				l = &Loop{header: s, in: map[*ir.Block]bool{s: true}}
				byHeader[s] = l
				fr.all = append(fr.all, l)
			}
			collect(l, b)
		}
	}
	if len(fr.all) == 0 {
		return fr
	}

	// Normalize member lists to function block order.
	for _, l := range fr.all {
		l.blocks = l.blocks[:0]
		for _, b := range f.Blocks {
			if l.in[b] {
				l.blocks = append(l.blocks, b)
			}
		}
	}

	// Nesting: the parent of a loop is the smallest other loop
	// containing its header. Containment of the header implies
	// containment of the whole loop for natural loops.
	for _, l := range fr.all {
		var parent *Loop
		for _, cand := range fr.all {
			if cand == l || !cand.in[l.header] {
				continue
			}
			if parent == nil || len(cand.blocks) < len(parent.blocks) {
				parent = cand
			}
		}
		l.parent = parent
		if parent == nil {
			fr.Top = append(fr.Top, l)
		} else {
			parent.children = append(parent.children, l)
		}
	}
	for _, l := range fr.Top {
		setDepth(l, 1)
	}

	// Innermost loop per block: assign largest first so the smallest
	// containing loop wins.
	bySize := make([]*Loop, len(fr.all))
	copy(bySize, fr.all)
	sort.SliceStable(bySize, func(i, j int) bool {
		return len(bySize[i].blocks) > len(bySize[j].blocks)
	})
	for _, l := range bySize {
		for _, b := range l.blocks {
			fr.b2l[b] = l
		}
	}
	return fr
}

// collect adds the blocks on paths from latch back to the loop header
// by walking predecessors.
func collect(l *Loop, latch *ir.Block) {
	work := []*ir.Block{latch}
	for len(work) > 0 {
		b := work[len(work)-1]
		work = work[:len(work)-1]
		if l.in[b] {
			continue
		}
		l.in[b] = true
		l.blocks = append(l.blocks, b)
		work = append(work, b.Preds...)
	}
}

func setDepth(l *Loop, d int) {
	l.depth = d
	for _, c := range l.children {
		setDepth(c, d+1)
	}
}

// Loops returns every loop of the forest in header discovery order.
func (fr *Forest) Loops() []*Loop { return fr.all }

// InnermostOf returns the innermost loop containing b, or nil.
func (fr *Forest) InnermostOf(b *ir.Block) *Loop { return fr.b2l[b] }

// InnermostFirst returns all loops ordered so that every loop appears
// before the loop enclosing it.
func (fr *Forest) InnermostFirst() []*Loop {
	st := NewStack()
	for n := len(fr.Top) - 1; n >= 0; n-- {
		st.Push(fr.Top[n])
	}
	var pre []*Loop
	for !st.IsEmpty() {
		l, err := st.Pop()
		if err != nil {
			break
		}
		pre = append(pre, l)
		for n := len(l.children) - 1; n >= 0; n-- {
			st.Push(l.children[n])
		}
	}
	out := make([]*Loop, len(pre))
	for n, l := range pre {
		out[len(pre)-1-n] = l
	}
	return out
}
