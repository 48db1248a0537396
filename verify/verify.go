// Package verify checks IR well-formedness. The optimizer driver runs
// it once after all transformations; a failure means the output must
// not be written.
package verify

import (
	"github.com/pkg/errors"

	"github.com/mirop/mirop/dom"
	"github.com/mirop/mirop/ir"
)

// Module verifies every function of m.
func Module(m *ir.Module) error {
	for _, f := range m.Funcs {
		if err := Func(f); err != nil {
			return errors.Wrapf(err, "func @%s", f.Name)
		}
	}
	return nil
}

// Func verifies structural well-formedness of f: block shape, branch
// targets, phi edges, and dominance of every definition over its uses.
func Func(f *ir.Func) error {
	if len(f.Blocks) == 0 {
		return nil
	}

	member := make(map[*ir.Block]bool, len(f.Blocks))
	for _, b := range f.Blocks {
		member[b] = true
	}
	for _, b := range f.Blocks {
		if len(b.Instrs) == 0 {
			return errors.Errorf("block %s: empty block", b.Name)
		}
		for n, in := range b.Instrs {
			last := n == len(b.Instrs)-1
			if in.IsTerminator() != last {
				if last {
					return errors.Errorf("block %s: does not end in a terminator", b.Name)
				}
				return errors.Errorf("block %s: terminator %s in mid-block", b.Name, in)
			}
			for _, t := range in.Blocks {
				if !member[t] {
					return errors.Errorf("block %s: %s targets a foreign block", b.Name, in)
				}
			}
		}
	}

	f.ComputeCFG()
	t := dom.New(f)

	for _, b := range f.Blocks {
		if !t.Reachable(b) {
			continue // dominance is undefined for unreachable code
		}
		if err := checkPhis(b); err != nil {
			return err
		}
		for n, in := range b.Instrs {
			for on, op := range in.Operands {
				def, ok := op.(*ir.Instr)
				if !ok {
					continue
				}
				if def.Block() == nil {
					return errors.Errorf("block %s: %s uses a detached instruction", b.Name, in)
				}
				if in.Op == ir.Phi {
					// A phi use must be available at the end of the
					// corresponding predecessor.
					if !t.Dominates(def.Block(), in.Blocks[on]) {
						return errors.Errorf("block %s: phi edge value %%%s does not dominate edge from %s",
							b.Name, def.Result, in.Blocks[on].Name)
					}
					continue
				}
				if !dominatesUse(t, def, b, n) {
					return errors.Errorf("block %s: use of %%%s before its definition dominates it",
						b.Name, def.Result)
				}
			}
		}
	}
	return nil
}

func checkPhis(b *ir.Block) error {
	for _, in := range b.Instrs {
		if in.Op != ir.Phi {
			continue
		}
		if len(in.Operands) != len(in.Blocks) || len(in.Operands) != len(b.Preds) {
			return errors.Errorf("block %s: phi %%%s has %d edges for %d predecessors",
				b.Name, in.Result, len(in.Operands), len(b.Preds))
		}
		for _, e := range in.Blocks {
			found := false
			for _, p := range b.Preds {
				if p == e {
					found = true
					break
				}
			}
			if !found {
				return errors.Errorf("block %s: phi %%%s names non-predecessor %s",
					b.Name, in.Result, e.Name)
			}
		}
	}
	return nil
}

// dominatesUse reports whether the definition def is available at the
// use site: either its block strictly dominates the use's block, or
// both share a block and the definition comes first.
func dominatesUse(t *dom.Tree, def *ir.Instr, useBlk *ir.Block, useIdx int) bool {
	if def.Block() == useBlk {
		for n, in := range useBlk.Instrs {
			if in == def {
				return n < useIdx
			}
		}
		return false
	}
	return t.Dominates(def.Block(), useBlk)
}
