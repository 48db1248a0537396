package opt

import "github.com/mirop/mirop/ir"

// DeadCode removes instructions whose results are unused and that have
// no side effects, plus unreachable blocks, iterating until stable.
// Returns the number of instructions removed.
func DeadCode(f *ir.Func) int {
	removed := 0
	for {
		n := sweepUnused(f)
		n += removeUnreachable(f)
		if n == 0 {
			return removed
		}
		removed += n
	}
}

// isCritical reports whether in must be kept regardless of uses:
// stores, calls, terminators and volatile loads all have effects
// beyond their result.
func isCritical(in *ir.Instr) bool {
	return in.IsMemWrite() || in.IsCall() || in.IsTerminator() ||
		(in.IsMemRead() && in.Volatile)
}

func sweepUnused(f *ir.Func) int {
	// Mark values reachable from critical instructions.
	used := make(map[*ir.Instr]bool)
	var mark func(v ir.Value)
	mark = func(v ir.Value) {
		in, ok := v.(*ir.Instr)
		if !ok || used[in] {
			return
		}
		used[in] = true
		for _, op := range in.Operands {
			mark(op)
		}
	}
	for _, b := range f.Blocks {
		for _, in := range b.Instrs {
			if isCritical(in) {
				for _, op := range in.Operands {
					mark(op)
				}
			}
		}
	}

	// Sweep everything else.
	removed := 0
	for _, b := range f.Blocks {
		kept := b.Instrs[:0]
		for _, in := range b.Instrs {
			if isCritical(in) || used[in] {
				kept = append(kept, in)
			} else {
				removed++
			}
		}
		b.Instrs = kept
	}
	return removed
}

func removeUnreachable(f *ir.Func) int {
	entry := f.Entry()
	if entry == nil {
		return 0
	}
	reachable := make(map[*ir.Block]bool)
	stack := []*ir.Block{entry}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[b] {
			continue
		}
		reachable[b] = true
		stack = append(stack, b.Succs...)
	}

	kept := f.Blocks[:0]
	removed := 0
	for _, b := range f.Blocks {
		if reachable[b] {
			kept = append(kept, b)
		} else {
			removed += len(b.Instrs)
		}
	}
	if removed == 0 {
		return 0
	}
	f.Blocks = kept
	f.ComputeCFG()
	prunePhis(f)
	return removed
}

// prunePhis drops phi edges whose incoming block is no longer a
// predecessor.
func prunePhis(f *ir.Func) {
	for _, b := range f.Blocks {
		preds := make(map[*ir.Block]bool, len(b.Preds))
		for _, p := range b.Preds {
			preds[p] = true
		}
		for _, in := range b.Instrs {
			if in.Op != ir.Phi {
				continue
			}
			ops := in.Operands[:0]
			blks := in.Blocks[:0]
			for n, e := range in.Blocks {
				if preds[e] {
					ops = append(ops, in.Operands[n])
					blks = append(blks, e)
				}
			}
			in.Operands = ops
			in.Blocks = blks
		}
	}
}
