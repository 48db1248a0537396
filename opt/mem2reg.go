package opt

import "github.com/mirop/mirop/ir"

// Mem2Reg promotes local allocations to registers where the promotion
// needs no control-flow reasoning: an alloca whose every use is a
// non-volatile load or store inside a single basic block has each load
// replaced by the most recently stored value, and the allocation
// disappears. Allocas used across blocks or whose address escapes are
// left untouched. Returns the number of allocas promoted.
func Mem2Reg(f *ir.Func) int {
	var allocas []*ir.Instr
	for _, b := range f.Blocks {
		for _, in := range b.Instrs {
			if in.Op == ir.Alloca {
				allocas = append(allocas, in)
			}
		}
	}
	promoted := 0
	for _, a := range allocas {
		if promoteAlloca(f, a) {
			promoted++
		}
	}
	return promoted
}

func promoteAlloca(f *ir.Func, a *ir.Instr) bool {
	var (
		home *ir.Block
		uses []*ir.Instr
	)
	for _, b := range f.Blocks {
		for _, in := range b.Instrs {
			refs := false
			for _, op := range in.Operands {
				if op == a {
					refs = true
				}
			}
			if !refs {
				continue
			}
			switch {
			case in.Op == ir.Load && !in.Volatile && in.Addr() == a:
			case in.Op == ir.Store && in.Addr() == a && in.Operands[0] != a:
			default:
				return false // address escapes or is accessed volatilely
			}
			if home == nil {
				home = b
			} else if home != b {
				return false
			}
			uses = append(uses, in)
		}
	}

	if home != nil {
		// Forward stored values to the loads, in block order.
		var cur ir.Value
		repl := make(map[*ir.Instr]ir.Value)
		for _, in := range home.Instrs {
			switch {
			case in.Op == ir.Store && in.Addr() == a:
				cur = in.Operands[0]
			case in.Op == ir.Load && in.Addr() == a:
				if cur == nil {
					return false // read before any write
				}
				repl[in] = cur
			}
		}
		for in, v := range repl {
			f.ReplaceUses(in, v)
		}
		for _, in := range uses {
			in.Block().Remove(in)
		}
	}
	a.Block().Remove(a)
	return true
}
