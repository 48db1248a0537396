package opt

import "github.com/mirop/mirop/ir"

// cseKey identifies a pure computation by opcode and operand
// identities. Pure ops take at most two operands.
type cseKey struct {
	op   ir.Op
	a, b ir.Value
}

// EarlyCSE removes repeated pure computations within each basic block,
// redirecting uses of the repeat to the first occurrence. Returns the
// number of instructions removed.
func EarlyCSE(f *ir.Func) int {
	removed := 0
	for _, b := range f.Blocks {
		avail := make(map[cseKey]*ir.Instr)
		kept := b.Instrs[:0]
		for _, in := range b.Instrs {
			if !in.IsPure() {
				kept = append(kept, in)
				continue
			}
			k := cseKey{op: in.Op, a: in.Operands[0]}
			if len(in.Operands) > 1 {
				k.b = in.Operands[1]
			}
			if prev, ok := avail[k]; ok {
				f.ReplaceUses(in, prev)
				removed++
				continue
			}
			avail[k] = in
			kept = append(kept, in)
		}
		b.Instrs = kept
	}
	return removed
}
