package licm

import "github.com/mirop/mirop/ir"

// isInvariant reports whether v is loop-invariant with respect to the
// loop being rewritten. Constants, globals and parameters always are;
// an instruction result is invariant when its defining instruction
// currently sits outside the loop — either because it was defined
// there, or because this run already hoisted it out. The test reads
// the evolving placement, not a snapshot.
func (h *hoister) isInvariant(v ir.Value) bool {
	if in, ok := v.(*ir.Instr); ok {
		return !h.l.Contains(in.Block())
	}
	return true
}

// operandsInvariant reports whether every operand of in is invariant.
// An empty operand list is trivially invariant.
func (h *hoister) operandsInvariant(in *ir.Instr) bool {
	for _, op := range in.Operands {
		if !h.isInvariant(op) {
			return false
		}
	}
	return true
}
