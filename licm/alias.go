package licm

import (
	"github.com/mirop/mirop/ir"
	"github.com/mirop/mirop/loop"
)

// mayWriteTo reports whether any instruction in l could write to addr.
// The answer is layered and errs toward true:
//
//   - no store in the loop at all: safe for every address;
//   - addr is a global: unsafe only if some store targets that same
//     global, by address identity;
//   - addr is a local allocation: a store to a different allocation or
//     to a global cannot alias it, anything else may;
//   - addr is anything else (an unresolved pointer): any store at all
//     may alias it.
func mayWriteTo(l *loop.Loop, addr ir.Value) bool {
	stores := loopStores(l)
	if len(stores) == 0 {
		return false
	}
	switch a := addr.(type) {
	case *ir.Global:
		for _, st := range stores {
			if st.Addr() == addr {
				return true
			}
		}
		return false
	case *ir.Instr:
		if a.Op != ir.Alloca {
			break
		}
		for _, st := range stores {
			if !distinctAlloc(a, st.Addr()) {
				return true
			}
		}
		return false
	}
	return true
}

// distinctAlloc reports whether a store destination provably refers to
// storage other than the allocation a.
func distinctAlloc(a *ir.Instr, dst ir.Value) bool {
	if dst == a {
		return false
	}
	if _, ok := dst.(*ir.Global); ok {
		return true
	}
	if d, ok := dst.(*ir.Instr); ok && d.Op == ir.Alloca {
		return true
	}
	return false
}

func loopStores(l *loop.Loop) []*ir.Instr {
	var stores []*ir.Instr
	for _, b := range l.Blocks() {
		for _, in := range b.Instrs {
			if in.IsMemWrite() {
				stores = append(stores, in)
			}
		}
	}
	return stores
}
