package licm

import (
	"github.com/mirop/mirop/ir"
	"github.com/mirop/mirop/loop"
)

// hoister holds the per-loop rewrite state. Each loop gets a fresh
// hoister; eligibility is always evaluated against the current
// placement of instructions, which the hoister mutates as it goes.
type hoister struct {
	l  *loop.Loop
	at *ir.Instr // preheader terminator; hoisted code lands before it

	hoisted []*ir.Instr
}

// optimizeLoop runs the rewriter over one loop. A loop without a
// usable preheader is skipped and counted; this must never abort the
// remaining loops.
func (p *Pass) optimizeLoop(f *ir.Func, l *loop.Loop) {
	p.classify(l)

	ph := l.Preheader()
	if ph == nil {
		p.nNoPreheader.Inc()
		p.log.Debugf("licm: @%s: %s has no preheader, skipped", f.Name, l)
		return
	}
	at := ph.Term()
	if at == nil {
		// Malformed preheader; treated the same as having none.
		p.nNoPreheader.Inc()
		p.log.Debugf("licm: @%s: preheader %s lacks a terminator, skipped", f.Name, ph)
		return
	}

	h := &hoister{l: l, at: at}

	// Snapshot the loop body in block order then instruction order.
	// The pass is single shot: each instruction is considered exactly
	// once, against the placement at the time it is reached.
	var pending []*ir.Instr
	for _, b := range l.Blocks() {
		pending = append(pending, b.Instrs...)
	}

	for _, in := range pending {
		switch {
		case in.IsMemRead():
			if h.canHoistLoad(in) {
				h.hoist(in)
				p.nLoadHoist.Inc()
				p.log.Debugf("licm: @%s: hoisted %s into %s", f.Name, in, ph)
			}
		case h.canHoist(in):
			h.hoist(in)
			p.nBasic.Inc()
			p.log.Debugf("licm: @%s: hoisted %s into %s", f.Name, in, ph)
		}
	}
}

// classify bumps the loop shape counters.
func (p *Pass) classify(l *loop.Loop) {
	var hasStore, hasLoad, hasCall bool
	for _, b := range l.Blocks() {
		for _, in := range b.Instrs {
			switch {
			case in.IsMemWrite():
				hasStore = true
			case in.IsMemRead():
				hasLoad = true
			case in.IsCall():
				hasCall = true
			}
		}
	}
	if !hasStore {
		p.nNoStore.Inc()
	}
	if !hasLoad {
		p.nNoLoad.Inc()
	}
	if hasCall {
		p.nHasCall.Inc()
	}
}

// canHoist decides eligibility for ordinary instructions: pure
// computations whose operands are all invariant. Terminators, phis,
// calls, stores and allocas are never eligible.
func (h *hoister) canHoist(in *ir.Instr) bool {
	if !in.IsPure() {
		return false
	}
	return h.operandsInvariant(in)
}

// canHoistLoad decides eligibility for memory reads:
//
//  1. a volatile access is never eligible;
//  2. a read of a global address is eligible iff no store in the loop
//     may write that address;
//  3. every other read (local allocation, unresolved pointer) is not
//     eligible. Proving those safe additionally requires the read to
//     dominate every loop exit, which this baseline does not attempt.
func (h *hoister) canHoistLoad(in *ir.Instr) bool {
	if in.Volatile {
		return false
	}
	addr := in.Addr()
	if _, ok := addr.(*ir.Global); !ok {
		return false
	}
	return !mayWriteTo(h.l, addr)
}

// hoist relocates in to the end of the preheader, before its
// terminator. Relative order among hoisted instructions is preserved,
// so operand definitions hoisted earlier stay above their uses.
func (h *hoister) hoist(in *ir.Instr) {
	in.MoveBefore(h.at)
	h.hoisted = append(h.hoisted, in)
}
