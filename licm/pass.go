package licm

import (
	"github.com/mirop/mirop/dom"
	"github.com/mirop/mirop/ir"
	"github.com/mirop/mirop/loop"
	"github.com/mirop/mirop/stats"
)

// Pass is the loop-invariant code motion pass. One Pass may be run
// over any number of modules; counters accumulate across runs.
type Pass struct {
	log *Logger

	nLoops       *stats.Counter
	nBasic       *stats.Counter
	nLoadHoist   *stats.Counter
	nNoPreheader *stats.Counter
	nNoStore     *stats.Counter
	nNoLoad      *stats.Counter
	nHasCall     *stats.Counter
}

// New returns a Pass whose counters are registered with reg.
func New(reg *stats.Registry) *Pass {
	return &Pass{
		log:          NewNopLogger(),
		nLoops:       reg.New("NumLoops", "number of loops analyzed"),
		nBasic:       reg.New("LICMBasic", "basic loop invariant instructions"),
		nLoadHoist:   reg.New("LICMLoadHoist", "loop invariant load instructions"),
		nNoPreheader: reg.New("LICMNoPreheader", "absence of preheader prevents optimization"),
		nNoStore:     reg.New("LICMNoStore", "loops without a store"),
		nNoLoad:      reg.New("LICMNoLoad", "loops without a load"),
		nHasCall:     reg.New("LICMHasCall", "loops containing a call"),
	}
}

// SetLogger directs pass logging to l.
func (p *Pass) SetLogger(l *Logger) {
	if l != nil {
		p.log = l
	}
}

// Run transforms every function of m in place. Only instruction
// positions change; blocks, loops and values are never created or
// destroyed.
func (p *Pass) Run(m *ir.Module) {
	for _, f := range m.Funcs {
		if len(f.Blocks) == 0 || f.NumInstrs() == 0 {
			continue
		}
		p.runFunc(f)
	}
}

func (p *Pass) runFunc(f *ir.Func) {
	t := dom.New(f)
	forest := loop.Find(f, t)
	if len(forest.Loops()) == 0 {
		return
	}
	p.log.Debugf("licm: @%s: %d loop(s)", f.Name, len(forest.Loops()))

	// Sub-loops are stabilized before their enclosing loop, so an
	// instruction hoisted into an inner preheader can migrate further
	// out during the same run.
	for _, l := range forest.InnermostFirst() {
		p.nLoops.Inc()
		p.optimizeLoop(f, l)
	}
}
