package ir

// Func is a function definition: parameters and basic blocks, the
// entry block first.
type Func struct {
	Name   string
	Params []*Param
	Blocks []*Block
}

// NewFunc returns an empty function.
func NewFunc(name string, params ...*Param) *Func {
	return &Func{Name: name, Params: params}
}

// Entry returns the function entry block, or nil for a function with
// no blocks.
func (f *Func) Entry() *Block {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// NewBlock appends a fresh block to the function.
func (f *Func) NewBlock(name string) *Block {
	b := &Block{Name: name, Index: len(f.Blocks), fn: f}
	f.Blocks = append(f.Blocks, b)
	return b
}

// Block returns the block with the given name, or nil.
func (f *Func) Block(name string) *Block {
	for _, b := range f.Blocks {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Param returns the parameter with the given name, or nil.
func (f *Func) Param(name string) *Param {
	for _, p := range f.Params {
		if p.name == name {
			return p
		}
	}
	return nil
}

// NumInstrs returns the instruction count across all blocks.
func (f *Func) NumInstrs() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Instrs)
	}
	return n
}

// ComputeCFG recomputes predecessor and successor edges from the block
// terminators. Call after any change to terminators or the block list.
func (f *Func) ComputeCFG() {
	for n, b := range f.Blocks {
		b.Index = n
		b.Preds = b.Preds[:0]
		b.Succs = b.Succs[:0]
	}
	for _, b := range f.Blocks {
		t := b.Term()
		if t == nil {
			continue
		}
		for _, s := range t.Blocks {
			b.Succs = append(b.Succs, s)
			s.Preds = append(s.Preds, b)
		}
	}
}

// ReplaceUses rewrites every operand reference to old with new across
// the whole function.
func (f *Func) ReplaceUses(old, new Value) {
	for _, b := range f.Blocks {
		for _, in := range b.Instrs {
			for n, op := range in.Operands {
				if op == old {
					in.Operands[n] = new
				}
			}
		}
	}
}
