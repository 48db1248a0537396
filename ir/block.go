package ir

// Block is a basic block: an ordered instruction list ending in one
// terminator. Preds and Succs are derived from terminators by
// Func.ComputeCFG.
type Block struct {
	Name   string
	Index  int
	Instrs []*Instr

	Preds []*Block
	Succs []*Block

	fn *Func
}

// Func returns the function the block belongs to.
func (b *Block) Func() *Func { return b.fn }

// Term returns the block terminator, or nil if the block is empty or
// does not end in one.
func (b *Block) Term() *Instr {
	if len(b.Instrs) == 0 {
		return nil
	}
	if last := b.Instrs[len(b.Instrs)-1]; last.IsTerminator() {
		return last
	}
	return nil
}

// Append adds i at the end of the block and makes b its owner.
func (b *Block) Append(i *Instr) {
	if i.blk != nil {
		i.blk.remove(i)
	}
	i.blk = b
	b.Instrs = append(b.Instrs, i)
}

// insertBefore splices i into b immediately before pos.
func (b *Block) insertBefore(i, pos *Instr) {
	for n, in := range b.Instrs {
		if in == pos {
			b.Instrs = append(b.Instrs, nil)
			copy(b.Instrs[n+1:], b.Instrs[n:])
			b.Instrs[n] = i
			i.blk = b
			return
		}
	}
}

// Remove splices i out of b, detaching it.
func (b *Block) Remove(i *Instr) { b.remove(i) }

// remove splices i out of b.
func (b *Block) remove(i *Instr) {
	for n, in := range b.Instrs {
		if in == i {
			b.Instrs = append(b.Instrs[:n], b.Instrs[n+1:]...)
			i.blk = nil
			return
		}
	}
}

func (b *Block) String() string { return b.Name }
