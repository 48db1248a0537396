package ir

// Instr is a single IR instruction. The zero value is not usable;
// construct instructions with NewInstr and attach them to a block with
// Block.Append.
//
// Operand layout by opcode:
//
//	binary ops   Operands[0], Operands[1]
//	unary ops    Operands[0]
//	phi          Operands[i] incoming from Blocks[i]
//	load         Operands[0] address
//	store        Operands[0] value, Operands[1] address
//	call         Operands are the arguments, Callee the function name
//	br           Blocks[0] target
//	condbr       Operands[0] condition, Blocks[0] then, Blocks[1] else
//	ret          Operands[0] result (optional)
type Instr struct {
	Op       Op
	Result   string // result name, "" when the instruction produces no value
	Operands []Value
	Blocks   []*Block // branch targets, or phi incoming blocks
	Volatile bool     // loads only
	Callee   string   // calls only

	blk *Block
}

// NewInstr returns a detached instruction.
func NewInstr(op Op, result string, operands ...Value) *Instr {
	return &Instr{Op: op, Result: result, Operands: operands}
}

// Name returns the result name, implementing Value for instructions
// that produce one.
func (i *Instr) Name() string { return i.Result }

// Block returns the basic block that currently owns i, or nil if i is
// detached.
func (i *Instr) Block() *Block { return i.blk }

// IsTerminator reports whether i ends a basic block.
func (i *Instr) IsTerminator() bool { return i.Op.IsTerminator() }

// IsMemRead reports whether i reads from memory.
func (i *Instr) IsMemRead() bool { return i.Op == Load }

// IsMemWrite reports whether i writes to memory.
func (i *Instr) IsMemWrite() bool { return i.Op == Store }

// IsCall reports whether i is a function call.
func (i *Instr) IsCall() bool { return i.Op == Call }

// IsPure reports whether i is an ordinary computation with no side
// effects and no dependence on memory or control: such an instruction
// may be relocated freely once its operands are available at the new
// position.
func (i *Instr) IsPure() bool {
	return i.Op.IsBinary() || i.Op.IsUnary()
}

// Addr returns the memory address a load or store refers to, or nil
// for every other opcode.
func (i *Instr) Addr() Value {
	switch i.Op {
	case Load:
		return i.Operands[0]
	case Store:
		return i.Operands[1]
	}
	return nil
}

// MoveBefore relocates i to immediately before pos, detaching it from
// its current block. Identity, operands and result are unchanged.
func (i *Instr) MoveBefore(pos *Instr) {
	if i == pos {
		return
	}
	if i.blk != nil {
		i.blk.remove(i)
	}
	pos.blk.insertBefore(i, pos)
}
