package ir

// Op identifies an instruction opcode.
type Op int

const (
	Invalid Op = iota

	// Binary arithmetic and logic.
	Add
	Sub
	Mul
	Div
	Rem
	And
	Or
	Xor
	Shl
	Shr

	// Comparisons.
	Eq
	Ne
	Lt
	Le
	Gt
	Ge

	// Unary.
	Neg
	Not

	// SSA merge.
	Phi

	// Memory.
	Alloca
	Load
	Store

	// Calls.
	Call

	// Terminators.
	Br
	CondBr
	Ret
)

var opNames = [...]string{
	Invalid: "invalid",
	Add:     "add",
	Sub:     "sub",
	Mul:     "mul",
	Div:     "div",
	Rem:     "rem",
	And:     "and",
	Or:      "or",
	Xor:     "xor",
	Shl:     "shl",
	Shr:     "shr",
	Eq:      "eq",
	Ne:      "ne",
	Lt:      "lt",
	Le:      "le",
	Gt:      "gt",
	Ge:      "ge",
	Neg:     "neg",
	Not:     "not",
	Phi:     "phi",
	Alloca:  "alloca",
	Load:    "load",
	Store:   "store",
	Call:    "call",
	Br:      "br",
	CondBr:  "condbr",
	Ret:     "ret",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "invalid"
	}
	return opNames[op]
}

// OpByName returns the opcode with the given textual name.
func OpByName(s string) (Op, bool) {
	for op, name := range opNames {
		if name == s && Op(op) != Invalid {
			return Op(op), true
		}
	}
	return Invalid, false
}

// IsBinary reports whether op takes exactly two value operands and
// produces a result.
func (op Op) IsBinary() bool { return op >= Add && op <= Ge }

// IsUnary reports whether op takes exactly one value operand and
// produces a result.
func (op Op) IsUnary() bool { return op == Neg || op == Not }

// IsTerminator reports whether op ends a basic block.
func (op Op) IsTerminator() bool { return op == Br || op == CondBr || op == Ret }
