package ir

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// String returns the instruction in the textual IR syntax, without
// leading indentation.
func (i *Instr) String() string {
	var buf bytes.Buffer
	if i.Result != "" {
		fmt.Fprintf(&buf, "%%%s = ", i.Result)
	}
	switch i.Op {
	case Phi:
		buf.WriteString("phi ")
		for n, op := range i.Operands {
			if n > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "[%s, %s]", operandRef(op), i.Blocks[n].Name)
		}
	case Load:
		if i.Volatile {
			buf.WriteString("volatile ")
		}
		fmt.Fprintf(&buf, "load %s", operandRef(i.Operands[0]))
	case Store:
		fmt.Fprintf(&buf, "store %s, %s", operandRef(i.Operands[0]), operandRef(i.Operands[1]))
	case Call:
		fmt.Fprintf(&buf, "call @%s(%s)", i.Callee, operandList(i.Operands))
	case Br:
		fmt.Fprintf(&buf, "br %s", i.Blocks[0].Name)
	case CondBr:
		fmt.Fprintf(&buf, "condbr %s, %s, %s", operandRef(i.Operands[0]), i.Blocks[0].Name, i.Blocks[1].Name)
	case Ret:
		buf.WriteString("ret")
		if len(i.Operands) > 0 {
			fmt.Fprintf(&buf, " %s", operandRef(i.Operands[0]))
		}
	case Alloca:
		buf.WriteString("alloca")
	default:
		fmt.Fprintf(&buf, "%s %s", i.Op, operandList(i.Operands))
	}
	return buf.String()
}

// operandRef renders v in operand syntax. An instruction used as an
// operand is referenced by its result name rather than printed in full,
// which would recurse through its own operands.
func operandRef(v Value) string {
	if in, ok := v.(*Instr); ok {
		return "%" + in.Result
	}
	return v.String()
}

func operandList(ops []Value) string {
	parts := make([]string, len(ops))
	for n, op := range ops {
		parts[n] = operandRef(op)
	}
	return strings.Join(parts, ", ")
}

// WriteTo writes the function in the textual IR syntax.
func (f *Func) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	params := make([]string, len(f.Params))
	for n, p := range f.Params {
		params[n] = p.String()
	}
	fmt.Fprintf(&buf, "func @%s(%s) {\n", f.Name, strings.Join(params, ", "))
	for _, b := range f.Blocks {
		fmt.Fprintf(&buf, "%s:\n", b.Name)
		for _, in := range b.Instrs {
			fmt.Fprintf(&buf, "  %s\n", in)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (f *Func) String() string {
	var buf bytes.Buffer
	f.WriteTo(&buf)
	return buf.String()
}

// WriteTo writes the module in the textual IR syntax, round-trippable
// through the parser.
func (m *Module) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for _, g := range m.Globals {
		fmt.Fprintf(&buf, "global %s\n", g)
	}
	for n, f := range m.Funcs {
		if n > 0 || len(m.Globals) > 0 {
			buf.WriteByte('\n')
		}
		f.WriteTo(&buf)
	}
	return buf.WriteTo(w)
}

func (m *Module) String() string {
	var buf bytes.Buffer
	m.WriteTo(&buf)
	return buf.String()
}
