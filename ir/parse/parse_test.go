package parse

import (
	"strings"
	"testing"

	"github.com/mirop/mirop/ir"
)

const countdown = `global @g

func @count(%n) {
entry:
  %t0 = add %n, 0
  br loop
loop:
  %i = phi [%t0, entry], [%i1, loop]
  %v = load @g
  %i1 = sub %i, %v
  %c = gt %i1, 0
  condbr %c, loop, done
done:
  ret %i1
}
`

func parseString(t *testing.T, src string) *ir.Module {
	t.Helper()
	m, err := FromReader(strings.NewReader(src)).Build()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return m
}

func TestParse(t *testing.T) {
	m := parseString(t, countdown)
	if m.Global("g") == nil {
		t.Error("missing global @g")
	}
	f := m.Func("count")
	if f == nil {
		t.Fatal("missing func @count")
	}
	if expect, got := 3, len(f.Blocks); expect != got {
		t.Fatalf("blocks, want %d got %d", expect, got)
	}

	loop := f.Block("loop")
	phi := loop.Instrs[0]
	if phi.Op != ir.Phi || len(phi.Operands) != 2 {
		t.Fatalf("first loop instruction: %s", phi)
	}
	// Forward reference: the phi names %i1 before its definition.
	if phi.Operands[1] != loop.Instrs[2] {
		t.Errorf("phi backedge value not resolved to %%i1: %s", phi)
	}
	if phi.Blocks[0] != f.Block("entry") || phi.Blocks[1] != loop {
		t.Errorf("phi edge blocks not resolved: %s", phi)
	}

	term := loop.Term()
	if term == nil || term.Op != ir.CondBr {
		t.Fatalf("loop terminator: %v", term)
	}
	if len(loop.Succs) != 2 || loop.Succs[0] != loop || loop.Succs[1] != f.Block("done") {
		t.Errorf("loop successors: %v", loop.Succs)
	}
}

func TestRoundTrip(t *testing.T) {
	m := parseString(t, countdown)
	if got := m.String(); got != countdown {
		t.Errorf("round trip mismatch:\n--- got ---\n%s--- want ---\n%s", got, countdown)
	}
}

func TestComments(t *testing.T) {
	src := `; leading comment
func @id(%x) { ; trailing
entry: ; block comment
  ret %x
}
`
	m := parseString(t, src)
	if m.Func("id") == nil {
		t.Error("missing func @id")
	}
}

func TestVolatileLoad(t *testing.T) {
	m := parseString(t, `global @io

func @poll() {
entry:
  %v = volatile load @io
  ret %v
}
`)
	in := m.Func("poll").Entry().Instrs[0]
	if in.Op != ir.Load || !in.Volatile {
		t.Errorf("volatile flag lost: %s", in)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string // substring of the error
	}{
		{"unknown value", "func @f() {\nentry:\n  ret %x\n}\n", "unknown value %x"},
		{"unknown global", "func @f() {\nentry:\n  %v = load @g\n  ret %v\n}\n", "unknown global @g"},
		{"unknown block", "func @f() {\nentry:\n  br nowhere\n}\n", `unknown block "nowhere"`},
		{"duplicate definition", "func @f() {\nentry:\n  %x = alloca\n  %x = alloca\n  ret\n}\n", "duplicate definition of %x"},
		{"duplicate block", "func @f() {\nentry:\n  ret\nentry:\n  ret\n}\n", "duplicate block label"},
		{"duplicate func", "func @f() {\nentry:\n  ret\n}\nfunc @f() {\nentry:\n  ret\n}\n", "duplicate func @f"},
		{"duplicate global", "global @g\nglobal @g\n", "duplicate global @g"},
		{"shadowed param", "func @f(%a) {\nentry:\n  %a = alloca\n  ret\n}\n", "shadows a parameter"},
		{"instruction outside block", "func @f() {\n  ret\n}\n", "instruction outside block"},
		{"volatile store", "func @f(%v) {\nentry:\n  volatile store %v, %v\n  ret\n}\n", "volatile is only valid on load"},
		{"missing result", "func @f(%a) {\nentry:\n  add %a, 1\n  ret\n}\n", "requires a result name"},
		{"result on store", "global @g\nfunc @f(%a) {\nentry:\n  %s = store %a, @g\n  ret\n}\n", "produces no value"},
		{"unknown opcode", "func @f(%a) {\nentry:\n  %x = frob %a\n  ret\n}\n", `unknown instruction "frob"`},
		{"truncated func", "func @f() {\nentry:\n  ret\n", "unexpected end of input"},
		{"toplevel junk", "ret\n", "expected global or func"},
	}
	for _, tt := range tests {
		_, err := FromReader(strings.NewReader(tt.src)).Build()
		if err == nil {
			t.Errorf("%s: expected error, got none", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
	}
}

func TestErrorLine(t *testing.T) {
	// The undefined name is only detected at the end of the function,
	// but the error must point at the line that used it.
	src := "func @f(%a) {\nentry:\n  %x = add %missing, 1\n  ret %x\n}\n"
	_, err := FromReader(strings.NewReader(src)).Build()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q does not point at line 3", err)
	}
}
