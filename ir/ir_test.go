package ir

import (
	"strings"
	"testing"
)

// buildFunc assembles:
//
//	entry: %t0 = add %a, 1 ; br exit
//	exit:  ret %t0
func buildFunc() (*Func, *Instr) {
	f := NewFunc("f", NewParam("a"))
	entry := f.NewBlock("entry")
	exit := f.NewBlock("exit")
	add := NewInstr(Add, "t0", f.Param("a"), NewConst(1))
	entry.Append(add)
	entry.Append(&Instr{Op: Br, Blocks: []*Block{exit}})
	exit.Append(NewInstr(Ret, "", add))
	f.ComputeCFG()
	return f, add
}

func TestMoveBefore(t *testing.T) {
	f, add := buildFunc()
	entry, exit := f.Blocks[0], f.Blocks[1]
	ret := exit.Instrs[0]

	add.MoveBefore(ret)
	if expect, got := exit, add.Block(); expect != got {
		t.Errorf("owner after move, want %s got %v", expect, got)
	}
	if expect, got := 1, len(entry.Instrs); expect != got {
		t.Errorf("entry length after move, want %d got %d", expect, got)
	}
	if exit.Instrs[0] != add || exit.Instrs[1] != ret {
		t.Errorf("instruction order after move: %v", exit.Instrs)
	}
	// Identity and operands survive relocation.
	if add.Result != "t0" || len(add.Operands) != 2 {
		t.Errorf("relocation changed the instruction: %s", add)
	}
}

func TestMoveBeforeSamePosition(t *testing.T) {
	f, add := buildFunc()
	entry := f.Blocks[0]
	add.MoveBefore(entry.Instrs[1])
	if entry.Instrs[0] != add {
		t.Errorf("no-op move changed order: %v", entry.Instrs)
	}
}

func TestComputeCFG(t *testing.T) {
	f, _ := buildFunc()
	entry, exit := f.Blocks[0], f.Blocks[1]
	if len(entry.Succs) != 1 || entry.Succs[0] != exit {
		t.Errorf("entry successors: %v", entry.Succs)
	}
	if len(exit.Preds) != 1 || exit.Preds[0] != entry {
		t.Errorf("exit predecessors: %v", exit.Preds)
	}
}

func TestReplaceUses(t *testing.T) {
	f, add := buildFunc()
	c := NewConst(42)
	f.ReplaceUses(add, c)
	ret := f.Blocks[1].Instrs[0]
	if ret.Operands[0] != c {
		t.Errorf("use not replaced: %s", ret)
	}
}

func TestTerm(t *testing.T) {
	f, add := buildFunc()
	entry := f.Blocks[0]
	if got := entry.Term(); got != entry.Instrs[1] {
		t.Errorf("Term() = %v", got)
	}
	b := f.NewBlock("open")
	b.Append(NewInstr(Add, "x", add, add))
	if got := b.Term(); got != nil {
		t.Errorf("Term() of unterminated block = %v", got)
	}
}

func TestInstrString(t *testing.T) {
	g := NewGlobal("g")
	a := NewParam("a")
	tests := []struct {
		in     *Instr
		expect string
	}{
		{NewInstr(Add, "t0", a, NewConst(1)), "%t0 = add %a, 1"},
		{NewInstr(Neg, "t1", a), "%t1 = neg %a"},
		{NewInstr(Load, "v", g), "%v = load @g"},
		{&Instr{Op: Load, Result: "w", Operands: []Value{g}, Volatile: true}, "%w = volatile load @g"},
		{NewInstr(Store, "", a, g), "store %a, @g"},
		{&Instr{Op: Call, Result: "r", Callee: "ext", Operands: []Value{a}}, "%r = call @ext(%a)"},
		{&Instr{Op: Call, Callee: "print"}, "call @print()"},
		{NewInstr(Ret, ""), "ret"},
		{NewInstr(Alloca, "p"), "%p = alloca"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.expect {
			t.Errorf("String() = %q, want %q", got, tt.expect)
		}
	}
}

func TestModuleString(t *testing.T) {
	m := NewModule()
	m.AddGlobal("g")
	f, _ := buildFunc()
	m.AddFunc(f)
	s := m.String()
	if !strings.HasPrefix(s, "global @g\n\nfunc @f(%a) {\n") {
		t.Errorf("module header:\n%s", s)
	}
	if !strings.Contains(s, "entry:\n  %t0 = add %a, 1\n  br exit\n") {
		t.Errorf("entry block body:\n%s", s)
	}
}
