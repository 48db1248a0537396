package verify

import (
	"strings"
	"testing"

	"github.com/mirop/mirop/ir"
	"github.com/mirop/mirop/ir/parse"
)

func parseModule(t *testing.T, src string) *ir.Module {
	t.Helper()
	m, err := parse.FromReader(strings.NewReader(src)).Build()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return m
}

func TestValidModule(t *testing.T) {
	m := parseModule(t, `global @g

func @sum(%n) {
entry:
  br loop
loop:
  %i = phi [0, entry], [%i1, loop]
  %v = load @g
  %i1 = add %i, %v
  %c = lt %i1, %n
  condbr %c, loop, done
done:
  ret %i1
}
`)
	if err := Module(m); err != nil {
		t.Errorf("valid module rejected: %v", err)
	}
}

func TestRejectsMidBlockTerminator(t *testing.T) {
	m := parseModule(t, `func @f() {
entry:
  ret
  ret
}
`)
	err := Module(m)
	if err == nil || !strings.Contains(err.Error(), "mid-block") {
		t.Errorf("mid-block terminator not caught: %v", err)
	}
}

func TestRejectsMissingTerminator(t *testing.T) {
	m := parseModule(t, `func @f(%a) {
entry:
  %x = add %a, 1
}
`)
	err := Module(m)
	if err == nil || !strings.Contains(err.Error(), "terminator") {
		t.Errorf("unterminated block not caught: %v", err)
	}
}

func TestRejectsUseBeforeDef(t *testing.T) {
	// The parser accepts forward references; dominance is the
	// verifier's job.
	m := parseModule(t, `func @f(%a) {
entry:
  %y = add %x, 1
  %x = add %a, 1
  ret %y
}
`)
	err := Module(m)
	if err == nil || !strings.Contains(err.Error(), "before its definition") {
		t.Errorf("use before definition not caught: %v", err)
	}
}

func TestRejectsNonDominatingDef(t *testing.T) {
	m := parseModule(t, `func @f(%a, %c) {
entry:
  condbr %c, left, right
left:
  %x = add %a, 1
  br exit
right:
  br exit
exit:
  ret %x
}
`)
	err := Module(m)
	if err == nil || !strings.Contains(err.Error(), "%x") {
		t.Errorf("non-dominating definition not caught: %v", err)
	}
}

func TestRejectsPhiEdgeMismatch(t *testing.T) {
	m := parseModule(t, `func @f(%a, %c) {
entry:
  condbr %c, left, exit
left:
  br exit
exit:
  %x = phi [%a, left]
  ret %x
}
`)
	err := Module(m)
	if err == nil || !strings.Contains(err.Error(), "edges for") {
		t.Errorf("phi edge mismatch not caught: %v", err)
	}
}

func TestRejectsPhiNonPredecessor(t *testing.T) {
	m := parseModule(t, `func @f(%a, %c) {
entry:
  condbr %c, left, right
left:
  br exit
right:
  br done
done:
  br exit
exit:
  %x = phi [%a, left], [%a, right]
  ret %x
}
`)
	err := Module(m)
	if err == nil || !strings.Contains(err.Error(), "non-predecessor") {
		t.Errorf("phi with non-predecessor edge not caught: %v", err)
	}
}

func TestAcceptsPhiBackEdge(t *testing.T) {
	// The back edge value is defined after the phi in block order; it
	// only needs to dominate the edge's predecessor.
	m := parseModule(t, `func @f(%n) {
entry:
  br loop
loop:
  %i = phi [0, entry], [%i1, loop]
  %i1 = add %i, 1
  %c = lt %i1, %n
  condbr %c, loop, done
done:
  ret %i1
}
`)
	if err := Module(m); err != nil {
		t.Errorf("loop-carried phi rejected: %v", err)
	}
}

func TestRejectsDetachedOperand(t *testing.T) {
	m := parseModule(t, `func @f(%a) {
entry:
  %x = add %a, 1
  ret %x
}
`)
	f := m.Funcs[0]
	x := f.Entry().Instrs[0]
	f.Entry().Remove(x)
	err := Module(m)
	if err == nil || !strings.Contains(err.Error(), "detached") {
		t.Errorf("detached operand not caught: %v", err)
	}
}

func TestSkipsUnreachableBlocks(t *testing.T) {
	// Dominance does not hold in unreachable code; the verifier must
	// not reject it.
	m := parseModule(t, `func @f(%a) {
entry:
  ret %a
orphan:
  %x = add %y, 1
  %y = add %a, 1
  ret %x
}
`)
	if err := Module(m); err != nil {
		t.Errorf("unreachable block must not fail dominance checks: %v", err)
	}
}

func TestErrorNamesFunction(t *testing.T) {
	m := parseModule(t, `func @good() {
entry:
  ret
}

func @bad() {
entry:
  ret
  ret
}
`)
	err := Module(m)
	if err == nil || !strings.Contains(err.Error(), "@bad") {
		t.Errorf("error does not name the offending function: %v", err)
	}
}
