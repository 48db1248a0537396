package parse

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mirop/mirop/ir"
)

// pending records an instruction whose operand and branch-target
// tokens are resolved once the enclosing function has been read in
// full, so values and blocks may be referenced before they appear.
type pending struct {
	in   *ir.Instr
	ops  []string
	blks []string
	line int
}

type parser struct {
	sc   *bufio.Scanner
	line int

	m *ir.Module

	// per-function state
	fn      *ir.Func
	blk     *ir.Block
	values  map[string]ir.Value
	pend    []pending
	defined map[string]int // result name -> defining line
}

func newParser(r io.Reader) *parser {
	return &parser{sc: bufio.NewScanner(r), m: ir.NewModule()}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Errorf("line %d: "+format, append([]interface{}{p.line}, args...)...)
}

func (p *parser) parse() (*ir.Module, error) {
	for p.sc.Scan() {
		p.line++
		toks := tokenize(p.sc.Text())
		if len(toks) == 0 {
			continue
		}
		var err error
		switch {
		case p.fn == nil && toks[0] == "global":
			err = p.parseGlobal(toks)
		case p.fn == nil && toks[0] == "func":
			err = p.parseFuncHeader(toks)
		case p.fn == nil:
			err = p.errorf("expected global or func, got %q", toks[0])
		case toks[0] == "}":
			err = p.finishFunc(toks)
		case len(toks) == 2 && toks[1] == ":":
			err = p.startBlock(toks[0])
		default:
			err = p.parseInstr(toks)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := p.sc.Err(); err != nil {
		return nil, err
	}
	if p.fn != nil {
		return nil, p.errorf("unexpected end of input inside func @%s", p.fn.Name)
	}
	return p.m, nil
}

func (p *parser) parseGlobal(toks []string) error {
	if len(toks) != 2 || !strings.HasPrefix(toks[1], "@") {
		return p.errorf("malformed global declaration")
	}
	name := toks[1][1:]
	if p.m.Global(name) != nil {
		return p.errorf("duplicate global @%s", name)
	}
	p.m.AddGlobal(name)
	return nil
}

// parseFuncHeader handles: func @name(%a, %b) {
func (p *parser) parseFuncHeader(toks []string) error {
	t := &cursor{p: p, toks: toks}
	t.next() // func
	name, ok := t.ident("@")
	if !ok {
		return p.errorf("malformed func name")
	}
	if p.m.Func(name) != nil {
		return p.errorf("duplicate func @%s", name)
	}
	if !t.expect("(") {
		return p.errorf("expected ( after func name")
	}
	var params []*ir.Param
	seen := make(map[string]bool)
	for !t.peek(")") {
		pn, ok := t.ident("%")
		if !ok {
			return p.errorf("malformed parameter list")
		}
		if seen[pn] {
			return p.errorf("duplicate parameter %%%s", pn)
		}
		seen[pn] = true
		params = append(params, ir.NewParam(pn))
		if !t.peek(")") && !t.expect(",") {
			return p.errorf("expected , in parameter list")
		}
	}
	t.next() // )
	if !t.expect("{") || !t.done() {
		return p.errorf("expected { at end of func header")
	}

	p.fn = ir.NewFunc(name, params...)
	p.blk = nil
	p.values = make(map[string]ir.Value)
	p.defined = make(map[string]int)
	p.pend = nil
	for _, pa := range params {
		p.values[pa.Name()] = pa
	}
	return nil
}

func (p *parser) startBlock(name string) error {
	if p.fn.Block(name) != nil {
		return p.errorf("duplicate block label %s", name)
	}
	p.blk = p.fn.NewBlock(name)
	return nil
}

func (p *parser) finishFunc(toks []string) error {
	if len(toks) != 1 {
		return p.errorf("unexpected tokens after }")
	}
	saved := p.line
	for _, pd := range p.pend {
		p.line = pd.line // restored error position for resolution errors
		for _, tok := range pd.ops {
			v, err := p.resolve(tok)
			if err != nil {
				return err
			}
			pd.in.Operands = append(pd.in.Operands, v)
		}
		for _, bn := range pd.blks {
			b := p.fn.Block(bn)
			if b == nil {
				return p.errorf("unknown block %q", bn)
			}
			pd.in.Blocks = append(pd.in.Blocks, b)
		}
	}
	p.line = saved
	p.fn.ComputeCFG()
	p.m.AddFunc(p.fn)
	p.fn = nil
	p.blk = nil
	return nil
}

func (p *parser) resolve(tok string) (ir.Value, error) {
	switch {
	case strings.HasPrefix(tok, "%"):
		v, ok := p.values[tok[1:]]
		if !ok {
			return nil, p.errorf("unknown value %s", tok)
		}
		return v, nil
	case strings.HasPrefix(tok, "@"):
		g := p.m.Global(tok[1:])
		if g == nil {
			return nil, p.errorf("unknown global %s", tok)
		}
		return g, nil
	default:
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, p.errorf("malformed operand %q", tok)
		}
		return ir.NewConst(n), nil
	}
}

func (p *parser) parseInstr(toks []string) error {
	if p.blk == nil {
		return p.errorf("instruction outside block")
	}
	t := &cursor{p: p, toks: toks}

	var result string
	if strings.HasPrefix(t.cur(), "%") && t.at(1) == "=" {
		result, _ = t.ident("%")
		t.next() // =
	}

	in := &ir.Instr{Result: result}
	pd := pending{in: in, line: p.line}

	volatile := false
	if t.cur() == "volatile" {
		volatile = true
		t.next()
	}
	opTok := t.cur()
	t.next()
	if volatile && opTok != "load" {
		return p.errorf("volatile is only valid on load")
	}

	switch opTok {
	case "load":
		in.Op = ir.Load
		in.Volatile = volatile
		tok, ok := t.operand()
		if !ok {
			return p.errorf("malformed load")
		}
		pd.ops = append(pd.ops, tok)
	case "store":
		in.Op = ir.Store
		val, ok1 := t.operand()
		c := t.expect(",")
		addr, ok2 := t.operand()
		if !ok1 || !c || !ok2 {
			return p.errorf("malformed store")
		}
		pd.ops = append(pd.ops, val, addr)
	case "call":
		in.Op = ir.Call
		callee, ok := t.ident("@")
		if !ok || !t.expect("(") {
			return p.errorf("malformed call")
		}
		in.Callee = callee
		for !t.peek(")") {
			arg, ok := t.operand()
			if !ok {
				return p.errorf("malformed call argument")
			}
			pd.ops = append(pd.ops, arg)
			if !t.peek(")") && !t.expect(",") {
				return p.errorf("expected , in call arguments")
			}
		}
		t.next() // )
	case "phi":
		in.Op = ir.Phi
		for {
			if !t.expect("[") {
				return p.errorf("malformed phi")
			}
			val, ok1 := t.operand()
			c := t.expect(",")
			blk, ok2 := t.blockName()
			if !ok1 || !c || !ok2 || !t.expect("]") {
				return p.errorf("malformed phi edge")
			}
			pd.ops = append(pd.ops, val)
			pd.blks = append(pd.blks, blk)
			if !t.expect(",") {
				break
			}
		}
	case "alloca":
		in.Op = ir.Alloca
	case "br":
		in.Op = ir.Br
		bn, ok := t.blockName()
		if !ok {
			return p.errorf("malformed br")
		}
		pd.blks = append(pd.blks, bn)
	case "condbr":
		in.Op = ir.CondBr
		cond, ok := t.operand()
		c1 := t.expect(",")
		b1, ok1 := t.blockName()
		c2 := t.expect(",")
		b2, ok2 := t.blockName()
		if !ok || !c1 || !ok1 || !c2 || !ok2 {
			return p.errorf("malformed condbr")
		}
		pd.ops = append(pd.ops, cond)
		pd.blks = append(pd.blks, b1, b2)
	case "ret":
		in.Op = ir.Ret
		if !t.done() {
			tok, ok := t.operand()
			if !ok {
				return p.errorf("malformed ret")
			}
			pd.ops = append(pd.ops, tok)
		}
	default:
		op, ok := ir.OpByName(opTok)
		if !ok {
			return p.errorf("unknown instruction %q", opTok)
		}
		in.Op = op
		switch {
		case op.IsBinary():
			a, ok1 := t.operand()
			c := t.expect(",")
			b, ok2 := t.operand()
			if !ok1 || !c || !ok2 {
				return p.errorf("malformed %s", opTok)
			}
			pd.ops = append(pd.ops, a, b)
		case op.IsUnary():
			a, ok := t.operand()
			if !ok {
				return p.errorf("malformed %s", opTok)
			}
			pd.ops = append(pd.ops, a)
		default:
			return p.errorf("%s cannot be written directly", opTok)
		}
	}

	if !t.done() {
		return p.errorf("unexpected token %q", t.cur())
	}

	producesValue := in.Op == ir.Load || in.Op == ir.Phi || in.Op == ir.Alloca ||
		in.Op.IsBinary() || in.Op.IsUnary()
	switch {
	case result == "" && producesValue:
		return p.errorf("%s requires a result name", in.Op)
	case result != "" && !producesValue && in.Op != ir.Call:
		return p.errorf("%s produces no value", in.Op)
	}
	if result != "" {
		if prev, dup := p.defined[result]; dup {
			return p.errorf("duplicate definition of %%%s (first defined on line %d)", result, prev)
		}
		if _, isParam := p.values[result]; isParam {
			return p.errorf("%%%s shadows a parameter", result)
		}
		p.defined[result] = p.line
		p.values[result] = in
	}

	p.blk.Append(in)
	p.pend = append(p.pend, pd)
	return nil
}

// cursor is a token cursor over one source line.
type cursor struct {
	p    *parser
	toks []string
	n    int
}

func (t *cursor) cur() string {
	return t.at(0)
}

func (t *cursor) at(k int) string {
	if t.n+k >= len(t.toks) {
		return ""
	}
	return t.toks[t.n+k]
}

func (t *cursor) next() { t.n++ }

func (t *cursor) done() bool { return t.n >= len(t.toks) }

func (t *cursor) peek(tok string) bool { return t.cur() == tok }

func (t *cursor) expect(tok string) bool {
	if t.cur() != tok {
		return false
	}
	t.next()
	return true
}

// ident consumes a prefixed identifier (%name or @name) and returns
// the bare name.
func (t *cursor) ident(prefix string) (string, bool) {
	c := t.cur()
	if !strings.HasPrefix(c, prefix) || len(c) == len(prefix) {
		return "", false
	}
	t.next()
	return c[len(prefix):], true
}

// operand consumes a value operand token: %name, @name or an integer.
func (t *cursor) operand() (string, bool) {
	c := t.cur()
	if c == "" || isPunct(c) {
		return "", false
	}
	t.next()
	return c, true
}

// blockName consumes a bare block label reference.
func (t *cursor) blockName() (string, bool) {
	c := t.cur()
	if c == "" || isPunct(c) || strings.HasPrefix(c, "%") || strings.HasPrefix(c, "@") {
		return "", false
	}
	t.next()
	return c, true
}

func isPunct(tok string) bool {
	switch tok {
	case "=", ",", "(", ")", "[", "]", "{", "}", ":":
		return true
	}
	return false
}

// tokenize splits one line into tokens; ';' starts a comment.
func tokenize(s string) []string {
	if n := strings.IndexByte(s, ';'); n >= 0 {
		s = s[:n]
	}
	var toks []string
	for n := 0; n < len(s); {
		c := s[n]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			n++
		case strings.IndexByte("=,()[]{}:", c) >= 0:
			toks = append(toks, string(c))
			n++
		default:
			start := n
			for n < len(s) && s[n] != ' ' && s[n] != '\t' && s[n] != '\r' &&
				strings.IndexByte("=,()[]{}:", s[n]) < 0 {
				n++
			}
			toks = append(toks, s[start:n])
		}
	}
	return toks
}
