package ir

import "strconv"

// Value is an abstract handle to a constant, a global address, a
// function parameter, or an instruction result.
type Value interface {
	// Name returns the bare name of the value ("" for unnamed).
	Name() string
	// String returns the value in operand syntax, e.g. %x, @g, 42.
	String() string
}

// Const is a compile-time integer constant.
type Const struct {
	Int int64
}

func NewConst(v int64) *Const { return &Const{Int: v} }

func (c *Const) Name() string   { return strconv.FormatInt(c.Int, 10) }
func (c *Const) String() string { return strconv.FormatInt(c.Int, 10) }

// Global is a module-scope storage location. Loads and stores refer to
// it by address.
type Global struct {
	name string
}

func NewGlobal(name string) *Global { return &Global{name: name} }

func (g *Global) Name() string   { return g.name }
func (g *Global) String() string { return "@" + g.name }

// Param is a function parameter.
type Param struct {
	name string
}

func NewParam(name string) *Param { return &Param{name: name} }

func (p *Param) Name() string   { return p.name }
func (p *Param) String() string { return "%" + p.name }
