package ir

// Module is a translation unit: global storage locations followed by
// function definitions, in source order.
type Module struct {
	Globals []*Global
	Funcs   []*Func
}

// NewModule returns an empty module.
func NewModule() *Module { return &Module{} }

// AddGlobal registers a global and returns it.
func (m *Module) AddGlobal(name string) *Global {
	g := NewGlobal(name)
	m.Globals = append(m.Globals, g)
	return g
}

// Global returns the global with the given name, or nil.
func (m *Module) Global(name string) *Global {
	for _, g := range m.Globals {
		if g.name == name {
			return g
		}
	}
	return nil
}

// AddFunc registers a function definition.
func (m *Module) AddFunc(f *Func) { m.Funcs = append(m.Funcs, f) }

// Func returns the function with the given name, or nil.
func (m *Module) Func(name string) *Func {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}
