// Package gil implements the Glu Intermediate Language: a typed,
// block-argument SSA form lowered from the semantically checked AST.
// Functions own an ordered list of basic blocks; blocks take arguments
// in place of phi nodes, matching how a block-argument SSA form
// threads values across control-flow edges explicitly.
package gil

import "github.com/glu-lang/glu/internal/types"

// Module is one compilation unit's worth of lowered code: an ordered,
// append-only list of functions and globals. Order is significant for
// the textual printer and is otherwise unconstrained.
type Module struct {
	Name      string
	Functions []*Function
	Globals   []*Global
}

// NewModule creates an empty Module.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddFunction appends fn to m's function list.
func (m *Module) AddFunction(fn *Function) { m.Functions = append(m.Functions, fn) }

// AddGlobal appends g to m's global list.
func (m *Module) AddGlobal(g *Global) { m.Globals = append(m.Globals, g) }

// Global is a module-scope storage location, lowered from an ast.VarDecl
// or ast.LetDecl at module scope.
type Global struct {
	Name    string
	Type    types.Type
	Initial *Constant // nil if zero-initialized
}
