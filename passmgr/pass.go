// Package passmgr implements the GIL pass manager: an ordered chain of
// module-rewriting passes with configurable before/after printing.
package passmgr

import "github.com/glu-lang/glu/gil"

// Pass rewrites a Module, returning the (possibly identical) rewritten
// result.
type Pass interface {
	Name() string
	Run(m *gil.Module) *gil.Module
}

// PassFunc adapts a named function to the Pass interface.
type PassFunc struct {
	N string
	F func(*gil.Module) *gil.Module
}

func (p PassFunc) Name() string              { return p.N }
func (p PassFunc) Run(m *gil.Module) *gil.Module { return p.F(m) }
