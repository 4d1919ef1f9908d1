package sema

import (
	"fmt"

	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/diag"
	"github.com/glu-lang/glu/internal/types"
)

// Pass is one post-solve semantic check. Passes run over the fully typed,
// cast-inserted AST, after Apply has committed a unique solution — they
// never touch the constraint system.
type Pass interface {
	Name() string
	Run(fn *ast.FunctionDecl, diags *diag.Bag)
}

// Passes lists the post-solve checks in their fixed execution order, which
// keeps diagnostic ordering reproducible.
var Passes = []Pass{
	duplicateDeclarationsPass{},
	validAttributesPass{},
	returnPathsPass{},
	unreachableCodePass{},
	unusedBindingsPass{},
	validLiteralsPass{},
}

// RunPasses executes every registered pass against fn in order.
func RunPasses(fn *ast.FunctionDecl, diags *diag.Bag) {
	for _, p := range Passes {
		p.Run(fn, diags)
	}
}

type duplicateDeclarationsPass struct{}

func (duplicateDeclarationsPass) Name() string { return "duplicate-declarations" }

func (duplicateDeclarationsPass) Run(fn *ast.FunctionDecl, diags *diag.Bag) {
	seen := map[string]bool{}
	for _, p := range fn.Params {
		if seen[p.Name] {
			diags.Error(diag.KindDuplicateDeclaration, p.Loc(), fmt.Sprintf("duplicate parameter %q", p.Name))
		}
		seen[p.Name] = true
	}
	if fn.Body == nil {
		return
	}
	checkBlock(fn.Body, diags)
}

func checkBlock(block *ast.CompoundStmt, diags *diag.Bag) {
	seen := map[string]bool{}
	for _, s := range block.Stmts {
		ds, ok := s.(*ast.DeclStmt)
		if !ok {
			continue
		}
		name := ds.Decl.DeclName()
		if seen[name] {
			diags.Error(diag.KindDuplicateDeclaration, ds.Loc(), fmt.Sprintf("duplicate declaration %q", name))
		}
		seen[name] = true
	}
}

// returnPathsPass warns when a non-void function's body can fall off the
// end without an explicit return on every path. It only handles the
// structurally obvious cases (trailing return, or every branch of a
// trailing if/else returns) rather than full reachability analysis.
type returnPathsPass struct{}

func (returnPathsPass) Name() string { return "return-paths" }

func (returnPathsPass) Run(fn *ast.FunctionDecl, diags *diag.Bag) {
	if fn.Body == nil {
		return
	}
	if fn.ReturnType == nil || fn.ReturnType.Kind() == types.KindVoid {
		return
	}
	if allPathsReturn(fn.Body) {
		return
	}
	diags.Warn(diag.KindUnreachableCode, fn.Loc(),
		fmt.Sprintf("function %q may fall off the end without returning a value", fn.Name))
}

func allPathsReturn(block *ast.CompoundStmt) bool {
	if len(block.Stmts) == 0 {
		return false
	}
	switch last := block.Stmts[len(block.Stmts)-1].(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		if last.Else == nil {
			return false
		}
		thenOk := allPathsReturn(last.Then)
		var elseOk bool
		switch e := last.Else.(type) {
		case *ast.CompoundStmt:
			elseOk = allPathsReturn(e)
		case *ast.IfStmt:
			elseOk = allPathsReturn(&ast.CompoundStmt{Stmts: []ast.Stmt{e}})
		}
		return thenOk && elseOk
	default:
		return false
	}
}

// unreachableCodePass warns about statements following an unconditional
// return, break, or continue within the same block.
type unreachableCodePass struct{}

func (unreachableCodePass) Name() string { return "unreachable-code" }

func (unreachableCodePass) Run(fn *ast.FunctionDecl, diags *diag.Bag) {
	if fn.Body == nil {
		return
	}
	ast.Walk(fn.Body, ast.Visitor{Enter: func(n ast.Node) bool {
		block, ok := n.(*ast.CompoundStmt)
		if !ok {
			return true
		}
		for i, s := range block.Stmts {
			if isTerminator(s) && i < len(block.Stmts)-1 {
				next := block.Stmts[i+1]
				diags.Warn(diag.KindUnreachableCode, next.Loc(), "unreachable statement")
				break
			}
		}
		return true
	}})
}

func isTerminator(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	default:
		return false
	}
}

// unusedBindingsPass warns about a let/var binding that is declared but
// never read via a RefExpr anywhere in the function.
type unusedBindingsPass struct{}

func (unusedBindingsPass) Name() string { return "unused-bindings" }

func (unusedBindingsPass) Run(fn *ast.FunctionDecl, diags *diag.Bag) {
	if fn.Body == nil {
		return
	}
	declared := map[ast.Decl]string{}
	ast.Walk(fn.Body, ast.Visitor{Enter: func(n ast.Node) bool {
		if ds, ok := n.(*ast.DeclStmt); ok {
			switch d := ds.Decl.(type) {
			case *ast.VarDecl:
				declared[d] = d.Name
			case *ast.LetDecl:
				declared[d] = d.Name
			}
		}
		return true
	}})
	if len(declared) == 0 {
		return
	}
	ast.Walk(fn.Body, ast.Visitor{Enter: func(n ast.Node) bool {
		if ref, ok := n.(*ast.RefExpr); ok {
			delete(declared, ref.Resolved)
		}
		return true
	}})
	for d, name := range declared {
		diags.Warn(diag.KindUnusedBinding, d.Loc(), fmt.Sprintf("binding %q is never read", name))
	}
}

// validAttributeNames is the closed table of attribute names a FunctionDecl
// may carry. Attributes are only modeled on FunctionDecl today (ast.Attribute
// is attached nowhere else), so the table has one target rather than a
// name-to-DeclKind-set mapping; an unrecognized name is rejected the same as
// one attached to a decl kind that doesn't permit it.
var validAttributeNames = map[string]bool{
	"extern":      true,
	"entry_point": true,
	"deprecated":  true,
}

// validAttributesPass rejects an attribute name the table above doesn't
// recognize.
type validAttributesPass struct{}

func (validAttributesPass) Name() string { return "valid-attributes" }

func (validAttributesPass) Run(fn *ast.FunctionDecl, diags *diag.Bag) {
	for _, attr := range fn.Attributes {
		if !validAttributeNames[attr.Name] {
			diags.Error(diag.KindInvalidAttributeTarget, attr.Loc(),
				fmt.Sprintf("attribute %q is not valid on function %q", attr.Name, fn.Name))
		}
	}
}

// validLiteralsPass checks that every integer literal's written value fits
// within the width and signedness of the concrete type the solver bound it
// to — the Go-port form of the ExpressibleByIntegerLiteral constraint
// failing at a fixed value rather than a type.
type validLiteralsPass struct{}

func (validLiteralsPass) Name() string { return "valid-literals" }

func (validLiteralsPass) Run(fn *ast.FunctionDecl, diags *diag.Bag) {
	if fn.Body == nil {
		return
	}
	ast.Walk(fn.Body, ast.Visitor{Enter: func(n ast.Node) bool {
		lit, ok := n.(*ast.LiteralExpr)
		if !ok || lit.LitKind != ast.LiteralInt {
			return true
		}
		it, ok := types.Canonical(lit.Type()).(types.IntType)
		if !ok {
			return true
		}
		if !intFitsWidth(lit.Int, it) {
			diags.Error(diag.KindInvalidLiteralForTarget, lit.Loc(),
				fmt.Sprintf("literal %d does not fit in %s", lit.Int, it.String()))
		}
		return true
	}})
}

func intFitsWidth(v int64, t types.IntType) bool {
	if t.Signed {
		if t.Width >= 64 {
			return true
		}
		max := int64(1)<<(uint(t.Width)-1) - 1
		min := -(int64(1) << (uint(t.Width) - 1))
		return v >= min && v <= max
	}
	if v < 0 {
		return false
	}
	if t.Width >= 64 {
		return true
	}
	max := int64(1)<<uint(t.Width) - 1
	return v <= max
}
