package astprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/diag"
	"github.com/glu-lang/glu/sema"
)

const loc = 1

func TestDumpShowsResolvedOverloadAndType(t *testing.T) {
	c := ast.NewContext()
	x := c.NewParamDecl("x", c.Types.Int(true, 32), nil, loc)
	y := c.NewParamDecl("y", c.Types.Int(true, 32), nil, loc)
	add := c.NewBinaryOpExpr(ast.OpAdd, c.NewRefExpr("x", loc), c.NewRefExpr("y", loc), loc)
	ret := c.NewReturnStmt(add, loc)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, loc)
	fn := c.NewFunctionDecl("sum", []*ast.ParamDecl{x, y}, nil, c.Types.Int(true, 32), body, ast.VisibilityPublic, loc)
	assertChecked(t, c, fn)

	out := Dump(fn)
	assert.Contains(t, out, "FunctionDecl sum -> Int32")
	assert.Contains(t, out, "BinaryOpExpr + ->")
	assert.Contains(t, out, "Int32")
}

func TestSourceRendersFunctionBody(t *testing.T) {
	c := ast.NewContext()
	ret := c.NewReturnStmt(c.NewIntLiteral(42, loc), loc)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, loc)
	fn := c.NewFunctionDecl("answer", nil, nil, c.Types.Int(true, 32), body, ast.VisibilityPublic, loc)
	assertChecked(t, c, fn)

	out := Source(fn)
	assert.Contains(t, out, "fn answer() -> Int32 {")
	assert.Contains(t, out, "return 42")
}

func assertChecked(t *testing.T, c *ast.Context, fn *ast.FunctionDecl) {
	t.Helper()
	m := c.NewModule("test", nil, loc)
	m.AddDecl(fn)
	diags := diag.NewBag()
	ok := sema.Check(c, m, diags)
	if !ok {
		t.Fatalf("sema.Check failed: %v", diags.All())
	}
}
