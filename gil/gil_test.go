package gil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/diag"
	"github.com/glu-lang/glu/internal/types"
	"github.com/glu-lang/glu/sema"
)

const loc = types.SourceLocation(1)

func checkedFunction(t *testing.T, fn *ast.FunctionDecl) {
	c := ast.NewContext()
	m := c.NewModule("test", nil, loc)
	m.AddDecl(fn)
	diags := diag.NewBag()
	ok := sema.Check(c, m, diags)
	require.True(t, ok, "%v", diags.All())
}

func TestFunctionArithmeticLowersToSingleBlock(t *testing.T) {
	c := ast.NewContext()
	x := c.NewParamDecl("x", c.Types.Int(true, 32), nil, loc)
	y := c.NewParamDecl("y", c.Types.Int(true, 32), nil, loc)
	add := c.NewBinaryOpExpr(ast.OpAdd, c.NewRefExpr("x", loc), c.NewRefExpr("y", loc), loc)
	ret := c.NewReturnStmt(add, loc)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, loc)
	fn := c.NewFunctionDecl("sum", []*ast.ParamDecl{x, y}, nil, c.Types.Int(true, 32), body, ast.VisibilityPublic, loc)
	checkedFunction(t, fn)

	gf := lowerFunction(c.Types, fn)
	require.Len(t, gf.Blocks, 1)
	insts := gf.Blocks[0].Instructions()

	var sawArith, sawReturn bool
	for _, inst := range insts {
		switch v := inst.(type) {
		case *ArithmeticInst:
			sawArith = true
			assert.Equal(t, ArithAdd, v.Op)
		case *ReturnInst:
			sawReturn = true
			assert.False(t, v.IsVoid)
		}
	}
	assert.True(t, sawArith)
	assert.True(t, sawReturn)
}

func TestIfStmtLowersToThreeExtraBlocks(t *testing.T) {
	c := ast.NewContext()
	x := c.NewParamDecl("x", c.Types.Bool(), nil, loc)
	thenBody := c.NewCompoundStmt([]ast.Stmt{c.NewReturnStmt(c.NewIntLiteral(1, loc), loc)}, loc)
	elseBody := c.NewCompoundStmt([]ast.Stmt{c.NewReturnStmt(c.NewIntLiteral(2, loc), loc)}, loc)
	ifStmt := c.NewIfStmt(c.NewRefExpr("x", loc), thenBody, elseBody, loc)
	body := c.NewCompoundStmt([]ast.Stmt{ifStmt}, loc)
	fn := c.NewFunctionDecl("branch", []*ast.ParamDecl{x}, nil, c.Types.Int(true, 32), body, ast.VisibilityPublic, loc)
	checkedFunction(t, fn)

	gf := lowerFunction(c.Types, fn)
	// entry + then + else + join
	assert.Equal(t, 4, len(gf.Blocks))
	entryTerm := gf.Blocks[0].Terminator()
	_, isCondBr := entryTerm.(*CondBrInst)
	assert.True(t, isCondBr)
}

func TestTernaryLowersWithJoinBlockArgument(t *testing.T) {
	c := ast.NewContext()
	cond := c.NewParamDecl("c", c.Types.Bool(), nil, loc)
	tern := c.NewTernaryConditionalExpr(c.NewRefExpr("c", loc), c.NewIntLiteral(1, loc), c.NewIntLiteral(2, loc), loc)
	ret := c.NewReturnStmt(tern, loc)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, loc)
	fn := c.NewFunctionDecl("pick", []*ast.ParamDecl{cond}, nil, c.Types.Int(true, 32), body, ast.VisibilityPublic, loc)
	checkedFunction(t, fn)

	gf := lowerFunction(c.Types, fn)
	var joinBlock *BasicBlock
	for _, b := range gf.Blocks {
		if strings.HasPrefix(b.Name, "ternary.join") {
			joinBlock = b
		}
	}
	require.NotNil(t, joinBlock)
	assert.Len(t, joinBlock.Args, 1)
}

func TestUnlinkRemovesInstructionInPlace(t *testing.T) {
	fn := NewFunction("f", nil, nil)
	b := fn.NewBlock("entry")
	one := fn.Append(b, &Constant{ConstKind: KindIntegerLiteral, IntVal: 1}, nil)
	two := fn.Append(b, &Constant{ConstKind: KindIntegerLiteral, IntVal: 2}, nil)
	three := fn.Append(b, &Constant{ConstKind: KindIntegerLiteral, IntVal: 3}, nil)

	fn.Unlink(two)

	insts := b.Instructions()
	require.Len(t, insts, 2)
	assert.Same(t, one, insts[0])
	assert.Same(t, three, insts[1])
}

func TestPrintRendersModuleAndFunction(t *testing.T) {
	c := ast.NewContext()
	ret := c.NewReturnStmt(c.NewIntLiteral(42, loc), loc)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, loc)
	fn := c.NewFunctionDecl("answer", nil, nil, c.Types.Int(true, 32), body, ast.VisibilityPublic, loc)
	checkedFunction(t, fn)

	m := NewModule("test")
	m.AddFunction(lowerFunction(c.Types, fn))

	out := Print(m)
	assert.Contains(t, out, "module test {")
	assert.Contains(t, out, "func @answer")
	assert.Contains(t, out, "integer_literal 42")
	assert.Contains(t, out, "return")
}

func TestUntypedLiteralAdditionLowersToIntAdd(t *testing.T) {
	c := ast.NewContext()
	add := c.NewBinaryOpExpr(ast.OpAdd, c.NewIntLiteral(1, loc), c.NewIntLiteral(2, loc), loc)
	ret := c.NewReturnStmt(add, loc)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, loc)
	fn := c.NewFunctionDecl("sum_literals", nil, nil, c.Types.Int(true, 32), body, ast.VisibilityPublic, loc)
	checkedFunction(t, fn)

	m := NewModule("test")
	m.AddFunction(lowerFunction(c.Types, fn))

	out := Print(m)
	assert.Contains(t, out, " add ")
	assert.NotContains(t, out, "fadd")
}

func TestFloatAdditionLowersToFAdd(t *testing.T) {
	c := ast.NewContext()
	f64 := c.Types.Float(64)
	x := c.NewParamDecl("x", f64, nil, loc)
	y := c.NewParamDecl("y", f64, nil, loc)
	add := c.NewBinaryOpExpr(ast.OpAdd, c.NewRefExpr("x", loc), c.NewRefExpr("y", loc), loc)
	ret := c.NewReturnStmt(add, loc)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, loc)
	fn := c.NewFunctionDecl("fsum", []*ast.ParamDecl{x, y}, nil, f64, body, ast.VisibilityPublic, loc)
	checkedFunction(t, fn)

	gf := lowerFunction(c.Types, fn)
	var sawFAdd bool
	for _, inst := range gf.Blocks[0].Instructions() {
		if v, ok := inst.(*ArithmeticInst); ok {
			sawFAdd = v.Op == ArithFAdd
		}
	}
	assert.True(t, sawFAdd)

	m := NewModule("test")
	m.AddFunction(gf)
	assert.Contains(t, Print(m), "fadd")
}
