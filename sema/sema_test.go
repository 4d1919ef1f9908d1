package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/diag"
	"github.com/glu-lang/glu/internal/types"
)

const l = types.SourceLocation(1)

func moduleWith(c *ast.Context, fn *ast.FunctionDecl) *ast.ModuleDecl {
	m := c.NewModule("test", nil, l)
	m.AddDecl(fn)
	return m
}

func TestIntegerLiteralDefaultsToInt32(t *testing.T) {
	c := ast.NewContext()
	lit := c.NewIntLiteral(42, l)
	ret := c.NewReturnStmt(lit, l)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, l)
	fn := c.NewFunctionDecl("answer", nil, nil, c.Types.Int(true, 32), body, ast.VisibilityPublic, l)
	module := moduleWith(c, fn)

	diags := diag.NewBag()
	ok := Check(c, module, diags)

	require.True(t, ok, "%v", diags.All())
	assert.True(t, types.Equal(lit.Type(), c.Types.Int(true, 32)))
}

func TestBinaryOpResolvesToExactIntOverload(t *testing.T) {
	c := ast.NewContext()
	x := c.NewParamDecl("x", c.Types.Int(true, 32), nil, l)
	y := c.NewParamDecl("y", c.Types.Int(true, 32), nil, l)
	refX := c.NewRefExpr("x", l)
	refY := c.NewRefExpr("y", l)
	add := c.NewBinaryOpExpr(ast.OpAdd, refX, refY, l)
	ret := c.NewReturnStmt(add, l)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, l)
	fn := c.NewFunctionDecl("sum", []*ast.ParamDecl{x, y}, nil, c.Types.Int(true, 32), body, ast.VisibilityPublic, l)
	module := moduleWith(c, fn)

	diags := diag.NewBag()
	ok := Check(c, module, diags)

	require.True(t, ok, "%v", diags.All())
	require.NotNil(t, add.ResolvedFunc)
	assert.True(t, types.Equal(add.Type(), c.Types.Int(true, 32)))
}

func TestImplicitWideningInsertsCastOnReturn(t *testing.T) {
	c := ast.NewContext()
	lit := c.NewIntLiteral(7, l)
	ret := c.NewReturnStmt(lit, l)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, l)
	fn := c.NewFunctionDecl("widen", nil, nil, c.Types.Int(true, 64), body, ast.VisibilityPublic, l)
	module := moduleWith(c, fn)

	diags := diag.NewBag()
	ok := Check(c, module, diags)

	require.True(t, ok, "%v", diags.All())
	cast, isCast := ret.Value.(*ast.CastExpr)
	require.True(t, isCast)
	assert.True(t, cast.Implicit)
	assert.True(t, types.Equal(cast.Target, c.Types.Int(true, 64)))
	assert.Same(t, lit, cast.Operand)
}

func TestAssignToImmutableBindingDiagnoses(t *testing.T) {
	c := ast.NewContext()
	letX := c.NewLetDecl("x", c.Types.Int(true, 32), c.NewIntLiteral(1, l), l)
	declStmt := c.NewDeclStmt(letX, l)
	target := c.NewRefExpr("x", l)
	assign := c.NewAssignStmt(target, ast.AssignSet, c.NewIntLiteral(2, l), l)
	body := c.NewCompoundStmt([]ast.Stmt{declStmt, assign}, l)
	fn := c.NewFunctionDecl("reassign", nil, nil, c.Types.Void(), body, ast.VisibilityPublic, l)
	module := moduleWith(c, fn)

	diags := diag.NewBag()
	ok := Check(c, module, diags)

	assert.False(t, ok)
	found := false
	for _, d := range diags.All() {
		if d.Kind == diag.KindAssignToImmutable {
			found = true
		}
	}
	assert.True(t, found)
}

func TestUntypedOperandsResolveToInt32WithoutAmbiguity(t *testing.T) {
	c := ast.NewContext()
	lhs := c.NewIntLiteral(1, l)
	rhs := c.NewIntLiteral(2, l)
	add := c.NewBinaryOpExpr(ast.OpAdd, lhs, rhs, l)
	ret := c.NewReturnStmt(add, l)
	body := c.NewCompoundStmt([]ast.Stmt{ret}, l)
	fn := c.NewFunctionDecl("sum_literals", nil, nil, c.Types.Int(true, 32), body, ast.VisibilityPublic, l)
	module := moduleWith(c, fn)

	diags := diag.NewBag()
	ok := Check(c, module, diags)

	require.True(t, ok, "%v", diags.All())
	for _, d := range diags.All() {
		assert.NotEqual(t, diag.KindAmbiguousOverload, d.Kind)
	}
	assert.True(t, types.Equal(add.Type(), c.Types.Int(true, 32)))
}

func TestAssignToParamDiagnoses(t *testing.T) {
	c := ast.NewContext()
	x := c.NewParamDecl("x", c.Types.Int(true, 32), nil, l)
	assign := c.NewAssignStmt(c.NewRefExpr("x", l), ast.AssignSet, c.NewIntLiteral(2, l), l)
	body := c.NewCompoundStmt([]ast.Stmt{assign}, l)
	fn := c.NewFunctionDecl("reassign_param", []*ast.ParamDecl{x}, nil, c.Types.Void(), body, ast.VisibilityPublic, l)
	module := moduleWith(c, fn)

	diags := diag.NewBag()
	ok := Check(c, module, diags)

	assert.False(t, ok)
	found := false
	for _, d := range diags.All() {
		if d.Kind == diag.KindAssignToImmutable {
			found = true
		}
	}
	assert.True(t, found)
}

func TestUnrecognizedAttributeDiagnoses(t *testing.T) {
	c := ast.NewContext()
	body := c.NewCompoundStmt(nil, l)
	fn := c.NewFunctionDecl("tagged", nil, nil, c.Types.Void(), body, ast.VisibilityPublic, l)
	fn.Attributes = []*ast.Attribute{c.NewAttribute("not_a_real_attribute", nil, l)}
	module := moduleWith(c, fn)

	diags := diag.NewBag()
	ok := Check(c, module, diags)

	assert.False(t, ok)
	found := false
	for _, d := range diags.All() {
		if d.Kind == diag.KindInvalidAttributeTarget {
			found = true
		}
	}
	assert.True(t, found)
}

func TestKnownAttributeDoesNotDiagnose(t *testing.T) {
	c := ast.NewContext()
	body := c.NewCompoundStmt(nil, l)
	fn := c.NewFunctionDecl("entry", nil, nil, c.Types.Void(), body, ast.VisibilityPublic, l)
	fn.Attributes = []*ast.Attribute{c.NewAttribute("entry_point", nil, l)}
	module := moduleWith(c, fn)

	diags := diag.NewBag()
	ok := Check(c, module, diags)

	require.True(t, ok, "%v", diags.All())
}

func TestOversizedIntLiteralDiagnoses(t *testing.T) {
	// 5,000,000,000 has no surrounding context to pick a wider type, so it
	// defaults to Int32 (§4.3's Defaultable resolution) and then overflows it.
	c := ast.NewContext()
	lit := c.NewIntLiteral(5_000_000_000, l)
	exprStmt := c.NewExpressionStmt(lit, l)
	body := c.NewCompoundStmt([]ast.Stmt{exprStmt}, l)
	fn := c.NewFunctionDecl("overflow", nil, nil, c.Types.Void(), body, ast.VisibilityPublic, l)
	module := moduleWith(c, fn)

	diags := diag.NewBag()
	ok := Check(c, module, diags)

	assert.False(t, ok)
	found := false
	for _, d := range diags.All() {
		if d.Kind == diag.KindInvalidLiteralForTarget {
			found = true
		}
	}
	assert.True(t, found)
}

func TestUnreachableCodeAfterReturnWarns(t *testing.T) {
	c := ast.NewContext()
	ret := c.NewReturnStmt(nil, l)
	after := c.NewExpressionStmt(c.NewIntLiteral(1, l), l)
	body := c.NewCompoundStmt([]ast.Stmt{ret, after}, l)
	fn := c.NewFunctionDecl("deadcode", nil, nil, c.Types.Void(), body, ast.VisibilityPublic, l)
	module := moduleWith(c, fn)

	diags := diag.NewBag()
	ok := Check(c, module, diags)

	require.True(t, ok, "%v", diags.All())
	found := false
	for _, d := range diags.All() {
		if d.Kind == diag.KindUnreachableCode && d.Severity == diag.SeverityWarning {
			found = true
		}
	}
	assert.True(t, found)
}
