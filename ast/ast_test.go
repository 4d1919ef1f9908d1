package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glu-lang/glu/internal/types"
)

const loc1 types.SourceLocation = 1

func buildSample(c *Context) *FunctionDecl {
	lhs := c.NewRefExpr("x", loc1)
	rhs := c.NewIntLiteral(1, loc1)
	add := c.NewBinaryOpExpr(OpAdd, lhs, rhs, loc1)
	ret := c.NewReturnStmt(add, loc1)
	body := c.NewCompoundStmt([]Stmt{ret}, loc1)
	param := c.NewParamDecl("x", c.Types.Int(true, 32), nil, loc1)
	return c.NewFunctionDecl("addOne", []*ParamDecl{param}, nil, c.Types.Int(true, 32), body, VisibilityPublic, loc1)
}

func TestParentPointersWiredOnConstruction(t *testing.T) {
	c := NewContext()
	fn := buildSample(c)

	require.NotNil(t, fn.Body)
	assert.Equal(t, Node(fn), fn.Body.Parent())

	ret := fn.Body.Stmts[0].(*ReturnStmt)
	assert.Equal(t, Node(fn.Body), ret.Parent())

	add := ret.Value.(*BinaryOpExpr)
	assert.Equal(t, Node(ret), add.Parent())
	assert.Equal(t, Node(add), add.LHS.Parent())
	assert.Equal(t, Node(add), add.RHS.Parent())
}

func TestWalkVisitsEveryDescendant(t *testing.T) {
	c := NewContext()
	fn := buildSample(c)

	var kinds []Kind
	Walk(fn, Visitor{Enter: func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	}})

	assert.Contains(t, kinds, KindFunctionDecl)
	assert.Contains(t, kinds, KindParamDecl)
	assert.Contains(t, kinds, KindCompoundStmt)
	assert.Contains(t, kinds, KindReturnStmt)
	assert.Contains(t, kinds, KindBinaryOpExpr)
	assert.Contains(t, kinds, KindRefExpr)
	assert.Contains(t, kinds, KindLiteralExpr)
}

func TestWalkEnterFalseSkipsChildren(t *testing.T) {
	c := NewContext()
	fn := buildSample(c)

	visited := 0
	Walk(fn, Visitor{Enter: func(n Node) bool {
		visited++
		return n.Kind() != KindCompoundStmt
	}})
	// FunctionDecl + ParamDecl + CompoundStmt, nothing under the body.
	assert.Equal(t, 3, visited)
}

func TestFoldCountsNodes(t *testing.T) {
	c := NewContext()
	fn := buildSample(c)

	count := Fold(fn, func(n Node, children []int) int {
		total := 1
		for _, c := range children {
			total += c
		}
		return total
	})
	// FunctionDecl, ParamDecl, CompoundStmt, ReturnStmt, BinaryOpExpr, RefExpr, LiteralExpr
	assert.Equal(t, 7, count)
}

func TestReplaceChildSplicesInCastAndFixesParent(t *testing.T) {
	c := NewContext()
	fn := buildSample(c)
	add := fn.Body.Stmts[0].(*ReturnStmt).Value.(*BinaryOpExpr)
	oldRHS := add.RHS

	cast := c.NewCastExpr(oldRHS, c.Types.Int(true, 64), true, loc1)
	ok := ReplaceChild(add, oldRHS, cast)

	require.True(t, ok)
	assert.Same(t, cast, add.RHS)
	assert.Equal(t, Node(add), cast.Parent())
	assert.Equal(t, Node(cast), oldRHS.Parent())
}

func TestReplaceChildReportsFalseWhenNotFound(t *testing.T) {
	c := NewContext()
	fn := buildSample(c)
	add := fn.Body.Stmts[0].(*ReturnStmt).Value.(*BinaryOpExpr)
	other := c.NewIntLiteral(9, loc1)
	replacement := c.NewIntLiteral(10, loc1)

	assert.False(t, ReplaceChild(add, other, replacement))
}

func TestContextTracksEveryAllocatedNode(t *testing.T) {
	c := NewContext()
	buildSample(c)
	// FunctionDecl, ParamDecl, CompoundStmt, ReturnStmt, BinaryOpExpr, RefExpr, LiteralExpr
	assert.Equal(t, 7, c.NodeCount())
}

func TestIsCategoryPredicates(t *testing.T) {
	assert.True(t, IsDecl(KindFunctionDecl))
	assert.False(t, IsDecl(KindIfStmt))
	assert.True(t, IsStmt(KindIfStmt))
	assert.True(t, IsExpr(KindBinaryOpExpr))
	assert.True(t, IsMetadata(KindAttribute))
	assert.False(t, IsExpr(KindAttribute))
}
