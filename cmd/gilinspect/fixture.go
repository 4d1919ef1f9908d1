package main

import "github.com/glu-lang/glu/ast"

// buildFixtureModule constructs a small in-memory module exercising
// arithmetic, control flow, and a struct field read — enough surface
// for the pipeline's passes to have something to walk without wiring
// a lexer/parser, which this tool deliberately does not have.
func buildFixtureModule(c *ast.Context) *ast.ModuleDecl {
	m := c.NewModule("fixture", nil, 1)

	m.AddDecl(buildSumFunction(c))
	m.AddDecl(buildClampFunction(c))
	m.AddDecl(buildPointAccessor(c))
	return m
}

func buildSumFunction(c *ast.Context) *ast.FunctionDecl {
	i32 := c.Types.Int(true, 32)
	x := c.NewParamDecl("x", i32, nil, 1)
	y := c.NewParamDecl("y", i32, nil, 1)
	add := c.NewBinaryOpExpr(ast.OpAdd, c.NewRefExpr("x", 1), c.NewRefExpr("y", 1), 1)
	body := c.NewCompoundStmt([]ast.Stmt{c.NewReturnStmt(add, 1)}, 1)
	return c.NewFunctionDecl("sum", []*ast.ParamDecl{x, y}, nil, i32, body, ast.VisibilityPublic, 1)
}

func buildClampFunction(c *ast.Context) *ast.FunctionDecl {
	i32 := c.Types.Int(true, 32)
	v := c.NewParamDecl("v", i32, nil, 1)
	limit := c.NewParamDecl("limit", i32, nil, 1)
	cond := c.NewBinaryOpExpr(ast.OpGt, c.NewRefExpr("v", 1), c.NewRefExpr("limit", 1), 1)
	thenBody := c.NewCompoundStmt([]ast.Stmt{c.NewReturnStmt(c.NewRefExpr("limit", 1), 1)}, 1)
	elseBody := c.NewCompoundStmt([]ast.Stmt{c.NewReturnStmt(c.NewRefExpr("v", 1), 1)}, 1)
	ifStmt := c.NewIfStmt(cond, thenBody, elseBody, 1)
	body := c.NewCompoundStmt([]ast.Stmt{ifStmt}, 1)
	return c.NewFunctionDecl("clamp", []*ast.ParamDecl{v, limit}, nil, i32, body, ast.VisibilityPublic, 1)
}

func buildPointAccessor(c *ast.Context) *ast.FunctionDecl {
	i32 := c.Types.Int(true, 32)
	xField := c.NewFieldDecl("x", i32, nil, 1)
	yField := c.NewFieldDecl("y", i32, nil, 1)
	pointDecl := c.NewStructDecl("Point", []*ast.FieldDecl{xField, yField}, nil, ast.VisibilityPublic, 1)
	pointTy := c.Types.Struct(pointDecl)

	p := c.NewParamDecl("p", pointTy, nil, 1)
	member := c.NewStructMemberExpr(c.NewRefExpr("p", 1), "x", 1)
	body := c.NewCompoundStmt([]ast.Stmt{c.NewReturnStmt(member, 1)}, 1)
	return c.NewFunctionDecl("point_x", []*ast.ParamDecl{p}, nil, i32, body, ast.VisibilityPublic, 1)
}
