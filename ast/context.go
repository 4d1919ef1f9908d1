package ast

import (
	"sync"

	"github.com/glu-lang/glu/internal/types"
)

// Context owns every node allocated for one compilation unit, together with
// the type interning context shared by Sema and GIL generation. Nodes
// allocated through a Context's New* constructors are tracked for the
// Context's lifetime and are never individually freed — callers do not need
// to worry about dangling back-pointers as long as the Context outlives
// them.
//
// Go's garbage collector already gives every heap pointer a stable address,
// so Context's bump-allocation role is really about lifetime grouping and
// bulk accounting (NodeCount, All) rather than manual memory layout; the
// discipline it enforces is that every node must be reachable from some
// Context, and every child pointer assignment goes through a constructor or
// accessor that also fixes up the parent back-pointer.
type Context struct {
	Types *types.Context

	mu    sync.Mutex
	nodes []Node
}

// NewContext creates an empty Context with a fresh type interning context.
func NewContext() *Context {
	return &Context{Types: types.NewContext()}
}

func (c *Context) track(n Node) Node {
	c.mu.Lock()
	c.nodes = append(c.nodes, n)
	c.mu.Unlock()
	return n
}

// NodeCount returns how many nodes have been allocated through this
// Context.
func (c *Context) NodeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.nodes)
}

// All returns every node allocated through this Context, in allocation
// order. The returned slice is a snapshot.
func (c *Context) All() []Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

func adopt(parent Node, child Node) {
	if child == nil {
		return
	}
	child.setParent(parent)
}

// --- Declarations ---

func (c *Context) NewModule(name string, pkg []string, loc types.SourceLocation) *ModuleDecl {
	m := &ModuleDecl{base: base{loc: loc}, Name: name, Package: pkg}
	return c.track(m).(*ModuleDecl)
}

// AddDecl appends decl to m's declaration list and fixes up its parent.
func (m *ModuleDecl) AddDecl(decl Decl) {
	adopt(m, decl)
	m.Decls = append(m.Decls, decl)
}

func (c *Context) NewParamDecl(name string, ty types.Type, def Expr, loc types.SourceLocation) *ParamDecl {
	p := &ParamDecl{base: base{loc: loc}, Name: name, Type: ty, Default: def}
	adopt(p, def)
	return c.track(p).(*ParamDecl)
}

func (c *Context) NewFunctionDecl(name string, params []*ParamDecl, templateParams []*TemplateParameterDecl, ret types.Type, body *CompoundStmt, vis Visibility, loc types.SourceLocation) *FunctionDecl {
	f := &FunctionDecl{
		base:           base{loc: loc},
		Name:           name,
		Params:         params,
		TemplateParams: templateParams,
		ReturnType:     ret,
		Body:           body,
		Visibility:     vis,
	}
	for _, p := range params {
		adopt(f, p)
	}
	for _, tp := range templateParams {
		adopt(f, tp)
	}
	adopt(f, body)
	return c.track(f).(*FunctionDecl)
}

func (c *Context) NewFieldDecl(name string, ty types.Type, def Expr, loc types.SourceLocation) *FieldDecl {
	fd := &FieldDecl{base: base{loc: loc}, Name: name, Type: ty, Default: def}
	adopt(fd, def)
	return c.track(fd).(*FieldDecl)
}

func (c *Context) NewStructDecl(name string, fields []*FieldDecl, templateParams []*TemplateParameterDecl, vis Visibility, loc types.SourceLocation) *StructDecl {
	s := &StructDecl{base: base{loc: loc}, Name: name, Fields: fields, TemplateParams: templateParams, Visibility: vis}
	for _, f := range fields {
		adopt(s, f)
	}
	for _, tp := range templateParams {
		adopt(s, tp)
	}
	return c.track(s).(*StructDecl)
}

func (c *Context) NewEnumDecl(name string, cases []EnumCase, vis Visibility, loc types.SourceLocation) *EnumDecl {
	e := &EnumDecl{base: base{loc: loc}, Name: name, Cases: cases, Visibility: vis}
	return c.track(e).(*EnumDecl)
}

func (c *Context) NewVarDecl(name string, ty types.Type, initial Expr, loc types.SourceLocation) *VarDecl {
	v := &VarDecl{base: base{loc: loc}, Name: name, Type: ty, Initial: initial}
	adopt(v, initial)
	return c.track(v).(*VarDecl)
}

func (c *Context) NewLetDecl(name string, ty types.Type, initial Expr, loc types.SourceLocation) *LetDecl {
	l := &LetDecl{base: base{loc: loc}, Name: name, Type: ty, Initial: initial}
	adopt(l, initial)
	return c.track(l).(*LetDecl)
}

func (c *Context) NewImportDecl(path []string, alias string, loc types.SourceLocation) *ImportDecl {
	i := &ImportDecl{base: base{loc: loc}, Path: path, Alias: alias}
	return c.track(i).(*ImportDecl)
}

func (c *Context) NewNamespaceDecl(name string, loc types.SourceLocation) *NamespaceDecl {
	n := &NamespaceDecl{base: base{loc: loc}, Name: name}
	return c.track(n).(*NamespaceDecl)
}

func (n *NamespaceDecl) AddDecl(decl Decl) {
	adopt(n, decl)
	n.Decls = append(n.Decls, decl)
}

func (c *Context) NewTypeAliasDecl(name string, aliased types.Type, loc types.SourceLocation) *TypeAliasDecl {
	t := &TypeAliasDecl{base: base{loc: loc}, Name: name, Aliased: aliased}
	return c.track(t).(*TypeAliasDecl)
}

func (c *Context) NewTemplateParameterDecl(name, bound string, loc types.SourceLocation) *TemplateParameterDecl {
	t := &TemplateParameterDecl{base: base{loc: loc}, Name: name, Bound: bound}
	return c.track(t).(*TemplateParameterDecl)
}

func (c *Context) NewForBindingDecl(name string, ty types.Type, loc types.SourceLocation) *ForBindingDecl {
	f := &ForBindingDecl{base: base{loc: loc}, Name: name, Type: ty}
	return c.track(f).(*ForBindingDecl)
}

// --- Statements ---

func (c *Context) NewCompoundStmt(stmts []Stmt, loc types.SourceLocation) *CompoundStmt {
	cs := &CompoundStmt{base: base{loc: loc}, Stmts: stmts}
	for _, s := range stmts {
		adopt(cs, s)
	}
	return c.track(cs).(*CompoundStmt)
}

func (c *Context) NewIfStmt(cond Expr, then *CompoundStmt, els Stmt, loc types.SourceLocation) *IfStmt {
	i := &IfStmt{base: base{loc: loc}, Cond: cond, Then: then, Else: els}
	adopt(i, cond)
	adopt(i, then)
	adopt(i, els)
	return c.track(i).(*IfStmt)
}

func (c *Context) NewWhileStmt(cond Expr, body *CompoundStmt, loc types.SourceLocation) *WhileStmt {
	w := &WhileStmt{base: base{loc: loc}, Cond: cond, Body: body}
	adopt(w, cond)
	adopt(w, body)
	return c.track(w).(*WhileStmt)
}

func (c *Context) NewForStmt(binding *ForBindingDecl, iterable Expr, body *CompoundStmt, loc types.SourceLocation) *ForStmt {
	f := &ForStmt{base: base{loc: loc}, Binding: binding, Iterable: iterable, Body: body}
	adopt(f, binding)
	adopt(f, iterable)
	adopt(f, body)
	return c.track(f).(*ForStmt)
}

func (c *Context) NewReturnStmt(value Expr, loc types.SourceLocation) *ReturnStmt {
	r := &ReturnStmt{base: base{loc: loc}, Value: value}
	adopt(r, value)
	return c.track(r).(*ReturnStmt)
}

func (c *Context) NewBreakStmt(loc types.SourceLocation) *BreakStmt {
	b := &BreakStmt{base: base{loc: loc}}
	return c.track(b).(*BreakStmt)
}

func (c *Context) NewContinueStmt(loc types.SourceLocation) *ContinueStmt {
	cs := &ContinueStmt{base: base{loc: loc}}
	return c.track(cs).(*ContinueStmt)
}

func (c *Context) NewAssignStmt(target Expr, op AssignOp, value Expr, loc types.SourceLocation) *AssignStmt {
	a := &AssignStmt{base: base{loc: loc}, Target: target, Op: op, Value: value}
	adopt(a, target)
	adopt(a, value)
	return c.track(a).(*AssignStmt)
}

func (c *Context) NewExpressionStmt(value Expr, loc types.SourceLocation) *ExpressionStmt {
	e := &ExpressionStmt{base: base{loc: loc}, Value: value}
	adopt(e, value)
	return c.track(e).(*ExpressionStmt)
}

func (c *Context) NewDeclStmt(decl Decl, loc types.SourceLocation) *DeclStmt {
	d := &DeclStmt{base: base{loc: loc}, Decl: decl}
	adopt(d, decl)
	return c.track(d).(*DeclStmt)
}

// --- Expressions ---

func (c *Context) NewIntLiteral(v int64, loc types.SourceLocation) *LiteralExpr {
	l := &LiteralExpr{baseExpr: baseExpr{base: base{loc: loc}}, LitKind: LiteralInt, Int: v}
	return c.track(l).(*LiteralExpr)
}

func (c *Context) NewFloatLiteral(v float64, loc types.SourceLocation) *LiteralExpr {
	l := &LiteralExpr{baseExpr: baseExpr{base: base{loc: loc}}, LitKind: LiteralFloat, Float: v}
	return c.track(l).(*LiteralExpr)
}

func (c *Context) NewStringLiteral(v string, loc types.SourceLocation) *LiteralExpr {
	l := &LiteralExpr{baseExpr: baseExpr{base: base{loc: loc}}, LitKind: LiteralString, Str: v}
	return c.track(l).(*LiteralExpr)
}

func (c *Context) NewCharLiteral(v rune, loc types.SourceLocation) *LiteralExpr {
	l := &LiteralExpr{baseExpr: baseExpr{base: base{loc: loc}}, LitKind: LiteralChar, Char: v}
	return c.track(l).(*LiteralExpr)
}

func (c *Context) NewBoolLiteral(v bool, loc types.SourceLocation) *LiteralExpr {
	l := &LiteralExpr{baseExpr: baseExpr{base: base{loc: loc}}, LitKind: LiteralBool, Bool: v}
	return c.track(l).(*LiteralExpr)
}

func (c *Context) NewNullLiteral(loc types.SourceLocation) *LiteralExpr {
	l := &LiteralExpr{baseExpr: baseExpr{base: base{loc: loc}}, LitKind: LiteralNull}
	return c.track(l).(*LiteralExpr)
}

func (c *Context) NewRefExpr(name string, loc types.SourceLocation) *RefExpr {
	r := &RefExpr{baseExpr: baseExpr{base: base{loc: loc}}, Name: name}
	return c.track(r).(*RefExpr)
}

func (c *Context) NewBinaryOpExpr(op BinaryOp, lhs, rhs Expr, loc types.SourceLocation) *BinaryOpExpr {
	b := &BinaryOpExpr{baseExpr: baseExpr{base: base{loc: loc}}, Op: op, LHS: lhs, RHS: rhs}
	adopt(b, lhs)
	adopt(b, rhs)
	return c.track(b).(*BinaryOpExpr)
}

func (c *Context) NewUnaryOpExpr(op UnaryOp, operand Expr, loc types.SourceLocation) *UnaryOpExpr {
	u := &UnaryOpExpr{baseExpr: baseExpr{base: base{loc: loc}}, Op: op, Operand: operand}
	adopt(u, operand)
	return c.track(u).(*UnaryOpExpr)
}

func (c *Context) NewCallExpr(callee Expr, args []Expr, loc types.SourceLocation) *CallExpr {
	call := &CallExpr{baseExpr: baseExpr{base: base{loc: loc}}, Callee: callee, Args: args}
	adopt(call, callee)
	for _, a := range args {
		adopt(call, a)
	}
	return c.track(call).(*CallExpr)
}

func (c *Context) NewCastExpr(operand Expr, target types.Type, implicit bool, loc types.SourceLocation) *CastExpr {
	cast := &CastExpr{baseExpr: baseExpr{base: base{loc: loc}}, Operand: operand, Target: target, Implicit: implicit}
	adopt(cast, operand)
	return c.track(cast).(*CastExpr)
}

func (c *Context) NewStructMemberExpr(b Expr, member string, loc types.SourceLocation) *StructMemberExpr {
	m := &StructMemberExpr{baseExpr: baseExpr{base: base{loc: loc}}, Base: b, Member: member}
	adopt(m, b)
	return c.track(m).(*StructMemberExpr)
}

func (c *Context) NewPointerDerefExpr(operand Expr, loc types.SourceLocation) *PointerDerefExpr {
	p := &PointerDerefExpr{baseExpr: baseExpr{base: base{loc: loc}}, Operand: operand}
	adopt(p, operand)
	return c.track(p).(*PointerDerefExpr)
}

func (c *Context) NewStructInitializerExpr(st types.Type, fields []StructFieldInit, loc types.SourceLocation) *StructInitializerExpr {
	s := &StructInitializerExpr{baseExpr: baseExpr{base: base{loc: loc}}, StructType: st, Fields: fields}
	for _, f := range fields {
		adopt(s, f.Value)
	}
	return c.track(s).(*StructInitializerExpr)
}

func (c *Context) NewTernaryConditionalExpr(cond, then, els Expr, loc types.SourceLocation) *TernaryConditionalExpr {
	t := &TernaryConditionalExpr{baseExpr: baseExpr{base: base{loc: loc}}, Cond: cond, Then: then, Else: els}
	adopt(t, cond)
	adopt(t, then)
	adopt(t, els)
	return c.track(t).(*TernaryConditionalExpr)
}

// --- Metadata ---

func (c *Context) NewAttribute(name string, args []string, loc types.SourceLocation) *Attribute {
	a := &Attribute{base: base{loc: loc}, Name: name, Args: args}
	return c.track(a).(*Attribute)
}
