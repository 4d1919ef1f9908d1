package sema

import (
	"fmt"

	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/diag"
	"github.com/glu-lang/glu/internal/types"
)

// conversionSite records a position where an implicit conversion might be
// needed once the solver has resolved both sides: parent is the node
// whose child pointer will be rewritten, child is the expression as
// written, and target is the type it must convert to.
type conversionSite struct {
	parent ast.Node
	child  ast.Expr
	target types.Type
}

// pendingOverload records a disjunction whose winning candidate must be
// written back onto expr.ResolvedFunc once the solver commits.
type pendingOverload struct {
	constraint *Constraint
	resolve    func(decl ast.Decl)
}

// Emitter walks one function body, emitting constraints into a System and
// recording the bookkeeping Apply needs afterward (conversion sites,
// pending overload write-backs).
type Emitter struct {
	tc     *types.Context
	scopes *Builder
	diags  *diag.Bag

	sys        *System
	conversions []conversionSite
	overloads   []pendingOverload
	returnType  types.Type
}

// NewEmitter creates an Emitter sharing tc's type context and scopes'
// lexical scope tree, reporting unresolved-identifier diagnostics to diags.
func NewEmitter(tc *types.Context, scopes *Builder, diags *diag.Bag) *Emitter {
	return &Emitter{tc: tc, scopes: scopes, diags: diags}
}

// EmitFunction builds the constraint system for fn's body (and parameter
// default expressions), returning both the System and the bookkeeping
// needed to apply its solution.
func (e *Emitter) EmitFunction(fn *ast.FunctionDecl) (*System, []conversionSite, []pendingOverload) {
	e.sys = NewSystem()
	e.conversions = nil
	e.overloads = nil
	e.returnType = fn.ReturnType

	for _, p := range fn.Params {
		if p.Default != nil {
			e.emitExpr(p.Default)
			e.conversions = append(e.conversions, conversionSite{parent: p, child: p.Default, target: p.Type})
		}
	}
	if fn.Body != nil {
		e.emitStmt(fn.Body)
	}
	return e.sys, e.conversions, e.overloads
}

func declType(d ast.Decl, tc *types.Context) types.Type {
	switch v := d.(type) {
	case *ast.ParamDecl:
		return v.Type
	case *ast.VarDecl:
		return v.Type
	case *ast.LetDecl:
		return v.Type
	case *ast.ForBindingDecl:
		return v.Type
	case *ast.FunctionDecl:
		return v.FunctionType(tc)
	case *ast.BuiltinDecl:
		return v.Type
	case *ast.TemplateParameterDecl:
		return tc.TemplateParam(v)
	default:
		return tc.Unresolved(d.DeclName())
	}
}

func (e *Emitter) emitStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.CompoundStmt:
		for _, child := range v.Stmts {
			e.emitStmt(child)
		}
	case *ast.IfStmt:
		e.emitExpr(v.Cond)
		e.sys.Add(Constraint{Kind: KindEqual, LHS: v.Cond.Type(), RHS: e.tc.Bool(), Node: v})
		e.emitStmt(v.Then)
		if v.Else != nil {
			e.emitStmt(v.Else)
		}
	case *ast.WhileStmt:
		e.emitExpr(v.Cond)
		e.sys.Add(Constraint{Kind: KindEqual, LHS: v.Cond.Type(), RHS: e.tc.Bool(), Node: v})
		e.emitStmt(v.Body)
	case *ast.ForStmt:
		e.emitExpr(v.Iterable)
		elem := e.tc.NewTypeVariable()
		switch it := e.resolveStatic(v.Iterable.Type()).(type) {
		case types.DynamicArrayType:
			elem = it.Element
		case types.StaticArrayType:
			elem = it.Element
		}
		v.Binding.Type = elem
		e.emitStmt(v.Body)
	case *ast.ReturnStmt:
		if v.Value != nil {
			e.emitExpr(v.Value)
			e.conversions = append(e.conversions, conversionSite{parent: v, child: v.Value, target: e.returnType})
		}
	case *ast.AssignStmt:
		e.emitExpr(v.Target)
		e.emitExpr(v.Value)
		e.conversions = append(e.conversions, conversionSite{parent: v, child: v.Value, target: v.Target.Type()})
		e.checkAssignable(v.Target)
	case *ast.ExpressionStmt:
		e.emitExpr(v.Value)
	case *ast.DeclStmt:
		e.emitDecl(v.Decl)
	}
}

func (e *Emitter) emitDecl(d ast.Decl) {
	switch v := d.(type) {
	case *ast.VarDecl:
		if v.Initial != nil {
			e.emitExpr(v.Initial)
			if v.Type == nil {
				v.Type = e.tc.NewTypeVariable()
				e.sys.Add(Constraint{Kind: KindEqual, LHS: v.Type, RHS: v.Initial.Type(), Node: v})
			} else {
				e.conversions = append(e.conversions, conversionSite{parent: v, child: v.Initial, target: v.Type})
			}
		}
	case *ast.LetDecl:
		if v.Initial != nil {
			e.emitExpr(v.Initial)
			if v.Type == nil {
				v.Type = e.tc.NewTypeVariable()
				e.sys.Add(Constraint{Kind: KindEqual, LHS: v.Type, RHS: v.Initial.Type(), Node: v})
			} else {
				e.conversions = append(e.conversions, conversionSite{parent: v, child: v.Initial, target: v.Type})
			}
		}
	}
}

// resolveStatic looks a type up in the type system directly, without
// substitution — used only where the type is already known to be fully
// resolved by construction (an iterable's declared element type never
// contains a fresh type variable).
func (e *Emitter) resolveStatic(t types.Type) types.Type { return types.Canonical(t) }

func (e *Emitter) checkAssignable(target ast.Expr) {
	ref, ok := target.(*ast.RefExpr)
	if !ok {
		switch target.(type) {
		case *ast.StructMemberExpr, *ast.PointerDerefExpr:
		default:
			e.diags.Error(diag.KindAssignToImmutable, target.Loc(),
				"assignment target is not an assignable expression")
		}
		return
	}
	switch ref.Resolved.(type) {
	case *ast.LetDecl:
		e.diags.Error(diag.KindAssignToImmutable, target.Loc(),
			fmt.Sprintf("cannot assign to immutable binding %q", ref.Name))
	case *ast.ParamDecl:
		e.diags.Error(diag.KindAssignToImmutable, target.Loc(),
			fmt.Sprintf("cannot assign to parameter %q", ref.Name))
	case *ast.ForBindingDecl:
		e.diags.Error(diag.KindAssignToImmutable, target.Loc(),
			fmt.Sprintf("cannot assign to loop binding %q", ref.Name))
	}
}

func (e *Emitter) emitExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.LiteralExpr:
		e.emitLiteral(v)
	case *ast.RefExpr:
		e.emitRef(v)
	case *ast.BinaryOpExpr:
		e.emitBinaryOp(v)
	case *ast.UnaryOpExpr:
		e.emitUnaryOp(v)
	case *ast.CallExpr:
		e.emitCall(v)
	case *ast.CastExpr:
		e.emitCast(v)
	case *ast.StructMemberExpr:
		e.emitStructMember(v)
	case *ast.PointerDerefExpr:
		e.emitPointerDeref(v)
	case *ast.StructInitializerExpr:
		e.emitStructInitializer(v)
	case *ast.TernaryConditionalExpr:
		e.emitTernary(v)
	}
}

func (e *Emitter) emitLiteral(v *ast.LiteralExpr) {
	switch v.LitKind {
	case ast.LiteralInt:
		tv := e.tc.NewTypeVariable()
		v.SetType(tv)
		e.sys.Add(Constraint{Kind: KindDefaultable, LHS: tv, Default: e.tc.Int(true, 32), Node: v})
	case ast.LiteralFloat:
		tv := e.tc.NewTypeVariable()
		v.SetType(tv)
		e.sys.Add(Constraint{Kind: KindDefaultable, LHS: tv, Default: e.tc.Float(64), Node: v})
	case ast.LiteralString:
		v.SetType(e.tc.DynamicArray(e.tc.Char()))
	case ast.LiteralChar:
		v.SetType(e.tc.Char())
	case ast.LiteralBool:
		v.SetType(e.tc.Bool())
	case ast.LiteralNull:
		v.SetType(e.tc.Null())
	}
}

func (e *Emitter) emitRef(v *ast.RefExpr) {
	scope := e.scopes.ScopeFor(v)
	decl, ok := scope.Lookup(v.Name)
	if !ok {
		e.diags.Error(diag.KindUnresolvedIdentifier, v.Loc(), fmt.Sprintf("unresolved identifier %q", v.Name))
		v.SetType(e.tc.NewTypeVariable())
		return
	}
	v.Resolved = decl
	v.SetType(declType(decl, e.tc))
}

func (e *Emitter) emitBinaryOp(v *ast.BinaryOpExpr) {
	e.emitExpr(v.LHS)
	e.emitExpr(v.RHS)
	result := e.tc.NewTypeVariable()
	v.SetType(result)

	candidates := binaryOverloads(e.tc, v.Op)
	disjuncts := make([][]Constraint, 0, len(candidates))
	decls := make([]ast.Decl, 0, len(candidates))
	for _, cand := range candidates {
		ft := cand.Type.(types.FunctionType)
		disjuncts = append(disjuncts, []Constraint{
			{Kind: KindEqual, LHS: v.LHS.Type(), RHS: ft.Params[0]},
			{Kind: KindEqual, LHS: v.RHS.Type(), RHS: ft.Params[1]},
			{Kind: KindEqual, LHS: result, RHS: ft.Return},
		})
		decls = append(decls, cand)
	}
	ptr := e.sys.Add(Constraint{Kind: KindDisjunction, Disjuncts: disjuncts, ResolvedDecls: decls, Node: v})
	e.overloads = append(e.overloads, pendingOverload{constraint: ptr, resolve: func(d ast.Decl) { v.ResolvedFunc = d }})
}

func (e *Emitter) emitUnaryOp(v *ast.UnaryOpExpr) {
	e.emitExpr(v.Operand)
	if v.Op == ast.OpAddressOf {
		v.SetType(e.tc.Pointer(v.Operand.Type()))
		return
	}

	result := e.tc.NewTypeVariable()
	v.SetType(result)
	candidates := unaryOverloads(e.tc, v.Op)
	disjuncts := make([][]Constraint, 0, len(candidates))
	decls := make([]ast.Decl, 0, len(candidates))
	for _, cand := range candidates {
		ft := cand.Type.(types.FunctionType)
		disjuncts = append(disjuncts, []Constraint{
			{Kind: KindEqual, LHS: v.Operand.Type(), RHS: ft.Params[0]},
			{Kind: KindEqual, LHS: result, RHS: ft.Return},
		})
		decls = append(decls, cand)
	}
	ptr := e.sys.Add(Constraint{Kind: KindDisjunction, Disjuncts: disjuncts, ResolvedDecls: decls, Node: v})
	e.overloads = append(e.overloads, pendingOverload{constraint: ptr, resolve: func(d ast.Decl) { v.ResolvedFunc = d }})
}

func (e *Emitter) emitCall(v *ast.CallExpr) {
	e.emitExpr(v.Callee)
	for _, a := range v.Args {
		e.emitExpr(a)
	}
	result := e.tc.NewTypeVariable()
	v.SetType(result)

	ft, ok := types.Canonical(v.Callee.Type()).(types.FunctionType)
	if !ok {
		return
	}
	e.sys.Add(Constraint{Kind: KindEqual, LHS: result, RHS: ft.Return, Node: v})
	n := len(ft.Params)
	variadicOk := ft.CVariadic && len(v.Args) >= n
	if !variadicOk && len(v.Args) != n {
		e.diags.Error(diag.KindArityMismatch, v.Loc(),
			fmt.Sprintf("expected %d arguments, got %d", len(ft.Params), len(v.Args)))
		n = min(n, len(v.Args))
	}
	for i := 0; i < n; i++ {
		e.conversions = append(e.conversions, conversionSite{parent: v, child: v.Args[i], target: ft.Params[i]})
	}
}

func (e *Emitter) emitCast(v *ast.CastExpr) {
	e.emitExpr(v.Operand)
	v.SetType(v.Target)
	if !v.Implicit {
		e.sys.Add(Constraint{Kind: KindCheckedCast, LHS: v.Operand.Type(), RHS: v.Target, Node: v})
	}
}

func (e *Emitter) emitStructMember(v *ast.StructMemberExpr) {
	e.emitExpr(v.Base)
	result := e.tc.NewTypeVariable()
	v.SetType(result)

	st, ok := types.Canonical(v.Base.Type()).(types.StructType)
	if !ok {
		return
	}
	decl, ok := st.DeclRef.(*ast.StructDecl)
	if !ok {
		return
	}
	for _, f := range decl.Fields {
		if f.Name == v.Member {
			v.FieldDecl = f
			e.sys.Add(Constraint{Kind: KindValueMember, LHS: result, RHS: f.Type, Member: v.Member, Node: v})
			return
		}
	}
	e.diags.Error(diag.KindUnknownMember, v.Loc(), fmt.Sprintf("struct %q has no member %q", decl.Name, v.Member))
}

func (e *Emitter) emitPointerDeref(v *ast.PointerDerefExpr) {
	e.emitExpr(v.Operand)
	if pt, ok := types.Canonical(v.Operand.Type()).(types.PointerType); ok {
		v.SetType(pt.Pointee)
	} else {
		v.SetType(e.tc.NewTypeVariable())
	}
}

func (e *Emitter) emitStructInitializer(v *ast.StructInitializerExpr) {
	v.SetType(v.StructType)

	var decl *ast.StructDecl
	if st, ok := types.Canonical(v.StructType).(types.StructType); ok {
		decl, _ = st.DeclRef.(*ast.StructDecl)
	}

	for _, f := range v.Fields {
		e.emitExpr(f.Value)
		if decl == nil {
			continue
		}
		for _, fd := range decl.Fields {
			if fd.Name == f.Name {
				e.conversions = append(e.conversions, conversionSite{parent: v, child: f.Value, target: fd.Type})
				break
			}
		}
	}
}

func (e *Emitter) emitTernary(v *ast.TernaryConditionalExpr) {
	e.emitExpr(v.Cond)
	e.emitExpr(v.Then)
	e.emitExpr(v.Else)
	e.sys.Add(Constraint{Kind: KindEqual, LHS: v.Cond.Type(), RHS: e.tc.Bool(), Node: v})
	result := e.tc.NewTypeVariable()
	v.SetType(result)
	e.sys.Add(Constraint{Kind: KindEqual, LHS: result, RHS: v.Then.Type(), Node: v})
	e.sys.Add(Constraint{Kind: KindEqual, LHS: result, RHS: v.Else.Type(), Node: v})
}
