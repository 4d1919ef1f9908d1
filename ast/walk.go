package ast

// Children returns n's direct children, in source order. Leaf nodes (most
// Decl/Stmt/Expr variants with no nested nodes, e.g. LiteralExpr, RefExpr,
// BreakStmt) return nil.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *ModuleDecl:
		out := make([]Node, len(v.Decls))
		for i, d := range v.Decls {
			out[i] = d
		}
		return out
	case *NamespaceDecl:
		out := make([]Node, len(v.Decls))
		for i, d := range v.Decls {
			out[i] = d
		}
		return out
	case *FunctionDecl:
		var out []Node
		for _, tp := range v.TemplateParams {
			out = append(out, tp)
		}
		for _, p := range v.Params {
			out = append(out, p)
		}
		if v.Body != nil {
			out = append(out, v.Body)
		}
		return out
	case *ParamDecl:
		if v.Default != nil {
			return []Node{v.Default}
		}
		return nil
	case *StructDecl:
		var out []Node
		for _, tp := range v.TemplateParams {
			out = append(out, tp)
		}
		for _, f := range v.Fields {
			out = append(out, f)
		}
		return out
	case *FieldDecl:
		if v.Default != nil {
			return []Node{v.Default}
		}
		return nil
	case *VarDecl:
		if v.Initial != nil {
			return []Node{v.Initial}
		}
		return nil
	case *LetDecl:
		if v.Initial != nil {
			return []Node{v.Initial}
		}
		return nil
	case *CompoundStmt:
		out := make([]Node, len(v.Stmts))
		for i, s := range v.Stmts {
			out[i] = s
		}
		return out
	case *IfStmt:
		out := []Node{v.Cond, v.Then}
		if v.Else != nil {
			out = append(out, v.Else)
		}
		return out
	case *WhileStmt:
		return []Node{v.Cond, v.Body}
	case *ForStmt:
		return []Node{v.Binding, v.Iterable, v.Body}
	case *ReturnStmt:
		if v.Value != nil {
			return []Node{v.Value}
		}
		return nil
	case *AssignStmt:
		return []Node{v.Target, v.Value}
	case *ExpressionStmt:
		return []Node{v.Value}
	case *DeclStmt:
		return []Node{v.Decl}
	case *BinaryOpExpr:
		return []Node{v.LHS, v.RHS}
	case *UnaryOpExpr:
		return []Node{v.Operand}
	case *CallExpr:
		out := make([]Node, 0, len(v.Args)+1)
		out = append(out, v.Callee)
		for _, a := range v.Args {
			out = append(out, a)
		}
		return out
	case *CastExpr:
		return []Node{v.Operand}
	case *StructMemberExpr:
		return []Node{v.Base}
	case *PointerDerefExpr:
		return []Node{v.Operand}
	case *StructInitializerExpr:
		out := make([]Node, len(v.Fields))
		for i, f := range v.Fields {
			out[i] = f.Value
		}
		return out
	case *TernaryConditionalExpr:
		return []Node{v.Cond, v.Then, v.Else}
	default:
		return nil
	}
}

// Visitor receives one callback per node visited by Walk. Returning false
// from Enter skips that node's children (and its Leave callback).
type Visitor struct {
	Enter func(Node) bool
	Leave func(Node)
}

// Walk performs a single depth-first traversal of n and its descendants,
// invoking v.Enter before visiting children and v.Leave after. Either
// callback may be nil.
func Walk(n Node, v Visitor) {
	if n == nil {
		return
	}
	if v.Enter != nil && !v.Enter(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, v)
	}
	if v.Leave != nil {
		v.Leave(n)
	}
}

// Fold is a typed postorder catamorphism: it computes a value for every
// descendant first, then combines them with fn to produce n's own value.
// Unlike Walk, Fold returns a result — the shape sema's constraint emission
// and gil's lowering both need when a node's generated code/constraints
// depend on its children's generated code/constraints.
func Fold[T any](n Node, fn func(n Node, children []T) T) T {
	childNodes := Children(n)
	results := make([]T, len(childNodes))
	for i, c := range childNodes {
		results[i] = Fold(c, fn)
	}
	return fn(n, results)
}

// ReplaceChild rewrites parent's pointer to old so that it points to
// replacement instead, and fixes up replacement's parent back-pointer. It
// reports whether old was found among parent's direct children. This is
// how Sema's cast-insertion step wraps a bare expression in an implicit
// CastExpr without rebuilding the surrounding tree: the cast is built with
// old as its Operand, and a single ReplaceChild call splices it into old's
// former slot.
func ReplaceChild(parent Node, old, replacement Expr) bool {
	switch v := parent.(type) {
	case *ParamDecl:
		if v.Default == old {
			v.Default = replacement
		} else {
			return false
		}
	case *FieldDecl:
		if v.Default == old {
			v.Default = replacement
		} else {
			return false
		}
	case *VarDecl:
		if v.Initial == old {
			v.Initial = replacement
		} else {
			return false
		}
	case *LetDecl:
		if v.Initial == old {
			v.Initial = replacement
		} else {
			return false
		}
	case *IfStmt:
		if v.Cond == old {
			v.Cond = replacement
		} else {
			return false
		}
	case *WhileStmt:
		if v.Cond == old {
			v.Cond = replacement
		} else {
			return false
		}
	case *ForStmt:
		if v.Iterable == old {
			v.Iterable = replacement
		} else {
			return false
		}
	case *ReturnStmt:
		if v.Value == old {
			v.Value = replacement
		} else {
			return false
		}
	case *AssignStmt:
		switch old {
		case v.Target:
			v.Target = replacement
		case v.Value:
			v.Value = replacement
		default:
			return false
		}
	case *ExpressionStmt:
		if v.Value == old {
			v.Value = replacement
		} else {
			return false
		}
	case *BinaryOpExpr:
		switch old {
		case v.LHS:
			v.LHS = replacement
		case v.RHS:
			v.RHS = replacement
		default:
			return false
		}
	case *UnaryOpExpr:
		if v.Operand == old {
			v.Operand = replacement
		} else {
			return false
		}
	case *CallExpr:
		if v.Callee == old {
			v.Callee = replacement
			break
		}
		found := false
		for i, a := range v.Args {
			if a == old {
				v.Args[i] = replacement
				found = true
				break
			}
		}
		if !found {
			return false
		}
	case *CastExpr:
		if v.Operand == old {
			v.Operand = replacement
		} else {
			return false
		}
	case *StructMemberExpr:
		if v.Base == old {
			v.Base = replacement
		} else {
			return false
		}
	case *PointerDerefExpr:
		if v.Operand == old {
			v.Operand = replacement
		} else {
			return false
		}
	case *StructInitializerExpr:
		found := false
		for i, f := range v.Fields {
			if f.Value == old {
				v.Fields[i].Value = replacement
				found = true
				break
			}
		}
		if !found {
			return false
		}
	case *TernaryConditionalExpr:
		switch old {
		case v.Cond:
			v.Cond = replacement
		case v.Then:
			v.Then = replacement
		case v.Else:
			v.Else = replacement
		default:
			return false
		}
	default:
		return false
	}
	replacement.setParent(parent)
	return true
}
