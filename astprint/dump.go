// Package astprint renders a typed AST two ways: Dump produces an
// indented tree showing every node's kind, resolved type, and
// resolved declaration (a debugging aid for Sema output); Source
// re-emits the same tree as Glu-like source text.
package astprint

import (
	"fmt"
	"strings"

	"github.com/glu-lang/glu/ast"
)

type dumper struct {
	sb     strings.Builder
	indent int
}

func (d *dumper) line(format string, args ...any) {
	d.sb.WriteString(strings.Repeat("  ", d.indent))
	fmt.Fprintf(&d.sb, format, args...)
	d.sb.WriteByte('\n')
}

func (d *dumper) nested(f func()) {
	d.indent++
	f()
	d.indent--
}

// Dump renders n and its descendants as an indented tree. Every node
// prints its Go type name, its resolved Type for expressions, and its
// ResolvedFunc/Resolved decl where one exists, so the output makes
// post-Sema state visible at a glance.
func Dump(n ast.Node) string {
	d := &dumper{}
	d.node(n)
	return d.sb.String()
}

func (d *dumper) node(n ast.Node) {
	if n == nil {
		d.line("<nil>")
		return
	}
	switch v := n.(type) {
	case *ast.ModuleDecl:
		d.line("ModuleDecl %s", v.Name)
		d.nested(func() {
			for _, decl := range v.Decls {
				d.node(decl)
			}
		})
	case *ast.FunctionDecl:
		d.line("FunctionDecl %s -> %s", v.Name, typeString(v.ReturnType))
		d.nested(func() {
			for _, p := range v.Params {
				d.node(p)
			}
			if v.Body != nil {
				d.node(v.Body)
			}
		})
	case *ast.ParamDecl:
		d.line("ParamDecl %s: %s", v.Name, typeString(v.Type))
	case *ast.StructDecl:
		d.line("StructDecl %s", v.Name)
		d.nested(func() {
			for _, f := range v.Fields {
				d.node(f)
			}
		})
	case *ast.FieldDecl:
		d.line("FieldDecl %s: %s", v.Name, typeString(v.Type))
	case *ast.EnumDecl:
		d.line("EnumDecl %s", v.Name)
		d.nested(func() {
			for _, c := range v.Cases {
				d.line("EnumCase %s = %d", c.Name, c.Value)
			}
		})
	case *ast.VarDecl:
		d.line("VarDecl %s: %s", v.Name, typeString(v.Type))
		if v.Initial != nil {
			d.nested(func() { d.node(v.Initial) })
		}
	case *ast.LetDecl:
		d.line("LetDecl %s: %s", v.Name, typeString(v.Type))
		if v.Initial != nil {
			d.nested(func() { d.node(v.Initial) })
		}
	case *ast.ImportDecl:
		d.line("ImportDecl %s as %s", strings.Join(v.Path, "."), v.Alias)
	case *ast.NamespaceDecl:
		d.line("NamespaceDecl %s", v.Name)
		d.nested(func() {
			for _, decl := range v.Decls {
				d.node(decl)
			}
		})
	case *ast.TypeAliasDecl:
		d.line("TypeAliasDecl %s = %s", v.Name, typeString(v.Aliased))
	case *ast.TemplateParameterDecl:
		d.line("TemplateParameterDecl %s", v.Name)
	case *ast.ForBindingDecl:
		d.line("ForBindingDecl %s: %s", v.Name, typeString(v.Type))
	case *ast.BuiltinDecl:
		d.line("BuiltinDecl %s: %s", v.Name, typeString(v.Type))

	case *ast.CompoundStmt:
		d.line("CompoundStmt")
		d.nested(func() {
			for _, s := range v.Stmts {
				d.node(s)
			}
		})
	case *ast.IfStmt:
		d.line("IfStmt")
		d.nested(func() {
			d.node(v.Cond)
			d.node(v.Then)
			if v.Else != nil {
				d.node(v.Else)
			}
		})
	case *ast.WhileStmt:
		d.line("WhileStmt")
		d.nested(func() {
			d.node(v.Cond)
			d.node(v.Body)
		})
	case *ast.ForStmt:
		d.line("ForStmt %s", v.Binding.Name)
		d.nested(func() {
			d.node(v.Iterable)
			d.node(v.Body)
		})
	case *ast.ReturnStmt:
		d.line("ReturnStmt")
		if v.Value != nil {
			d.nested(func() { d.node(v.Value) })
		}
	case *ast.BreakStmt:
		d.line("BreakStmt")
	case *ast.ContinueStmt:
		d.line("ContinueStmt")
	case *ast.AssignStmt:
		d.line("AssignStmt op=%s", assignOpName(v.Op))
		d.nested(func() {
			d.node(v.Target)
			d.node(v.Value)
		})
	case *ast.ExpressionStmt:
		d.line("ExpressionStmt")
		d.nested(func() { d.node(v.Value) })
	case *ast.DeclStmt:
		d.line("DeclStmt")
		d.nested(func() { d.node(v.Decl) })

	case *ast.LiteralExpr:
		d.line("LiteralExpr %s: %s", literalValue(v), typeString(v.Type()))
	case *ast.RefExpr:
		d.line("RefExpr %s -> %s: %s", v.Name, resolvedName(v.Resolved), typeString(v.Type()))
	case *ast.BinaryOpExpr:
		d.line("BinaryOpExpr %s -> %s: %s", binaryOpName(v.Op), resolvedName(v.ResolvedFunc), typeString(v.Type()))
		d.nested(func() {
			d.node(v.LHS)
			d.node(v.RHS)
		})
	case *ast.UnaryOpExpr:
		d.line("UnaryOpExpr %s -> %s: %s", unaryOpName(v.Op), resolvedName(v.ResolvedFunc), typeString(v.Type()))
		d.nested(func() { d.node(v.Operand) })
	case *ast.CallExpr:
		d.line("CallExpr: %s", typeString(v.Type()))
		d.nested(func() {
			d.node(v.Callee)
			for _, a := range v.Args {
				d.node(a)
			}
		})
	case *ast.CastExpr:
		kind := "explicit"
		if v.Implicit {
			kind = "implicit"
		}
		d.line("CastExpr (%s) to %s", kind, typeString(v.Target))
		d.nested(func() { d.node(v.Operand) })
	case *ast.StructMemberExpr:
		d.line("StructMemberExpr .%s: %s", v.Member, typeString(v.Type()))
		d.nested(func() { d.node(v.Base) })
	case *ast.PointerDerefExpr:
		d.line("PointerDerefExpr: %s", typeString(v.Type()))
		d.nested(func() { d.node(v.Operand) })
	case *ast.StructInitializerExpr:
		d.line("StructInitializerExpr %s", typeString(v.StructType))
		d.nested(func() {
			for _, f := range v.Fields {
				d.line("field %s", f.Name)
				d.nested(func() { d.node(f.Value) })
			}
		})
	case *ast.TernaryConditionalExpr:
		d.line("TernaryConditionalExpr: %s", typeString(v.Type()))
		d.nested(func() {
			d.node(v.Cond)
			d.node(v.Then)
			d.node(v.Else)
		})
	default:
		d.line("%T", n)
	}
}

func typeString(t interface{ String() string }) string {
	if t == nil {
		return "?"
	}
	return t.String()
}

func resolvedName(d ast.Decl) string {
	if d == nil {
		return "<unresolved>"
	}
	return d.DeclName()
}

func literalValue(l *ast.LiteralExpr) string {
	switch l.LitKind {
	case ast.LiteralInt:
		return fmt.Sprintf("%d", l.Int)
	case ast.LiteralFloat:
		return fmt.Sprintf("%g", l.Float)
	case ast.LiteralString:
		return fmt.Sprintf("%q", l.Str)
	case ast.LiteralChar:
		return fmt.Sprintf("%q", l.Char)
	case ast.LiteralBool:
		return fmt.Sprintf("%v", l.Bool)
	case ast.LiteralNull:
		return "null"
	default:
		return "?"
	}
}
