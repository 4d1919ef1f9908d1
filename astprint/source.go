package astprint

import (
	"fmt"
	"strings"

	"github.com/glu-lang/glu/ast"
)

// Source re-emits n as Glu-like source text. It is a best-effort,
// lossy re-emitter meant for readable diagnostics and golden-file
// tests, not for round-tripping a parse.
func Source(n ast.Node) string {
	var sb strings.Builder
	p := &srcPrinter{sb: &sb}
	p.node(n)
	return sb.String()
}

type srcPrinter struct {
	sb     *strings.Builder
	indent int
}

func (p *srcPrinter) write(s string) { p.sb.WriteString(s) }

func (p *srcPrinter) writeIndent() { p.sb.WriteString(strings.Repeat("    ", p.indent)) }

func (p *srcPrinter) node(n ast.Node) {
	switch v := n.(type) {
	case *ast.ModuleDecl:
		for i, decl := range v.Decls {
			if i > 0 {
				p.write("\n")
			}
			p.writeIndent()
			p.node(decl)
			p.write("\n")
		}
	case *ast.FunctionDecl:
		if v.Visibility == ast.VisibilityPrivate {
			p.write("private ")
		}
		p.write("fn " + v.Name + "(")
		for i, param := range v.Params {
			if i > 0 {
				p.write(", ")
			}
			p.write(param.Name + ": " + typeString(param.Type))
		}
		p.write(") -> " + typeString(v.ReturnType) + " ")
		if v.Body == nil {
			p.write(";")
			return
		}
		p.node(v.Body)
	case *ast.ParamDecl:
		p.write(v.Name + ": " + typeString(v.Type))
	case *ast.StructDecl:
		p.write("struct " + v.Name + " {\n")
		p.indent++
		for _, f := range v.Fields {
			p.writeIndent()
			p.write(f.Name + ": " + typeString(f.Type) + "\n")
		}
		p.indent--
		p.writeIndent()
		p.write("}")
	case *ast.VarDecl:
		p.write("var " + v.Name + ": " + typeString(v.Type))
		if v.Initial != nil {
			p.write(" = ")
			p.node(v.Initial)
		}
	case *ast.LetDecl:
		p.write("let " + v.Name + ": " + typeString(v.Type))
		if v.Initial != nil {
			p.write(" = ")
			p.node(v.Initial)
		}

	case *ast.CompoundStmt:
		p.write("{\n")
		p.indent++
		for _, s := range v.Stmts {
			p.writeIndent()
			p.node(s)
			p.write("\n")
		}
		p.indent--
		p.writeIndent()
		p.write("}")
	case *ast.IfStmt:
		p.write("if ")
		p.node(v.Cond)
		p.write(" ")
		p.node(v.Then)
		if v.Else != nil {
			p.write(" else ")
			p.node(v.Else)
		}
	case *ast.WhileStmt:
		p.write("while ")
		p.node(v.Cond)
		p.write(" ")
		p.node(v.Body)
	case *ast.ForStmt:
		p.write("for " + v.Binding.Name + " in ")
		p.node(v.Iterable)
		p.write(" ")
		p.node(v.Body)
	case *ast.ReturnStmt:
		p.write("return")
		if v.Value != nil {
			p.write(" ")
			p.node(v.Value)
		}
	case *ast.BreakStmt:
		p.write("break")
	case *ast.ContinueStmt:
		p.write("continue")
	case *ast.AssignStmt:
		p.node(v.Target)
		p.write(" " + assignOpName(v.Op) + " ")
		p.node(v.Value)
	case *ast.ExpressionStmt:
		p.node(v.Value)
	case *ast.DeclStmt:
		p.node(v.Decl)

	case *ast.LiteralExpr:
		p.write(literalValue(v))
	case *ast.RefExpr:
		p.write(v.Name)
	case *ast.BinaryOpExpr:
		p.node(v.LHS)
		p.write(" " + binaryOpName(v.Op) + " ")
		p.node(v.RHS)
	case *ast.UnaryOpExpr:
		p.write(unaryOpName(v.Op))
		p.node(v.Operand)
	case *ast.CallExpr:
		p.node(v.Callee)
		p.write("(")
		for i, a := range v.Args {
			if i > 0 {
				p.write(", ")
			}
			p.node(a)
		}
		p.write(")")
	case *ast.CastExpr:
		p.node(v.Operand)
		p.write(" as " + typeString(v.Target))
	case *ast.StructMemberExpr:
		p.node(v.Base)
		p.write("." + v.Member)
	case *ast.PointerDerefExpr:
		p.write("*")
		p.node(v.Operand)
	case *ast.StructInitializerExpr:
		p.write(typeString(v.StructType) + "{")
		for i, f := range v.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Name + ": ")
			p.node(f.Value)
		}
		p.write("}")
	case *ast.TernaryConditionalExpr:
		p.node(v.Cond)
		p.write(" ? ")
		p.node(v.Then)
		p.write(" : ")
		p.node(v.Else)
	default:
		p.write(fmt.Sprintf("/* %T */", n))
	}
}

func binaryOpName(op ast.BinaryOp) string {
	names := [...]string{"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">=",
		"&&", "||", "&", "|", "^", "<<", ">>"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

func unaryOpName(op ast.UnaryOp) string {
	switch op {
	case ast.OpNeg:
		return "-"
	case ast.OpNot:
		return "!"
	case ast.OpBitNot:
		return "~"
	case ast.OpAddressOf:
		return "&"
	default:
		return "?"
	}
}

func assignOpName(op ast.AssignOp) string {
	switch op {
	case ast.AssignSet:
		return "="
	case ast.AssignAdd:
		return "+="
	case ast.AssignSub:
		return "-="
	case ast.AssignMul:
		return "*="
	case ast.AssignDiv:
		return "/="
	default:
		return "?="
	}
}
