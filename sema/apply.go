package sema

import (
	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/internal/types"
)

// Apply commits a Unique solution back onto the AST: every expression's
// result type is rewritten from its placeholder type variable to the
// resolved concrete type, every disjunction's winning candidate is written
// onto its ResolvedFunc slot, and an implicit CastExpr is spliced in at
// every conversion site where the child's resolved type differs from the
// target it had to convert to.
func Apply(ctx *ast.Context, fn *ast.FunctionDecl, res Result, conversions []conversionSite, overloads []pendingOverload) {
	resolveTypes(fn, res.Subst)

	for _, po := range overloads {
		if idx, ok := res.Chosen[po.constraint]; ok {
			po.resolve(po.constraint.ResolvedDecls[idx])
		}
	}

	for _, site := range conversions {
		insertCastIfNeeded(ctx, site)
	}
}

func resolveTypes(fn *ast.FunctionDecl, subst substitution) {
	ast.Walk(fn, ast.Visitor{Enter: func(n ast.Node) bool {
		if expr, ok := n.(ast.Expr); ok {
			expr.SetType(subst.resolve(expr.Type()))
		}
		return true
	}})
	for _, p := range fn.Params {
		p.Type = subst.resolve(p.Type)
	}
	fn.ReturnType = subst.resolve(fn.ReturnType)
}

// insertCastIfNeeded splices an implicit CastExpr between site.parent and
// site.child when their resolved types are not already equal — mirroring
// how an explicit `as` cast is represented, so GIL-gen never needs a
// separate "implicit conversion" instruction family.
func insertCastIfNeeded(ctx *ast.Context, site conversionSite) {
	childType := site.child.Type()
	if types.Equal(childType, site.target) {
		return
	}
	cast := ctx.NewCastExpr(site.child, site.target, true, site.child.Loc())
	cast.SetType(site.target)
	ast.ReplaceChild(site.parent, site.child, cast)
}
