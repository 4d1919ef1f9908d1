package sema

import (
	"fmt"

	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/diag"
	"github.com/glu-lang/glu/internal/types"
)

// Check runs the full semantic analysis pipeline over module: scope
// construction, constraint emission, solving, substitution application
// (including implicit cast insertion), and the fixed-order post-solve
// passes. Diagnostics from every stage accumulate in diags rather than
// aborting at the first error, so a single Check call surfaces every
// problem in the module in one pass.
//
// Check returns true iff diags holds no error-severity diagnostic
// afterward — callers (GIL generation) should skip lowering entirely when
// it returns false, since any function whose constraint system failed to
// reach a unique solution still has unresolved type variables in its AST.
func Check(ctx *ast.Context, module *ast.ModuleDecl, diags *diag.Bag) bool {
	scopes := Build(module)
	emitter := NewEmitter(ctx.Types, scopes, diags)

	for _, d := range module.Decls {
		fn, ok := d.(*ast.FunctionDecl)
		if !ok || fn.Body == nil {
			continue
		}
		checkFunction(ctx, emitter, fn, diags)
	}
	return !diags.HasErrors()
}

func checkFunction(ctx *ast.Context, emitter *Emitter, fn *ast.FunctionDecl, diags *diag.Bag) {
	sys, conversions, overloads := emitter.EmitFunction(fn)
	result := Solve(sys)

	for _, f := range result.Failures {
		diags.Error(failureKind(f), failureLocation(f), f.Reason)
	}

	switch result.Disposition {
	case NoSolution:
		diags.Error(diag.KindNoMatchingOverload, fn.Loc(),
			fmt.Sprintf("function %q has no consistent typing", fn.Name))
		return
	case MultipleSolutions:
		diags.Error(diag.KindAmbiguousOverload, fn.Loc(),
			fmt.Sprintf("function %q has more than one consistent typing", fn.Name))
		return
	}

	Apply(ctx, fn, result, conversions, overloads)
	RunPasses(fn, diags)
}

func failureKind(f Failure) diag.Kind {
	switch f.Constraint.Kind {
	case KindCheckedCast:
		return diag.KindInvalidCast
	case KindConversion, KindArgumentConversion:
		return diag.KindInvalidConversion
	case KindValueMember:
		return diag.KindUnknownMember
	case KindDisjunction:
		if f.Reason == "ambiguous overload" {
			return diag.KindAmbiguousOverload
		}
		return diag.KindNoMatchingOverload
	default:
		return diag.KindTypeMismatch
	}
}

func failureLocation(f Failure) types.SourceLocation {
	if f.Constraint.Node != nil {
		return f.Constraint.Node.Loc()
	}
	return 0
}
