// Package sema implements Hindley-Milner-style constraint-based semantic
// analysis: scope construction, constraint emission over the untyped AST,
// a unification solver with overload-resolution backtracking, and the
// fixed-order semantic passes that run once a unique solution is found.
package sema

import (
	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/internal/types"
)

// ConstraintKind is the closed set of relations the emission walker can
// produce.
type ConstraintKind int

const (
	// KindBind pins a type variable to a concrete type outright. The
	// emission walker does not produce it: a parameter's declared type is
	// used directly as the type of references to it.
	KindBind ConstraintKind = iota
	// KindEqual requires two types to unify exactly, used for operand
	// positions (e.g. both arms of a ternary).
	KindEqual
	// KindConversion requires LHS to be implicitly convertible to RHS. The
	// emission walker does not produce it: implicit-conversion sites
	// (initializers with a declared type, returns, assigned values,
	// arguments) are recorded as conversionSites, and Apply inserts a cast
	// at each one without checking it against IsValidConversion.
	KindConversion
	// KindArgumentConversion is a KindConversion raised at a call argument
	// position, kept distinct so diagnostics can name the parameter index.
	// Like KindConversion, the emission walker does not produce it.
	KindArgumentConversion
	// KindCheckedCast validates an explicit `as` cast is between types the
	// conversion table (or a narrowing numeric cast) allows.
	KindCheckedCast
	// KindValueMember requires LHS, the result type of a member access, to
	// be the type RHS of the field named Member; the emission walker looks
	// the field up on the base struct before emitting it.
	KindValueMember
	// KindDefaultable proposes Default as LHS's type if nothing else pins
	// it once the simple constraints are applied, before disjunction search
	// (untyped integer/float literals default to Int32/Float64).
	KindDefaultable
	// KindDisjunction offers a set of alternative constraint sets
	// (candidate overloads); exactly one must lead to a consistent solution.
	KindDisjunction
)

// Constraint is one relation emitted against the type system, tagged with
// the AST node it was generated for so failures can be reported precisely.
type Constraint struct {
	Kind ConstraintKind

	LHS, RHS types.Type
	Member   string
	Default  types.Type

	// Disjuncts holds, for KindDisjunction only, one constraint slice per
	// candidate overload. ResolvedDecls[i] names the declaration that
	// disjunct i would select if chosen.
	Disjuncts     [][]Constraint
	ResolvedDecls []ast.Decl

	Node ast.Node
	ArgIndex int // meaningful only for KindArgumentConversion
}
