package sema

import "github.com/glu-lang/glu/internal/types"

// Disposition classifies how a constraint system resolved.
type Disposition int

const (
	Unique Disposition = iota
	NoSolution
	MultipleSolutions
)

// System accumulates constraints emitted for one function body and solves
// them as a batch.
type System struct {
	simple       []Constraint
	disjunctions []*Constraint
	defaultables []Constraint
}

// NewSystem creates an empty constraint system.
func NewSystem() *System { return &System{} }

// Add files c into the appropriate bucket by its Kind. For KindDisjunction,
// Add returns the stable *Constraint identity that Result.Chosen will later
// key on — callers that need to look up which candidate won (e.g. to
// resolve a call's callee) should hold onto it.
func (sys *System) Add(c Constraint) *Constraint {
	switch c.Kind {
	case KindDisjunction:
		stored := c
		sys.disjunctions = append(sys.disjunctions, &stored)
		return sys.disjunctions[len(sys.disjunctions)-1]
	case KindDefaultable:
		sys.defaultables = append(sys.defaultables, c)
	default:
		sys.simple = append(sys.simple, c)
	}
	return nil
}

// Failure describes one constraint that could not be satisfied.
type Failure struct {
	Constraint Constraint
	Reason     string
}

// Result is the outcome of Solve.
type Result struct {
	Subst        substitution
	Disposition  Disposition
	Failures     []Failure
	// Chosen records, for each disjunction constraint that reached a unique
	// solution, the index of the winning candidate in Disjuncts/ResolvedDecls.
	Chosen map[*Constraint]int
}

// Solve applies every simple constraint directly, pins any still-unbound
// defaultable type variable (untyped integer/float literals) to its
// default, then resolves disjunctions by partitioning them into
// independent color classes (by shared type variables) and backtracking
// within each class over its candidate combinations.
//
// Defaultables are pinned before disjunction search, not after: an
// operator overload set like `+`'s is overloaded across every
// width/signedness, so with both operand type variables left free an
// untyped literal expression such as `1 + 2` would unify against every
// candidate and solving would report it ambiguous. Pinning first means
// the disjunction search sees concrete operand types and a single
// candidate survives, matching how a literal with no other context
// takes its default type before, not after, overload resolution.
func Solve(sys *System) Result {
	res := Result{Subst: substitution{}, Chosen: map[*Constraint]int{}}

	for _, c := range sys.simple {
		if ok, reason := applySimple(res.Subst, c); !ok {
			res.Failures = append(res.Failures, Failure{Constraint: c, Reason: reason})
		}
	}

	applyDefaultables(res.Subst, sys.defaultables)

	classes := partitionByColorClass(sys.disjunctions)
	overall := Unique
	for _, class := range classes {
		solutions := searchClass(res.Subst, class)
		switch len(solutions) {
		case 0:
			overall = worse(overall, NoSolution)
			for _, c := range class {
				res.Failures = append(res.Failures, Failure{Constraint: *c, Reason: "no matching overload"})
			}
		case 1:
			res.Subst = solutions[0].subst
			for idx, chosen := range solutions[0].chosen {
				res.Chosen[class[idx]] = chosen
			}
		default:
			overall = worse(overall, MultipleSolutions)
			for _, c := range class {
				res.Failures = append(res.Failures, Failure{Constraint: *c, Reason: "ambiguous overload"})
			}
		}
	}

	if len(res.Failures) > 0 && overall == Unique {
		overall = NoSolution
	}
	res.Disposition = overall
	return res
}

// applyDefaultables binds each defaultable constraint's type variable to
// its Default, but only while it is still unresolved — a variable a
// simple constraint already pinned (e.g. an explicit declared type) keeps
// that binding instead.
func applyDefaultables(s substitution, defaultables []Constraint) {
	for _, c := range defaultables {
		resolved := s.resolve(c.LHS)
		if tv, ok := resolved.(types.TypeVariable); ok {
			s.bind(tv.ID, c.Default)
		}
	}
}

func worse(a, b Disposition) Disposition {
	if a == b {
		return a
	}
	if a == Unique {
		return b
	}
	if b == Unique {
		return a
	}
	// Both non-unique but different: a no-solution class and an ambiguous
	// class can coexist; no-solution dominates since it blocks GIL-gen
	// outright regardless of the other class's ambiguity.
	return NoSolution
}

func applySimple(s substitution, c Constraint) (bool, string) {
	switch c.Kind {
	case KindBind:
		if tv, ok := s.resolve(c.LHS).(types.TypeVariable); ok {
			s.bind(tv.ID, c.RHS)
			return true, ""
		}
		return Unify(s, c.LHS, c.RHS), "type mismatch"
	case KindEqual:
		return Unify(s, c.LHS, c.RHS), "type mismatch"
	case KindConversion, KindArgumentConversion:
		lhs, rhs := s.resolve(c.LHS), s.resolve(c.RHS)
		if _, ok := lhs.(types.TypeVariable); ok {
			s.bind(lhs.(types.TypeVariable).ID, rhs)
			return true, ""
		}
		if IsValidConversion(lhs, rhs) {
			return true, ""
		}
		return false, "invalid implicit conversion"
	case KindCheckedCast:
		lhs, rhs := s.resolve(c.LHS), s.resolve(c.RHS)
		if IsValidCheckedCast(lhs, rhs) {
			return true, ""
		}
		return false, "invalid cast"
	case KindValueMember:
		// ValueMember is resolved by the emission walker (it needs the
		// struct declaration's field list, which lives outside the type
		// system); by the time it reaches here it is only a sanity check
		// that RHS, the member's declared type, unifies with whatever the
		// access expression's result type variable already holds.
		return Unify(s, c.LHS, c.RHS), "member type mismatch"
	default:
		return true, ""
	}
}

type classSolution struct {
	subst  substitution
	chosen []int // chosen[i] is the candidate index picked for class[i]
}

// searchClass enumerates every combination of candidate choices across the
// disjunctions in class via backtracking, returning each combination for
// which every chosen candidate's constraints are simultaneously
// satisfiable. The search uses an explicit worklist of partial states
// rather than recursion trees built with closures, matching how a
// disjunction solver accumulates (state, next-choice-index) pairs.
func searchClass(base substitution, class []*Constraint) []classSolution {
	type frame struct {
		subst  substitution
		chosen []int
		next   int // index into class of the next disjunction to decide
	}
	var solutions []classSolution
	worklist := []frame{{subst: base.clone(), chosen: make([]int, len(class)), next: 0}}

	for len(worklist) > 0 {
		f := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if f.next == len(class) {
			solutions = append(solutions, classSolution{subst: f.subst, chosen: f.chosen})
			continue
		}

		disjunction := class[f.next]
		for i, candidate := range disjunction.Disjuncts {
			trial := f.subst.clone()
			if applyAll(trial, candidate) {
				chosen := append([]int(nil), f.chosen...)
				chosen[f.next] = i
				worklist = append(worklist, frame{subst: trial, chosen: chosen, next: f.next + 1})
			}
		}
	}
	return solutions
}

func applyAll(s substitution, constraints []Constraint) bool {
	for _, c := range constraints {
		if ok, _ := applySimple(s, c); !ok {
			return false
		}
	}
	return true
}

// partitionByColorClass groups disjunction constraints that share at least
// one free type variable into the same component, via union-find. Classes
// with no shared variables are solved independently, so an ambiguous
// overload in one call expression never forces backtracking through an
// unrelated call elsewhere in the same function.
func partitionByColorClass(disjunctions []*Constraint) [][]*Constraint {
	n := len(disjunctions)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	varOwners := map[uint64]int{}
	for i, c := range disjunctions {
		vars := map[uint64]bool{}
		constraintVars(*c, vars)
		for v := range vars {
			if owner, ok := varOwners[v]; ok {
				union(owner, i)
			} else {
				varOwners[v] = i
			}
		}
	}

	groups := map[int][]*Constraint{}
	for i, c := range disjunctions {
		root := find(i)
		groups[root] = append(groups[root], c)
	}
	out := make([][]*Constraint, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	return out
}

func freeVars(t types.Type, out map[uint64]bool) {
	if t == nil {
		return
	}
	types.Walk(t, func(tt types.Type) {
		if tv, ok := tt.(types.TypeVariable); ok {
			out[tv.ID] = true
		}
	})
}

func constraintVars(c Constraint, out map[uint64]bool) {
	freeVars(c.LHS, out)
	freeVars(c.RHS, out)
	freeVars(c.Default, out)
	for _, group := range c.Disjuncts {
		for _, cc := range group {
			constraintVars(cc, out)
		}
	}
}
