package sema

import (
	"github.com/glu-lang/glu/internal/types"
)

// substitution maps a type variable's ID to the type it has been bound to.
// bind re-resolves t before storing it, so a stored type contains no
// variable that was already bound at binding time; a variable bound later
// is still followed by resolve, which walks such chains recursively.
type substitution map[uint64]types.Type

func (s substitution) resolve(t types.Type) types.Type {
	if tv, ok := t.(types.TypeVariable); ok {
		if bound, ok := s[tv.ID]; ok {
			return s.resolve(bound)
		}
		return t
	}
	return types.Transform(t, s.resolve)
}

func (s substitution) bind(id uint64, t types.Type) {
	s[id] = s.resolve(t)
}

func (s substitution) clone() substitution {
	out := make(substitution, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Unify attempts to make a and b equal under s, mutating s on success. It
// returns false (leaving s partially mutated by any sub-unifications that
// already succeeded) if a and b can never be made equal.
func Unify(s substitution, a, b types.Type) bool {
	a = s.resolve(a)
	b = s.resolve(b)

	if av, ok := a.(types.TypeVariable); ok {
		if bv, ok := b.(types.TypeVariable); ok && av.ID == bv.ID {
			return true
		}
		s.bind(av.ID, b)
		return true
	}
	if bv, ok := b.(types.TypeVariable); ok {
		s.bind(bv.ID, a)
		return true
	}

	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case types.PointerType:
		return Unify(s, av.Pointee, b.(types.PointerType).Pointee)
	case types.StaticArrayType:
		bv := b.(types.StaticArrayType)
		return av.Count == bv.Count && Unify(s, av.Element, bv.Element)
	case types.DynamicArrayType:
		return Unify(s, av.Element, b.(types.DynamicArrayType).Element)
	case types.FunctionType:
		bv := b.(types.FunctionType)
		if av.CVariadic != bv.CVariadic || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !Unify(s, av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return Unify(s, av.Return, bv.Return)
	default:
		return types.Equal(a, b)
	}
}

// IsValidConversion reports whether an implicit conversion from 'from' to
// 'to' is allowed: identity, same-signedness integer widening, float
// widening, and null-to-pointer. Int-to-float (even widening) is not
// admitted implicitly; it requires an explicit `as` cast via
// IsValidCheckedCast.
func IsValidConversion(from, to types.Type) bool {
	if types.Equal(from, to) {
		return true
	}
	switch fv := from.(type) {
	case types.IntType:
		if tv, ok := to.(types.IntType); ok {
			return fv.Signed == tv.Signed && fv.Width <= tv.Width
		}
	case types.FloatType:
		if tv, ok := to.(types.FloatType); ok {
			return fv.Width <= tv.Width
		}
	case types.NullType:
		if _, ok := to.(types.PointerType); ok {
			return true
		}
	}
	return false
}

// IsValidCheckedCast additionally allows narrowing numeric conversions and
// pointer-to-pointer reinterpretation that IsValidConversion rejects, since
// an explicit `as` cast is the user asserting responsibility.
func IsValidCheckedCast(from, to types.Type) bool {
	if IsValidConversion(from, to) {
		return true
	}
	switch from.(type) {
	case types.IntType:
		switch to.(type) {
		case types.IntType, types.FloatType:
			return true
		}
	case types.FloatType:
		switch to.(type) {
		case types.IntType, types.FloatType:
			return true
		}
	case types.PointerType:
		if _, ok := to.(types.PointerType); ok {
			return true
		}
	}
	return false
}
