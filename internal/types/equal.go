package types

// Equal reports structural/nominal type equality. Primitives compare
// kind+width, structural types compare kind+recursive children, nominal
// types compare by declaration-site identity, aliases compare by (wrapped,
// name, location), and unresolved names compare by name.
//
// Equal operates on canonical forms so that two structural types are equal
// iff they share a canonical form, regardless of whether either argument is
// itself an (uncanonicalized) alias.
func Equal(a, b Type) bool {
	return rawEqual(Canonical(a), Canonical(b))
}

func rawEqual(a, b Type) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case VoidType, BoolType, CharType, NullType:
		return true
	case IntType:
		bv := b.(IntType)
		return av.Signed == bv.Signed && av.Width == bv.Width
	case FloatType:
		bv := b.(FloatType)
		return av.Width == bv.Width
	case PointerType:
		bv := b.(PointerType)
		return rawEqual(av.Pointee, bv.Pointee)
	case StaticArrayType:
		bv := b.(StaticArrayType)
		return av.Count == bv.Count && rawEqual(av.Element, bv.Element)
	case DynamicArrayType:
		bv := b.(DynamicArrayType)
		return rawEqual(av.Element, bv.Element)
	case FunctionType:
		bv := b.(FunctionType)
		if av.CVariadic != bv.CVariadic || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !rawEqual(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return rawEqual(av.Return, bv.Return)
	case StructType:
		bv := b.(StructType)
		return av.DeclRef == bv.DeclRef
	case EnumType:
		bv := b.(EnumType)
		return av.DeclRef == bv.DeclRef
	case AliasType:
		bv := b.(AliasType)
		return av.Name == bv.Name && av.Location == bv.Location && rawEqual(av.Wrapped, bv.Wrapped)
	case TypeVariable:
		bv := b.(TypeVariable)
		return av.ID == bv.ID
	case TemplateParam:
		bv := b.(TemplateParam)
		return av.DeclRef == bv.DeclRef
	case UnresolvedName:
		bv := b.(UnresolvedName)
		return av.Name == bv.Name
	default:
		return false
	}
}

// Hash computes a hash agreeing with Equal, using the FNV-1a string hash of
// the canonical InternKey-style fingerprint. The interning arena keys on
// InternKey itself and sema's substitution keys on type variable IDs;
// neither calls Hash.
func Hash(t Type) uint64 {
	return fnv1a(internKeyOf(Canonical(t)))
}

func fnv1a(s string) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}
