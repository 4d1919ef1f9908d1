package types

// Canonical walks t and replaces every AliasType with the canonical form of
// its wrapped type, recursing compositionally into structural children. It
// is idempotent: Canonical(Canonical(t)) == Canonical(t).
func Canonical(t Type) Type {
	switch v := t.(type) {
	case AliasType:
		return Canonical(v.Wrapped)
	case PointerType:
		return PointerType{Pointee: Canonical(v.Pointee)}
	case StaticArrayType:
		return StaticArrayType{Element: Canonical(v.Element), Count: v.Count}
	case DynamicArrayType:
		return DynamicArrayType{Element: Canonical(v.Element)}
	case FunctionType:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Canonical(p)
		}
		return FunctionType{Params: params, Return: Canonical(v.Return), CVariadic: v.CVariadic}
	default:
		// Primitives, nominal (Struct/Enum identified by decl site, never
		// wrap another type), and inference-only variants are already
		// canonical: they have no wrapped child to collapse.
		return t
	}
}

// Transform is a generic mapper that rebuilds t by applying fn to every
// child type and reassembling the same variant. It is the basis for
// substitution in sema: Substitute(T) is
// Transform(T, func(c Type) Type { return substitution-of(c) }).
func Transform(t Type, fn func(Type) Type) Type {
	switch v := t.(type) {
	case PointerType:
		return PointerType{Pointee: fn(v.Pointee)}
	case StaticArrayType:
		return StaticArrayType{Element: fn(v.Element), Count: v.Count}
	case DynamicArrayType:
		return DynamicArrayType{Element: fn(v.Element)}
	case FunctionType:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = fn(p)
		}
		return FunctionType{Params: params, Return: fn(v.Return), CVariadic: v.CVariadic}
	case AliasType:
		return AliasType{Wrapped: fn(v.Wrapped), Name: v.Name, Location: v.Location}
	default:
		return t
	}
}

// Walk visits t and, compositionally, every type nested within it
// (pointee, element, param/return types, alias target), calling visit on
// each node including t itself. It does not recurse into the children of a
// Struct/Enum/TemplateParam's referenced declaration — those are opaque
// nominal identities to the type system.
func Walk(t Type, visit func(Type)) {
	visit(t)
	switch v := t.(type) {
	case PointerType:
		Walk(v.Pointee, visit)
	case StaticArrayType:
		Walk(v.Element, visit)
	case DynamicArrayType:
		Walk(v.Element, visit)
	case FunctionType:
		for _, p := range v.Params {
			Walk(p, visit)
		}
		Walk(v.Return, visit)
	case AliasType:
		Walk(v.Wrapped, visit)
	}
}
