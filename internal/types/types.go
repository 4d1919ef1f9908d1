// Package types implements a closed type system: primitives, structural
// types (pointer, static/dynamic array, function), nominal types (struct,
// enum, alias), and inference-only types (type variable, template
// parameter, unresolved name).
//
// The sum is closed: one implementing struct per variant, each with an
// unexported marker method, rather than an open registry.
package types

import (
	"fmt"
	"strings"
)

// Kind identifies which variant of the closed type sum a Type is.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindChar
	KindInt
	KindFloat
	KindNull
	KindPointer
	KindStaticArray
	KindDynamicArray
	KindFunction
	KindStruct
	KindEnum
	KindAlias
	KindTypeVariable
	KindTemplateParam
	KindUnresolvedName
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindNull:
		return "null"
	case KindPointer:
		return "pointer"
	case KindStaticArray:
		return "static_array"
	case KindDynamicArray:
		return "dynamic_array"
	case KindFunction:
		return "function"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindAlias:
		return "alias"
	case KindTypeVariable:
		return "type_variable"
	case KindTemplateParam:
		return "template_param"
	case KindUnresolvedName:
		return "unresolved_name"
	default:
		return "?"
	}
}

// Type is the closed sum. Every variant below implements it; the
// unexported isType marker prevents external packages from adding new
// variants.
type Type interface {
	isType()
	Kind() Kind
	String() string
}

// Decl is the minimal identity contract a nominal declaration (StructDecl,
// EnumDecl, TemplateParameterDecl) must satisfy for Struct/Enum/TemplateParam
// types to reference it. Nominal types are identified by declaration site,
// i.e. by comparing the Decl value itself (normally a pointer), never by
// name — ast.StructDecl and friends implement this.
type Decl interface {
	// DeclName returns the declared name, for printing only.
	DeclName() string
}

// SourceLocation is an opaque integer handle resolved by a source manager
// collaborator; the core never interprets it beyond comparison.
type SourceLocation int64

// --- Primitives ---

type VoidType struct{}

func (VoidType) isType()        {}
func (VoidType) Kind() Kind      { return KindVoid }
func (VoidType) String() string { return "Void" }
func (VoidType) InternKey() string { return "void" }

type BoolType struct{}

func (BoolType) isType()           {}
func (BoolType) Kind() Kind         { return KindBool }
func (BoolType) String() string     { return "Bool" }
func (BoolType) InternKey() string  { return "bool" }

type CharType struct{}

func (CharType) isType()          {}
func (CharType) Kind() Kind        { return KindChar }
func (CharType) String() string    { return "Char" }
func (CharType) InternKey() string { return "char" }

type NullType struct{}

func (NullType) isType()          {}
func (NullType) Kind() Kind        { return KindNull }
func (NullType) String() string    { return "Null" }
func (NullType) InternKey() string { return "null" }

// IntType is a signed or unsigned integer of a fixed bit width.
type IntType struct {
	Signed bool
	Width  int // bit width, e.g. 8, 16, 32, 64
}

func (IntType) isType()   {}
func (IntType) Kind() Kind { return KindInt }
func (t IntType) String() string {
	if t.Signed {
		return fmt.Sprintf("Int%d", t.Width)
	}
	return fmt.Sprintf("UInt%d", t.Width)
}
func (t IntType) InternKey() string {
	return fmt.Sprintf("int/%v/%d", t.Signed, t.Width)
}

// FloatType is an IEEE-ish float of one of the allowed widths
// (16, 32, 64, 80, 128).
type FloatType struct {
	Width int
}

func (FloatType) isType()   {}
func (FloatType) Kind() Kind { return KindFloat }
func (t FloatType) String() string {
	return fmt.Sprintf("Float%d", t.Width)
}
func (t FloatType) InternKey() string {
	return fmt.Sprintf("float/%d", t.Width)
}

// --- Structural ---

type PointerType struct {
	Pointee Type
}

func (PointerType) isType()   {}
func (PointerType) Kind() Kind { return KindPointer }
func (t PointerType) String() string {
	return "*" + t.Pointee.String()
}
func (t PointerType) InternKey() string {
	return "ptr/" + internKeyOf(t.Pointee)
}

type StaticArrayType struct {
	Element Type
	Count   int
}

func (StaticArrayType) isType()   {}
func (StaticArrayType) Kind() Kind { return KindStaticArray }
func (t StaticArrayType) String() string {
	return fmt.Sprintf("[%s; %d]", t.Element.String(), t.Count)
}
func (t StaticArrayType) InternKey() string {
	return fmt.Sprintf("sarr/%d/%s", t.Count, internKeyOf(t.Element))
}

type DynamicArrayType struct {
	Element Type
}

func (DynamicArrayType) isType()   {}
func (DynamicArrayType) Kind() Kind { return KindDynamicArray }
func (t DynamicArrayType) String() string {
	return "[" + t.Element.String() + "]"
}
func (t DynamicArrayType) InternKey() string {
	return "darr/" + internKeyOf(t.Element)
}

type FunctionType struct {
	Params     []Type
	Return     Type
	CVariadic  bool
}

func (FunctionType) isType()   {}
func (FunctionType) Kind() Kind { return KindFunction }
func (t FunctionType) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	if t.CVariadic {
		if len(t.Params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteString(") -> ")
	sb.WriteString(t.Return.String())
	return sb.String()
}
func (t FunctionType) InternKey() string {
	var sb strings.Builder
	sb.WriteString("fn/")
	for _, p := range t.Params {
		sb.WriteString(internKeyOf(p))
		sb.WriteByte(',')
	}
	sb.WriteString("/")
	sb.WriteString(internKeyOf(t.Return))
	if t.CVariadic {
		sb.WriteString("/variadic")
	}
	return sb.String()
}

// --- Nominal ---

type StructType struct {
	DeclRef Decl
}

func (StructType) isType()   {}
func (StructType) Kind() Kind { return KindStruct }
func (t StructType) String() string {
	return t.DeclRef.DeclName()
}

type EnumType struct {
	DeclRef Decl
}

func (EnumType) isType()   {}
func (EnumType) Kind() Kind { return KindEnum }
func (t EnumType) String() string {
	return t.DeclRef.DeclName()
}

// AliasType wraps another type under a name, declared at a given location.
// Aliases collapse transparently under Canonical.
type AliasType struct {
	Wrapped  Type
	Name     string
	Location SourceLocation
}

func (AliasType) isType()   {}
func (AliasType) Kind() Kind { return KindAlias }
func (t AliasType) String() string {
	return t.Name
}
func (t AliasType) InternKey() string {
	return fmt.Sprintf("alias/%s/%d/%s", t.Name, t.Location, internKeyOf(t.Wrapped))
}

// --- Inference-only ---

type TypeVariable struct {
	ID uint64
}

func (TypeVariable) isType()   {}
func (TypeVariable) Kind() Kind { return KindTypeVariable }
func (t TypeVariable) String() string {
	return fmt.Sprintf("$T%d", t.ID)
}

type TemplateParam struct {
	DeclRef Decl
}

func (TemplateParam) isType()   {}
func (TemplateParam) Kind() Kind { return KindTemplateParam }
func (t TemplateParam) String() string {
	return t.DeclRef.DeclName()
}

type UnresolvedName struct {
	Name string
}

func (UnresolvedName) isType()   {}
func (UnresolvedName) Kind() Kind { return KindUnresolvedName }
func (t UnresolvedName) String() string {
	return "?" + t.Name
}

// internKeyOf returns a structural fingerprint for any Type, falling back to
// Kind+String for nominal/inference-only variants that are not themselves
// interned (their identity is the Decl pointer or the type-variable ID, not
// structural content).
func internKeyOf(t Type) string {
	if k, ok := t.(interface{ InternKey() string }); ok {
		return k.InternKey()
	}
	return fmt.Sprintf("%d/%s", t.Kind(), t.String())
}
