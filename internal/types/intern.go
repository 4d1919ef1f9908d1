package types

import "github.com/glu-lang/glu/internal/arena"

// internable adapts a Type to arena.Keyed for use inside an
// arena.Intern[internable]. Only structural variants (pointer, static
// array, dynamic array, function, integer width, float width, alias) and
// the primitives Void, Bool, Char and Null are ever interned; nominal
// structs/enums are identified by their declaration site instead.
type internable struct {
	Type
}

func (i internable) InternKey() string {
	return internKeyOf(i.Type)
}

// Context owns the interning arena for structural types shared by an AST
// context; it is read-only once Sema concludes. One Context should be
// created per module compilation.
type Context struct {
	structural *arena.Intern[internable]
	nextVarID  uint64
}

// NewContext creates an empty type interning context.
func NewContext() *Context {
	return &Context{structural: arena.NewIntern[internable]()}
}

// intern returns the Type value stored in the interning arena for any
// structural or primitive variant, or t itself unchanged for nominal and
// inference-only variants (which are identified by decl/ID rather than
// structural content).
func (c *Context) intern(t Type) Type {
	switch t.(type) {
	case PointerType, StaticArrayType, DynamicArrayType, FunctionType,
		IntType, FloatType, AliasType, VoidType, BoolType, CharType, NullType:
		return c.structural.Create(internable{t}).Type
	default:
		return t
	}
}

// Pointer returns the canonical pointer type to pointee.
func (c *Context) Pointer(pointee Type) Type {
	return c.intern(PointerType{Pointee: pointee})
}

// StaticArray returns the canonical static array type.
func (c *Context) StaticArray(element Type, count int) Type {
	return c.intern(StaticArrayType{Element: element, Count: count})
}

// DynamicArray returns the canonical dynamic array type.
func (c *Context) DynamicArray(element Type) Type {
	return c.intern(DynamicArrayType{Element: element})
}

// Function returns the canonical function type.
func (c *Context) Function(params []Type, ret Type, cVariadic bool) Type {
	return c.intern(FunctionType{Params: params, Return: ret, CVariadic: cVariadic})
}

// Int returns the canonical integer type of the given signedness and width.
func (c *Context) Int(signed bool, width int) Type {
	return c.intern(IntType{Signed: signed, Width: width})
}

// Float returns the canonical float type of the given width.
func (c *Context) Float(width int) Type {
	return c.intern(FloatType{Width: width})
}

// Alias returns the canonical alias type wrapping w.
func (c *Context) Alias(wrapped Type, name string, loc SourceLocation) Type {
	return c.intern(AliasType{Wrapped: wrapped, Name: name, Location: loc})
}

// Void, Bool, Char, Null return the canonical singleton primitive types.
func (c *Context) Void() Type { return c.intern(VoidType{}) }
func (c *Context) Bool() Type { return c.intern(BoolType{}) }
func (c *Context) Char() Type { return c.intern(CharType{}) }
func (c *Context) Null() Type { return c.intern(NullType{}) }

// NewTypeVariable allocates a fresh, uniquely-numbered TypeVariable. Type
// variables are never interned (each occurrence created by constraint
// emission must be distinguishable even if two happen to be "equal" before
// substitution).
func (c *Context) NewTypeVariable() Type {
	c.nextVarID++
	return TypeVariable{ID: c.nextVarID}
}

// Struct returns the (uninterned) nominal type for decl.
func (c *Context) Struct(decl Decl) Type { return StructType{DeclRef: decl} }

// Enum returns the (uninterned) nominal type for decl.
func (c *Context) Enum(decl Decl) Type { return EnumType{DeclRef: decl} }

// TemplateParam returns the (uninterned) inference-only type for decl.
func (c *Context) TemplateParam(decl Decl) Type { return TemplateParam{DeclRef: decl} }

// Unresolved returns the inference-only placeholder type for an unresolved
// name reference.
func (c *Context) Unresolved(name string) Type { return UnresolvedName{Name: name} }

// InternedCount returns how many distinct structural types have been
// interned so far (test/diagnostic helper).
func (c *Context) InternedCount() int { return c.structural.Len() }
