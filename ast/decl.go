package ast

import "github.com/glu-lang/glu/internal/types"

// Visibility controls cross-module lookup of a declaration.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
)

// ModuleDecl is the root of a compiled translation unit: a flat list of
// top-level declarations plus the namespace path it lives under.
type ModuleDecl struct {
	base
	Name    string
	Package []string
	Decls   []Decl
}

func (*ModuleDecl) Kind() Kind        { return KindModuleDecl }
func (*ModuleDecl) isDecl()           {}
func (m *ModuleDecl) DeclName() string { return m.Name }

// ParamDecl is a function or closure parameter.
type ParamDecl struct {
	base
	Name    string
	Type    types.Type
	Default Expr // nil if the parameter has no default value
}

func (*ParamDecl) Kind() Kind         { return KindParamDecl }
func (*ParamDecl) isDecl()            {}
func (p *ParamDecl) DeclName() string { return p.Name }

// FunctionDecl is a top-level or member function, possibly generic.
type FunctionDecl struct {
	base
	Name            string
	Params          []*ParamDecl
	TemplateParams  []*TemplateParameterDecl
	ReturnType      types.Type
	Body            *CompoundStmt // nil for an extern/declaration-only function
	Visibility      Visibility
	Attributes      []*Attribute
	IsExtern        bool
	MangledCName    string // set when IsExtern and an attribute overrides the symbol name
}

func (*FunctionDecl) Kind() Kind         { return KindFunctionDecl }
func (*FunctionDecl) isDecl()            {}
func (f *FunctionDecl) DeclName() string { return f.Name }

// FunctionType derives the function's interned type from its parameter and
// return types. Called once Sema has resolved every parameter/return type
// annotation.
func (f *FunctionDecl) FunctionType(tc *types.Context) types.Type {
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return tc.Function(params, f.ReturnType, false)
}

// FieldDecl is a single struct member.
type FieldDecl struct {
	base
	Name    string
	Type    types.Type
	Default Expr
}

func (*FieldDecl) Kind() Kind         { return KindFieldDecl }
func (*FieldDecl) isDecl()            {}
func (f *FieldDecl) DeclName() string { return f.Name }

// StructDecl declares a nominal struct type and its fields.
type StructDecl struct {
	base
	Name           string
	Fields         []*FieldDecl
	TemplateParams []*TemplateParameterDecl
	Visibility     Visibility
}

func (*StructDecl) Kind() Kind         { return KindStructDecl }
func (*StructDecl) isDecl()            {}
func (s *StructDecl) DeclName() string { return s.Name }

// EnumCase is one variant of an EnumDecl; not itself a Decl (it never
// appears as a child in a walk independent of its enum).
type EnumCase struct {
	Name  string
	Value int64
}

// EnumDecl declares a nominal enum type over int-valued cases.
type EnumDecl struct {
	base
	Name       string
	Cases      []EnumCase
	Visibility Visibility
}

func (*EnumDecl) Kind() Kind         { return KindEnumDecl }
func (*EnumDecl) isDecl()            {}
func (e *EnumDecl) DeclName() string { return e.Name }

// VarDecl is a mutable local or global binding, introduced by `var`.
type VarDecl struct {
	base
	Name    string
	Type    types.Type // may start as a type variable, resolved by Sema
	Initial Expr        // nil if uninitialized
}

func (*VarDecl) Kind() Kind         { return KindVarDecl }
func (*VarDecl) isDecl()            {}
func (v *VarDecl) DeclName() string { return v.Name }

// LetDecl is an immutable local or global binding, introduced by `let`.
type LetDecl struct {
	base
	Name    string
	Type    types.Type
	Initial Expr
}

func (*LetDecl) Kind() Kind         { return KindLetDecl }
func (*LetDecl) isDecl()            {}
func (l *LetDecl) DeclName() string { return l.Name }

// ImportDecl names a module to bring into scope; resolution is delegated to
// an import manager collaborator and is opaque to this package.
type ImportDecl struct {
	base
	Path  []string
	Alias string // empty if unaliased
}

func (*ImportDecl) Kind() Kind         { return KindImportDecl }
func (*ImportDecl) isDecl()            {}
func (i *ImportDecl) DeclName() string { return i.Alias }

// NamespaceDecl groups a run of declarations under a dotted name, without
// introducing a new module boundary.
type NamespaceDecl struct {
	base
	Name  string
	Decls []Decl
}

func (*NamespaceDecl) Kind() Kind         { return KindNamespaceDecl }
func (*NamespaceDecl) isDecl()            {}
func (n *NamespaceDecl) DeclName() string { return n.Name }

// TypeAliasDecl introduces a named alias for another type.
type TypeAliasDecl struct {
	base
	Name    string
	Aliased types.Type
}

func (*TypeAliasDecl) Kind() Kind         { return KindTypeAliasDecl }
func (*TypeAliasDecl) isDecl()            {}
func (t *TypeAliasDecl) DeclName() string { return t.Name }

// TemplateParameterDecl is a generic type parameter on a function or
// struct, optionally bounded by a required interface/trait name.
type TemplateParameterDecl struct {
	base
	Name  string
	Bound string // empty if unbounded
}

func (*TemplateParameterDecl) Kind() Kind         { return KindTemplateParameterDecl }
func (*TemplateParameterDecl) isDecl()            {}
func (t *TemplateParameterDecl) DeclName() string { return t.Name }

// ForBindingDecl is the loop variable introduced by a for-in statement's
// binding clause.
type ForBindingDecl struct {
	base
	Name string
	Type types.Type
}

func (*ForBindingDecl) Kind() Kind         { return KindForBindingDecl }
func (*ForBindingDecl) isDecl()            {}
func (f *ForBindingDecl) DeclName() string { return f.Name }

// BuiltinDecl represents an intrinsic operator or function overload that
// has no source-level declaration — one candidate of a binary/unary
// operator's disjunction set, for instance. It satisfies Decl so that
// BinaryOpExpr.ResolvedFunc and friends can name it uniformly alongside
// user-written FunctionDecls, without every caller needing a separate
// "was this builtin or user code" branch.
type BuiltinDecl struct {
	base
	Name string
	Type types.Type
}

func (*BuiltinDecl) Kind() Kind         { return KindFunctionDecl }
func (*BuiltinDecl) isDecl()            {}
func (b *BuiltinDecl) DeclName() string { return b.Name }

// NewBuiltinDecl creates a BuiltinDecl not owned by any Context — it has
// no location and never appears in a walk, since it was never parsed from
// source. Its identity (pointer equality) is still stable and usable as a
// map key or DeclRef target.
func NewBuiltinDecl(name string, ty types.Type) *BuiltinDecl {
	return &BuiltinDecl{Name: name, Type: ty}
}
