package sema

import "github.com/glu-lang/glu/ast"

// Scope is one lexical binding level: a module, a function body, or a
// nested block. Lookups walk outward through Parent until a binding is
// found or the chain is exhausted.
type Scope struct {
	Parent   *Scope
	bindings map[string]ast.Decl
}

// NewScope creates a scope nested within parent. parent may be nil for the
// outermost (module) scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, bindings: make(map[string]ast.Decl)}
}

// Declare introduces name into this scope, shadowing any outer binding of
// the same name. It does not check for redeclaration within the same
// scope — callers that care (e.g. struct field uniqueness) check before
// calling.
func (s *Scope) Declare(name string, decl ast.Decl) {
	s.bindings[name] = decl
}

// Lookup searches this scope and its ancestors for name, returning the
// nearest binding.
func (s *Scope) Lookup(name string) (ast.Decl, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if d, ok := sc.bindings[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// LookupLocal searches only this scope, without walking to ancestors.
func (s *Scope) LookupLocal(name string) (ast.Decl, bool) {
	d, ok := s.bindings[name]
	return d, ok
}

// Builder constructs the scope tree for a module in one preorder walk,
// tracking the current scope as it enters/leaves each node that
// introduces a new lexical level (FunctionDecl body, CompoundStmt,
// ForStmt).
type Builder struct {
	Root    *Scope
	current *Scope
	// scopes maps an ast.Node that introduces scope to the Scope created
	// for it, so the emission walker can ask "what scope applies here".
	scopes map[ast.Node]*Scope
}

// NewBuilder creates a Builder rooted in a fresh top-level scope, returning
// the *Builder positioned at that root.
func NewBuilder() *Builder {
	root := NewScope(nil)
	return &Builder{Root: root, current: root, scopes: make(map[ast.Node]*Scope)}
}

// ScopeFor returns the innermost scope visible from within n, or the
// Builder's root scope if n introduced no scope of its own.
func (b *Builder) ScopeFor(n ast.Node) *Scope {
	for cur := n; cur != nil; cur = cur.Parent() {
		if s, ok := b.scopes[cur]; ok {
			return s
		}
	}
	return b.Root
}

// Build populates the scope tree for module by walking every declaration
// and registering bindings as they come into view, in source order — so a
// forward reference to a later local is correctly left unresolved while a
// forward reference to a sibling top-level declaration is visible (module
// scope is fully populated before any function body is walked).
func Build(module *ast.ModuleDecl) *Builder {
	b := NewBuilder()
	for _, d := range module.Decls {
		b.Root.Declare(d.DeclName(), d)
	}
	for _, d := range module.Decls {
		b.buildDecl(d, b.Root)
	}
	return b
}

func (b *Builder) buildDecl(d ast.Decl, scope *Scope) {
	switch v := d.(type) {
	case *ast.FunctionDecl:
		fnScope := NewScope(scope)
		for _, tp := range v.TemplateParams {
			fnScope.Declare(tp.Name, tp)
		}
		for _, p := range v.Params {
			fnScope.Declare(p.Name, p)
		}
		if v.Body != nil {
			b.scopes[v.Body] = fnScope
			b.buildStmt(v.Body, fnScope)
		} else {
			b.scopes[ast.Node(v)] = fnScope
		}
	case *ast.NamespaceDecl:
		for _, nd := range v.Decls {
			scope.Declare(nd.DeclName(), nd)
		}
		for _, nd := range v.Decls {
			b.buildDecl(nd, scope)
		}
	case *ast.VarDecl, *ast.LetDecl, *ast.StructDecl, *ast.EnumDecl, *ast.ImportDecl, *ast.TypeAliasDecl:
		// No nested scope; already declared by the caller.
	}
}

func (b *Builder) buildStmt(s ast.Stmt, scope *Scope) {
	switch v := s.(type) {
	case *ast.CompoundStmt:
		inner, already := b.scopes[ast.Node(v)]
		if !already {
			inner = NewScope(scope)
			b.scopes[v] = inner
		}
		for _, child := range v.Stmts {
			b.buildStmt(child, inner)
		}
	case *ast.IfStmt:
		b.buildStmt(v.Then, scope)
		if v.Else != nil {
			b.buildStmt(v.Else, scope)
		}
	case *ast.WhileStmt:
		b.buildStmt(v.Body, scope)
	case *ast.ForStmt:
		loopScope := NewScope(scope)
		loopScope.Declare(v.Binding.Name, v.Binding)
		b.scopes[v.Body] = NewScope(loopScope)
		b.buildStmt(v.Body, loopScope)
	case *ast.DeclStmt:
		scope.Declare(v.Decl.DeclName(), v.Decl)
	}
}
