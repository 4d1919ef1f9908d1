// Package ast implements the polymorphic AST node hierarchy: declarations,
// statements, expressions, and metadata, each carrying a source location, a
// non-owning parent back-pointer, and a kind tag used for downcasting by
// the walkers in walk.go.
package ast

import "github.com/glu-lang/glu/internal/types"

// Kind tags every node for downcasting. Each category occupies a
// contiguous range bounded by a first/last sentinel, so membership is a
// single pair of comparisons rather than a type switch over every kind —
// see IsDecl/IsStmt/IsExpr/IsMetadata below.
type Kind int

const (
	declFirstKind Kind = iota
	KindModuleDecl
	KindFunctionDecl
	KindParamDecl
	KindStructDecl
	KindFieldDecl
	KindEnumDecl
	KindVarDecl
	KindLetDecl
	KindImportDecl
	KindNamespaceDecl
	KindTypeAliasDecl
	KindTemplateParameterDecl
	KindForBindingDecl
	declLastKind

	stmtFirstKind
	KindCompoundStmt
	KindIfStmt
	KindWhileStmt
	KindForStmt
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindAssignStmt
	KindExpressionStmt
	KindDeclStmt
	stmtLastKind

	exprFirstKind
	KindLiteralExpr
	KindRefExpr
	KindBinaryOpExpr
	KindUnaryOpExpr
	KindCallExpr
	KindCastExpr
	KindStructMemberExpr
	KindPointerDerefExpr
	KindStructInitializerExpr
	KindTernaryConditionalExpr
	exprLastKind

	metadataFirstKind
	KindAttribute
	metadataLastKind
)

// IsDecl, IsStmt, IsExpr, IsMetadata report whether k belongs to that
// category's range.
func IsDecl(k Kind) bool     { return k > declFirstKind && k < declLastKind }
func IsStmt(k Kind) bool     { return k > stmtFirstKind && k < stmtLastKind }
func IsExpr(k Kind) bool     { return k > exprFirstKind && k < exprLastKind }
func IsMetadata(k Kind) bool { return k > metadataFirstKind && k < metadataLastKind }

// Node is the interface every AST node satisfies.
type Node interface {
	Kind() Kind
	Loc() types.SourceLocation
	Parent() Node
	setParent(Node)
}

// Decl is any declaration node.
type Decl interface {
	Node
	isDecl()
	// DeclName satisfies types.Decl so that nominal Struct/Enum/TemplateParam
	// types can reference a Decl directly without internal/types importing
	// ast.
	DeclName() string
}

// Stmt is any statement node.
type Stmt interface {
	Node
	isStmt()
}

// Expr is any expression node. Every expression carries a mutable result
// type slot, written first with a fresh type variable at constraint-emission
// time and later overwritten with a concrete type once the solver commits a
// solution.
type Expr interface {
	Node
	isExpr()
	Type() types.Type
	SetType(types.Type)
}

// Metadata is any non-Decl/Stmt/Expr annotation node (currently just
// Attribute).
type Metadata interface {
	Node
	isMetadata()
}

// base holds the fields every node has regardless of category: its parent
// back-pointer (non-owning) and its source location.
type base struct {
	parent Node
	loc    types.SourceLocation
}

func (b *base) Loc() types.SourceLocation { return b.loc }
func (b *base) Parent() Node              { return b.parent }
func (b *base) setParent(p Node)          { b.parent = p }

// baseExpr additionally carries the mutable result-type slot shared by every
// Expr variant.
type baseExpr struct {
	base
	ty types.Type
}

func (e *baseExpr) Type() types.Type     { return e.ty }
func (e *baseExpr) SetType(t types.Type) { e.ty = t }
