// Package srcmgr implements the source manager collaborator: a mapping
// from opaque types.SourceLocation handles to file/line/column positions,
// used only for diagnostic rendering. The semantic core never reads file
// contents through this package; it only asks it to resolve locations it
// already holds.
package srcmgr

import (
	"fmt"

	mtoken "modernc.org/token"

	"github.com/glu-lang/glu/internal/types"
)

// Position is a resolved human-readable location.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Manager is the collaborator contract gil.PrintWithSource relies on: add source
// text up front, then resolve the opaque locations that Decls/Stmts/Exprs
// carry back into human-readable positions when rendering a diagnostic.
type Manager interface {
	AddFile(filename string, content []byte) File
	Position(loc types.SourceLocation) Position
}

// File is a handle returned by AddFile, used to mint SourceLocations within
// that file's byte range.
type File interface {
	Name() string
	Size() int
	// Location translates a zero-based byte offset within this file into
	// a types.SourceLocation valid for the owning Manager.
	Location(offset int) types.SourceLocation
}

// TokenFileManager is the reference Manager implementation, backed by
// modernc.org/token's FileSet: each AddFile call registers a new file
// region in the set, and Position resolves a location by delegating to the
// FileSet's line-table lookup.
type TokenFileManager struct {
	fset *mtoken.FileSet
}

// NewTokenFileManager creates an empty TokenFileManager.
func NewTokenFileManager() *TokenFileManager {
	return &TokenFileManager{fset: mtoken.NewFileSet()}
}

type tokenFile struct {
	f *mtoken.File
}

func (t tokenFile) Name() string { return t.f.Name() }
func (t tokenFile) Size() int    { return t.f.Size() }
func (t tokenFile) Location(offset int) types.SourceLocation {
	return types.SourceLocation(t.f.Pos(offset))
}

// AddFile registers content under filename and returns a File handle for
// minting locations within it. Newline offsets are recorded up front so
// Position can do an O(log n) line lookup instead of rescanning content.
func (m *TokenFileManager) AddFile(filename string, content []byte) File {
	f := m.fset.AddFile(filename, -1, len(content))
	for i, b := range content {
		if b == '\n' {
			f.AddLine(i + 1)
		}
	}
	return tokenFile{f: f}
}

// Position resolves loc to a filename/line/column using the FileSet that
// minted it.
func (m *TokenFileManager) Position(loc types.SourceLocation) Position {
	pos := m.fset.Position(mtoken.Pos(loc))
	return Position{Filename: pos.Filename, Line: pos.Line, Column: pos.Column}
}
