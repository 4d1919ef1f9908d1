package srcmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionResolvesLineAndColumn(t *testing.T) {
	m := NewTokenFileManager()
	content := []byte("let x = 1\nlet y = 2\n")
	f := m.AddFile("sample.glu", content)

	require.Equal(t, "sample.glu", f.Name())
	require.Equal(t, len(content), f.Size())

	secondLineStart := 10 // byte offset of 'l' in "let y"
	loc := f.Location(secondLineStart)
	pos := m.Position(loc)

	assert.Equal(t, "sample.glu", pos.Filename)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)
}

func TestMultipleFilesDoNotCollide(t *testing.T) {
	m := NewTokenFileManager()
	fa := m.AddFile("a.glu", []byte("abc"))
	fb := m.AddFile("b.glu", []byte("xyz"))

	locA := fa.Location(0)
	locB := fb.Location(0)

	assert.Equal(t, "a.glu", m.Position(locA).Filename)
	assert.Equal(t, "b.glu", m.Position(locB).Filename)
}
