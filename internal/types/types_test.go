package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDecl struct{ name string }

func (f *fakeDecl) DeclName() string { return f.name }

func TestInternedStructuralTypesPointerEquality(t *testing.T) {
	c := NewContext()

	p1 := c.Pointer(c.Int(true, 32))
	p2 := c.Pointer(c.Int(true, 32))
	p3 := c.Pointer(c.Int(true, 64))

	assert.True(t, p1 == p2)
	assert.False(t, p1 == p3)
}

func TestCanonicalCollapsesAliasesIdempotently(t *testing.T) {
	c := NewContext()
	base := c.Int(true, 32)
	alias := c.Alias(base, "MyInt", 10)
	aliasOfAlias := c.Alias(alias, "MyInt2", 11)

	canon := Canonical(aliasOfAlias)
	assert.True(t, Equal(canon, base))
	assert.True(t, Equal(Canonical(canon), canon)) // idempotent
}

func TestEqualNominalByDeclarationSite(t *testing.T) {
	c := NewContext()
	d1 := &fakeDecl{name: "Dog"}
	d2 := &fakeDecl{name: "Dog"} // same name, different declaration

	s1 := c.Struct(d1)
	s2 := c.Struct(d1)
	s3 := c.Struct(d2)

	assert.True(t, Equal(s1, s2))
	assert.False(t, Equal(s1, s3))
}

func TestEqualStructuralThroughAlias(t *testing.T) {
	c := NewContext()
	raw := c.Pointer(c.Int(true, 32))
	aliased := c.Alias(c.Pointer(c.Int(true, 32)), "IntPtr", 1)

	assert.True(t, Equal(raw, aliased))
}

func TestFunctionTypeEquality(t *testing.T) {
	c := NewContext()
	f1 := c.Function([]Type{c.Int(true, 32), c.Int(true, 32)}, c.Int(true, 32), false)
	f2 := c.Function([]Type{c.Int(true, 32), c.Int(true, 32)}, c.Int(true, 32), false)
	f3 := c.Function([]Type{c.Float(64), c.Float(64)}, c.Float(64), false)

	require.True(t, f1 == f2)
	assert.False(t, Equal(f1, f3))
}

func TestHashAgreesWithEqual(t *testing.T) {
	c := NewContext()
	a := c.Pointer(c.Int(false, 8))
	b := c.Alias(c.Pointer(c.Int(false, 8)), "Bytes", 1)

	require.True(t, Equal(a, b))
	assert.Equal(t, Hash(a), Hash(b))
}

func TestTypeVariablesAreNeverInterned(t *testing.T) {
	c := NewContext()
	v1 := c.NewTypeVariable()
	v2 := c.NewTypeVariable()
	assert.False(t, Equal(v1, v2))
}
