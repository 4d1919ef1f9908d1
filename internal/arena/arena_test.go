package arena

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
}

func TestArenaAllocateStableAddresses(t *testing.T) {
	a := New[point]()
	p1 := a.Allocate(point{1, 2})
	p2 := a.Allocate(point{3, 4})

	require.NotSame(t, p1, p2)
	assert.Equal(t, point{1, 2}, *p1)
	assert.Equal(t, point{3, 4}, *p2)
	assert.Equal(t, 2, a.Len())

	// Addresses remain stable even as more objects are allocated.
	for i := 0; i < 100; i++ {
		a.Allocate(point{i, i})
	}
	assert.Equal(t, point{1, 2}, *p1)
}

type structuralKey struct {
	Name  string
	Width int
}

func (s structuralKey) InternKey() string {
	return fmt.Sprintf("%s/%d", s.Name, s.Width)
}

func TestInternFindAsPointerEquality(t *testing.T) {
	in := NewIntern[structuralKey]()

	a := in.Create(structuralKey{Name: "int", Width: 32})
	b := in.Create(structuralKey{Name: "int", Width: 32})
	c := in.Create(structuralKey{Name: "int", Width: 64})

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, in.Len())
}

func TestInternLookup(t *testing.T) {
	in := NewIntern[structuralKey]()
	created := in.Create(structuralKey{Name: "float", Width: 64})

	found, ok := in.Lookup(created.InternKey())
	require.True(t, ok)
	assert.Same(t, created, found)

	_, ok = in.Lookup("missing/0")
	assert.False(t, ok)
}
