// Package arena provides lifetime-scoped, bump-allocated storage for AST
// nodes, type objects, and GIL entities, plus an interning arena for
// content-addressed structural types. Objects are never moved and never
// individually freed; they live until the owning Arena is dropped.
package arena

import "sync"

// Arena is a typed bump allocator. Every value allocated through it lives
// until the Arena itself is dropped (garbage collected); values are never
// individually freed and their addresses never change, so pointers handed
// out by Allocate remain valid for the Arena's whole lifetime.
//
// Arena is safe for concurrent use, though in practice each compilation
// phase owns its arena exclusively and readers never need external
// synchronization once that phase has finished writing.
type Arena[T any] struct {
	mu      sync.Mutex
	objects []*T
}

// New creates an empty Arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Allocate copies v into the arena and returns a stable pointer to the copy.
// The returned pointer is never moved or freed by the arena.
func (a *Arena[T]) Allocate(v T) *T {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := new(T)
	*p = v
	a.objects = append(a.objects, p)
	return p
}

// Len returns the number of objects allocated so far.
func (a *Arena[T]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.objects)
}

// All returns every object allocated by this arena, in allocation order.
// The returned slice is a snapshot; mutating it does not affect the arena.
func (a *Arena[T]) All() []*T {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*T, len(a.objects))
	copy(out, a.objects)
	return out
}

// Keyed is the contract an interned type must satisfy: a content-addressed
// fingerprint such that two values with the same key are structurally
// equal.
type Keyed interface {
	// InternKey returns a string uniquely identifying the structural
	// content of the value. Two values with equal keys must be
	// structurally interchangeable.
	InternKey() string
}

// Intern wraps a bump Arena with a content-addressed set: Create either
// returns an existing structurally-equal *T or allocates and inserts a new
// one ("find-as"). Pointer equality of two results therefore implies
// structural equality, which is the entire point of interning
// pointer/function/static-array/integer-width/float-width/alias types.
type Intern[T Keyed] struct {
	mu     sync.Mutex
	bump   *Arena[T]
	byKey  map[string]*T
}

// NewIntern creates an empty interning arena.
func NewIntern[T Keyed]() *Intern[T] {
	return &Intern[T]{
		bump:  New[T](),
		byKey: make(map[string]*T),
	}
}

// Create returns the canonical pointer for a structurally-equal value to v,
// allocating and inserting a new one on first sight ("find-as": v itself
// may be a disposable probe value built by the caller; it is only copied
// into the arena on a miss).
func (in *Intern[T]) Create(v T) *T {
	key := v.InternKey()
	in.mu.Lock()
	defer in.mu.Unlock()
	if existing, ok := in.byKey[key]; ok {
		return existing
	}
	p := in.bump.Allocate(v)
	in.byKey[key] = p
	return p
}

// Lookup returns the canonical pointer for key, if one has been created.
func (in *Intern[T]) Lookup(key string) (*T, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	p, ok := in.byKey[key]
	return p, ok
}

// Len returns the number of distinct interned values.
func (in *Intern[T]) Len() int {
	return in.bump.Len()
}

// All returns every interned value, in creation order.
func (in *Intern[T]) All() []*T {
	return in.bump.All()
}
