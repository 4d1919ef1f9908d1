package gil

import "github.com/glu-lang/glu/internal/types"

// Param is one formal parameter of a lowered function.
type Param struct {
	Name string
	Type types.Type
}

const noIndex = -1

// link is the intrusive doubly-linked-list node paired by index with
// Function.insts, giving O(1) unlink of an arbitrary instruction
// without shifting a slice — the erase-copy-on-struct-extract example
// pass relies on this to remove a dead CopyInst in place.
type link struct {
	prev, next int
	block      *BasicBlock
}

// indexed is implemented by every concrete instruction type via the
// embedded instBase, letting Function.Append/Unlink locate an
// instruction's slot in the owning function's arena without a lookup
// map.
type indexed interface {
	index() int
	setIndex(int)
}

// Function is one lowered function body: an ordered list of basic
// blocks, each an ordered list of instructions drawn from one shared,
// append-only instruction arena.
type Function struct {
	Name       string
	Params     []Param
	ReturnType types.Type
	Blocks     []*BasicBlock

	nextValueID int
	insts       []Instruction
	links       []link
}

// NewFunction creates an empty Function with no blocks.
func NewFunction(name string, params []Param, ret types.Type) *Function {
	return &Function{Name: name, Params: params, ReturnType: ret}
}

// NewValue allocates a fresh, function-unique Value of type ty.
func (f *Function) NewValue(ty types.Type) *Value {
	f.nextValueID++
	return &Value{ID: f.nextValueID - 1, Type: ty}
}

// NewBlock appends a new, empty BasicBlock named name to f and returns it.
func (f *Function) NewBlock(name string) *BasicBlock {
	b := &BasicBlock{Name: name, fn: f, head: noIndex, tail: noIndex}
	f.Blocks = append(f.Blocks, b)
	return b
}

// AddArg appends a block argument of type ty to b, returning the Value
// that names it within the block.
func (b *BasicBlock) AddArg(ty types.Type) *Value {
	v := b.fn.NewValue(ty)
	b.Args = append(b.Args, v)
	return v
}

// Append adds inst to the end of b's instruction list and returns it,
// assigning it a result Value of type resultType unless resultType is
// nil (terminators and other void instructions pass nil).
func (f *Function) Append(b *BasicBlock, inst Instruction, resultType types.Type) Instruction {
	idx := len(f.insts)
	f.insts = append(f.insts, inst)
	f.links = append(f.links, link{prev: b.tail, next: noIndex, block: b})
	if ix, ok := inst.(indexed); ok {
		ix.setIndex(idx)
	}
	if b.tail != noIndex {
		f.links[b.tail].next = idx
	} else {
		b.head = idx
	}
	b.tail = idx

	if resultType != nil {
		if rb, ok := inst.(interface{ setResult(*Value) }); ok {
			rb.setResult(f.NewValue(resultType))
		}
	}
	return inst
}

// Unlink removes inst from its owning block's instruction list in
// O(1), fixing up neighboring links and the block's head/tail.
func (f *Function) Unlink(inst Instruction) {
	ix, ok := inst.(indexed)
	if !ok {
		return
	}
	idx := ix.index()
	l := f.links[idx]
	if l.prev != noIndex {
		f.links[l.prev].next = l.next
	} else {
		l.block.head = l.next
	}
	if l.next != noIndex {
		f.links[l.next].prev = l.prev
	} else {
		l.block.tail = l.prev
	}
}

// BasicBlock is one block of straight-line code ending in a
// terminator. Args are the block's SSA arguments, which a predecessor
// supplies at each branch into it (GIL's substitute for phi nodes).
type BasicBlock struct {
	Name string
	Args []*Value

	fn         *Function
	head, tail int
}

// Instructions returns b's instructions in order, following the
// intrusive link list rather than re-deriving it from Function.insts
// directly.
func (b *BasicBlock) Instructions() []Instruction {
	var out []Instruction
	for idx := b.head; idx != noIndex; idx = b.fn.links[idx].next {
		out = append(out, b.fn.insts[idx])
	}
	return out
}

// Terminator returns b's last instruction if it is a terminator (br,
// cond_br, return or unreachable), or nil if b is empty or ends in any
// other instruction. GILGen uses a nil result to decide that a block
// still needs a branch or return appended.
func (b *BasicBlock) Terminator() Instruction {
	if b.tail == noIndex {
		return nil
	}
	inst := b.fn.insts[b.tail]
	switch inst.Kind() {
	case KindBr, KindCondBr, KindReturn, KindUnreachable:
		return inst
	}
	return nil
}
