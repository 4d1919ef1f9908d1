package passmgr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glu-lang/glu/gil"
	"github.com/glu-lang/glu/internal/types"
)

func structWithCopyThenExtract(tc *types.Context) *gil.Function {
	ptrTy := tc.Pointer(tc.Int(true, 32))
	fn := gil.NewFunction("f", []gil.Param{{Name: "p", Type: ptrTy}}, tc.Int(true, 32))
	entry := fn.NewBlock("entry")

	orig := gil.Val(entry.AddArg(ptrTy))
	cp := fn.Append(entry, &gil.CopyInst{Operand: orig}, ptrTy).(*gil.CopyInst)
	extract := fn.Append(entry, &gil.StructExtractInst{
		Base:       gil.Val(cp.Result()),
		FieldIndex: 0,
		FieldName:  "x",
	}, tc.Int(true, 32))
	fn.Append(entry, &gil.ReturnInst{Value: gil.Val(extract.Result())}, nil)
	return fn
}

func TestManagerRunsEnabledPasses(t *testing.T) {
	tc := types.NewContext()
	fn := structWithCopyThenExtract(tc)
	m := gil.NewModule("test")
	m.AddFunction(fn)

	mgr := NewManager(Config{}, EraseCopyOnStructExtract())
	mgr.Run(m)

	var sawCopy bool
	for _, inst := range fn.Blocks[0].Instructions() {
		if _, ok := inst.(*gil.CopyInst); ok {
			sawCopy = true
		}
	}
	assert.False(t, sawCopy, "dead copy should have been unlinked")
}

func TestManagerSkipsDisabledPass(t *testing.T) {
	tc := types.NewContext()
	fn := structWithCopyThenExtract(tc)
	m := gil.NewModule("test")
	m.AddFunction(fn)

	mgr := NewManager(Config{DisablePass: map[string]bool{"erase-copy-on-struct-extract": true}},
		EraseCopyOnStructExtract())
	mgr.Run(m)

	var sawCopy bool
	for _, inst := range fn.Blocks[0].Instructions() {
		if _, ok := inst.(*gil.CopyInst); ok {
			sawCopy = true
		}
	}
	assert.True(t, sawCopy, "disabled pass must not run")
}

func TestManagerPrintsBeforeAndAfterEach(t *testing.T) {
	tc := types.NewContext()
	fn := structWithCopyThenExtract(tc)
	m := gil.NewModule("test")
	m.AddFunction(fn)

	var buf bytes.Buffer
	mgr := NewManager(Config{PrintBeforeEach: true, PrintAfterEach: true, Writer: &buf}, EraseCopyOnStructExtract())
	mgr.Run(m)

	out := buf.String()
	require.Contains(t, out, "-- before erase-copy-on-struct-extract --")
	require.Contains(t, out, "-- after erase-copy-on-struct-extract --")
}
