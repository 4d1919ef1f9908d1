package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBagAccumulatesAcrossErrors(t *testing.T) {
	b := NewBag()
	b.Error(KindUnresolvedIdentifier, 10, "unknown name 'foo'")
	b.Warn(KindUnreachableCode, 20, "statement never executes")
	b.Error(KindTypeMismatch, 30, "expected Int32, got Bool")

	assert.True(t, b.HasErrors())
	assert.Len(t, b.All(), 3)
}

func TestBagWithoutErrorsReportsClean(t *testing.T) {
	b := NewBag()
	b.Warn(KindUnusedBinding, 1, "binding 'x' is never read")

	assert.False(t, b.HasErrors())
	assert.Len(t, b.All(), 1)
}

func TestAllReturnsSnapshot(t *testing.T) {
	b := NewBag()
	b.Error(KindArityMismatch, 1, "expected 2 arguments, got 1")
	snapshot := b.All()
	b.Error(KindArityMismatch, 2, "expected 2 arguments, got 3")

	assert.Len(t, snapshot, 1)
	assert.Len(t, b.All(), 2)
}

func TestKindDefaultSeverity(t *testing.T) {
	assert.Equal(t, SeverityWarning, KindUnreachableCode.DefaultSeverity())
	assert.Equal(t, SeverityWarning, KindUnusedBinding.DefaultSeverity())
	assert.Equal(t, SeverityError, KindTypeMismatch.DefaultSeverity())
}
