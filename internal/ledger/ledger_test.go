package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "orgnet/pkg/domain-errors"
)

func TestSequenceStartsAtOne(t *testing.T) {
	seq := NewSequence()
	assert.EqualValues(t, 0, seq.Current())
	assert.EqualValues(t, 1, seq.Next())
	assert.EqualValues(t, 2, seq.Next())
	assert.EqualValues(t, 2, seq.Current())
}

func TestSequenceNoGaps(t *testing.T) {
	seq := NewSequence()
	for want := uint64(1); want <= 100; want++ {
		assert.Equal(t, want, seq.Next())
	}
}

func TestSequenceInRange(t *testing.T) {
	seq := NewSequence()
	assert.False(t, seq.InRange(0))
	assert.False(t, seq.InRange(1))

	seq.Next()
	assert.True(t, seq.InRange(1))
	assert.False(t, seq.InRange(0), "zero is the absent sentinel")
	assert.False(t, seq.InRange(2))
}

func TestUniqueIndexReserveIsPermanent(t *testing.T) {
	idx := NewUniqueIndex()
	require.NoError(t, idx.Reserve("sha256:abc", 1))

	err := idx.Reserve("sha256:abc", 2)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeDuplicateKey))

	id, ok := idx.Lookup("sha256:abc")
	require.True(t, ok)
	assert.EqualValues(t, 1, id, "reservation must never be reassigned")
}

func TestUniqueIndexExists(t *testing.T) {
	idx := NewUniqueIndex()
	assert.False(t, idx.Exists("sha256:abc"))
	require.NoError(t, idx.Reserve("sha256:abc", 1))
	assert.True(t, idx.Exists("sha256:abc"))

	_, ok := idx.Lookup("sha256:other")
	assert.False(t, ok)
}

func TestAppendIndexPreservesInsertionOrder(t *testing.T) {
	idx := NewAppendIndex()
	idx.Append("0xissuer", 3)
	idx.Append("0xissuer", 1)
	idx.Append("0xissuer", 2)
	idx.Append("0xother", 9)

	assert.Equal(t, []uint64{3, 1, 2}, idx.List("0xissuer"))
	assert.Equal(t, []uint64{9}, idx.List("0xother"))
	assert.Empty(t, idx.List("0xunknown"))
}

func TestAppendIndexListReturnsCopy(t *testing.T) {
	idx := NewAppendIndex()
	idx.Append("0xissuer", 1)

	got := idx.List("0xissuer")
	got[0] = 42

	assert.Equal(t, []uint64{1}, idx.List("0xissuer"))
}
