package rhtable_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresvik/rhtable"
	"github.com/andresvik/rhtable/hashstate"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

func newFixedMap[V any](t *testing.T) *rhtable.Map[uint64, V] {
	t.Helper()
	m, err := rhtable.New[uint64, V](rhtable.WithHashState(hashstate.NewFixedHashState()))
	require.NoError(t, err)
	return m
}

func TestInsertGetRemoveRoundTrip(t *testing.T) {
	m := newFixedMap[uint64](t)

	for i := uint64(1); i <= 1000; i++ {
		_, existed := m.Insert(i, i*10)
		assert.False(t, existed)
	}
	assert.Equal(t, 1000, m.Len())

	for i := uint64(1); i <= 1000; i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		assert.Equal(t, i*10, v)
	}

	for i := uint64(1); i <= 1000; i++ {
		v, ok := m.Remove(i)
		require.True(t, ok)
		assert.Equal(t, i*10, v)
	}
	assert.Equal(t, 0, m.Len())
	assert.True(t, m.IsEmpty())
}

func TestRemoveInReverseInsertionOrder(t *testing.T) {
	m := newFixedMap[uint64](t)
	for i := uint64(1); i <= 1000; i++ {
		m.Insert(i, i)
	}
	for i := uint64(1000); i >= 1; i-- {
		_, ok := m.Remove(i)
		require.True(t, ok)
		for j := uint64(1); j < i; j++ {
			assert.True(t, m.ContainsKey(j), "key %d should still be present", j)
		}
		if i == 1 {
			break
		}
	}
}

func TestInsertReplaceReturnsPrevious(t *testing.T) {
	m := newFixedMap[uint64](t)
	prev, existed := m.Insert(1, 100)
	assert.False(t, existed)
	assert.Equal(t, uint64(0), prev)

	prev, existed = m.Insert(1, 200)
	assert.True(t, existed)
	assert.Equal(t, uint64(100), prev)

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, uint64(200), v)
}

func TestInsertIfAbsentDoesNotOverwrite(t *testing.T) {
	m := newFixedMap[uint64](t)
	m.Insert(1, 100)

	prev, existed := m.InsertIfAbsent(1, 999)
	assert.True(t, existed)
	assert.Equal(t, uint64(100), prev)

	v, _ := m.Get(1)
	assert.Equal(t, uint64(100), v)
}

func TestForcedCollisionsOnSmallTable(t *testing.T) {
	m, err := rhtable.New[uint64, uint64](
		rhtable.WithHashState(hashstate.NewFixedHashState()),
		rhtable.WithCapacity(4),
	)
	require.NoError(t, err)

	keys := []uint64{1, 5, 9}
	for _, k := range keys {
		m.Insert(k, k*100)
	}
	for _, k := range keys {
		v, ok := m.Get(k)
		require.True(t, ok)
		assert.Equal(t, k*100, v)
	}

	_, ok := m.Remove(1)
	require.True(t, ok)
	for _, k := range []uint64{5, 9} {
		assert.True(t, m.ContainsKey(k))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := newFixedMap[uint64](t)
	for i := uint64(0); i < 100; i++ {
		m.Insert(i, i)
	}

	clone := m.Clone()
	m.Remove(0)

	assert.False(t, m.ContainsKey(0))
	v, ok := clone.Get(0)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), v)
	assert.Equal(t, 100, clone.Len())
}

func TestShrinkToFitReducesRawCapacity(t *testing.T) {
	m := newFixedMap[uint64](t)
	require.NoError(t, m.Reserve(128))
	for i := uint64(0); i < 128; i++ {
		m.Insert(i, i)
	}
	require.NoError(t, m.Reserve(256))
	for i := uint64(128); i < 384; i++ {
		m.Insert(i, i)
	}
	grown := m.RawCapacity()

	for i := uint64(0); i < 284; i++ {
		m.Remove(i)
	}
	require.Equal(t, 100, m.Len())

	m.ShrinkToFit()
	assert.Less(t, m.RawCapacity(), grown)
	for i := uint64(284); i < 384; i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestClearKeepsCapacity(t *testing.T) {
	m := newFixedMap[uint64](t)
	require.NoError(t, m.Reserve(64))
	rawBefore := m.RawCapacity()
	for i := uint64(0); i < 50; i++ {
		m.Insert(i, i)
	}
	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, rawBefore, m.RawCapacity())
}

func TestDrainYieldsAllPairsAndEmptiesMapWithoutShrinking(t *testing.T) {
	m := newFixedMap[uint64](t)
	require.NoError(t, m.Reserve(64))
	rawBefore := m.RawCapacity()
	want := make(map[uint64]uint64)
	for i := uint64(0); i < 50; i++ {
		m.Insert(i, i*2)
		want[i] = i * 2
	}

	drained := m.Drain()
	require.Len(t, drained, 50)

	got := make(map[uint64]uint64, len(drained))
	for _, p := range drained {
		got[p.Key] = p.Val
	}
	assert.Equal(t, want, got)

	assert.Equal(t, 0, m.Len())
	assert.True(t, m.IsEmpty())
	assert.Equal(t, rawBefore, m.RawCapacity())

	for k := range want {
		assert.False(t, m.ContainsKey(k))
	}
}

func TestDrainOnEmptyMapYieldsNothing(t *testing.T) {
	m := newFixedMap[uint64](t)
	assert.Empty(t, m.Drain())
}

func TestWithHashStateNilRejected(t *testing.T) {
	_, err := rhtable.New[uint64, uint64](rhtable.WithHashState(nil))
	assert.ErrorIs(t, err, rhtable.ErrNilHashState)
}

func TestRetainKeepsOnlyMatching(t *testing.T) {
	m := newFixedMap[uint64](t)
	for i := uint64(0); i < 20; i++ {
		m.Insert(i, i)
	}
	m.Retain(func(k uint64, _ uint64) bool { return k%2 == 0 })
	assert.Equal(t, 10, m.Len())
	for i := uint64(0); i < 20; i++ {
		ok := m.ContainsKey(i)
		assert.Equal(t, i%2 == 0, ok)
	}
}

func TestGetWithKeyReturnsStoredKey(t *testing.T) {
	m := newFixedMap[uint64](t)
	m.Insert(42, 7)
	k, v, ok := m.GetWithKey(42)
	require.True(t, ok)
	assert.Equal(t, uint64(42), k)
	assert.Equal(t, uint64(7), v)
}

func TestMustGetPanicsOnMissingKey(t *testing.T) {
	m := newFixedMap[uint64](t)
	assert.Panics(t, func() { m.MustGet(404) })
}

func TestWithLoadFactorOutOfRangeRejected(t *testing.T) {
	_, err := rhtable.New[uint64, uint64](rhtable.WithLoadFactor(0))
	assert.ErrorIs(t, err, rhtable.ErrOutOfRange)

	_, err = rhtable.New[uint64, uint64](rhtable.WithLoadFactor(1))
	assert.ErrorIs(t, err, rhtable.ErrOutOfRange)
}

func TestCrossCheckAgainstBuiltinMap(t *testing.T) {
	m := newFixedMap[uint32](t)
	ref := make(map[uint64]uint32)

	const nops = 10000
	for i := 0; i < nops; i++ {
		key := uint64(rand.Intn(1000))
		val := rand.Uint32()
		switch rand.Intn(4) {
		case 0:
			v1, ok1 := m.Get(key)
			v2, ok2 := ref[key]
			assert.Equal(t, ok2, ok1)
			assert.Equal(t, v2, v1)
		case 1, 2:
			m.Insert(key, val)
			ref[key] = val
		case 3:
			m.Remove(key)
			delete(ref, key)
		}
	}

	assert.Equal(t, len(ref), m.Len())
	for k, v := range ref {
		got, ok := m.Get(k)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
}
