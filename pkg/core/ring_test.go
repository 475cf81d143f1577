package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingPushPop(t *testing.T) {
	r := NewRing(8)
	require.Equal(t, 7, r.Cap())

	_, ok := r.Pop()
	require.False(t, ok, "pop from empty must fail")

	for i := uint32(0); i < 7; i++ {
		require.Equal(t, int(i), r.Len())
		require.True(t, r.Push(i))
	}
	require.False(t, r.Push(99), "push must fail at capacity-1 elements")
	require.Equal(t, 7, r.Len())

	for i := uint32(0); i < 7; i++ {
		v, ok := r.Pop()
		require.True(t, ok)
		require.Equal(t, i, v, "pop must return oldest first")
	}
	_, ok = r.Pop()
	require.False(t, ok)
}

func TestRingWraparound(t *testing.T) {
	r := NewRing(4)
	for round := uint32(0); round < 10; round++ {
		require.True(t, r.Push(round*2))
		require.True(t, r.Push(round*2+1))
		v, ok := r.Pop()
		require.True(t, ok)
		require.Equal(t, round*2, v)
		v, ok = r.Pop()
		require.True(t, ok)
		require.Equal(t, round*2+1, v)
	}
	require.Equal(t, 0, r.Len())
}

func TestRingInterleaved(t *testing.T) {
	r := NewRing(4)
	require.True(t, r.Push(1))
	require.True(t, r.Push(2))
	require.True(t, r.Push(3))
	require.False(t, r.Push(4))

	v, _ := r.Pop()
	require.Equal(t, uint32(1), v)
	require.True(t, r.Push(4))
	require.False(t, r.Push(5))

	for _, want := range []uint32{2, 3, 4} {
		v, ok := r.Pop()
		require.True(t, ok)
		require.Equal(t, want, v)
	}
}
