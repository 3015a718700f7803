package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	var s BracketStack
	require.True(t, s.IsEmpty())
	require.False(t, s.IsFull())

	require.Nil(t, s.Push(10))
	require.Nil(t, s.Push(20))
	require.Nil(t, s.Push(30))
	require.False(t, s.IsEmpty())

	// LIFO order
	v, err := s.Pop()
	require.Nil(t, err)
	require.Equal(t, uint16(30), v)

	v, err = s.Pop()
	require.Nil(t, err)
	require.Equal(t, uint16(20), v)

	v, err = s.Pop()
	require.Nil(t, err)
	require.Equal(t, uint16(10), v)
	require.True(t, s.IsEmpty())
}

func TestStackUnderflow(t *testing.T) {
	var s BracketStack
	_, err := s.Pop()
	require.ErrorIs(t, err, ErrStackUnderflow)
}

func TestStackOverflow(t *testing.T) {
	var s BracketStack
	for i := 0; i < MaxLoopDepth; i++ {
		require.Nil(t, s.Push(uint16(i)))
	}
	require.True(t, s.IsFull())
	require.ErrorIs(t, s.Push(0), ErrStackOverflow)

	// A failed push must not clobber existing entries.
	v, err := s.Pop()
	require.Nil(t, err)
	require.Equal(t, uint16(MaxLoopDepth-1), v)
}
