package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator()

	a, err := gen.NewID()
	require.NoError(t, err)
	b, err := gen.NewID()
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	_, err = uuid.Parse(a)
	require.NoError(t, err)
}

func TestSequence(t *testing.T) {
	seq := &Sequence{Prefix: "club-"}
	first, _ := seq.NewID()
	second, _ := seq.NewID()
	require.Equal(t, "club-1", first)
	require.Equal(t, "club-2", second)
}
