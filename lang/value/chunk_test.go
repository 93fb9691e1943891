package value_test

import (
	"testing"

	"github.com/lumenforge/lumen/lang/value"
	"github.com/stretchr/testify/require"
)

func TestChunkWrite(t *testing.T) {
	var c value.Chunk
	c.WriteOpcode(value.OpNil, 1)
	c.WriteOpcode(value.OpReturn, 1)
	require.Equal(t, []byte{byte(value.OpNil), byte(value.OpReturn)}, c.Code)
	require.Equal(t, []int32{1, 1}, c.Lines)
}

func TestChunkAddConstant(t *testing.T) {
	var c value.Chunk
	idx, err := c.AddConstant(value.Number(1))
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	idx, err = c.AddConstant(value.Number(2))
	require.NoError(t, err)
	require.Equal(t, 1, idx)
	require.Equal(t, 2, len(c.Constants))
}

func TestChunkAddConstantOverflow(t *testing.T) {
	var c value.Chunk
	for i := 0; i < value.MaxConstants; i++ {
		_, err := c.AddConstant(value.Number(float64(i)))
		require.NoError(t, err)
	}
	_, err := c.AddConstant(value.Number(999))
	require.Error(t, err)
}
