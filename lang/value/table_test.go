package value_test

import (
	"testing"

	"github.com/lumenforge/lumen/lang/value"
	"github.com/stretchr/testify/require"
)

func TestTableSetGetDelete(t *testing.T) {
	tbl := value.NewTable(0)
	k := value.NewString("k")
	_, ok := tbl.Get(k)
	require.False(t, ok)

	tbl.Set(k, value.Number(1))
	got, ok := tbl.Get(k)
	require.True(t, ok)
	require.Equal(t, value.Number(1), got)
	require.Equal(t, 1, tbl.Count())

	require.True(t, tbl.Delete(k))
	_, ok = tbl.Get(k)
	require.False(t, ok)
}

func TestTableAddAll(t *testing.T) {
	base := value.NewTable(0)
	sub := value.NewTable(0)
	m := value.NewString("m")
	base.Set(m, value.Number(1))

	sub.AddAll(base)
	got, ok := sub.Get(m)
	require.True(t, ok)
	require.Equal(t, value.Number(1), got)

	// Overriding in the subclass after inheriting must not affect the base.
	sub.Set(m, value.Number(2))
	got, _ = sub.Get(m)
	require.Equal(t, value.Number(2), got)
	got, _ = base.Get(m)
	require.Equal(t, value.Number(1), got)
}

func TestTableEach(t *testing.T) {
	tbl := value.NewTable(0)
	a, b := value.NewString("a"), value.NewString("b")
	tbl.Set(a, value.Number(1))
	tbl.Set(b, value.Number(2))

	seen := map[string]float64{}
	tbl.Each(func(name *value.String, val value.Value) {
		seen[name.Chars] = val.AsNumber()
	})
	require.Equal(t, map[string]float64{"a": 1, "b": 2}, seen)
}
