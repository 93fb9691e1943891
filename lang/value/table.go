package value

import "github.com/dolthub/swiss"

// Table is a String-keyed Value map, the shape shared by the VM's globals
// table, a Class's method table, and an Instance's field table. Keys are
// always interned Strings, so two Tables never disagree about whether two
// keys with equal contents are "the same" key - comparing the *String
// pointers is comparing the contents.
type Table struct {
	m *swiss.Map[*String, Value]
}

// NewTable returns an empty Table sized for at least size entries.
func NewTable(size int) *Table {
	return &Table{m: swiss.NewMap[*String, Value](uint32(size))}
}

// Get looks up name, returning its value and whether it was present.
func (t *Table) Get(name *String) (Value, bool) {
	if t == nil || t.m == nil {
		return Nil, false
	}
	return t.m.Get(name)
}

// Set stores value under name, overwriting any existing entry.
func (t *Table) Set(name *String, val Value) {
	if t.m == nil {
		t.m = swiss.NewMap[*String, Value](8)
	}
	t.m.Put(name, val)
}

// Delete removes name from the table, reporting whether it was present.
func (t *Table) Delete(name *String) bool {
	if t == nil || t.m == nil {
		return false
	}
	return t.m.Delete(name)
}

// Count returns the number of entries in the table.
func (t *Table) Count() int {
	if t == nil || t.m == nil {
		return 0
	}
	return t.m.Count()
}

// Each calls fn for every (name, value) pair currently in the table. fn
// must not mutate the table while iterating.
func (t *Table) Each(fn func(name *String, val Value)) {
	if t == nil || t.m == nil {
		return
	}
	it := t.m.Iterate()
	for it.Next() {
		k, v := it.Pair()
		fn(k, v)
	}
}

// AddAll copies every entry of other into t, overwriting any key t already
// holds. Used by OpInherit to seed a subclass's method table from its
// superclass.
func (t *Table) AddAll(other *Table) {
	other.Each(func(name *String, val Value) {
		t.Set(name, val)
	})
}
