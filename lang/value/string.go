package value

// String is an immutable, interned byte sequence. Identity equality holds
// for interned strings: two String objects with equal contents are always
// the same pointer once they have passed through the VM's intern table, so
// Equal's reference comparison doubles as content comparison.
type String struct {
	Header
	Chars string
	Hash  uint32
}

func (s *String) Kind() ObjKind  { return ObjKindString }
func (s *String) String() string { return s.Chars }
func (s *String) Size() int      { return 32 + len(s.Chars) }

// HashString computes the FNV-1a 32-bit hash of s, the hash every interned
// String precomputes and stores alongside its bytes.
func HashString(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// NewString constructs a String object from s without interning it. The VM
// is responsible for consulting and updating its intern table around calls
// to the allocator; String itself has no notion of a global table.
func NewString(s string) *String {
	return &String{Chars: s, Hash: HashString(s)}
}
