package value

// Upvalue is the heap cell a Closure captures: while the variable it
// refers to is still live on the VM's stack the upvalue is "open" and
// Location points directly into that stack slot; once the frame that owns
// the slot returns, the upvalue is "closed" - the value is copied into the
// cell's own storage and Location is repointed at it, so open and closed
// upvalues can be read and written through the same Location indirection.
//
// Location is a raw *Value into the VM's stack array rather than a
// stack-slot index: the VM's stack is a fixed-size array that never
// reallocates, so a pointer into it stays valid for the upvalue's entire
// open lifetime, and using it directly avoids threading the *VM through
// every read and write.
type Upvalue struct {
	Header
	Location *Value
	Closed   Value
	Next     *Upvalue // open-upvalue list, sorted by descending Location address
}

func (u *Upvalue) Kind() ObjKind  { return ObjKindUpvalue }
func (u *Upvalue) String() string { return "upvalue" }
func (u *Upvalue) Size() int      { return 40 }

// Get returns the upvalue's current value, open or closed.
func (u *Upvalue) Get() Value { return *u.Location }

// Set updates the upvalue's current value, open or closed.
func (u *Upvalue) Set(v Value) { *u.Location = v }

// Close copies the value out of the stack slot it was pointing at into the
// upvalue's own storage and repoints Location at that storage, so the
// upvalue keeps working after its stack slot is reused.
func (u *Upvalue) Close() {
	u.Closed = *u.Location
	u.Location = &u.Closed
	u.Next = nil
}

// NewOpenUpvalue returns an open upvalue pointing at slot.
func NewOpenUpvalue(slot *Value) *Upvalue {
	return &Upvalue{Location: slot}
}
