package value

import "fmt"

// Class is a class declaration's runtime value: a name and a method table
// keyed by interned method name. Single inheritance is implemented by
// copying the superclass's method table into the subclass's at the point
// OpInherit runs, rather than by a live parent pointer - methods resolved
// after that point never observe later changes to the superclass.
type Class struct {
	Header
	Name    *String
	Methods *Table
}

func (c *Class) Kind() ObjKind  { return ObjKindClass }
func (c *Class) String() string { return c.Name.Chars }
func (c *Class) Size() int      { return 48 + c.Methods.Count()*16 }

// NewClass allocates a Class with an empty method table.
func NewClass(name *String) *Class {
	return &Class{Name: name, Methods: NewTable(0)}
}

// Instance is a class instance: a reference to its Class and a field table
// keyed by interned field name. Field lookups never consult the class; only
// the method fallbacks of OpGetProperty (via bindMethod) and OpInvoke do.
type Instance struct {
	Header
	Class  *Class
	Fields *Table
}

func (i *Instance) Kind() ObjKind  { return ObjKindInstance }
func (i *Instance) String() string { return fmt.Sprintf("%s instance", i.Class.Name.Chars) }
func (i *Instance) Size() int      { return 48 + i.Fields.Count()*16 }

// NewInstance allocates an Instance of class with an empty field table.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: NewTable(0)}
}

// BoundMethod pairs a receiver Instance with the Closure found on its
// class, produced whenever a property access resolves to a method instead
// of a field. Calling a BoundMethod calls the Closure with the receiver
// already installed in call-frame slot 0.
type BoundMethod struct {
	Header
	Receiver Value
	Method   *Closure
}

func (b *BoundMethod) Kind() ObjKind  { return ObjKindBoundMethod }
func (b *BoundMethod) String() string { return b.Method.String() }
func (b *BoundMethod) Size() int      { return 24 }

// NewBoundMethod allocates a BoundMethod.
func NewBoundMethod(receiver Value, method *Closure) *BoundMethod {
	return &BoundMethod{Receiver: receiver, Method: method}
}
