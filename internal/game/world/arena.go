package world

// Objects is the live object collection of a level: an ordered arena
// addressed by stable id. Iteration order is insertion order.
type Objects struct {
	items  []Object
	lastID int
}

// NewObjects creates a collection holding the given objects.
// The id allocator starts above the highest id present.
func NewObjects(objs ...Object) *Objects {
	o := &Objects{items: make([]Object, 0, len(objs))}
	for _, obj := range objs {
		o.Add(obj)
	}
	return o
}

// Add appends an object. Adding an id that is already present replaces
// nothing; callers allocate ids with NextID.
func (o *Objects) Add(obj Object) {
	if id := ID(obj); id > o.lastID {
		o.lastID = id
	}
	o.items = append(o.items, obj)
}

// NextID returns a fresh id that no template or earlier spawn uses.
func (o *Objects) NextID() int {
	o.lastID++
	return o.lastID
}

// Remove deletes the object with the given id.
// Removing an id that is not present is a no-op and returns false.
func (o *Objects) Remove(id int) bool {
	for i, obj := range o.items {
		if ID(obj) == id {
			o.items = append(o.items[:i], o.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveIf deletes every object matching the predicate and returns how many went.
func (o *Objects) RemoveIf(match func(Object) bool) int {
	kept := o.items[:0]
	for _, obj := range o.items {
		if !match(obj) {
			kept = append(kept, obj)
		}
	}
	removed := len(o.items) - len(kept)
	for i := len(kept); i < len(o.items); i++ {
		o.items[i] = nil
	}
	o.items = kept
	return removed
}

// Find returns the object with the given id, or nil.
func (o *Objects) Find(id int) Object {
	for _, obj := range o.items {
		if ID(obj) == id {
			return obj
		}
	}
	return nil
}

// Len returns the number of live objects.
func (o *Objects) Len() int {
	return len(o.items)
}

// All returns the live objects in order. The slice is a copy, so the
// collection may be modified while ranging over it.
func (o *Objects) All() []Object {
	out := make([]Object, len(o.items))
	copy(out, o.items)
	return out
}

// Clone deep copies the collection.
func (o *Objects) Clone() *Objects {
	c := &Objects{items: make([]Object, len(o.items)), lastID: o.lastID}
	for i, obj := range o.items {
		c.items[i] = obj.Clone()
	}
	return c
}

// Of returns the live objects of one concrete type, in order.
func Of[T Object](o *Objects) []T {
	var out []T
	for _, obj := range o.items {
		if v, ok := obj.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first live object of one concrete type.
func First[T Object](o *Objects) (T, bool) {
	for _, obj := range o.items {
		if v, ok := obj.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
