package ast

// Arena is an append-only store addressed by 1-based uint32 handles. The
// zero handle is reserved for "absent".
type Arena[T any] struct {
	items []T
}

// Alloc stores a value and returns its handle.
func (a *Arena[T]) Alloc(v T) uint32 {
	a.items = append(a.items, v)
	return uint32(len(a.items))
}

// Get returns a pointer to the stored value.
func (a *Arena[T]) Get(id uint32) *T {
	return &a.items[id-1]
}

// Len returns the number of stored values.
func (a *Arena[T]) Len() int {
	return len(a.items)
}
