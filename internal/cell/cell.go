package cell

import "unsafe"

const (
	// WordSize is the width of the inline region: one machine pointer.
	WordSize = unsafe.Sizeof(uintptr(0))
	// WordAlign is the alignment of a machine pointer.
	WordAlign = unsafe.Alignof(uintptr(0))
)

// Mode tells how a cell holds its value.
type Mode uint8

const (
	ModeEmpty Mode = iota
	ModeInline
	ModeBoxed
)

func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeInline:
		return "inline"
	case ModeBoxed:
		return "boxed"
	default:
		return "unknown"
	}
}

// Cell is the storage of a wrapped callable.
//
// Small values live in the inline region, larger ones behind heap. The two
// slots are kept apart so the garbage collector never reads raw inline bytes
// as a pointer. held records whether either slot still owns a value, so
// destroying a moved-from cell is a no-op. A cell is not self-describing:
// only the descriptor that owns it knows which slot is live and what type
// sits there.
type Cell struct {
	_      [0]uintptr
	inline [WordSize]byte
	heap   unsafe.Pointer
	held   bool
}

// Classify decides once per type whether T is stored inline.
//
// T qualifies when it is strictly smaller and strictly less aligned than a
// machine word. Moving a Go value is a plain memory copy and cannot fail, so
// there is no further move condition to check. A type this small can never
// hold a pointer, which keeps the inline region invisible to the collector.
func Classify[T any]() Mode {
	var zero T
	if unsafe.Sizeof(zero) < WordSize && unsafe.Alignof(zero) < WordAlign {
		return ModeInline
	}
	return ModeBoxed
}

// InlineAt views the inline region as a T.
func InlineAt[T any](c *Cell) *T {
	return (*T)(unsafe.Pointer(&c.inline))
}

// BoxedAt returns the heap value owned by c, or nil once it was moved out.
func BoxedAt[T any](c *Cell) *T {
	return (*T)(c.heap)
}

// Put writes v into the inline region.
func Put[T any](c *Cell, v T) {
	*InlineAt[T](c) = v
	c.held = true
}

// Box allocates a fresh T holding v and hands its ownership to c.
func Box[T any](c *Cell, v T) {
	p := new(T)
	*p = v
	c.heap = unsafe.Pointer(p)
	c.held = true
}

// Held reports whether c still owns a value.
func (c *Cell) Held() bool {
	return c.held
}

// Heap returns the raw owned pointer.
func (c *Cell) Heap() unsafe.Pointer {
	return c.heap
}

// Adopt takes over the heap pointer of src and clears it there, so exactly
// one cell owns the allocation afterwards.
func (c *Cell) Adopt(src *Cell) {
	c.heap, c.held = src.heap, src.held
	src.heap, src.held = nil, false
}

// ClearInline zeroes the inline region.
func (c *Cell) ClearInline() {
	c.inline = [WordSize]byte{}
	c.held = false
}

// ClearHeap drops the owned pointer.
func (c *Cell) ClearHeap() {
	c.heap = nil
	c.held = false
}
