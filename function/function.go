package function

import (
	"github.com/on-the-ground/smallfunc/internal/cell"
)

// Mode reports how a Function stores its callable.
type Mode = cell.Mode

const (
	ModeEmpty  = cell.ModeEmpty
	ModeInline = cell.ModeInline
	ModeBoxed  = cell.ModeBoxed
)

// Function holds any callable with signature func(A) R.
//
// The zero value is an empty Function. store is only meaningful relative to
// desc, and every operation below updates the two together.
type Function[A, R any] struct {
	store cell.Cell
	desc  *descriptor[A, R]
}

// Empty returns a Function holding nothing.
func Empty[A, R any]() Function[A, R] {
	return Function[A, R]{desc: emptyDescriptor[A, R]()}
}

// New wraps v. Types smaller and less aligned than a machine word are kept
// inline; anything else is copied to the heap once.
//
// Usage:
//
//	f := function.New[function.Unit, int](answer(42))
func New[A, R, T any, PT CallablePtr[T, A, R]](v T) Function[A, R] {
	f := Function[A, R]{desc: descriptorOf[A, R, T, PT]()}
	if f.desc.mode == cell.ModeInline {
		cell.Put(&f.store, v)
	} else {
		cell.Box(&f.store, v)
	}
	return f
}

// ops never returns nil: the zero value dispatches through the sentinel.
func (f *Function[A, R]) ops() *descriptor[A, R] {
	if f.desc == nil {
		return emptyDescriptor[A, R]()
	}
	return f.desc
}

// Valid reports whether f holds a callable.
func (f *Function[A, R]) Valid() bool {
	return f.desc != nil && f.desc != f.desc.empty
}

// IsEmpty reports whether f holds nothing.
func (f *Function[A, R]) IsEmpty() bool {
	return !f.Valid()
}

// Mode reports whether the held callable is inline, boxed, or absent.
func (f *Function[A, R]) Mode() Mode {
	return f.ops().mode
}

// Call invokes the held callable.
// It panics with an error wrapping ErrEmptyCall when f is empty.
func (f *Function[A, R]) Call(a A) R {
	return f.ops().invoke(&f.store, a)
}

// TryCall is Call returning the empty-call error instead of panicking.
func (f *Function[A, R]) TryCall(a A) (R, error) {
	if f.IsEmpty() {
		var zero R
		return zero, emptyCallError[A, R]()
	}
	return f.Call(a), nil
}

// Clone returns an independent copy of f.
func (f *Function[A, R]) Clone() Function[A, R] {
	d := f.ops()
	return Function[A, R]{store: d.copy(f.store), desc: d}
}

// CopyFrom replaces the content of f with a copy of src.
//
// The copy is made before f is touched, so if cloning panics f keeps what it
// held.
func (f *Function[A, R]) CopyFrom(src *Function[A, R]) {
	if f == src {
		return
	}
	tmp := src.Clone()
	f.Swap(&tmp)
	tmp.Reset()
}

// Move hands the content of f to the returned Function and leaves f empty.
func (f *Function[A, R]) Move() Function[A, R] {
	d := f.ops()
	out := Function[A, R]{desc: d}
	out.store, f.store = d.move(f.store)
	f.desc = d.empty
	return out
}

// MoveFrom releases what f held, takes over the content of src and leaves
// src empty.
func (f *Function[A, R]) MoveFrom(src *Function[A, R]) {
	if f == src {
		return
	}
	f.Swap(src)
	src.Reset()
}

// Reset destroys the held callable, if any, and leaves f empty.
//
// f is emptied before the callable is released, so a panicking Release
// still leaves nothing behind to release twice.
func (f *Function[A, R]) Reset() {
	d, held := f.ops(), f.store
	f.store, f.desc = cell.Cell{}, d.empty
	d.destroy(held)
}

// Swap exchanges the contents of f and other.
//
// Every transfer goes through the move of the descriptor owning the source
// cell, via a scratch cell, so values of different types and storage modes
// never see each other's bytes.
func (f *Function[A, R]) Swap(other *Function[A, R]) {
	if f == other {
		return
	}
	fd, od := f.ops(), other.ops()

	var scratch cell.Cell
	scratch, other.store = od.move(other.store)
	other.store, f.store = fd.move(f.store)
	f.store, scratch = od.move(scratch)

	f.desc, other.desc = od, fd
}

// Target returns the held callable when it was constructed as a T, and nil
// otherwise. Types are matched by descriptor identity, so distinct types
// with the same layout never match each other.
//
// The pointer stays valid until f is moved, swapped or reset.
func Target[T, A, R any](f *Function[A, R]) *T {
	d, ok := lookupDescriptor[A, R, T]()
	if !ok || d != f.desc {
		return nil
	}
	return (*T)(d.get(&f.store))
}
