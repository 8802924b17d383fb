// Package function provides Function, a value-semantic wrapper around any
// callable of a fixed signature.
//
// A Function erases the concrete type of what it holds while keeping the
// ability to copy, move, swap and invoke it, and to get the typed value back
// when the caller names the right type.
//
// # Storage
//
// Callables strictly smaller and strictly less aligned than a machine word
// are stored inline in the wrapper and never touch the heap. Anything larger
// (including plain Go func values, which are one word wide) is boxed: the
// wrapper owns exactly one heap copy.
//
// # Dispatch
//
// Every concrete callable type gets one immutable descriptor, created on
// first use and kept for the life of the process. It carries the copy, move,
// destroy, address-of and invoke operations for that type. The wrapper holds
// only its storage and a pointer to the active descriptor, and descriptor
// identity is the sole type tag: Target[T] succeeds only when the active
// descriptor is the one registered for T.
//
// # Signatures
//
// Function[A, R] takes one argument of type A and returns R. Use Unit for no
// arguments and Args2 / Args3 for more; Of0..Of3 adapt plain Go funcs and
// Invoke0..Invoke3 call them with spread arguments.
//
// # Values
//
// The zero Function is empty. Calling an empty Function panics with an
// error wrapping ErrEmptyCall; TryCall returns that error instead.
//
// Plain assignment of a populated Function shares its boxed storage. Use
// Clone for an independent copy, Move or MoveFrom to hand ownership over and
// Reset to release what a Function holds. A single Function must not be
// mutated from several goroutines at once.
//
// Example:
//
//	f := function.Of2(func(a, b int) int { return a + b })
//	defer f.Reset()
//
//	sum := function.Invoke2(&f, 2, 3) // 5
package function
