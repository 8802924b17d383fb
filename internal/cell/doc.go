// Package cell provides the one-word storage cell behind a wrapped callable
// and the rule that decides whether a type lives inline in it or on the heap.
package cell
