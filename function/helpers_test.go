package function_test

import (
	"slices"
	"testing"

	"github.com/on-the-ground/smallfunc/function"
	"github.com/on-the-ground/smallfunc/internal/cell"
	"github.com/stretchr/testify/require"
)

// answer and twin share a layout but are distinct types.
type answer int32

func (a answer) Call(function.Unit) int { return int(a) }

type twin int32

func (t twin) Call(function.Unit) int { return int(t) }

type adder int16

func (a adder) Call(x int) int { return int(a) + x }

type tracker struct {
	releases int
}

// counter is 64 bytes wide on 64-bit platforms.
type counter struct {
	t *tracker
	n int
	_ [6]int64
}

func (c *counter) Call(function.Unit) int {
	c.n++
	return c.n
}

func (c *counter) Release() { c.t.releases++ }

// ticket is stored inline and counts its releases.
type ticket uint8

var ticketReleases int

func (t ticket) Call(function.Unit) int { return int(t) }

func (t *ticket) Release() { ticketReleases++ }

// exploding panics whenever it is released.
type exploding struct {
	t *tracker
}

func (e exploding) Call(function.Unit) int { return 0 }

func (e *exploding) Release() {
	e.t.releases++
	panic("release failed")
}

type history struct {
	items []int
}

func (h *history) Call(x int) int {
	h.items = append(h.items, x)
	return len(h.items)
}

func (h history) Clone() history {
	return history{items: slices.Clone(h.items)}
}

type brittle struct {
	label string
}

func (b brittle) Call(function.Unit) int { return len(b.label) }

func (b brittle) Clone() brittle { panic("clone failed") }

func skipUnless64Bit(t *testing.T) {
	t.Helper()
	if cell.WordSize != 8 {
		t.Skip("layout expectations assume a 64-bit word")
	}
}

// recoverError runs fn and returns the error it panicked with.
func recoverError(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		var ok bool
		err, ok = r.(error)
		require.True(t, ok, "panic value is not an error: %v", r)
	}()
	fn()
	return nil
}
