package function

// Unit is the argument of a Function taking no arguments.
type Unit struct{}

type Args2[A1, A2 any] struct {
	First  A1
	Second A2
}

type Args3[A1, A2, A3 any] struct {
	First  A1
	Second A2
	Third  A3
}

// Func0 to Func3 adapt plain Go funcs to Callable. A func value is one word
// wide, so these are always boxed.
type (
	Func0[R any]             func() R
	Func1[A, R any]          func(A) R
	Func2[A1, A2, R any]     func(A1, A2) R
	Func3[A1, A2, A3, R any] func(A1, A2, A3) R
)

func (fn Func0[R]) Call(Unit) R { return fn() }

func (fn Func1[A, R]) Call(a A) R { return fn(a) }

func (fn Func2[A1, A2, R]) Call(a Args2[A1, A2]) R { return fn(a.First, a.Second) }

func (fn Func3[A1, A2, A3, R]) Call(a Args3[A1, A2, A3]) R {
	return fn(a.First, a.Second, a.Third)
}

// Of0 wraps fn. A nil fn gives an empty Function.
func Of0[R any](fn func() R) Function[Unit, R] {
	if fn == nil {
		return Empty[Unit, R]()
	}
	return New[Unit, R](Func0[R](fn))
}

// Of1 wraps fn. A nil fn gives an empty Function.
func Of1[A, R any](fn func(A) R) Function[A, R] {
	if fn == nil {
		return Empty[A, R]()
	}
	return New[A, R](Func1[A, R](fn))
}

// Of2 wraps fn. A nil fn gives an empty Function.
func Of2[A1, A2, R any](fn func(A1, A2) R) Function[Args2[A1, A2], R] {
	if fn == nil {
		return Empty[Args2[A1, A2], R]()
	}
	return New[Args2[A1, A2], R](Func2[A1, A2, R](fn))
}

// Of3 wraps fn. A nil fn gives an empty Function.
func Of3[A1, A2, A3, R any](fn func(A1, A2, A3) R) Function[Args3[A1, A2, A3], R] {
	if fn == nil {
		return Empty[Args3[A1, A2, A3], R]()
	}
	return New[Args3[A1, A2, A3], R](Func3[A1, A2, A3, R](fn))
}

func Invoke0[R any](f *Function[Unit, R]) R {
	return f.Call(Unit{})
}

func Invoke1[A, R any](f *Function[A, R], a A) R {
	return f.Call(a)
}

func Invoke2[A1, A2, R any](f *Function[Args2[A1, A2], R], a1 A1, a2 A2) R {
	return f.Call(Args2[A1, A2]{First: a1, Second: a2})
}

func Invoke3[A1, A2, A3, R any](f *Function[Args3[A1, A2, A3], R], a1 A1, a2 A2, a3 A3) R {
	return f.Call(Args3[A1, A2, A3]{First: a1, Second: a2, Third: a3})
}
