package function

// Callable is implemented by anything a Function[A, R] can hold.
type Callable[A, R any] interface {
	Call(A) R
}

// CallablePtr lets New accept T when *T implements Callable, so a stored
// callable with pointer-receiver methods can keep state between calls.
type CallablePtr[T, A, R any] interface {
	*T
	Callable[A, R]
}

// Cloner is used instead of a plain value copy when a Function is cloned.
type Cloner[T any] interface {
	Clone() T
}

// Releaser is called once when the Function owning the value destroys it.
// Moving a value to another Function does not release it.
type Releaser interface {
	Release()
}

// cloneFunc and releaseFunc return nil when *T lacks the capability, so the
// descriptor can skip the call altogether.
func cloneFunc[T any, PT interface{ *T }]() func(*T) T {
	var zero PT
	if _, ok := any(zero).(Cloner[T]); ok {
		return func(p *T) T {
			return any(PT(p)).(Cloner[T]).Clone()
		}
	}
	return nil
}

func releaseFunc[T any, PT interface{ *T }]() func(*T) {
	var zero PT
	if _, ok := any(zero).(Releaser); ok {
		return func(p *T) {
			any(PT(p)).(Releaser).Release()
		}
	}
	return nil
}
