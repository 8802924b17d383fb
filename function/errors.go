package function

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrEmptyCall is raised when a Function holding nothing is invoked.
var ErrEmptyCall = errors.New("call of empty function")

func emptyCallError[A, R any]() error {
	return fmt.Errorf("%w: func(%v) %v", ErrEmptyCall, reflect.TypeFor[A](), reflect.TypeFor[R]())
}
