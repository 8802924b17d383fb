package function

import (
	"reflect"
	"unsafe"

	"github.com/on-the-ground/smallfunc/internal/cell"
	"github.com/on-the-ground/smallfunc/internal/registry"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// descriptor is the operation table for one concrete callable type.
//
// Every operation is a pure function of the cell it is handed, so a single
// descriptor serves every Function holding that type. copy, move and destroy
// take and return cells by value: a cell is position independent, and
// keeping addresses away from these indirect calls keeps inline values off
// the heap.
type descriptor[A, R any] struct {
	id   string
	name string
	mode cell.Mode
	// empty is the sentinel of the same signature; the sentinel points at
	// itself.
	empty *descriptor[A, R]

	copy    func(src cell.Cell) cell.Cell
	move    func(src cell.Cell) (dst, rest cell.Cell)
	destroy func(src cell.Cell)
	get     func(src *cell.Cell) unsafe.Pointer
	invoke  func(src *cell.Cell, a A) R
}

func (d *descriptor[A, R]) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", d.name)
	enc.AddString("mode", d.mode.String())
	enc.AddString("id", d.id)
	return nil
}

var descriptors = registry.New(registry.NewConfig(registry.DefaultShards), nil)

// SetLogger installs the logger that reports descriptor registration.
// Passing nil silences it again.
func SetLogger(logger *zap.Logger) {
	descriptors.SetLogger(logger)
}

// Distinct instantiations of these give every (signature, callable) pair its
// own registry key.
type (
	descriptorKey[A, R, T any] struct{}
	emptyKey[A, R any]         struct{}
)

func emptyDescriptor[A, R any]() *descriptor[A, R] {
	key := reflect.TypeFor[emptyKey[A, R]]()
	if d, ok := descriptors.Load(key); ok {
		return d.(*descriptor[A, R])
	}
	return descriptors.LoadOrCreate(key, func(id string) any {
		return newEmptyDescriptor[A, R](id)
	}).(*descriptor[A, R])
}

func lookupDescriptor[A, R, T any]() (*descriptor[A, R], bool) {
	d, ok := descriptors.Load(reflect.TypeFor[descriptorKey[A, R, T]]())
	if !ok {
		return nil, false
	}
	return d.(*descriptor[A, R]), true
}

func descriptorOf[A, R, T any, PT CallablePtr[T, A, R]]() *descriptor[A, R] {
	if d, ok := lookupDescriptor[A, R, T](); ok {
		return d
	}
	return descriptors.LoadOrCreate(reflect.TypeFor[descriptorKey[A, R, T]](), func(id string) any {
		return newDescriptor[A, R, T, PT](id)
	}).(*descriptor[A, R])
}

func newEmptyDescriptor[A, R any](id string) *descriptor[A, R] {
	d := &descriptor[A, R]{
		id:      id,
		name:    "<empty>",
		mode:    cell.ModeEmpty,
		copy:    func(src cell.Cell) cell.Cell { return cell.Cell{} },
		move:    func(src cell.Cell) (cell.Cell, cell.Cell) { return cell.Cell{}, cell.Cell{} },
		destroy: func(src cell.Cell) {},
		get:     func(src *cell.Cell) unsafe.Pointer { return nil },
		invoke: func(src *cell.Cell, a A) R {
			panic(emptyCallError[A, R]())
		},
	}
	d.empty = d
	return d
}

func newDescriptor[A, R, T any, PT CallablePtr[T, A, R]](id string) *descriptor[A, R] {
	d := &descriptor[A, R]{
		id:    id,
		name:  reflect.TypeFor[T]().String(),
		mode:  cell.Classify[T](),
		empty: emptyDescriptor[A, R](),
	}
	clone := cloneFunc[T, PT]()
	release := releaseFunc[T, PT]()

	switch d.mode {
	case cell.ModeInline:
		d.copy = func(src cell.Cell) (dst cell.Cell) {
			if clone == nil {
				cell.Put(&dst, *cell.InlineAt[T](&src))
			} else {
				cell.Put(&dst, clone(cell.InlineAt[T](&src)))
			}
			return dst
		}
		d.move = func(src cell.Cell) (dst, rest cell.Cell) {
			if !src.Held() {
				return dst, src
			}
			cell.Put(&dst, *cell.InlineAt[T](&src))
			src.ClearInline()
			return dst, src
		}
		d.destroy = func(src cell.Cell) {
			if src.Held() && release != nil {
				release(cell.InlineAt[T](&src))
			}
		}
		d.get = func(src *cell.Cell) unsafe.Pointer {
			return unsafe.Pointer(cell.InlineAt[T](src))
		}
		d.invoke = func(src *cell.Cell, a A) R {
			return PT(cell.InlineAt[T](src)).Call(a)
		}
	default:
		d.copy = func(src cell.Cell) (dst cell.Cell) {
			if clone == nil {
				cell.Box(&dst, *cell.BoxedAt[T](&src))
			} else {
				cell.Box(&dst, clone(cell.BoxedAt[T](&src)))
			}
			return dst
		}
		// the source pointer is cleared so a later destroy of src is a no-op
		d.move = func(src cell.Cell) (dst, rest cell.Cell) {
			dst.Adopt(&src)
			return dst, src
		}
		d.destroy = func(src cell.Cell) {
			if src.Held() && release != nil {
				release(cell.BoxedAt[T](&src))
			}
		}
		d.get = func(src *cell.Cell) unsafe.Pointer {
			return src.Heap()
		}
		d.invoke = func(src *cell.Cell, a A) R {
			return PT(cell.BoxedAt[T](src)).Call(a)
		}
	}
	return d
}
