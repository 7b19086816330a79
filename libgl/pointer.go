package libgl

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Pointer turns upload data into the address GL reads from: the first element
// of a slice, the target of a pointer, or an address passed through as is.
// Empty slices and nil give a nil pointer.
func Pointer(data any) unsafe.Pointer {
	switch d := data.(type) {
	case nil:
		return nil
	case unsafe.Pointer:
		return d
	case uintptr:
		return unsafe.Pointer(d)
	}

	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Pointer:
		return v.UnsafePointer()
	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}
		return v.UnsafePointer()
	}
	panic(fmt.Errorf("cannot take the address of %T, pass a slice or a pointer", data))
}
