package store

import "reflect"

// sameValue reports whether b is the identical value to a. Comparable values
// use ==; slices, maps, funcs, channels and pointers compare by reference;
// anything else is never identical, so replacing it always counts as a
// change.
//
// Zero-size allocations all share one address, so a non-nil slice without
// backing storage and a pointer to a zero-size value have no identity to
// compare and are never identical, even to themselves.
func sameValue(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	switch ta.Kind() {
	case reflect.Slice:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		if va.Cap() == 0 || vb.Cap() == 0 || ta.Elem().Size() == 0 {
			return false
		}
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Pointer:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		if ta.Elem().Size() == 0 {
			return false
		}
		return va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}

	if !ta.Comparable() {
		return false
	}

	// Structs and arrays holding interfaces can still panic on ==.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
