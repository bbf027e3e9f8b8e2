package store

// GetAs returns the value of key asserted to T. The second result is false
// when the key is absent or holds another type.
func GetAs[T any](s *Store, key string) (T, bool) {
	v, ok := s.Lookup(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// GetOr is GetAs with a fallback.
func GetOr[T any](s *Store, key string, fallback T) T {
	if v, ok := GetAs[T](s, key); ok {
		return v
	}
	return fallback
}
