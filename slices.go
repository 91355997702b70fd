package automaton

// grow extends s with zero values up to length size.
func grow[T any](s []T, size int) []T {
	if n := size - len(s); n > 0 {
		s = append(s, make([]T, n)...)
	}
	return s
}
