package pointer

// Ref returns a pointer to a copy of t.
//
// It is handy for optional fields: pointer.Ref(3) where *int is wanted.
func Ref[T any](t T) *T {
	return &t
}
