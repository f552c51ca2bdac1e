package mocks

// CallLog records arguments passed to a mock method, one element per call.
type CallLog[T any] []T

// Times is how many times the method has been called.
func (l CallLog[T]) Times() uint {
	return uint(len(l))
}
