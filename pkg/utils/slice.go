package utils

// map slice elements to other type.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth := range sli {
		ret[nth] = mapper(sli[nth])
	}
	return ret
}

// map slice elements, stopping at the first error.
func MapUntilError[T any, R any](sli []T, mapper func(v T) (R, error)) ([]R, error) {
	ret := make([]R, 0, len(sli))
	for _, v := range sli {
		r, err := mapper(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, nil
}

// build map from slice. When keys collide, the later wins.
func ToMap[T any, K comparable](sli []T, getkey func(v T) K) map[K]T {
	ret := make(map[K]T, len(sli))
	for _, v := range sli {
		ret[getkey(v)] = v
	}
	return ret
}

// elements satisfying predicator, in order.
func Filter[T any](vs []T, predicator func(T) bool) []T {
	ret := []T{}
	for _, v := range vs {
		if predicator(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// the first element satisfying predicator.
func First[T any](sli []T, predicator func(T) bool) (T, bool) {
	for _, v := range sli {
		if predicator(v) {
			return v, true
		}
	}
	return *new(T), false
}
