// Package mapper holds slice helpers shared by persistence mappers and DTO converters.
package mapper

import "fmt"

// MapSlice applies fn to each element. A nil input yields nil.
func MapSlice[T any, R any](items []T, fn func(T) R) []R {
	if items == nil {
		return nil
	}
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// MapSliceWithError applies fn to each element and stops at the first failure,
// reporting the index of the offending element.
func MapSliceWithError[T any, R any](items []T, fn func(T) (R, error)) ([]R, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]R, 0, len(items))
	for i, item := range items {
		r, err := fn(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}
