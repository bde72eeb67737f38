// Package setutil provides a small ID set used for scoping queries.
package setutil

import "slices"

// UintSet is a set of uint IDs. The zero value is not usable; use NewUintSet.
type UintSet struct {
	items map[uint]struct{}
}

func NewUintSet(ids ...uint) *UintSet {
	s := &UintSet{items: make(map[uint]struct{}, len(ids))}
	s.AddAll(ids)
	return s
}

func (s *UintSet) Add(id uint) {
	s.items[id] = struct{}{}
}

func (s *UintSet) AddAll(ids []uint) {
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
}

func (s *UintSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

func (s *UintSet) Len() int {
	return len(s.items)
}

// Sorted returns the members in ascending order, which matches insertion
// order for auto-increment keys.
func (s *UintSet) Sorted() []uint {
	out := make([]uint, 0, len(s.items))
	for id := range s.items {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Union returns a new set holding the members of s and others.
func (s *UintSet) Union(others ...*UintSet) *UintSet {
	out := NewUintSet(s.Sorted()...)
	for _, o := range others {
		if o != nil {
			out.AddAll(o.Sorted())
		}
	}
	return out
}
