package iteratable

import (
	"github.com/emirpasic/gods/lists/arraylist"
)

// Set is an insertion-ordered set. Elements have to be comparable.
// Sets are not safe for concurrent use.
type Set struct {
	items  *arraylist.List
	member map[interface{}]struct{}
	cursor int
}

// NewSet creates a new set with an initial capacity hint.
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		items:  arraylist.New(),
		member: make(map[interface{}]struct{}, capacity),
		cursor: -1,
	}
}

// Add adds an element to the set and returns true if it was not yet contained.
func (s *Set) Add(el interface{}) bool {
	if _, ok := s.member[el]; ok {
		return false
	}
	s.member[el] = struct{}{}
	s.items.Add(el)
	return true
}

// Contains checks if el is an element of s.
func (s *Set) Contains(el interface{}) bool {
	_, ok := s.member[el]
	return ok
}

// Size returns the number of elements in s.
func (s *Set) Size() int {
	return s.items.Size()
}

// Empty returns true if s has no elements.
func (s *Set) Empty() bool {
	return s.items.Empty()
}

// Values returns the elements of s in insertion order.
func (s *Set) Values() []interface{} {
	return s.items.Values()
}

// IterateOnce starts an iteration over s. Iteration visits elements in
// insertion order, including elements added during iteration.
//
//    S.IterateOnce()
//    for S.Next() {
//        el := S.Item()
//        …
//    }
//
func (s *Set) IterateOnce() {
	s.cursor = -1
}

// Next moves the iteration to the next element and returns false when
// the iteration is exhausted.
func (s *Set) Next() bool {
	if s.cursor+1 >= s.items.Size() {
		s.cursor = s.items.Size()
		return false
	}
	s.cursor++
	return true
}

// Item returns the current element of an iteration.
func (s *Set) Item() interface{} {
	el, _ := s.items.Get(s.cursor)
	return el
}

// Each calls f for every element of s.
func (s *Set) Each(f func(interface{})) {
	s.items.Each(func(_ int, el interface{}) {
		f(el)
	})
}

// Subset returns a new set with all elements of s satisfying predicate.
func (s *Set) Subset(predicate func(interface{}) bool) *Set {
	sub := NewSet(0)
	s.Each(func(el interface{}) {
		if predicate(el) {
			sub.Add(el)
		}
	})
	return sub
}
