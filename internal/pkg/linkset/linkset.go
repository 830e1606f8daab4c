// Package linkset provides an insertion-ordered membership set over comparable
// identity keys, backed by a doubly-linked list. It is used wherever the domain
// needs an enumerable set with O(1) membership, tail insertion and removal:
// registered carriers, incentive recipients, orders held by a carrier.
//
// The zero value of the key type is a reserved null sentinel meaning "no link"
// and can never itself become a member.
package linkset

import "errors"

var (
	// ErrAlreadyLinked is returned when linking a key that is a member already,
	// or the null sentinel.
	ErrAlreadyLinked = errors.New("key is already linked")
	// ErrNotLinked is returned when unlinking a key that is not a member,
	// or the null sentinel.
	ErrNotLinked = errors.New("key is not linked")
)

// entry holds the neighbor pointers of one member. A member's neighbors are the
// zero key when it sits at a boundary of the list.
type entry[K comparable] struct {
	prev K
	next K
}

// Set is an insertion-ordered doubly-linked membership set.
//
// Invariants:
//   - count == 0 iff head and tail are both the zero key
//   - the single member of a one-element set has both neighbor pointers zero,
//     which is indistinguishable from "unlinked" by pointer inspection alone;
//     IsLinked resolves the ambiguity through the head/tail special case
//
// Enumeration via First/NextOf (or Last/PrevOf) is lazy and restartable, but has
// no stability guarantee across mutating calls.
type Set[K comparable] struct {
	count   int
	head    K
	tail    K
	entries map[K]entry[K]
}

// New creates an empty set.
func New[K comparable]() *Set[K] {
	return &Set[K]{entries: make(map[K]entry[K])}
}

// Size returns the number of members.
func (s *Set[K]) Size() int {
	return s.count
}

// First returns the oldest member, or the zero key for an empty set.
func (s *Set[K]) First() K {
	return s.head
}

// Last returns the most recently linked member, or the zero key for an empty set.
func (s *Set[K]) Last() K {
	return s.tail
}

// NextOf returns the member linked after k, or the zero key at the tail.
func (s *Set[K]) NextOf(k K) K {
	return s.entries[k].next
}

// PrevOf returns the member linked before k, or the zero key at the head.
func (s *Set[K]) PrevOf(k K) K {
	return s.entries[k].prev
}

// IsLinked reports whether k is a member. Membership is decided from the neighbor
// pointers: a key with a non-zero neighbor is linked, and the sole member of a
// one-element set is recognized through the head/tail special case even though
// both of its own pointers are zero.
func (s *Set[K]) IsLinked(k K) bool {
	var zero K
	if k == zero {
		return false
	}
	e := s.entries[k]
	if e.prev != zero || e.next != zero {
		return true
	}
	return s.count == 1 && s.head == k && s.tail == k
}

// Link appends k at the tail. It fails with ErrAlreadyLinked if k is a member
// already or is the null sentinel.
func (s *Set[K]) Link(k K) error {
	var zero K
	if k == zero || s.IsLinked(k) {
		return ErrAlreadyLinked
	}

	if s.count == 0 {
		s.head = k
		s.tail = k
		s.entries[k] = entry[K]{}
	} else {
		prevTail := s.tail
		e := s.entries[prevTail]
		e.next = k
		s.entries[prevTail] = e
		s.entries[k] = entry[K]{prev: prevTail}
		s.tail = k
	}

	s.count++
	return nil
}

// Unlink removes k, splicing its neighbors together and repairing head/tail when
// a boundary member is removed. It fails with ErrNotLinked if k is not a member
// or is the null sentinel.
func (s *Set[K]) Unlink(k K) error {
	var zero K
	if k == zero || !s.IsLinked(k) {
		return ErrNotLinked
	}

	e := s.entries[k]
	if e.prev != zero {
		prev := s.entries[e.prev]
		prev.next = e.next
		s.entries[e.prev] = prev
	} else {
		s.head = e.next
	}

	if e.next != zero {
		next := s.entries[e.next]
		next.prev = e.prev
		s.entries[e.next] = next
	} else {
		s.tail = e.prev
	}

	delete(s.entries, k)
	s.count--
	return nil
}

// Members returns the members in insertion order. It is a convenience for callers
// that need a stable snapshot before mutating the set.
func (s *Set[K]) Members() []K {
	var zero K
	members := make([]K, 0, s.count)
	for k := s.First(); k != zero; k = s.NextOf(k) {
		members = append(members, k)
	}
	return members
}
