package typeutil

// Set is a generic membership set backed by a map. Create instances with
// NewSet or make, same as a plain map.
type Set[T comparable] map[T]struct{}

func NewSet[T comparable](elements ...T) Set[T] {
	set := make(Set[T], len(elements))
	set.Insert(elements...)
	return set
}

// Insert adds elements to the set, ignoring duplicates.
func (set Set[T]) Insert(elements ...T) {
	for i := range elements {
		set[elements[i]] = struct{}{}
	}
}

// Contain reports whether every given element is present.
func (set Set[T]) Contain(elements ...T) bool {
	for i := range elements {
		if _, ok := set[elements[i]]; !ok {
			return false
		}
	}
	return true
}

func (set Set[T]) Len() int {
	return len(set)
}
