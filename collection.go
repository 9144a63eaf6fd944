package presenter

import "github.com/samber/lo"

// Collection is a sequence of models that can be presented in bulk.
type Collection []Model

// Wrap adapts any slice of concrete models into a Collection.
func Wrap[S ~[]E, E Model](items S) Collection {
	return lo.Map(items, func(item E, _ int) Model { return item })
}

// Present returns a new collection of the same length and order with every
// element wrapped via Present. The receiver is left unmodified. Elements
// that are already presenters are wrapped again.
func (c Collection) Present(spec Spec) (Collection, error) {
	var firstErr error
	out := lo.Map(c, func(m Model, _ int) Model {
		if firstErr != nil {
			return m
		}
		p, err := Present(m, spec)
		if err != nil {
			firstErr = err
			return m
		}
		return p
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Transform replaces every element with its presenter in place and returns
// the same collection, so repeated transformations chain on one collection
// value. Elements are replaced, never altered.
func (c Collection) Transform(spec Spec) (Collection, error) {
	for i, m := range c {
		p, err := Present(m, spec)
		if err != nil {
			return c, err
		}
		c[i] = p
	}
	return c, nil
}
