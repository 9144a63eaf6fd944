package presenter

// Model is the capability contract a presenter requires from the object it
// wraps. Presenter itself implements Model, so presenters stack.
type Model interface {
	// Attribute resolves a stored or computed attribute by name. Unknown
	// names return an error matching ErrAttributeNotFound.
	Attribute(name string) (any, error)

	// SetAttribute writes an attribute. Mutable models apply the write;
	// presenters always reject it with ErrWriteNotSupported.
	SetAttribute(name string, value any) error

	// Call invokes a named method with the given arguments. Unknown names
	// return an error matching ErrMethodNotFound.
	Call(name string, args ...any) (any, error)

	// ToArray returns the object's attributes as an ordered mapping.
	ToArray() (*AttributeMap, error)

	// ToJSON serialises the object's attributes as a JSON object whose key
	// order follows ToArray.
	ToJSON() ([]byte, error)
}

// DefaultPresenter is implemented by models that designate the variant used
// when Present is called without an explicit one.
type DefaultPresenter interface {
	PresentUsing() Spec
}

// Attr is a single named attribute. Slices of Attr keep declaration order,
// which maps become unable to guarantee.
type Attr struct {
	Name  string
	Value any
}
