// Package presenter decorates data-model objects with presentation logic:
// computed attributes, attribute visibility, key casing and serialization,
// without touching the underlying model type.
//
// A Presenter wraps anything implementing Model (including another
// Presenter, forming a chain). Attribute reads consult the presenter's
// computed "mutator" attributes first and fall back to the wrapped object.
// Serialization merges the model's attributes with the mutator outputs,
// applies the variant's hidden/visible lists and rewrites key casing.
//
// Variants describe a presenter's behavior and come in three flavours:
// built programmatically with NewVariant, derived from a Go struct's
// Get<Name>Attribute methods with Reflect, or created ad hoc from a Closure.
package presenter
