package presenter

import "github.com/cockroachdb/errors"

// Sentinel errors for the decorator boundary. Callers match them with
// errors.Is; the helpers below attach the offending name as context.
var (
	// ErrAttributeNotFound reports a read of an attribute that neither the
	// presenter chain nor the terminal model can resolve.
	ErrAttributeNotFound = errors.New("attribute not found")

	// ErrMethodNotFound reports a call that no presenter variant declares
	// and the wrapped object cannot forward.
	ErrMethodNotFound = errors.New("method not found")

	// ErrWriteNotSupported reports any attempted write through a presenter.
	// Presenters are read-only views over the wrapped model.
	ErrWriteNotSupported = errors.New("presenter attributes are read-only")

	// ErrNoDefaultPresenter reports presenting a model without an explicit
	// variant when the model declares no default.
	ErrNoDefaultPresenter = errors.New("model declares no default presenter")
)

func writeNotSupported(name string) error {
	return errors.Wrapf(ErrWriteNotSupported, "set %q", name)
}
