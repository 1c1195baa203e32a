package factors

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrFactorNotFound is the sentinel matched by every FactorNotFoundError.
// A lookup miss is a configuration-data problem ("we don't yet support
// this activity type"), distinct from caller input errors.
const ErrFactorNotFound = constError("emission factor not found")

// FactorNotFoundError reports a Table lookup miss. It matches
// ErrFactorNotFound via errors.Is.
type FactorNotFoundError struct {
	Category Category
	Subtype  string
}

func (e *FactorNotFoundError) Error() string {
	return fmt.Sprintf("emission factor not found for %s/%s", e.Category, e.Subtype)
}

func (e *FactorNotFoundError) Is(target error) bool {
	return target == ErrFactorNotFound
}
