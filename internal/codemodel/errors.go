package codemodel

import "github.com/cockroachdb/errors"

var (
	// ErrDuplicate is returned when a name is declared twice in one scope.
	ErrDuplicate = errors.New("codemodel: duplicate declaration")
	// ErrInvalidModifiers is returned for modifier sets Java rejects.
	ErrInvalidModifiers = errors.New("codemodel: invalid modifiers")
	// ErrWrongKind is returned when an operation does not apply to the
	// kind of class it is called on.
	ErrWrongKind = errors.New("codemodel: operation not valid for class kind")
)

func duplicate(what, name, scope string) error {
	return errors.WithHint(
		errors.Wrapf(ErrDuplicate, "%s %s in %s", what, name, scope),
		"look the existing declaration up instead of declaring it again")
}
