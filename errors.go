package bidsapp

import "go.trai.ch/zerr"

// Definition-time configuration errors. Every error returned by the builder wraps one of these.
var (
	// ErrInvalidWrapped is returned when the wrapped value is neither a usable template nor an identifier.
	ErrInvalidWrapped = zerr.New("wrapped must be a template or an image/executable identifier")

	// ErrExplicitFields is returned when a template is combined with explicit input or output options.
	ErrExplicitFields = zerr.New("explicit fields must be none when defining from a template")

	// ErrReservedField is returned when a user declaration uses one of the reserved input names.
	ErrReservedField = zerr.New("reserved input names")

	// ErrRedundantExecutable is returned when the executable option is combined with a template.
	ErrRedundantExecutable = zerr.New("executable should be set on the template, not passed as an option")

	// ErrDuplicateField is returned when the same field name is declared twice.
	ErrDuplicateField = zerr.New("duplicate field name")

	// ErrInvalidFieldName is returned when a field name is not a valid identifier.
	ErrInvalidFieldName = zerr.New("invalid field name")

	// ErrUnknownXorField is returned when a mutually exclusive group names a field that is not an input.
	ErrUnknownXorField = zerr.New("mutually exclusive group references an unknown input")

	// ErrInvalidType is returned when a type name cannot be parsed.
	ErrInvalidType = zerr.New("invalid field type")

	// ErrUnknownFormat is returned when a file format is not registered.
	ErrUnknownFormat = zerr.New("unknown file format")

	// ErrInvalidImage is returned when an identifier is not a valid container image reference.
	ErrInvalidImage = zerr.New("invalid image reference")
)

// Command-line rendering errors.
var (
	// ErrMissingValue is returned when a mandatory input has neither a value nor a default.
	ErrMissingValue = zerr.New("missing value for mandatory input")

	// ErrUnknownField is returned when a value is supplied for a field the definition does not declare.
	ErrUnknownField = zerr.New("unknown input")

	// ErrXorViolation is returned when the values break a mutually exclusive group.
	ErrXorViolation = zerr.New("mutually exclusive inputs")

	// ErrInvalidValue is returned when a raw value cannot be converted to the field type.
	ErrInvalidValue = zerr.New("invalid value")
)

// fail wraps a sentinel with a detail message and a single metadata entry.
func fail(sentinel error, detail, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, detail), key, value)
}
