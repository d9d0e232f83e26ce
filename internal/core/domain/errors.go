package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when the declaration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read declaration file")

	// ErrConfigParseFailed is returned when the declaration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse declaration file")

	// ErrConfigNotFound is returned when no declaration file is found.
	ErrConfigNotFound = zerr.New("could not find " + AppFileName)

	// ErrUnsupportedVersion is returned when the declaration file has an unknown version.
	ErrUnsupportedVersion = zerr.New("unsupported declaration file version")

	// ErrNoApps is returned when a declaration file declares no apps.
	ErrNoApps = zerr.New("no apps declared")

	// ErrInvalidAppName is returned when an app name contains invalid characters.
	ErrInvalidAppName = zerr.New("app name can only contain alphanumeric characters, hyphens and underscores")

	// ErrDuplicateAppName is returned when two apps share the same name.
	ErrDuplicateAppName = zerr.New("duplicate app name")

	// ErrMissingImage is returned when an app declares no image.
	ErrMissingImage = zerr.New("app has no image")

	// ErrInvalidFieldDeclaration is returned when a field declaration has an unexpected shape.
	ErrInvalidFieldDeclaration = zerr.New("invalid field declaration")

	// ErrUnknownBase is returned when an app extends an app that is not declared.
	ErrUnknownBase = zerr.New("unknown base app")

	// ErrBaseCycle is returned when apps extend each other in a cycle.
	ErrBaseCycle = zerr.New("cycle detected in app bases")

	// ErrAppNotFound is returned when a requested app is not declared.
	ErrAppNotFound = zerr.New("app not found")

	// ErrInvalidSetValue is returned when a --set value is not of the form name=value.
	ErrInvalidSetValue = zerr.New("expected name=value")

	// ErrStoreCreateFailed is returned when the digest store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create digest store directory")

	// ErrStoreReadFailed is returned when a digest record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read digest record")

	// ErrStoreUnmarshalFailed is returned when a digest record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal digest record")

	// ErrStoreMarshalFailed is returned when a digest record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal digest record")

	// ErrStoreWriteFailed is returned when a digest record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write digest record")

	// ErrWatchFailed is returned when the declaration file cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch declaration file")
)
