package bidsapp

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the broad category of a field type.
type Kind uint8

// Field kinds.
const (
	KindAny Kind = iota
	KindText
	KindBool
	KindInt
	KindFloat
	KindPath
	KindDirectory
	KindFile
	KindFormat
)

var kindNames = map[Kind]string{
	KindAny:       "any",
	KindText:      "text",
	KindBool:      "bool",
	KindInt:       "int",
	KindFloat:     "float",
	KindPath:      "path",
	KindDirectory: "directory",
	KindFile:      "file",
	KindFormat:    "format",
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Type is the semantic type of a field. Types are comparable values.
type Type struct {
	kind   Kind
	format string
}

// Built-in field types.
var (
	TypeAny       = Type{kind: KindAny}
	TypeText      = Type{kind: KindText}
	TypeBool      = Type{kind: KindBool}
	TypeInt       = Type{kind: KindInt}
	TypeFloat     = Type{kind: KindFloat}
	TypePath      = Type{kind: KindPath}
	TypeDirectory = Type{kind: KindDirectory}
	TypeFile      = Type{kind: KindFile}
)

// FormatType returns the type of a registered file format.
func FormatType(name string) (Type, error) {
	if _, ok := LookupFormat(name); !ok {
		return Type{}, fail(ErrUnknownFormat, "format "+strconv.Quote(name)+" is not registered", "format", name)
	}
	return Type{kind: KindFormat, format: name}, nil
}

// MustFormatType is like FormatType but panics if the format is not registered.
func MustFormatType(name string) Type {
	t, err := FormatType(name)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseType parses the canonical name of a type. Registered format names
// ("medimage/nifti-gz") are accepted with or without the "format:" prefix.
func ParseType(s string) (Type, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return TypeAny, nil
	}
	if rest, ok := strings.CutPrefix(name, "format:"); ok {
		return FormatType(rest)
	}
	if strings.Contains(name, "/") {
		return FormatType(name)
	}
	for k, kn := range kindNames {
		if kn == name && k != KindFormat {
			return Type{kind: k}, nil
		}
	}
	switch name {
	case "str", "string":
		return TypeText, nil
	case "boolean":
		return TypeBool, nil
	case "integer":
		return TypeInt, nil
	case "number":
		return TypeFloat, nil
	}
	return Type{}, fail(ErrInvalidType, "unknown type "+strconv.Quote(s), "type", s)
}

// Kind returns the kind of the type.
func (t Type) Kind() Kind {
	return t.kind
}

// Format returns the file format of a format type.
func (t Type) Format() (Format, bool) {
	if t.kind != KindFormat {
		return Format{}, false
	}
	return LookupFormat(t.format)
}

// IsPath reports whether values of the type are file-system locations.
func (t Type) IsPath() bool {
	switch t.kind {
	case KindPath, KindDirectory, KindFile, KindFormat:
		return true
	default:
		return false
	}
}

// String returns the canonical name of the type.
func (t Type) String() string {
	if t.kind == KindFormat {
		return "format:" + t.format
	}
	return t.kind.String()
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseValue converts a raw command-line value into a value of the type.
// Text and path-like values are returned unchanged.
func (t Type) ParseValue(raw string) (any, error) {
	var (
		v   any
		err error
	)
	switch t.kind {
	case KindBool:
		v, err = strconv.ParseBool(raw)
	case KindInt:
		v, err = strconv.ParseInt(raw, 10, 64)
	case KindFloat:
		v, err = strconv.ParseFloat(raw, 64)
	default:
		return raw, nil
	}
	if err != nil {
		return nil, fail(ErrInvalidValue, fmt.Sprintf("cannot parse %q as %s", raw, t), "value", raw)
	}
	return v, nil
}
