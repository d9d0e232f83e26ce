package bidsapp

import (
	"regexp"
	"slices"
	"strings"
)

// XorNone is the marker that, placed in a mutually exclusive group, allows none of
// the group's fields to be set.
const XorNone = ""

var validFieldNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Arg declares an input field of a task definition.
type Arg struct {
	Name string
	Type Type
	// Default is the value used when the caller sets nothing. Only meaningful when HasDefault is true.
	Default    any
	HasDefault bool
	Help       string
	// Position orders the argument on the command line. Zero leaves the field
	// unpositioned, positive values count from the start and negative values from
	// the end (-1 is last).
	Position int
	// ArgStr is the argument template. A template containing "{name}" is
	// substituted, any other non-empty template is a prefix for the value and an
	// empty template emits the raw value.
	ArgStr string
	// Xor lists the fields this one is mutually exclusive with. It may contain XorNone.
	Xor []string
	// Optional marks a field without default that may be left unset.
	Optional bool
}

// WithDefault returns a copy of the argument with the given default value.
func (a Arg) WithDefault(v any) Arg {
	a.Default = v
	a.HasDefault = true
	return a
}

// Mandatory reports whether the field needs a value at instantiation time.
func (a Arg) Mandatory() bool {
	return !a.HasDefault && !a.Optional
}

func (a Arg) clone() Arg {
	a.Xor = slices.Clone(a.Xor)
	return a
}

// Out declares an output field of a task definition.
type Out struct {
	Name string
	Type Type
	Help string
	// Callable computes the output once the app has completed. Nil means the host
	// collects the value from the output directory.
	Callable func() any
}

// XorGroup is a set of mutually exclusive inputs.
type XorGroup struct {
	// Fields is sorted and never contains XorNone.
	Fields []string
	// AllowNone is true when none of the fields needs to be set. Otherwise exactly one must be.
	AllowNone bool
}

func (g XorGroup) key() string {
	k := strings.Join(g.Fields, ",")
	if g.AllowNone {
		k += ",<none>"
	}
	return k
}

func (g XorGroup) clone() XorGroup {
	g.Fields = slices.Clone(g.Fields)
	return g
}

// names returns the group as a raw declaration accepted by newXorGroup.
func (g XorGroup) names() []string {
	names := slices.DeleteFunc(slices.Clone(g.Fields), isReserved)
	if g.AllowNone {
		names = append(names, XorNone)
	}
	return names
}

// newXorGroup normalizes a raw group declaration.
func newXorGroup(names []string) XorGroup {
	var g XorGroup
	for _, n := range names {
		if n == XorNone {
			g.AllowNone = true
			continue
		}
		g.Fields = append(g.Fields, n)
	}
	slices.Sort(g.Fields)
	g.Fields = slices.Compact(g.Fields)
	return g
}

func validateFieldName(name string) error {
	if !validFieldNameRegex.MatchString(name) {
		return fail(ErrInvalidFieldName, "field names must be identifiers: "+name, "field", name)
	}
	return nil
}
