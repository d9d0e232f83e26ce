package bidsapp

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/zerr"
)

// Values holds the input values of one invocation, keyed by field name.
type Values map[string]any

// CommandLine renders the shell command a host shell task would run for the given
// values. Positioned arguments come first in ascending order, then unpositioned
// arguments in declaration order, then arguments positioned from the end.
func (d *Definition) CommandLine(values Values) (string, error) {
	parts, err := d.renderParts(values)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, " "), nil
}

// Args renders the command line and splits it into an argument vector using
// shell quoting rules. The first element is the command.
func (d *Definition) Args(values Values) ([]string, error) {
	line, err := d.CommandLine(values)
	if err != nil {
		return nil, err
	}
	args, err := shellquote.Split(line)
	if err != nil {
		err = zerr.Wrap(ErrInvalidValue, err.Error())
		return nil, zerr.With(err, "command_line", line)
	}
	return args, nil
}

// ParseValues converts raw string values into typed values according to the definition.
func (d *Definition) ParseValues(raw map[string]string) (Values, error) {
	values := make(Values, len(raw))
	for _, name := range sortedKeys(raw) {
		arg, ok := d.Input(name)
		if !ok {
			return nil, d.unknownField(name)
		}
		v, err := arg.Type.ParseValue(raw[name])
		if err != nil {
			return nil, zerr.With(err, "field", name)
		}
		values[name] = v
	}
	return values, nil
}

// CheckValues validates the values against the mandatory fields and the mutually
// exclusive groups of the definition.
func (d *Definition) CheckValues(values Values) error {
	for _, name := range sortedKeys(values) {
		if _, ok := d.inputIdx[name]; !ok {
			return d.unknownField(name)
		}
	}

	for _, g := range d.xor {
		var set []string
		for _, f := range g.Fields {
			if isSet(values[f]) {
				set = append(set, f)
			}
		}
		switch {
		case len(set) > 1:
			return fail(ErrXorViolation, strings.Join(set, ", ")+" cannot be set together", "fields", strings.Join(set, ","))
		case len(set) == 0 && !g.AllowNone:
			return fail(ErrXorViolation, "one of "+strings.Join(g.Fields, ", ")+" must be set",
				"fields", strings.Join(g.Fields, ","))
		}
	}

	for _, a := range d.inputs {
		if !a.Mandatory() || d.inXorGroup(a.Name) {
			continue
		}
		if !hasValue(values, a.Name) {
			return fail(ErrMissingValue, strconv.Quote(a.Name)+" has no value", "field", a.Name)
		}
	}
	return nil
}

func (d *Definition) renderParts(values Values) ([]string, error) {
	if err := d.CheckValues(values); err != nil {
		return nil, err
	}

	head := d.Command()
	if v, ok := values[FieldImageTag]; ok && isSet(v) {
		head = fmt.Sprint(v)
	}
	if v, ok := values[FieldExecutable]; ok && isSet(v) {
		head = fmt.Sprint(v)
	}

	type rendered struct {
		position int
		order    int
		text     string
	}
	var args []rendered
	for i, a := range d.inputs {
		if isReserved(a.Name) {
			continue
		}
		v, ok := values[a.Name]
		if !ok || !isSet(v) {
			if !a.HasDefault || !isSet(a.Default) {
				continue
			}
			v = a.Default
		}
		text, emit := formatArg(a, v)
		if !emit {
			continue
		}
		args = append(args, rendered{position: a.Position, order: i, text: text})
	}

	slices.SortStableFunc(args, func(x, y rendered) int {
		if c := cmp.Compare(positionRank(x.position), positionRank(y.position)); c != 0 {
			return c
		}
		if c := cmp.Compare(x.position, y.position); c != 0 {
			return c
		}
		return cmp.Compare(x.order, y.order)
	})

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellquote.Join(head))
	for _, a := range args {
		parts = append(parts, a.text)
	}
	return parts, nil
}

func (d *Definition) inXorGroup(name string) bool {
	for _, g := range d.xor {
		if slices.Contains(g.Fields, name) {
			return true
		}
	}
	return false
}

func (d *Definition) unknownField(name string) error {
	err := fail(ErrUnknownField, strconv.Quote(name)+" is not an input of "+d.name, "field", name)
	return zerr.With(err, "definition", d.name)
}

// positionRank groups positions: positive first, then unpositioned, then negative.
func positionRank(pos int) int {
	switch {
	case pos > 0:
		return 0
	case pos == 0:
		return 1
	default:
		return 2
	}
}

// formatArg renders one argument. It returns false when the argument emits nothing.
func formatArg(a Arg, v any) (string, bool) {
	if a.Type.Kind() == KindBool {
		b, ok := v.(bool)
		if !ok || !b || a.ArgStr == "" {
			return "", false
		}
		return strings.TrimSpace(a.ArgStr), true
	}

	value := fmt.Sprint(v)
	placeholder := "{" + a.Name + "}"
	switch {
	case a.ArgStr == "":
		return value, true
	case strings.Contains(a.ArgStr, placeholder):
		return strings.ReplaceAll(a.ArgStr, placeholder, value), true
	default:
		return strings.TrimRight(a.ArgStr, " ") + " " + shellquote.Join(value), true
	}
}

// hasValue reports whether name was given a value. Unlike isSet, false counts.
func hasValue(values Values, name string) bool {
	v, ok := values[name]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

func isSet(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}
