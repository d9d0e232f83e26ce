package bidsapp

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Decorator holds build options until the wrapped template or identifier is known.
type Decorator struct {
	opts options
}

// Define captures options for a later build. It is the deferred counterpart of
// DefineFromTemplate and DefineFromIdentifier.
func Define(opts ...Option) Decorator {
	return Decorator{opts: newOptions(opts)}
}

// DefineFromTemplate builds a definition from a template. The template carries the
// image tag, executable and fields, so explicit field options and WithExecutable are rejected.
func DefineFromTemplate(tmpl *Template, opts ...Option) (*Definition, error) {
	return Define(opts...).Template(tmpl)
}

// DefineFromIdentifier builds a definition from an image reference or executable name.
// The definition is named after the last path segment of the identifier, without its tag.
func DefineFromIdentifier(identifier string, opts ...Option) (*Definition, error) {
	return Define(opts...).Identifier(identifier)
}

// Template completes the build with a template.
func (d Decorator) Template(tmpl *Template) (*Definition, error) {
	o := d.opts
	if tmpl == nil {
		return nil, fail(ErrInvalidWrapped, "template is nil", "wrapped", "nil")
	}
	if o.hasExec {
		return nil, fail(ErrRedundantExecutable, "executable "+strconv.Quote(o.executable)+" passed as an option",
			"executable", o.executable)
	}
	if strings.TrimSpace(tmpl.ImageTag) == "" {
		return nil, fail(ErrInvalidWrapped, "template has no image tag", "template", tmpl.Name)
	}
	if o.hasExplicitInputs() || o.hasExplicitOutputs() {
		return nil, fail(ErrExplicitFields, "template "+strconv.Quote(tmpl.Name)+" declares its own fields",
			"template", tmpl.Name)
	}

	name := tmpl.Name
	if name == "" {
		var err error
		if name, err = ClassName(tmpl.ImageTag); err != nil {
			return nil, err
		}
	}

	inputs, outputs, err := extractTemplateFields(tmpl, o.autoAttribs)
	if err != nil {
		return nil, zerr.With(err, "template", name)
	}

	b := assembly{
		name:     name,
		imageTag: tmpl.ImageTag,
		inputs:   inputs,
		outputs:  outputs,
	}
	if tmpl.Executable != nil {
		b.executable, b.hasExec = *tmpl.Executable, true
	}
	return b.build(&o)
}

// Identifier completes the build with an image reference or executable name.
func (d Decorator) Identifier(identifier string) (*Definition, error) {
	o := d.opts
	if strings.TrimSpace(identifier) == "" {
		return nil, fail(ErrInvalidWrapped, "identifier is empty", "wrapped", identifier)
	}

	name, err := ClassName(identifier)
	if err != nil {
		return nil, err
	}

	inputs, outputs, err := ensureFieldObjects(&o)
	if err != nil {
		return nil, zerr.With(err, "identifier", identifier)
	}

	b := assembly{
		name:       name,
		imageTag:   identifier,
		executable: o.executable,
		hasExec:    o.hasExec,
		inputs:     inputs,
		outputs:    outputs,
	}
	return b.build(&o)
}

// extractTemplateFields collects the declared fields of a template, skipping the
// names BIDS Apps never use.
func extractTemplateFields(tmpl *Template, autoAttribs bool) ([]Arg, []Out, error) {
	inputs := make([]Arg, 0, len(tmpl.Inputs)+len(tmpl.Annotations))
	declared := make(map[string]bool, len(tmpl.Inputs))
	for _, a := range tmpl.Inputs {
		if skippedTemplateFields[a.Name] {
			continue
		}
		inputs = append(inputs, a.clone())
		declared[a.Name] = true
	}

	if autoAttribs {
		for _, name := range sortedKeys(tmpl.Annotations) {
			if skippedTemplateFields[name] || declared[name] {
				continue
			}
			inputs = append(inputs, Arg{Name: name, Type: tmpl.Annotations[name]})
		}
	}

	outputs := slices.Clone(tmpl.Outputs)
	if err := checkFields(inputs, outputs); err != nil {
		return nil, nil, err
	}
	return inputs, outputs, nil
}

// ensureFieldObjects turns the list, name and type shorthands of the options into field declarations.
func ensureFieldObjects(o *options) ([]Arg, []Out, error) {
	inputs := slices.Clone(o.inputs)
	for _, name := range o.inputNames {
		inputs = append(inputs, Arg{Name: name, Type: TypeAny})
	}
	for _, name := range sortedKeys(o.inputTypes) {
		inputs = append(inputs, Arg{Name: name, Type: o.inputTypes[name]})
	}

	outputs := slices.Clone(o.outputs)
	for _, name := range o.outputNames {
		outputs = append(outputs, Out{Name: name, Type: TypeAny})
	}
	for _, name := range sortedKeys(o.outputTypes) {
		outputs = append(outputs, Out{Name: name, Type: o.outputTypes[name]})
	}

	if err := checkFields(inputs, outputs); err != nil {
		return nil, nil, err
	}
	return inputs, outputs, nil
}

// checkFields validates names and uniqueness of user declarations.
func checkFields(inputs []Arg, outputs []Out) error {
	seen := make(map[string]bool, len(inputs))
	for _, a := range inputs {
		if err := validateFieldName(a.Name); err != nil {
			return err
		}
		if seen[a.Name] {
			return fail(ErrDuplicateField, "input "+strconv.Quote(a.Name)+" declared twice", "field", a.Name)
		}
		seen[a.Name] = true
	}

	seen = make(map[string]bool, len(outputs))
	for _, out := range outputs {
		if err := validateFieldName(out.Name); err != nil {
			return err
		}
		if seen[out.Name] {
			return fail(ErrDuplicateField, "output "+strconv.Quote(out.Name)+" declared twice", "field", out.Name)
		}
		seen[out.Name] = true
	}
	return nil
}

// assembly is the normalized state of a build before it is merged with the schema.
type assembly struct {
	name       string
	imageTag   string
	executable string
	hasExec    bool
	inputs     []Arg
	outputs    []Out
}

func (b *assembly) build(o *options) (*Definition, error) {
	var clashing []string
	for _, a := range b.inputs {
		if isReserved(a.Name) {
			clashing = append(clashing, a.Name)
		}
	}
	if len(clashing) > 0 {
		slices.Sort(clashing)
		return nil, fail(ErrReservedField, strings.Join(clashing, ", ")+" are reserved input names",
			"fields", strings.Join(clashing, ","))
	}

	name := b.name
	if o.name != "" {
		name = o.name
	}

	schema := Schema()

	var inputs fieldSet[Arg]
	var xor [][]string
	inputs.add(schema.Inputs, argName)
	for _, base := range o.bases {
		if base == nil {
			continue
		}
		inputs.add(slices.DeleteFunc(base.Inputs(), func(a Arg) bool { return isReserved(a.Name) }), argName)
		for _, g := range base.XorGroups() {
			xor = append(xor, g.names())
		}
	}
	xor = append(xor, o.xor...)
	inputs.add(b.inputs, argName)
	inputs.add(b.reservedInputs(), argName)

	var outputs fieldSet[Out]
	outputs.add(schema.Outputs, outName)
	for _, base := range o.outputsBases {
		if base == nil {
			continue
		}
		outputs.add(base.Outputs(), outName)
	}
	outputs.add(b.outputs, outName)

	groups, err := collectXorGroups(inputs.items, xor)
	if err != nil {
		return nil, zerr.With(err, "definition", name)
	}

	return newDefinition(name, b.imageTag, b.executable, b.hasExec, inputs.items, outputs.items, groups), nil
}

// reservedInputs synthesizes the image_tag and executable fields.
func (b *assembly) reservedInputs() []Arg {
	imageTag := Arg{
		Name: FieldImageTag,
		Type: TypeText,
		Help: "Container image, or executable when run outside a container, that provides the app",
	}.WithDefault(b.imageTag)

	executable := Arg{
		Name:     FieldExecutable,
		Type:     TypeText,
		Help:     "Executable inside the image, the image entrypoint when unset",
		Optional: true,
	}
	if b.hasExec {
		executable = executable.WithDefault(b.executable)
	}
	return []Arg{imageTag, executable}
}

// collectXorGroups merges the groups declared on fields with the explicit ones and
// checks that every member is an input.
func collectXorGroups(inputs []Arg, explicit [][]string) ([]XorGroup, error) {
	known := make(map[string]bool, len(inputs))
	for _, a := range inputs {
		known[a.Name] = true
	}

	raw := slices.Clone(explicit)
	for _, a := range inputs {
		if len(a.Xor) == 0 {
			continue
		}
		members := slices.Clone(a.Xor)
		if !slices.Contains(members, a.Name) {
			members = append(members, a.Name)
		}
		raw = append(raw, members)
	}

	var groups []XorGroup
	seen := make(map[string]bool)
	for _, r := range raw {
		g := newXorGroup(r)
		if len(g.Fields) == 0 {
			continue
		}
		for _, f := range g.Fields {
			if !known[f] {
				return nil, fail(ErrUnknownXorField, strconv.Quote(f)+" is not an input", "field", f)
			}
		}
		if seen[g.key()] {
			continue
		}
		seen[g.key()] = true
		groups = append(groups, g)
	}
	return groups, nil
}

// fieldSet keeps fields in declaration order; a later field replaces an earlier one
// with the same name in place.
type fieldSet[T any] struct {
	items []T
	index map[string]int
}

func (s *fieldSet[T]) add(fields []T, name func(T) string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	for _, f := range fields {
		n := name(f)
		if i, ok := s.index[n]; ok {
			s.items[i] = f
			continue
		}
		s.index[n] = len(s.items)
		s.items = append(s.items, f)
	}
}

func argName(a Arg) string { return a.Name }
func outName(o Out) string { return o.Name }

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
