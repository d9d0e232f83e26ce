package config

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/bidsapp"
	"go.trai.ch/bidsapp/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// resolver builds definitions in dependency order so that bases exist before
// the apps extending them.
type resolver struct {
	dtos     map[string]*AppDTO
	defs     map[string]*bidsapp.Definition
	visiting map[string]bool
	path     []string
}

func (r *resolver) resolve(name string) (*bidsapp.Definition, error) {
	if def, ok := r.defs[name]; ok {
		return def, nil
	}
	if r.visiting[name] {
		cycle := append(slices.Clone(r.path), name)
		return nil, zerr.With(zerr.Wrap(domain.ErrBaseCycle, strings.Join(cycle, " -> ")), "app", name)
	}

	dto, ok := r.dtos[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownBase, "unknown base "+name), "base", name)
	}

	r.visiting[name] = true
	r.path = append(r.path, name)
	defer func() {
		delete(r.visiting, name)
		r.path = r.path[:len(r.path)-1]
	}()

	bases, err := r.resolveAll(dto.Bases)
	if err != nil {
		return nil, zerr.With(err, "app", name)
	}
	outputsBases, err := r.resolveAll(dto.OutputsBases)
	if err != nil {
		return nil, zerr.With(err, "app", name)
	}

	def, err := buildDefinition(name, dto, bases, outputsBases)
	if err != nil {
		return nil, zerr.With(err, "app", name)
	}
	r.defs[name] = def
	return def, nil
}

func (r *resolver) resolveAll(names []string) ([]*bidsapp.Definition, error) {
	defs := make([]*bidsapp.Definition, 0, len(names))
	for _, n := range names {
		def, err := r.resolve(n)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// buildDefinition converts one declaration into a definition through the builder.
func buildDefinition(name string, dto *AppDTO, bases, outputsBases []*bidsapp.Definition) (*bidsapp.Definition, error) {
	if strings.TrimSpace(dto.Image) == "" {
		return nil, zerr.Wrap(domain.ErrMissingImage, "app "+name+" has no image")
	}

	inputs, err := buildInputs(dto.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := buildOutputs(dto.Outputs)
	if err != nil {
		return nil, err
	}

	opts := []bidsapp.Option{
		bidsapp.WithBases(bases...),
		bidsapp.WithOutputsBases(outputsBases...),
	}
	if dto.AutoAttribs != nil {
		opts = append(opts, bidsapp.WithAutoAttribs(*dto.AutoAttribs))
	}
	for _, group := range dto.Xor {
		opts = append(opts, bidsapp.WithXor(group...))
	}

	if dto.Template {
		annotations, err := buildAnnotations(dto.Annotations)
		if err != nil {
			return nil, err
		}
		return bidsapp.DefineFromTemplate(&bidsapp.Template{
			Name:        name,
			ImageTag:    dto.Image,
			Executable:  dto.Executable,
			Inputs:      inputs,
			Outputs:     outputs,
			Annotations: annotations,
		}, opts...)
	}

	if len(dto.Annotations) > 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidFieldDeclaration,
			"annotations are only read from template declarations"), "field", "annotations")
	}

	opts = append(opts,
		bidsapp.WithName(name),
		bidsapp.WithInputs(inputs...),
		bidsapp.WithOutputs(outputs...),
	)
	if dto.Executable != nil {
		opts = append(opts, bidsapp.WithExecutable(*dto.Executable))
	}
	return bidsapp.DefineFromIdentifier(dto.Image, opts...)
}

func buildInputs(fields FieldList) ([]bidsapp.Arg, error) {
	args := make([]bidsapp.Arg, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		typ, err := parseFieldType(f)
		if err != nil {
			return nil, err
		}

		arg := bidsapp.Arg{
			Name:     f.Name,
			Type:     typ,
			Help:     f.Help,
			Position: f.Position,
			ArgStr:   f.ArgStr,
			Xor:      f.Xor,
			Optional: f.Optional,
		}
		if hasValue(&f.Default) {
			if f.Default.Kind != yaml.ScalarNode {
				return nil, zerr.With(zerr.Wrap(domain.ErrInvalidFieldDeclaration,
					"default must be a scalar"), "field", f.Name)
			}
			v, err := typ.ParseValue(f.Default.Value)
			if err != nil {
				return nil, zerr.With(err, "field", f.Name)
			}
			arg = arg.WithDefault(v)
		}
		args = append(args, arg)
	}
	return args, nil
}

func buildOutputs(fields FieldList) ([]bidsapp.Out, error) {
	outs := make([]bidsapp.Out, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		if f.ArgStr != "" || f.Position != 0 || hasValue(&f.Default) || len(f.Xor) > 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidFieldDeclaration,
				"outputs only take a type and help"), "field", f.Name)
		}
		typ, err := parseFieldType(f)
		if err != nil {
			return nil, err
		}
		outs = append(outs, bidsapp.Out{Name: f.Name, Type: typ, Help: f.Help})
	}
	return outs, nil
}

func buildAnnotations(raw map[string]string) (map[string]bidsapp.Type, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	annotations := make(map[string]bidsapp.Type, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		typ, err := bidsapp.ParseType(raw[name])
		if err != nil {
			return nil, zerr.With(err, "field", name)
		}
		annotations[name] = typ
	}
	return annotations, nil
}

func parseFieldType(f *FieldDTO) (bidsapp.Type, error) {
	if f.Type == "" {
		return bidsapp.TypeAny, nil
	}
	typ, err := bidsapp.ParseType(f.Type)
	if err != nil {
		return bidsapp.Type{}, zerr.With(err, "field", f.Name)
	}
	return typ, nil
}

// hasValue reports whether a decoded node holds a non-null value.
func hasValue(n *yaml.Node) bool {
	return n.Kind != 0 && !(n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
