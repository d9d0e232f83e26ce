package bidsapp

import (
	"maps"
	"slices"
)

// Option configures a definition build.
type Option func(*options)

type options struct {
	inputs       []Arg
	inputNames   []string
	inputTypes   map[string]Type
	outputs      []Out
	outputNames  []string
	outputTypes  map[string]Type
	executable   string
	hasExec      bool
	bases        []*Definition
	outputsBases []*Definition
	autoAttribs  bool
	name         string
	xor          [][]string
}

func newOptions(opts []Option) options {
	o := options{autoAttribs: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) hasExplicitInputs() bool {
	return len(o.inputs) > 0 || len(o.inputNames) > 0 || len(o.inputTypes) > 0
}

func (o *options) hasExplicitOutputs() bool {
	return len(o.outputs) > 0 || len(o.outputNames) > 0 || len(o.outputTypes) > 0
}

// WithInputs declares input fields.
func WithInputs(args ...Arg) Option {
	return func(o *options) {
		for _, a := range args {
			o.inputs = append(o.inputs, a.clone())
		}
	}
}

// WithInputNames declares untyped input fields by name.
func WithInputNames(names ...string) Option {
	return func(o *options) {
		o.inputNames = append(o.inputNames, names...)
	}
}

// WithInputTypes declares input fields from bare types. Fields are added in name order.
func WithInputTypes(types map[string]Type) Option {
	return func(o *options) {
		if o.inputTypes == nil {
			o.inputTypes = make(map[string]Type, len(types))
		}
		maps.Copy(o.inputTypes, types)
	}
}

// WithOutputs declares output fields.
func WithOutputs(outs ...Out) Option {
	return func(o *options) {
		o.outputs = append(o.outputs, outs...)
	}
}

// WithOutputNames declares untyped output fields by name.
func WithOutputNames(names ...string) Option {
	return func(o *options) {
		o.outputNames = append(o.outputNames, names...)
	}
}

// WithOutputTypes declares output fields from bare types. Fields are added in name order.
func WithOutputTypes(types map[string]Type) Option {
	return func(o *options) {
		if o.outputTypes == nil {
			o.outputTypes = make(map[string]Type, len(types))
		}
		maps.Copy(o.outputTypes, types)
	}
}

// WithExecutable sets the binary to run inside the image. Only valid with identifiers.
func WithExecutable(executable string) Option {
	return func(o *options) {
		o.executable = executable
		o.hasExec = true
	}
}

// WithBases mixes the inputs of existing definitions into the new one.
func WithBases(bases ...*Definition) Option {
	return func(o *options) {
		o.bases = append(o.bases, bases...)
	}
}

// WithOutputsBases mixes the outputs of existing definitions into the new one.
func WithOutputsBases(bases ...*Definition) Option {
	return func(o *options) {
		o.outputsBases = append(o.outputsBases, bases...)
	}
}

// WithAutoAttribs controls whether bare template annotations become inputs. Defaults to true.
func WithAutoAttribs(enabled bool) Option {
	return func(o *options) {
		o.autoAttribs = enabled
	}
}

// WithName overrides the derived definition name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithXor declares a mutually exclusive group. Include XorNone to allow none of
// the fields to be set. It may be given several times.
func WithXor(fields ...string) Option {
	return func(o *options) {
		o.xor = append(o.xor, slices.Clone(fields))
	}
}

// WithOptionalXor declares a mutually exclusive group of which at most one field may be set.
func WithOptionalXor(fields ...string) Option {
	return WithXor(append(slices.Clone(fields), XorNone)...)
}
