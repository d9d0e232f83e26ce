package bidsapp

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Definition is an immutable BIDS App task definition. It is built once by the
// Define functions and shared by every run of the app.
type Definition struct {
	name       string
	imageTag   string
	executable string
	hasExec    bool
	inputs     []Arg
	outputs    []Out
	xor        []XorGroup
	inputIdx   map[string]int
	outputIdx  map[string]int
	digest     uint64
}

func newDefinition(
	name, imageTag, executable string,
	hasExec bool,
	inputs []Arg,
	outputs []Out,
	xor []XorGroup,
) *Definition {
	d := &Definition{
		name:       name,
		imageTag:   imageTag,
		executable: executable,
		hasExec:    hasExec,
		inputs:     inputs,
		outputs:    outputs,
		xor:        xor,
		inputIdx:   make(map[string]int, len(inputs)),
		outputIdx:  make(map[string]int, len(outputs)),
	}
	for i, a := range inputs {
		d.inputIdx[a.Name] = i
	}
	for i, o := range outputs {
		d.outputIdx[o.Name] = i
	}
	d.digest = d.computeDigest()
	return d
}

// Name returns the definition name.
func (d *Definition) Name() string {
	return d.name
}

// ImageTag returns the image reference or executable name that provides the app.
func (d *Definition) ImageTag() string {
	return d.imageTag
}

// Executable returns the executable override. The second value is false when no
// executable was given, in which case the image entrypoint is used.
func (d *Definition) Executable() (string, bool) {
	return d.executable, d.hasExec
}

// Command returns the head of the command line: the executable when set, the image tag otherwise.
func (d *Definition) Command() string {
	if d.hasExec && d.executable != "" {
		return d.executable
	}
	return d.imageTag
}

// Image parses the image tag as a container image reference.
func (d *Definition) Image() (Image, bool) {
	img, err := ParseImage(d.imageTag)
	if err != nil {
		return Image{}, false
	}
	return img, true
}

// Inputs returns a copy of the input fields in declaration order.
func (d *Definition) Inputs() []Arg {
	res := make([]Arg, len(d.inputs))
	for i, a := range d.inputs {
		res[i] = a.clone()
	}
	return res
}

// Outputs returns a copy of the output fields in declaration order.
func (d *Definition) Outputs() []Out {
	return slices.Clone(d.outputs)
}

// Input returns the input field with the given name.
func (d *Definition) Input(name string) (Arg, bool) {
	i, ok := d.inputIdx[name]
	if !ok {
		return Arg{}, false
	}
	return d.inputs[i].clone(), true
}

// Output returns the output field with the given name.
func (d *Definition) Output(name string) (Out, bool) {
	i, ok := d.outputIdx[name]
	if !ok {
		return Out{}, false
	}
	return d.outputs[i], true
}

// InputNames returns the input names in declaration order.
func (d *Definition) InputNames() []string {
	names := make([]string, len(d.inputs))
	for i, a := range d.inputs {
		names[i] = a.Name
	}
	return names
}

// OutputNames returns the output names in declaration order.
func (d *Definition) OutputNames() []string {
	names := make([]string, len(d.outputs))
	for i, o := range d.outputs {
		names[i] = o.Name
	}
	return names
}

// XorGroups returns a copy of the mutually exclusive groups.
func (d *Definition) XorGroups() []XorGroup {
	res := make([]XorGroup, len(d.xor))
	for i, g := range d.xor {
		res[i] = g.clone()
	}
	return res
}

// Digest returns a fingerprint of the observable structure of the definition.
// Two definitions built from identical arguments have the same digest.
func (d *Definition) Digest() uint64 {
	return d.digest
}

// String returns the name and image of the definition.
func (d *Definition) String() string {
	return d.name + " (" + d.imageTag + ")"
}

func (d *Definition) computeDigest() uint64 {
	h := xxhash.New()
	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = h.WriteString(strconv.Itoa(len(p)))
			_, _ = h.WriteString(":")
			_, _ = h.WriteString(p)
		}
	}

	write("name", d.name, "image", d.imageTag, "exec", strconv.FormatBool(d.hasExec), d.executable)
	for _, a := range d.inputs {
		def := ""
		if a.HasDefault {
			def = fmt.Sprintf("%T=%#v", a.Default, a.Default)
		}
		write("in", a.Name, a.Type.String(), def, a.Help, strconv.Itoa(a.Position), a.ArgStr,
			strconv.FormatBool(a.Optional))
		write(a.Xor...)
	}
	for _, o := range d.outputs {
		write("out", o.Name, o.Type.String(), o.Help, strconv.FormatBool(o.Callable != nil))
	}
	for _, g := range d.xor {
		write("xor", g.key())
	}
	return h.Sum64()
}
