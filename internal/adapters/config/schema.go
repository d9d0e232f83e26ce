package config

import (
	"strconv"

	"go.trai.ch/bidsapp"
	"gopkg.in/yaml.v3"
)

// AppFile represents the structure of the bidsapp.yaml declaration file.
type AppFile struct {
	Version string `yaml:"version"`
	// Apps is kept as a node so declaration order survives decoding.
	Apps yaml.Node `yaml:"apps"`
}

// AppDTO represents one app declaration.
type AppDTO struct {
	Image string `yaml:"image"`
	// Executable is nil when the image entrypoint is used.
	Executable   *string           `yaml:"executable"`
	Template     bool              `yaml:"template"`
	Inputs       FieldList         `yaml:"inputs"`
	Outputs      FieldList         `yaml:"outputs"`
	Annotations  map[string]string `yaml:"annotations"`
	AutoAttribs  *bool             `yaml:"auto_attribs"`
	Bases        []string          `yaml:"bases"`
	OutputsBases []string          `yaml:"outputs_bases"`
	Xor          []XorList         `yaml:"xor"`
}

// FieldDTO represents one input or output declaration.
type FieldDTO struct {
	Name     string    `yaml:"-"`
	Type     string    `yaml:"type"`
	ArgStr   string    `yaml:"argstr"`
	Help     string    `yaml:"help"`
	Position int       `yaml:"position"`
	Default  yaml.Node `yaml:"default"`
	Optional bool      `yaml:"optional"`
	Xor      XorList   `yaml:"xor"`
}

// FieldList is a field declaration in one of three shapes: a list of names, a
// mapping of names to types, or a mapping of names to field objects.
type FieldList []FieldDTO

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *FieldList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		fields := make(FieldList, len(names))
		for i, n := range names {
			fields[i] = FieldDTO{Name: n}
		}
		*l = fields
		return nil
	case yaml.MappingNode:
		fields := make(FieldList, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			f := FieldDTO{Name: key.Value}
			switch value.Kind {
			case yaml.ScalarNode:
				if value.Tag != "!!null" {
					f.Type = value.Value
				}
			case yaml.MappingNode:
				if err := value.Decode(&f); err != nil {
					return err
				}
				f.Name = key.Value
			default:
				return &yaml.TypeError{Errors: []string{
					"line " + strconv.Itoa(value.Line) + ": field " + key.Value + " must be a type name or an object",
				}}
			}
			fields = append(fields, f)
		}
		*l = fields
		return nil
	default:
		return &yaml.TypeError{Errors: []string{
			"line " + strconv.Itoa(node.Line) + ": fields must be a list or a mapping",
		}}
	}
}

// XorList is a mutually exclusive group. A null entry allows none of the fields to be set.
type XorList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (x *XorList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return &yaml.TypeError{Errors: []string{"line " + strconv.Itoa(node.Line) + ": xor must be a list"}}
	}
	group := make(XorList, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return &yaml.TypeError{Errors: []string{"line " + strconv.Itoa(item.Line) + ": xor entries must be names"}}
		}
		if item.Tag == "!!null" {
			group = append(group, bidsapp.XorNone)
			continue
		}
		group = append(group, item.Value)
	}
	*x = group
	return nil
}
