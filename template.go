package bidsapp

// Template is the canonical form of a BIDS App declaration: the image to run and
// the fields the app adds to the fixed schema.
type Template struct {
	// Name of the definition. Derived from ImageTag when empty.
	Name     string
	ImageTag string
	// Executable overrides the image entrypoint. Nil leaves it unset.
	Executable *string
	Inputs     []Arg
	Outputs    []Out
	// Annotations are bare typed attributes. They become inputs when auto-attribs is enabled.
	Annotations map[string]Type
}

// skippedTemplateFields are never extracted from a template: BIDS Apps have no
// in-process function body.
var skippedTemplateFields = map[string]bool{"function": true}
