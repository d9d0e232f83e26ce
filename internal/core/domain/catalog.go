package domain

import (
	"path/filepath"

	"go.trai.ch/bidsapp"
	"go.trai.ch/zerr"
)

// Catalog holds the definitions loaded from one declaration file, in declaration order.
type Catalog struct {
	path  string
	defs  []*bidsapp.Definition
	index map[string]int
}

// NewCatalog creates an empty catalog for the declaration file at path.
func NewCatalog(path string) *Catalog {
	return &Catalog{
		path:  path,
		index: make(map[string]int),
	}
}

// Path returns the declaration file the catalog was loaded from.
func (c *Catalog) Path() string {
	return c.path
}

// Root returns the directory containing the declaration file.
func (c *Catalog) Root() string {
	return filepath.Dir(c.path)
}

// Add appends a definition to the catalog.
func (c *Catalog) Add(def *bidsapp.Definition) error {
	if _, exists := c.index[def.Name()]; exists {
		err := zerr.With(zerr.Wrap(ErrDuplicateAppName, "failed to add app"), "app", def.Name())
		return zerr.With(err, "file", c.path)
	}
	c.index[def.Name()] = len(c.defs)
	c.defs = append(c.defs, def)
	return nil
}

// Get returns the definition with the given name.
func (c *Catalog) Get(name string) (*bidsapp.Definition, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.defs[i], true
}

// Apps returns the definitions in declaration order.
func (c *Catalog) Apps() []*bidsapp.Definition {
	res := make([]*bidsapp.Definition, len(c.defs))
	copy(res, c.defs)
	return res
}

// Names returns the app names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.defs))
	for i, d := range c.defs {
		names[i] = d.Name()
	}
	return names
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}
