package bidsapp

import (
	"slices"
	"strings"
	"sync"
)

// Format describes how an on-disk file or directory maps to a typed artifact.
type Format struct {
	// Name is the MIME-like identifier, e.g. "medimage/nifti-gz-x".
	Name string
	// Extensions lists the expected extensions. The first one is the primary file,
	// the rest are side-cars (e.g. a JSON sidecar next to a NIfTI image).
	Extensions []string
	// Directory is true when the artifact is a directory rather than a file.
	Directory bool
}

// PrimaryExtension returns the extension of the primary file, or "" for directories.
func (f Format) PrimaryExtension() string {
	if len(f.Extensions) == 0 {
		return ""
	}
	return f.Extensions[0]
}

// Matches reports whether path carries the primary extension of the format.
// Directories match any path.
func (f Format) Matches(path string) bool {
	if f.Directory {
		return true
	}
	ext := f.PrimaryExtension()
	return ext == "" || strings.HasSuffix(path, ext)
}

var (
	formatsMu sync.RWMutex
	formats   = map[string]Format{
		"generic/directory":   {Name: "generic/directory", Directory: true},
		"generic/file":        {Name: "generic/file"},
		"application/json":    {Name: "application/json", Extensions: []string{".json"}},
		"medimage/nifti":      {Name: "medimage/nifti", Extensions: []string{".nii"}},
		"medimage/nifti-gz":   {Name: "medimage/nifti-gz", Extensions: []string{".nii.gz"}},
		"medimage/nifti-gz-x": {Name: "medimage/nifti-gz-x", Extensions: []string{".nii.gz", ".json"}},
	}
)

// LookupFormat returns the registered format with the given name.
func LookupFormat(name string) (Format, bool) {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	f, ok := formats[name]
	if !ok {
		return Format{}, false
	}
	f.Extensions = slices.Clone(f.Extensions)
	return f, true
}

// RegisterFormat adds a format to the registry, replacing any format with the same name.
func RegisterFormat(f Format) error {
	if f.Name == "" || !strings.Contains(f.Name, "/") {
		return fail(ErrUnknownFormat, "format names take the form <namespace>/<name>", "format", f.Name)
	}
	f.Extensions = slices.Clone(f.Extensions)

	formatsMu.Lock()
	defer formatsMu.Unlock()
	formats[f.Name] = f
	return nil
}

// Formats returns all registered formats sorted by name.
func Formats() []Format {
	formatsMu.RLock()
	defer formatsMu.RUnlock()

	res := make([]Format, 0, len(formats))
	for _, f := range formats {
		f.Extensions = slices.Clone(f.Extensions)
		res = append(res, f)
	}
	slices.SortFunc(res, func(a, b Format) int { return strings.Compare(a.Name, b.Name) })
	return res
}
