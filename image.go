package bidsapp

import (
	"strings"

	"github.com/distribution/reference"
	"go.trai.ch/zerr"
)

// Image is a parsed container image reference.
type Image struct {
	// Domain is the registry host, "docker.io" when the identifier names none.
	Domain string
	// Path is the repository path within the registry, e.g. "nipreps/fmriprep".
	Path   string
	Tag    string
	Digest string
}

// String returns the familiar form of the reference ("nipreps/fmriprep:23.1.0").
func (i Image) String() string {
	var b strings.Builder
	if i.Domain != "" && i.Domain != "docker.io" {
		b.WriteString(i.Domain)
		b.WriteByte('/')
	}
	b.WriteString(strings.TrimPrefix(i.Path, "library/"))
	if i.Tag != "" {
		b.WriteByte(':')
		b.WriteString(i.Tag)
	}
	if i.Digest != "" {
		b.WriteByte('@')
		b.WriteString(i.Digest)
	}
	return b.String()
}

// ParseImage parses an identifier as a container image reference.
func ParseImage(identifier string) (Image, error) {
	named, err := reference.ParseNormalizedNamed(identifier)
	if err != nil {
		err = zerr.Wrap(ErrInvalidImage, err.Error())
		return Image{}, zerr.With(err, "identifier", identifier)
	}

	img := Image{
		Domain: reference.Domain(named),
		Path:   reference.Path(named),
	}
	if tagged, ok := named.(reference.Tagged); ok {
		img.Tag = tagged.Tag()
	}
	if digested, ok := named.(reference.Digested); ok {
		img.Digest = digested.Digest().String()
	}
	return img, nil
}

// ClassName derives a definition name from an image or executable identifier: the
// last slash-separated segment without its ":version" (or "@digest") suffix.
func ClassName(identifier string) (string, error) {
	id := strings.TrimSpace(identifier)
	if i := strings.IndexByte(id, '@'); i >= 0 {
		id = id[:i]
	}
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	name, _, _ := strings.Cut(id, ":")
	if name == "" {
		return "", fail(ErrInvalidWrapped, "cannot derive a name from "+identifier, "identifier", identifier)
	}
	return name, nil
}
