// Package config provides the declaration file loader for bidsapp.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.trai.ch/bidsapp"
	"go.trai.ch/bidsapp/internal/core/domain"
	"go.trai.ch/bidsapp/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the declaration file version this loader understands.
const CurrentVersion = "1"

var validAppNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Discover walks up from cwd and returns the path of the first bidsapp.yaml found.
func (l *Loader) Discover(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.AppFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no declaration file above "+cwd), "cwd", cwd)
}

// Load reads the declaration file at path and builds one definition per app.
func (l *Loader) Load(path string) (*domain.Catalog, error) {
	var file AppFile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, err
	}

	if file.Version != "" && file.Version != CurrentVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, reading it as version %s",
			path, file.Version, CurrentVersion))
	}

	order, dtos, err := decodeApps(path, &file.Apps)
	if err != nil {
		return nil, err
	}

	r := &resolver{
		dtos:     dtos,
		defs:     make(map[string]*bidsapp.Definition, len(dtos)),
		visiting: make(map[string]bool),
	}

	catalog := domain.NewCatalog(path)
	for _, name := range order {
		def, err := r.resolve(name)
		if err != nil {
			return nil, zerr.With(err, "file", path)
		}
		if err := catalog.Add(def); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// decodeApps decodes the apps mapping, keeping declaration order.
func decodeApps(path string, node *yaml.Node) ([]string, map[string]*AppDTO, error) {
	if node.Kind == 0 || (node.Kind == yaml.MappingNode && len(node.Content) == 0) {
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrNoApps, path+" declares no apps"), "file", path)
	}
	if node.Kind != yaml.MappingNode {
		err := zerr.Wrap(domain.ErrConfigParseFailed, "apps must be a mapping of app names to declarations")
		return nil, nil, zerr.With(err, "file", path)
	}

	order := make([]string, 0, len(node.Content)/2)
	dtos := make(map[string]*AppDTO, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if err := validateAppName(name); err != nil {
			return nil, nil, zerr.With(err, "file", path)
		}
		if _, exists := dtos[name]; exists {
			err := zerr.With(zerr.Wrap(domain.ErrDuplicateAppName, "app declared twice"), "app", name)
			return nil, nil, zerr.With(err, "file", path)
		}

		dto := &AppDTO{}
		if err := node.Content[i+1].Decode(dto); err != nil {
			err = zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "app", name)
			return nil, nil, zerr.With(err, "file", path)
		}
		order = append(order, name)
		dtos[name] = dto
	}
	return order, dtos, nil
}

// validateAppName checks that the app name only contains safe characters.
func validateAppName(name string) error {
	if !validAppNameRegex.MatchString(name) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidAppName, "invalid app name "+name), "app", name)
	}
	return nil
}

func readAndUnmarshalYAML(path string, v any) error {
	//nolint:gosec // Path is the discovered or user-provided declaration file.
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "file", path)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "file", path)
	}
	return nil
}
