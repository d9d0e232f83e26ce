package app

import (
	"context"
	"strings"

	"go.trai.ch/bidsapp"
	"go.trai.ch/bidsapp/internal/core/domain"
	"go.trai.ch/zerr"
)

// CommandLineOptions configuration for the CommandLine method.
type CommandLineOptions struct {
	// File is the declaration file. Empty means discover one.
	File string
	// App names the app. It may be empty when the file declares a single app.
	App string
	// Set holds name=value assignments for inputs.
	Set []string
}

// CommandLineResult is the rendered invocation of an app.
type CommandLineResult struct {
	App  string
	Line string
	Args []string
}

// CommandLine renders the command an app runs for the given input values.
func (a *App) CommandLine(ctx context.Context, opts CommandLineOptions) (*CommandLineResult, error) {
	_, span := a.tracer.Start(ctx, "cmdline")
	defer span.End()

	result, err := a.commandLine(opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("app", result.App)
	return result, nil
}

func (a *App) commandLine(opts CommandLineOptions) (*CommandLineResult, error) {
	file, err := a.resolveFile(opts.File)
	if err != nil {
		return nil, err
	}
	catalog, err := a.configLoader.Load(file)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load declarations")
	}

	def, err := pickApp(catalog, opts.App)
	if err != nil {
		return nil, err
	}

	raw, err := parseAssignments(opts.Set)
	if err != nil {
		return nil, err
	}
	values, err := def.ParseValues(raw)
	if err != nil {
		return nil, zerr.With(err, "app", def.Name())
	}

	line, err := def.CommandLine(values)
	if err != nil {
		return nil, zerr.With(err, "app", def.Name())
	}
	args, err := def.Args(values)
	if err != nil {
		return nil, zerr.With(err, "app", def.Name())
	}
	return &CommandLineResult{App: def.Name(), Line: line, Args: args}, nil
}

func pickApp(catalog *domain.Catalog, name string) (*bidsapp.Definition, error) {
	if name == "" {
		if catalog.Len() == 1 {
			return catalog.Apps()[0], nil
		}
		err := zerr.Wrap(domain.ErrAppNotFound, "several apps declared, name one")
		return nil, zerr.With(err, "available", strings.Join(catalog.Names(), ", "))
	}
	def, ok := catalog.Get(name)
	if !ok {
		return nil, appNotFound(name, []*domain.Catalog{catalog})
	}
	return def, nil
}

// parseAssignments splits name=value pairs. A later assignment wins.
func parseAssignments(set []string) (map[string]string, error) {
	raw := make(map[string]string, len(set))
	for _, s := range set {
		name, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidSetValue, "invalid assignment "+s), "set", s)
		}
		raw[strings.TrimSpace(name)] = value
	}
	return raw, nil
}
