package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/bidsapp"
	"go.trai.ch/bidsapp/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// InspectOptions configuration for the Inspect method.
type InspectOptions struct {
	// Files are the declaration files to load. Empty means discover one.
	Files []string
	// Apps restricts the report to the named apps.
	Apps []string
	// Record stores the current digests after comparing them.
	Record bool
}

// Inspect loads the declaration files and describes every definition they declare,
// comparing each digest with the recorded one.
func (a *App) Inspect(ctx context.Context, opts InspectOptions) ([]domain.AppReport, error) {
	ctx, span := a.tracer.Start(ctx, "inspect")
	defer span.End()

	catalogs, err := a.loadAll(ctx, opts.Files)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	selected, err := selectApps(catalogs, opts.Apps)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	reports := make([]domain.AppReport, 0, len(selected))
	recorded := 0
	for _, s := range selected {
		report := describe(s.catalog.Path(), s.def)
		report.Status = a.compare(s.catalog.Root(), report)

		if opts.Record && report.Status != domain.StatusUnchanged {
			record := domain.DigestRecord{
				App:       report.Name,
				Digest:    report.Digest,
				ImageTag:  report.ImageTag,
				Timestamp: a.now().UTC(),
			}
			if err := a.store.Put(s.catalog.Root(), record); err != nil {
				span.RecordError(err)
				return nil, err
			}
			recorded++
		}
		reports = append(reports, report)
	}

	span.SetAttribute("apps", len(reports))
	if opts.Record {
		a.logger.Info(fmt.Sprintf("recorded %d digest(s)", recorded))
	}
	return reports, nil
}

// loadAll loads the declaration files concurrently. Catalogs keep argument order.
func (a *App) loadAll(ctx context.Context, files []string) ([]*domain.Catalog, error) {
	if len(files) == 0 {
		file, err := a.resolveFile("")
		if err != nil {
			return nil, err
		}
		files = []string{file}
	}

	catalogs := make([]*domain.Catalog, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			_, span := a.tracer.Start(ctx, "load")
			defer span.End()
			span.SetAttribute("file", file)

			catalog, err := a.configLoader.Load(file)
			if err != nil {
				span.RecordError(err)
				return zerr.Wrap(err, "failed to load declarations")
			}
			span.SetAttribute("apps", catalog.Len())
			catalogs[i] = catalog
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalogs, nil
}

type selection struct {
	catalog *domain.Catalog
	def     *bidsapp.Definition
}

// selectApps returns the requested apps in request order, or every app in file order.
func selectApps(catalogs []*domain.Catalog, names []string) ([]selection, error) {
	var all []selection
	for _, c := range catalogs {
		for _, def := range c.Apps() {
			all = append(all, selection{catalog: c, def: def})
		}
	}
	if len(names) == 0 {
		return all, nil
	}

	selected := make([]selection, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(all, func(s selection) bool { return s.def.Name() == name })
		if i < 0 {
			return nil, appNotFound(name, catalogs)
		}
		selected = append(selected, all[i])
	}
	return selected, nil
}

func appNotFound(name string, catalogs []*domain.Catalog) error {
	var known []string
	for _, c := range catalogs {
		known = append(known, c.Names()...)
	}
	err := zerr.With(zerr.Wrap(domain.ErrAppNotFound, "no app named "+name), "app", name)
	return zerr.With(err, "available", strings.Join(known, ", "))
}

// compare reports how the definition relates to its recorded digest.
func (a *App) compare(root string, report domain.AppReport) domain.Status {
	record, err := a.store.Get(root, report.Name)
	switch {
	case err != nil:
		a.logger.Warn(fmt.Sprintf("cannot read recorded digest of %s: %v", report.Name, err))
		return domain.StatusUntracked
	case record == nil:
		return domain.StatusNew
	case record.Digest == report.Digest:
		return domain.StatusUnchanged
	default:
		return domain.StatusChanged
	}
}

// Schema describes the fixed field schema.
func (a *App) Schema() domain.SchemaReport {
	schema := bidsapp.Schema()
	return domain.SchemaReport{
		Inputs:  inputReports(schema.Inputs),
		Outputs: outputReports(schema.Outputs),
	}
}

func describe(file string, def *bidsapp.Definition) domain.AppReport {
	executable, _ := def.Executable()
	report := domain.AppReport{
		File:       file,
		Name:       def.Name(),
		ImageTag:   def.ImageTag(),
		Executable: executable,
		Command:    def.Command(),
		Digest:     FormatDigest(def.Digest()),
		Inputs:     inputReports(def.Inputs()),
		Outputs:    outputReports(def.Outputs()),
	}
	for _, g := range def.XorGroups() {
		fields := slices.Clone(g.Fields)
		if g.AllowNone {
			fields = append(fields, "~")
		}
		report.Xor = append(report.Xor, fields)
	}
	return report
}

// FormatDigest renders a definition digest as fixed-width hex.
func FormatDigest(d uint64) string {
	return fmt.Sprintf("%016x", d)
}

func inputReports(args []bidsapp.Arg) []domain.FieldReport {
	res := make([]domain.FieldReport, len(args))
	for i, arg := range args {
		res[i] = domain.FieldReport{
			Name:      arg.Name,
			Type:      arg.Type.String(),
			Position:  arg.Position,
			ArgStr:    arg.ArgStr,
			Mandatory: arg.Mandatory(),
			Help:      arg.Help,
		}
		if arg.HasDefault {
			res[i].Default = fmt.Sprint(arg.Default)
		}
	}
	return res
}

func outputReports(outs []bidsapp.Out) []domain.FieldReport {
	res := make([]domain.FieldReport, len(outs))
	for i, out := range outs {
		res[i] = domain.FieldReport{
			Name: out.Name,
			Type: out.Type.String(),
			Help: out.Help,
		}
	}
	return res
}
