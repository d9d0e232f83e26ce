package app

import (
	"context"
	"fmt"

	"go.trai.ch/bidsapp/internal/core/domain"
)

// Watch inspects once, then again every time one of the declaration files changes,
// until ctx is done. Load errors are passed to onChange and do not stop watching.
func (a *App) Watch(ctx context.Context, opts InspectOptions, onChange func([]domain.AppReport, error)) error {
	if len(opts.Files) == 0 {
		file, err := a.resolveFile("")
		if err != nil {
			return err
		}
		opts.Files = []string{file}
	}

	onChange(a.Inspect(ctx, opts))

	if err := a.watcher.Start(ctx, opts.Files...); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	for event := range a.watcher.Events() {
		if ctx.Err() != nil {
			break
		}
		a.logger.Info(fmt.Sprintf("%s changed", event.Path))
		onChange(a.Inspect(ctx, opts))
	}
	return nil
}
