package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bidsapp/cmd/bidsapp/commands"
	"go.trai.ch/bidsapp/internal/app"
	"go.trai.ch/bidsapp/internal/build"
	"go.trai.ch/bidsapp/internal/core/domain"
	"go.trai.ch/bidsapp/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type mockApp struct {
	ConfigureFunc   func(s app.Settings) error
	CloseFunc       func(ctx context.Context) error
	InspectFunc     func(ctx context.Context, opts app.InspectOptions) ([]domain.AppReport, error)
	WatchFunc       func(ctx context.Context, opts app.InspectOptions, onChange func([]domain.AppReport, error)) error
	CommandLineFunc func(ctx context.Context, opts app.CommandLineOptions) (*app.CommandLineResult, error)
	SchemaFunc      func() domain.SchemaReport

	settings app.Settings
	closed   bool
}

func (m *mockApp) Configure(s app.Settings) error {
	m.settings = s
	if m.ConfigureFunc != nil {
		return m.ConfigureFunc(s)
	}
	return nil
}

func (m *mockApp) Close(ctx context.Context) error {
	m.closed = true
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx)
	}
	return nil
}

func (m *mockApp) Inspect(ctx context.Context, opts app.InspectOptions) ([]domain.AppReport, error) {
	if m.InspectFunc != nil {
		return m.InspectFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockApp) Watch(
	ctx context.Context,
	opts app.InspectOptions,
	onChange func([]domain.AppReport, error),
) error {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, opts, onChange)
	}
	return nil
}

func (m *mockApp) CommandLine(ctx context.Context, opts app.CommandLineOptions) (*app.CommandLineResult, error) {
	if m.CommandLineFunc != nil {
		return m.CommandLineFunc(ctx, opts)
	}
	return &app.CommandLineResult{}, nil
}

func (m *mockApp) Schema() domain.SchemaReport {
	if m.SchemaFunc != nil {
		return m.SchemaFunc()
	}
	return domain.SchemaReport{}
}

func execute(t *testing.T, a *mockApp, args ...string) (stdout string, err error) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cli := commands.New(a, mocks.NewMockLogger(ctrl))
	out := new(bytes.Buffer)
	cli.SetOutput(out, new(bytes.Buffer))
	cli.SetArgs(args)
	err = cli.Execute(context.Background())
	return out.String(), err
}

var mriqc = domain.AppReport{
	File:     "/project/bidsapp.yaml",
	Name:     "mriqc",
	ImageTag: "nipreps/mriqc:22.0.6",
	Command:  "nipreps/mriqc:22.0.6",
	Digest:   "00000000000000ff",
	Status:   domain.StatusNew,
}

func TestInspect(t *testing.T) {
	a := &mockApp{
		InspectFunc: func(_ context.Context, opts app.InspectOptions) ([]domain.AppReport, error) {
			assert.Equal(t, []string{"a.yaml", "b.yaml"}, opts.Files)
			assert.Equal(t, []string{"mriqc"}, opts.Apps)
			assert.True(t, opts.Record)
			return []domain.AppReport{mriqc}, nil
		},
	}

	out, err := execute(t, a, "inspect", "-f", "a.yaml", "--file", "b.yaml", "--record", "mriqc")
	require.NoError(t, err)
	assert.Contains(t, out, "mriqc")
	assert.Contains(t, out, "nipreps/mriqc:22.0.6")
	assert.True(t, a.closed)
}

func TestInspect_YAML(t *testing.T) {
	a := &mockApp{
		InspectFunc: func(context.Context, app.InspectOptions) ([]domain.AppReport, error) {
			return []domain.AppReport{mriqc}, nil
		},
	}

	out, err := execute(t, a, "inspect", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: mriqc")
	assert.Contains(t, out, "status: new")
}

func TestInspect_UnknownFormat(t *testing.T) {
	a := &mockApp{
		InspectFunc: func(context.Context, app.InspectOptions) ([]domain.AppReport, error) {
			t.Fatal("inspect must not run")
			return nil, nil
		},
	}

	_, err := execute(t, a, "inspect", "-o", "xml")
	require.ErrorIs(t, err, commands.ErrUnknownOutputFormat)
}

func TestInspect_Error(t *testing.T) {
	a := &mockApp{
		InspectFunc: func(context.Context, app.InspectOptions) ([]domain.AppReport, error) {
			return nil, domain.ErrAppNotFound
		},
	}

	_, err := execute(t, a, "inspect", "qsiprep")
	require.ErrorIs(t, err, domain.ErrAppNotFound)
}

func TestInspect_Watch(t *testing.T) {
	a := &mockApp{
		WatchFunc: func(_ context.Context, opts app.InspectOptions, onChange func([]domain.AppReport, error)) error {
			assert.Equal(t, []string{"mriqc"}, opts.Apps)
			onChange([]domain.AppReport{mriqc}, nil)
			onChange([]domain.AppReport{mriqc}, nil)
			return nil
		},
	}

	out, err := execute(t, a, "inspect", "--watch", "mriqc")
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("mriqc  nipreps/mriqc:22.0.6")))
}

func TestInspect_WatchLogsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	loadErr := errors.New("broken yaml")
	logger.EXPECT().Error(loadErr)

	a := &mockApp{
		WatchFunc: func(_ context.Context, _ app.InspectOptions, onChange func([]domain.AppReport, error)) error {
			onChange(nil, loadErr)
			return nil
		},
	}
	cli := commands.New(a, logger)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"inspect", "--watch"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestCmdline(t *testing.T) {
	a := &mockApp{
		CommandLineFunc: func(_ context.Context, opts app.CommandLineOptions) (*app.CommandLineResult, error) {
			assert.Equal(t, "decl.yaml", opts.File)
			assert.Equal(t, "fmriprep", opts.App)
			assert.Equal(t, []string{"bids_dir=/data", "output_dir=/out"}, opts.Set)
			return &app.CommandLineResult{
				App:  "fmriprep",
				Line: "/run.sh /data /out participant",
				Args: []string{"/data", "/out", "participant"},
			}, nil
		},
	}

	out, err := execute(t, a, "cmdline", "-f", "decl.yaml", "fmriprep",
		"--set", "bids_dir=/data", "-s", "output_dir=/out")
	require.NoError(t, err)
	assert.Equal(t, "/run.sh /data /out participant\n", out)

	out, err = execute(t, a, "cmdline", "-f", "decl.yaml", "fmriprep",
		"--set", "bids_dir=/data", "-s", "output_dir=/out", "--args")
	require.NoError(t, err)
	assert.Equal(t, "/data\n/out\nparticipant\n", out)
}

func TestCmdline_TooManyArgs(t *testing.T) {
	_, err := execute(t, &mockApp{}, "cmdline", "a", "b")
	require.Error(t, err)
}

func TestSchema(t *testing.T) {
	a := &mockApp{
		SchemaFunc: func() domain.SchemaReport {
			return domain.SchemaReport{
				Inputs: []domain.FieldReport{{Name: "bids_dir", Type: "path", Position: 1, Mandatory: true}},
			}
		},
	}

	out, err := execute(t, a, "schema", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: bids_dir")
	assert.Contains(t, out, "mandatory: true")

	out, err = execute(t, a, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "bids_dir")
}

func TestGlobalFlags(t *testing.T) {
	a := &mockApp{}
	_, err := execute(t, a, "--json", "--trace", "schema")
	require.NoError(t, err)
	assert.True(t, a.settings.JSON)
	assert.True(t, a.settings.Trace)
	assert.NotNil(t, a.settings.TraceOutput)
}

func TestGlobalFlags_Env(t *testing.T) {
	t.Setenv("BIDSAPP_JSON", "true")
	a := &mockApp{}
	_, err := execute(t, a, "schema")
	require.NoError(t, err)
	assert.True(t, a.settings.JSON)
	assert.False(t, a.settings.Trace)
}

func TestConfigureError(t *testing.T) {
	cfgErr := errors.New("exporter failed")
	a := &mockApp{
		ConfigureFunc: func(app.Settings) error { return cfgErr },
	}
	_, err := execute(t, a, "schema")
	require.ErrorIs(t, err, cfgErr)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "bidsapp version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "bidsapp version "+build.Version)
}
