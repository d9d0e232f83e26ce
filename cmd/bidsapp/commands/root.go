// Package commands implements the CLI commands for bidsapp.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/bidsapp/internal/app"
	"go.trai.ch/bidsapp/internal/build"
	"go.trai.ch/bidsapp/internal/core/domain"
	"go.trai.ch/bidsapp/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes the environment variables that back the global flags.
const EnvPrefix = "BIDSAPP"

// ErrUnknownOutputFormat is returned when --output names an unsupported format.
var ErrUnknownOutputFormat = zerr.New("unknown output format")

// Application represents the application logic interface.
type Application interface {
	Configure(s app.Settings) error
	Close(ctx context.Context) error
	Inspect(ctx context.Context, opts app.InspectOptions) ([]domain.AppReport, error)
	Watch(ctx context.Context, opts app.InspectOptions, onChange func([]domain.AppReport, error)) error
	CommandLine(ctx context.Context, opts app.CommandLineOptions) (*app.CommandLineResult, error)
	Schema() domain.SchemaReport
}

// CLI represents the command line interface for bidsapp.
type CLI struct {
	app     Application
	logger  ports.Logger
	config  *viper.Viper
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "bidsapp",
		Short:         "Describe BIDS App task definitions and the commands they run",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringArrayP("file", "f", nil, "Declaration file (default: bidsapp.yaml found above the working directory)")
	flags.Bool("json", false, "Write logs as JSON")
	flags.Bool("trace", false, "Export trace spans to stderr")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"file", "json", "trace"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	c := &CLI{
		app:     a,
		logger:  log,
		config:  v,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return c.app.Configure(app.Settings{
			JSON:        v.GetBool("json"),
			Trace:       v.GetBool("trace"),
			TraceOutput: cmd.ErrOrStderr(),
		})
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		return c.app.Close(cmd.Context())
	}

	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newCmdlineCmd())
	rootCmd.AddCommand(c.newSchemaCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) files() []string {
	return c.config.GetStringSlice("file")
}

func checkFormat(format string) error {
	switch format {
	case "text", "yaml":
		return nil
	default:
		return zerr.With(zerr.Wrap(ErrUnknownOutputFormat, "expected text or yaml"), "output", format)
	}
}
