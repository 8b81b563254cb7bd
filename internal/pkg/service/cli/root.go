// Package cli implements the "recordcsv" command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/keboola/recordcsv/internal/pkg/log"
	"github.com/keboola/recordcsv/internal/pkg/service/common/configmap"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

const rootUse = "recordcsv"

const rootLong = `Serializes heterogeneous records to a single CSV table.

Each record type owns a set of attributes, a child type inherits attributes of its parent.
The header contains all attributes of all record types, in the order they were first seen.
A cell is empty if the record type doesn't own the attribute or if the value is null.`

// RootCommand is the entrypoint of the CLI.
type RootCommand struct {
	*cobra.Command
	fs        afero.Fs
	lookupEnv func(string) (string, bool)
	flags     GlobalFlags
	logger    log.Logger
	logFile   *log.File
}

func NewRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer, fs afero.Fs, lookupEnv func(string) (string, bool)) *RootCommand {
	root := &RootCommand{
		fs:        fs,
		lookupEnv: lookupEnv,
		flags:     DefaultGlobalFlags(),
		logger:    log.NewNopLogger(),
	}

	root.Command = &cobra.Command{
		Use:           rootUse,
		Short:         "Serialize heterogeneous records to CSV.",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return svcerrors.NewConfigurationError(err)
	})
	configmap.MustGenerateFlags(root.PersistentFlags(), root.flags)

	root.AddCommand(newConvertCommand(root))

	return root
}

// Execute the command and return the process exit code.
func (root *RootCommand) Execute(ctx context.Context) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			exitCode = ProcessPanic(ctx, r, root.logger, root.logFilePath())
		}
		_ = root.logger.Sync()
		if err := root.logFile.Close(); err != nil {
			root.printError(err)
		}
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		root.printError(err)
		return svcerrors.ExitCodeFrom(err)
	}

	return svcerrors.ExitCodeOK
}

// Logger is available after flags are bound.
func (root *RootCommand) Logger() log.Logger {
	return root.logger
}

func (root *RootCommand) GlobalFlags() GlobalFlags {
	return root.flags
}

// setup binds global flags and creates the logger.
// Global flags are read from flags and ENVs only, the config file is used by sub-commands.
func (root *RootCommand) setup(cmd *cobra.Command) error {
	bindCfg := configmap.BindConfig{Flags: cmd.Flags(), EnvPrefix: ENVPrefix, LookupEnv: root.lookupEnv}
	if err := configmap.Bind(bindCfg, &root.flags); err != nil {
		return svcerrors.NewConfigurationError(err)
	}

	format, err := log.NewLogFormat(root.flags.LogFormat)
	if err != nil {
		return svcerrors.NewConfigurationError(err)
	}

	logFile, err := log.NewLogFile(root.flags.LogFile)
	if err != nil {
		return svcerrors.NewIOError(err)
	}
	root.logFile = logFile

	// Stdout is reserved for the CSV output, so all messages go to stderr
	root.logger = log.NewCliLogger(root.ErrOrStderr(), root.ErrOrStderr(), logFile, format, root.flags.Verbose)
	if logFile != nil {
		root.logger.Debugf(cmd.Context(), `Log file: "%s"`, logFile.Path())
	}

	return nil
}

func (root *RootCommand) logFilePath() string {
	if root.logFile == nil {
		return ""
	}
	return root.logFile.Path()
}

func (root *RootCommand) printError(err error) {
	// Details for the log file and the verbose mode
	log.NewLevelWriter(root.logger, log.DebugLevel).Writef(
		"Error type: %s\n%s",
		svcerrors.ErrorNameFrom(err),
		errors.Format(err, errors.FormatWithStack(), errors.FormatWithUnwrap()),
	)

	prefix := color.New(color.FgRed, color.Bold)
	if !isTerminal(root.ErrOrStderr()) {
		prefix.DisableColor()
	}
	_, _ = fmt.Fprintf(root.ErrOrStderr(), "%s %s\n", prefix.Sprint("Error:"), svcerrors.UserMessageFrom(err))

	if svcerrors.IsConfigurationError(err) {
		_, _ = fmt.Fprintf(root.ErrOrStderr(), "Run \"%s --help\" for usage.\n", rootUse)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
