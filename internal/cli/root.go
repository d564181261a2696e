// Package cli implements the verby command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/verby/internal/logging"
	"github.com/mesh-intelligence/verby/internal/paths"
	"github.com/mesh-intelligence/verby/pkg/verby"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// logFileName is written in the data directory while the terminal UI runs.
const logFileName = "verby.log"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	verbose   bool
}

// app is the state shared by one command tree: flags, the loaded
// settings, and the logger built from them.
type app struct {
	flags    rootFlags
	settings settings
	logger   *zap.Logger
}

// NewRootCmd creates the top-level "verby" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:     "verby",
		Short:   "Practise irregular verb forms by matching them in a grid",
		Long:    "verby keeps a table of three-form verb entries and quizzes you on them:\npick the three labels of one entry from a shuffled-looking grid to clear them.",
		Version: verby.Version,
		// Errors are printed once by Execute with their exit code.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newPlayCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "verby:", err)
	stop()
	os.Exit(exitCode(err))
}

// setup loads config.yaml and builds the logger. The play command logs to
// a file in the data directory so the terminal UI stays intact.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	s, err := readSettings(v)
	if err != nil {
		return userError(fmt.Errorf("%s: %w", filepath.Join(configDir, configFileExt), err))
	}
	a.settings = s

	opts := logging.Options{Verbose: a.flags.verbose}
	if cmd.Name() == "play" {
		dataDir, err := a.dataDir()
		if err != nil {
			return err
		}
		opts.Path = filepath.Join(dataDir, logFileName)
	}
	logger, err := logging.New(opts)
	if err != nil {
		return sysError(err)
	}
	a.logger = logger
	a.logger.Debug("config loaded",
		zap.String("config_dir", configDir),
		zap.String("mismatch_policy", s.MismatchPolicy),
		zap.String("sync_strategy", s.SyncStrategy))
	return nil
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by bad input (exit 1).
func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// sysError marks err as a storage or environment failure (exit 2).
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps err to a process exit code. Errors without a code come
// from cobra argument parsing and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
