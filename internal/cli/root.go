// Package cli implements the rankaroo command-line interface. It is the
// presentation layer: it collects input, calls the Ranker operations, and
// renders results or errors.
// Implements: rankaroo-cli (root command, global flags, exit codes, output modes);
//
//	docs/ARCHITECTURE § CLI.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/rankaroo/pkg/rankaroo"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds global flag values and per-invocation state shared by all
// subcommands.
type app struct {
	configDir string
	dataDir   string
	global    bool
	jsonMode  bool
	verbose   bool

	log *zap.Logger
}

// NewRootCmd creates the top-level "rankaroo" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:     "rankaroo",
		Short:   "Create categories and rank your favorite items",
		Long:    "Rankaroo organises items into typed categories and keeps each\ncategory's items sorted by their ranking from 1 to 10.",
		Version: rankaroo.Version,
		// Errors are printed once by Execute.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/.rankaroo-db)")
	pf.BoolVar(&a.global, "global", false, "use the platform data directory instead of $(CWD)/.rankaroo-db")
	pf.BoolVar(&a.jsonMode, "json", false, "output as JSON")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCategoryCmd(a))
	root.AddCommand(newItemCmd(a))
	root.AddCommand(newSeedCmd(a))

	return root
}

// initLogger builds the production logger; --verbose lowers the level to debug.
func (a *app) initLogger() error {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if a.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := config.Build()
	if err != nil {
		return systemErr(fmt.Errorf("initialize logger: %w", err))
	}
	a.log = log
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rankaroo:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// sysError marks failures of the environment (storage, config files) as
// opposed to invalid input.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemErr(err error) error {
	if err == nil {
		return nil
	}
	return &sysError{err: err}
}

// exitCode maps an error to a process exit code: domain and usage errors are
// user errors, storage and configuration failures are system errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) || errors.Is(err, types.ErrPersist) {
		return exitSysError
	}
	return exitUserError
}
