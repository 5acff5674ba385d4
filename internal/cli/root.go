// Package cli implements the kennel command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/kennel/internal/logging"
	"github.com/mesh-intelligence/kennel/internal/paths"
	"github.com/mesh-intelligence/kennel/pkg/kennel"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
	logFile   string
}

var flags rootFlags

// runState is what PersistentPreRunE prepares for the subcommand.
type runState struct {
	configDir paths.Location
	config    *viper.Viper
	logger    *slog.Logger
	cleanup   func()
}

var state runState

// NewRootCmd creates the top-level "kennel" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "kennel",
		Short:   "Register animals and hear what they say",
		Long:    "Kennel keeps a roster of named animals and lets each of them make its sound.",
		Version: kennel.Version,
		// Do not print usage or errors from subcommands; Execute reports them.
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  prepare,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { release(); return nil },
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .kennel)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .kennel-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "also append logs to this file")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newBarkCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newSpeakCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code.
// Errors are printed to errOut.
func run(root *cobra.Command, args []string, errOut io.Writer) int {
	root.SetArgs(args)
	defer release()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(errOut, "kennel:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// prepare loads config.yaml and sets up logging before any subcommand runs.
func prepare(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ConfigDir(flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	v, err := loadConfig(configDir.Dir)
	if err != nil {
		return sysError(err)
	}

	levelName := flags.logLevel
	if levelName == "" {
		levelName = v.GetString(cfgKeyLogLevel)
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return userError(err)
	}

	logger, cleanup, err := logging.Setup(flags.logFile, level)
	if err != nil {
		return sysError(fmt.Errorf("setup logging: %w", err))
	}

	state = runState{
		configDir: configDir,
		config:    v,
		logger:    logger,
		cleanup:   cleanup,
	}
	logger.Debug("config loaded",
		"config_dir", configDir.Dir, "config_dir_from", configDir.Origin, "command", cmd.Name())
	return nil
}

// release closes the log file, if any. Safe to call more than once.
func release() {
	if state.cleanup != nil {
		state.cleanup()
	}
	state = runState{}
}

// exitError carries the process exit code for a failed command.
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

// sysError marks err as an environment or storage failure (exit 2).
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode returns the exit code carried by err. Errors without one, such as
// cobra argument validation failures, are user errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
