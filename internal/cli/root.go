// Package cli implements the yo command-line interface. Each subcommand is
// one entry in the verb registry; commands that change the project turn
// their arguments into log entries and hand them to the backend.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/yo/internal/paths"
	"github.com/mesh-intelligence/yo/pkg/sqlite"
	"github.com/mesh-intelligence/yo/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	projectDir string
	user       string
	logLevel   string
	jsonMode   bool
}

var flags rootFlags

// now is the clock used to stamp new entries.
var now = time.Now

// runtimeState is prepared by the root PersistentPreRunE.
var runtimeState struct {
	cfg    *viper.Viper
	logger zerolog.Logger
	root   string
}

// NewRootCmd creates the top-level "yo" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	root := &cobra.Command{
		Use:   "yo",
		Short: "A local, log-based project and task tracker",
		Long: "yo keeps every change to a project as one line in an append-only log\n" +
			"and rebuilds the current state of items by replaying it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepare(cmd)
		},
	}

	root.PersistentFlags().StringVar(&flags.projectDir, "project-dir", "", "project root (default: nearest parent with a .yo directory)")
	root.PersistentFlags().StringVar(&flags.user, "user", "", "user recorded on new entries (default: config user, then OS user)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCreateCmd())
	root.AddCommand(newSetCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newDetailsCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newReindexCmd())
	root.AddCommand(newResetDBCmd())
	root.AddCommand(newExportCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "yo:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// prepare resolves the project root, loads config and builds the logger.
// init runs without an existing project; version, help and completion need
// no project at all.
func prepare(cmd *cobra.Command) error {
	if !needsProject(cmd) {
		runtimeState.logger = newLogger(cmd.ErrOrStderr(), flags.logLevel)
		return nil
	}

	var root string
	var err error
	switch cmd.Name() {
	case "init":
		root, err = paths.ResolveInitRoot(flags.projectDir)
	default:
		root, err = paths.ResolveProjectRoot(flags.projectDir)
	}
	if err != nil {
		return userError(err)
	}
	if cmd.Name() != "init" {
		if info, statErr := os.Stat(paths.DataDir(root)); statErr != nil || !info.IsDir() {
			return userError(fmt.Errorf("%w: %s", paths.ErrNoProject, root))
		}
	}

	cfg, err := loadConfig(paths.DataDir(root))
	if err != nil {
		return sysError(err)
	}

	level := flags.logLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	runtimeState.cfg = cfg
	runtimeState.root = root
	runtimeState.logger = newLogger(cmd.ErrOrStderr(), level)
	runtimeState.logger.Debug().Str("root", root).Str("command", cmd.Name()).Msg("resolved project")
	return nil
}

func needsProject(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion":
			return false
		}
	}
	return true
}

// newLogger writes human-readable diagnostics to w. Unknown or empty
// levels fall back to warn.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}

// attachBackend opens the store for the resolved project. The caller must
// defer backend.Detach().
func attachBackend() (sqlite.Store, error) {
	backend, err := sqlite.Open(paths.DataDir(runtimeState.root), runtimeState.logger)
	if err != nil {
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	return backend, nil
}

// currentUser follows the chain: --user flag > config/env user > OS user.
func currentUser() (types.UserID, error) {
	name := flags.user
	if name == "" && runtimeState.cfg != nil {
		name = runtimeState.cfg.GetString(cfgKeyUser)
	}
	if name == "" {
		name = osUserName()
	}
	u, err := types.ParseUserID(name)
	if err != nil {
		return "", userError(err)
	}
	return u, nil
}

// cliError carries the process exit code for a failed command.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(err error) error { return &cliError{code: exitUserError, err: err} }
func sysError(err error) error  { return &cliError{code: exitSysError, err: err} }

func exitCode(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
