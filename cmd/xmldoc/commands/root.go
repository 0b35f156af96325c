// Package commands implements the xmldoc command line.
package commands

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/xmldoc/config"
	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/logger"
)

// annotationConfig marks commands that run without a loadable config.
const annotationConfig = "xmldoc/config"

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	verbosity  int

	cfg     *config.Config
	loadErr error
}

// NewRootCmd builds the xmldoc command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "xmldoc",
		Short: "Generate XML documentation comments for C# type declarations",
		Long: `xmldoc - generate /// <summary> comments for C# classes.

Each class declaration gets a summary built from its name and base list,
rendered through configurable templates:

  /// <summary>
  /// The Repository class.
  /// Inherits from RepositoryBase, IDisposable.
  /// </summary>
  public class Repository : RepositoryBase, IDisposable

Configuration is read from ~/.xmldoc/config.toml, the nearest .xmldoc.toml
and XMLDOC_* environment variables, in increasing precedence.

Examples:
  xmldoc apply                 # Document every .cs file below the current directory
  xmldoc apply --dry-run src/  # Show what would change
  xmldoc apply --watch         # Keep documenting files as they are saved
  xmldoc check --changed       # Fail when changed files lack documentation
  xmldoc config show           # Show the effective configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
	}

	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file to use instead of the user and project files")
	root.PersistentFlags().Bool("json", false, "Print results as JSON")

	root.AddCommand(newApplyCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// setup initializes logging and loads the configuration. Commands annotated
// with annotationConfig keep going when the config cannot be loaded and see
// the error in a.loadErr.
func (a *app) setup(cmd *cobra.Command) error {
	if err := logger.InitializeWithWriter(false, a.verbosity, cmd.ErrOrStderr()); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	config.Reset()
	if a.configPath != "" {
		a.cfg, a.loadErr = config.LoadFromFile(a.configPath)
	} else {
		a.cfg, a.loadErr = config.Load()
	}
	if a.loadErr != nil {
		if configOptional(cmd) {
			return nil
		}
		return a.loadErr
	}

	if a.cfg.Log.JSON {
		if err := logger.InitializeWithWriter(true, a.verbosity, cmd.ErrOrStderr()); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
	}
	if logger.ShouldOutput(a.verbosity, logger.OutputConfig) {
		logger.Debugw("Loaded configuration", logger.FieldConfig, config.Files())
	}
	return nil
}

func configOptional(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationConfig]; ok {
			return true
		}
	}
	return false
}

// validConfig returns the loaded config after validating it.
func (a *app) validConfig() (*config.Config, error) {
	if a.loadErr != nil {
		return nil, a.loadErr
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return a.cfg, nil
}

// ExitError carries a process exit code. Its message has already been
// reported when Silent is set.
type ExitError struct {
	Code   int
	Err    error
	Silent bool
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	code := 1
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		if exitErr.Silent {
			return code
		}
	}
	printError(stderr, err)
	return code
}

// printError reports err and any hints attached to it.
func printError(w io.Writer, err error) {
	pterm.Error.WithWriter(w).Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Info.WithWriter(w).Println(hint)
	}
}
