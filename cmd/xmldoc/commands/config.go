package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/xmldoc/config"
	"github.com/teranos/xmldoc/display"
	"github.com/teranos/xmldoc/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and manage xmldoc configuration",
		Long: `Show and manage xmldoc configuration.

Configuration sources (in order of precedence):
1. Environment variables (XMLDOC_* prefix)
2. Project config (nearest .xmldoc.toml at or above the working directory)
3. User config (~/.xmldoc/config.toml)
4. Default values

--config replaces the user and project files with the given file.

Examples:
  xmldoc config show                  # Show the effective configuration
  xmldoc config show --format json    # ... as JSON
  xmldoc config show --sources        # Show where each value comes from
  xmldoc config validate              # Check templates, globs and policy
  xmldoc config init                  # Write a starter .xmldoc.toml`,
		Annotations: map[string]string{annotationConfig: "optional"},
	}

	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigValidateCmd(a))
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigWhereCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var (
		format  string
		sources bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.loadErr != nil {
				return a.loadErr
			}
			if display.ShouldOutputJSON(cmd) {
				format = display.FormatJSON
			}

			w := cmd.OutOrStdout()
			if !sources {
				if format == display.FormatTOML {
					fmt.Fprintln(w, "# xmldoc configuration")
				}
				return display.Encode(w, format, a.cfg)
			}

			settings, err := config.Introspect()
			if err != nil {
				return err
			}
			if format != display.FormatTOML {
				return display.Encode(w, format, settings)
			}
			data := pterm.TableData{{"Key", "Value", "Source", "From"}}
			for _, s := range settings {
				data = append(data, []string{s.Key, truncate(fmt.Sprintf("%v", s.Value), 50), string(s.Source), s.SourcePath})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
		},
	}

	cmd.Flags().StringVar(&format, "format", display.FormatTOML, "Output format: toml, json, yaml")
	cmd.Flags().BoolVar(&sources, "sources", false, "Show the source of every setting")
	return cmd
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.validConfig(); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Configuration is valid")
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var (
		force bool
		user  bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter config file",
		Long: `Write a config file holding the built-in defaults.

The file goes to ./.xmldoc.toml unless a path or --user is given. An
existing file is kept unless --force is set; it is then rotated into
.back1 (up to .back3) before being replaced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectFileName
			switch {
			case len(args) == 1:
				path = args[0]
			case user:
				path = config.UserConfigPath()
				if path == "" {
					return errors.New("cannot determine the home directory")
				}
			}

			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&user, "user", false, "Write ~/.xmldoc/config.toml instead")
	return cmd
}

func newConfigWhereCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Show which configuration files are read",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "Configuration cascade (later overrides earlier):")
			fmt.Fprintln(w, "  1. [DEFAULT]  Built-in defaults")
			if a.configPath != "" {
				fmt.Fprintf(w, "  2. [EXPLICIT] %s\n", describeFile(a.configPath))
				fmt.Fprintln(w, "  3. [ENV]      XMLDOC_* environment variables")
				return nil
			}

			user := config.UserConfigPath()
			fmt.Fprintf(w, "  2. [USER]     %s\n", describeFile(user))
			project := config.ProjectConfigPath()
			if project == "" {
				wd, _ := os.Getwd()
				fmt.Fprintf(w, "  3. [PROJECT]  %s (not found, searched upwards)\n", filepath.Join(wd, config.ProjectFileName))
			} else {
				fmt.Fprintf(w, "  3. [PROJECT]  %s\n", describeFile(project))
			}
			fmt.Fprintln(w, "  4. [ENV]      XMLDOC_* environment variables")
			return nil
		},
	}
}

func describeFile(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path + " (missing)"
	}
	return path
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
