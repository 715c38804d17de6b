package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/docchat/internal/config"
	"github.com/diogo/docchat/internal/render"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the configuration",
		Long: `Inspect and edit ~/.docchat/config.json.

Environment variables (` + config.EnvServerURL + `, ` + config.EnvTimeout + `,
` + config.EnvLogFile + `, ` + render.EnvStyle + `) and flags override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(deps)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(deps)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Valid keys: " + strings.Join(config.Keys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(deps, args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, path)
			return nil
		},
	})

	return cmd
}

func runConfigShow(deps *Dependencies) error {
	cfg := deps.Config
	width := 0
	for _, key := range config.Keys() {
		if len(key) > width {
			width = len(key)
		}
	}

	for _, key := range config.Keys() {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		if value == "" {
			value = dimStyle.Render("(unset)")
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-*s", width, key)), value)
	}

	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, dimStyle.Render("TUI themes:      "+strings.Join(render.TUIThemeNames(), ", ")))
	fmt.Fprintln(deps.Stdout, dimStyle.Render("Markdown styles (or a path to a JSON style):"))
	for _, s := range render.AvailableStyles() {
		fmt.Fprintf(deps.Stdout, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", s.Name)), dimStyle.Render(s.Description))
	}
	return nil
}

func runConfigSet(deps *Dependencies, key, value string) error {
	if err := validateConfigValue(key, value); err != nil {
		return err
	}

	// Start from the file alone so env overrides are not persisted
	cfg, err := config.LoadFileConfig()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintln(deps.Stdout, successStyle.Render(fmt.Sprintf("✓ %s = %s", key, stored)))
	return nil
}

// validateConfigValue checks values that depend on the render package
func validateConfigValue(key, value string) error {
	switch key {
	case "tui_theme":
		if _, ok := render.GetTUIThemeByName(value); !ok {
			return fmt.Errorf("unknown TUI theme %q (available: %s)", value, strings.Join(render.TUIThemeNames(), ", "))
		}
	case "markdown.style":
		if render.IsStandardStyle(value) {
			return nil
		}
		if _, err := os.Stat(value); err != nil {
			return fmt.Errorf("markdown.style must be one of %s or an existing JSON file: %w", strings.Join(render.StyleNames(), ", "), err)
		}
	}
	return nil
}
