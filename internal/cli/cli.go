// Package cli implements the shiftcfg command, an offline checker for roster configurations.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arnavshah/roster-config-api/pkg/models"
)

var (
	// Version is set at build time
	Version = "dev"

	// ErrBlocking is returned by check when the config has error-level problems
	ErrBlocking = errors.New("configuration has blocking problems")
)

var (
	colorError   = color.New(color.FgRed, color.Bold)
	colorWarning = color.New(color.FgYellow)
	colorOK      = color.New(color.FgGreen)
	colorHeader  = color.New(color.Bold)
	colorMuted   = color.New(color.FgWhite, color.Faint)
)

// App holds the CLI state
type App struct {
	root    *cobra.Command
	stdin   io.Reader
	noColor bool
}

// NewApp builds the command tree
func NewApp() *App {
	a := &App{stdin: os.Stdin}

	a.root = &cobra.Command{
		Use:   "shiftcfg",
		Short: "Check and normalize roster configurations",
		Long: `shiftcfg validates a roster configuration file the same way the API does.

It reports structural errors, coverage conflicts, coverage health and the
minimum weekly labor cost, and can print the normalized form sent to the solver.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				color.NoColor = true
			}
		},
	}
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.normalizeCmd())
	a.root.AddCommand(a.presetsCmd())
	a.root.AddCommand(a.preflightCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shiftcfg %s\n", Version)
		},
	}
}

// Execute runs the CLI
func (a *App) Execute() error {
	return a.root.Execute()
}

// readConfig decodes a HumanConfig from a file, or stdin when path is "-"
func (a *App) readConfig(path string) (models.HumanConfig, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return models.HumanConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg models.HumanConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.HumanConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
