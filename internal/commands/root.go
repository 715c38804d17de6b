// Package commands provides CLI commands for docchat.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diogo/docchat/internal/config"
	"github.com/diogo/docchat/internal/logging"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// errReported marks a failure whose message was already printed
var errReported = errors.New("error already reported")

// tuiAnnotation marks commands that own the terminal
const tuiAnnotation = "docchat/tui"

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	var (
		serverFlag  string
		verboseFlag bool
		versionFlag bool
	)

	cmd := &cobra.Command{
		Use:   "docchat",
		Short: "Chat with your documents from the terminal",
		Long: `docchat uploads a document to a document question-answering backend
and lets you ask questions about it.

Examples:
  docchat chat                          Start the interactive chat
  docchat chat --file report.pdf        Upload, then chat
  docchat upload data.csv               Upload a document
  docchat upload notes.pdf --watch      Re-upload on every save
  docchat ask "What is the total?"      Ask a one-off question
  docchat config set server_url http://localhost:5000`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return deps.resolve(cmd, serverFlag, verboseFlag)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = deps.Logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				fmt.Fprintf(deps.Stdout, "docchat %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Backend URL (default from config, "+config.EnvServerURL+")")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose logging")
	cmd.Flags().BoolVar(&versionFlag, "version", false, "Show version and exit")

	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewUploadCmd(deps))
	cmd.AddCommand(NewAskCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// resolve loads .env, the config file, env overrides and flags, in that
// order, then builds the logger
func (d *Dependencies) resolve(cmd *cobra.Command, server string, verbose bool) error {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(d.Stderr, "Warning: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(d.Stderr, "Warning: %v (using defaults)\n", err)
	}

	if server != "" {
		if err := config.ValidateServerURL(server); err != nil {
			return err
		}
		cfg.ServerURL = server
	}
	if verbose {
		cfg.Verbose = true
	}
	d.Config = cfg

	_, ownsTerminal := cmd.Annotations[tuiAnnotation]
	logger, err := logging.New(logging.Options{
		Verbose: cfg.Verbose,
		File:    cfg.LogFile,
		Stderr:  cfg.Verbose && !ownsTerminal,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	d.Logger = logger
	return nil
}

var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "docchat"))
		}
		stop()
		os.Exit(1)
	}
}
