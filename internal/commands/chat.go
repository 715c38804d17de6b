package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/docchat/internal/controller"
	"github.com/diogo/docchat/internal/render"
	"github.com/diogo/docchat/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	var fileFlag string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat with the backend.

The chat input stays disabled until a document has been processed, and
again after a failed upload. Upload with --file or ctrl+o. Once the input
is open, /upload PATH replaces the document.
Press Esc or Ctrl+C, or type /quit, to end the session.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{tuiAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps, fileFlag)
		},
	}

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Upload this document before chatting")
	return cmd
}

func runChat(cmd *cobra.Command, deps *Dependencies, file string) error {
	client, err := deps.client()
	if err != nil {
		return err
	}
	defer client.Close()

	cfg := deps.Config
	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		deps.Logger.Warn("unknown TUI theme, using default", zap.String("theme", cfg.TUITheme))
	}
	tui.UpdateTheme()

	widget := controller.NewWidget(client, deps.Logger)
	return deps.TUI.RunChat(cmd.Context(), widget, tui.Options{
		ServerURL:   client.BaseURL(),
		Render:      render.OptionsFromConfig(cfg.Markdown),
		InitialFile: file,
		CopyReplies: cfg.CopyToClipboard,
		Logger:      deps.Logger,
	})
}
