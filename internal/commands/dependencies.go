package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/diogo/docchat/internal/api"
	"github.com/diogo/docchat/internal/config"
	"github.com/diogo/docchat/internal/controller"
	"github.com/diogo/docchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, w *controller.Widget, opts tui.Options) error
}

// ClientFactory builds the backend client for a resolved configuration
type ClientFactory func(cfg config.Config, logger *zap.Logger) (api.DocChatClient, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	NewClient ClientFactory
	TUI       TUIInterface

	Stdout io.Writer
	Stderr io.Writer

	// IsTTY reports whether stdout is an interactive terminal
	IsTTY func() bool

	// Resolved by the root command before any subcommand runs
	Config config.Config
	Logger *zap.Logger
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, w *controller.Widget, opts tui.Options) error {
	return tui.RunChat(ctx, w, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: newHTTPClient,
		TUI:       &DefaultTUI{},
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		IsTTY:     isStdoutTTY,
		Config:    config.DefaultConfig(),
		Logger:    zap.NewNop(),
	}
}

func newHTTPClient(cfg config.Config, logger *zap.Logger) (api.DocChatClient, error) {
	return api.NewClient(cfg.ServerURL,
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		api.WithLogger(logger),
	)
}

// client builds a client from the resolved config
func (d *Dependencies) client() (api.DocChatClient, error) {
	c, err := d.NewClient(d.Config, d.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}
