package commands

import (
	"bytes"
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/docchat/internal/api"
	"github.com/diogo/docchat/internal/config"
	"github.com/diogo/docchat/internal/controller"
	"github.com/diogo/docchat/internal/tui"
)

type fakeTUI struct {
	called bool
	widget *controller.Widget
	opts   tui.Options
	err    error
}

func (f *fakeTUI) RunChat(ctx context.Context, w *controller.Widget, opts tui.Options) error {
	f.called = true
	f.widget = w
	f.opts = opts
	return f.err
}

type testEnv struct {
	deps   *Dependencies
	client *api.MockClient
	tui    *fakeTUI
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	// cfg is the configuration the client factory was called with
	cfg config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("DOCCHAT_HOME", t.TempDir())
	t.Setenv(config.EnvServerURL, "")
	t.Setenv(config.EnvTimeout, "")
	t.Setenv(config.EnvLogFile, "")
	t.Setenv("GLAMOUR_STYLE", "")

	env := &testEnv{
		client: &api.MockClient{URL: config.DefaultServerURL},
		tui:    &fakeTUI{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	env.deps = &Dependencies{
		NewClient: func(cfg config.Config, logger *zap.Logger) (api.DocChatClient, error) {
			env.cfg = cfg
			return env.client, nil
		},
		TUI:    env.tui,
		Stdout: env.stdout,
		Stderr: env.stderr,
		IsTTY:  func() bool { return false },
		Config: config.DefaultConfig(),
		Logger: zap.NewNop(),
	}
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	return e.runContext(context.Background(), t, args...)
}

func (e *testEnv) runContext(ctx context.Context, t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
