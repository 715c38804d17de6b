package commands

import (
	"strings"
	"testing"
)

func TestRootCommand_Help(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewRootCmd(env.deps)

	if cmd.Use != "docchat" {
		t.Errorf("Expected use 'docchat', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}

	for _, name := range []string{"chat", "upload", "ask", "config"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if err := env.run(t); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Usage:") {
		t.Errorf("expected help output, got %q", env.stdout.String())
	}
}

func TestRootCommand_Version(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run(t, "--version"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.HasPrefix(env.stdout.String(), "docchat "+Version) {
		t.Errorf("unexpected version output: %q", env.stdout.String())
	}
}

func TestRootCommand_ServerFlag(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     string
		want    string
		wantErr bool
	}{
		{"default", []string{"upload", "doc.pdf"}, "", "http://127.0.0.1:5000", false},
		{"env", []string{"upload", "doc.pdf"}, "http://env:7000", "http://env:7000", false},
		{"flag beats env", []string{"-s", "http://flag:8000", "upload", "doc.pdf"}, "http://env:7000", "http://flag:8000", false},
		{"invalid flag", []string{"--server", "not-a-url", "upload", "doc.pdf"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			t.Setenv("DOCCHAT_SERVER_URL", tt.env)

			err := env.run(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if env.cfg.ServerURL != tt.want {
				t.Errorf("client built for %q, want %q", env.cfg.ServerURL, tt.want)
			}
		})
	}
}

func TestRootCommand_VerboseFlag(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run(t, "-v", "upload", "doc.pdf"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !env.cfg.Verbose {
		t.Error("expected --verbose to reach the resolved config")
	}
}
