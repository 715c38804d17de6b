package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/models"
)

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}
}

func TestFormatErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "chat without document",
			err:  apierrors.NewAPIError(400, models.EndpointChat, "Document not uploaded or processed yet. Please upload a file first."),
			want: []string{"HTTP Status: 400", "Endpoint: /chat", "docchat upload"},
		},
		{
			name: "network",
			err:  apierrors.NewNetworkError("upload", models.EndpointUpload, errors.New("connection refused")),
			want: []string{"Endpoint: /upload", "backend is running"},
		},
		{
			name: "parse",
			err:  apierrors.NewParseError("not json", models.EndpointChat),
			want: []string{"did not answer with JSON"},
		},
		{
			name: "too large",
			err:  apierrors.NewValidationError("file", apierrors.ErrFileTooLarge),
			want: []string{"smaller"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatErrorMessage(tt.err, "Failed")
			if !strings.HasPrefix(out, "✗ Failed: ") {
				t.Errorf("unexpected prefix: %q", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, models.Status{State: models.StatusIdle})
	if buf.Len() != 0 {
		t.Errorf("idle status should print nothing, got %q", buf.String())
	}

	printStatus(&buf, models.Status{State: models.StatusSuccess, Message: "done"})
	printStatus(&buf, models.Status{State: models.StatusError, Message: "Error: nope"})
	if got := buf.String(); got != "✓ done\n✗ Error: nope\n" {
		t.Errorf("output = %q", got)
	}
}

func TestSpinnerLifecycle(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Uploading")
	s.start()
	time.Sleep(250 * time.Millisecond)
	s.halt()
	s.halt()

	if !strings.Contains(buf.String(), "Uploading") {
		t.Error("spinner never rendered its message")
	}
	if !strings.HasSuffix(buf.String(), "\033[?25h") {
		t.Error("spinner should restore the cursor when stopped")
	}
}

func TestStartSpinner_NonTTY(t *testing.T) {
	env := newTestEnv(t)
	stop := env.deps.startSpinner("quiet")
	stop()
	if env.stderr.Len() != 0 {
		t.Errorf("spinner wrote to a non-terminal: %q", env.stderr.String())
	}
}
