package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/models"
)

func TestAskCommand_PrintsInQuestionOrder(t *testing.T) {
	env := newTestEnv(t)
	env.client.ChatFunc = func(ctx context.Context, message string) (*models.ChatResponse, error) {
		// The first question answers last
		if message == "first?" {
			time.Sleep(50 * time.Millisecond)
		}
		return &models.ChatResponse{Response: "answer to " + message}, nil
	}

	if err := env.run(t, "ask", "first?", "second?", "third?"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out := env.stdout.String()
	want := []string{
		"Q: first?", "answer to first?",
		"Q: second?", "answer to second?",
		"Q: third?", "answer to third?",
	}
	pos := 0
	for _, w := range want {
		i := strings.Index(out[pos:], w)
		if i < 0 {
			t.Fatalf("output out of order or missing %q:\n%s", w, out)
		}
		pos += i + len(w)
	}
}

func TestAskCommand_SingleQuestionRaw(t *testing.T) {
	env := newTestEnv(t)
	env.client.ChatVal = &models.ChatResponse{Response: "**42**"}

	if err := env.run(t, "ask", "--raw", "What is the total?"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := env.stdout.String(); got != "**42**\n" {
		t.Errorf("raw output = %q", got)
	}
	if env.client.Messages[0] != "What is the total?" {
		t.Errorf("sent %q", env.client.Messages[0])
	}
}

func TestAskCommand_SkipsBlankQuestions(t *testing.T) {
	env := newTestEnv(t)
	env.client.ChatVal = &models.ChatResponse{Response: "ok"}

	if err := env.run(t, "ask", "  ", "real question"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if _, chats := env.client.Calls(); chats != 1 {
		t.Errorf("expected one request, got %d", chats)
	}

	env = newTestEnv(t)
	err := env.run(t, "ask", " ", "\t")
	if !errors.Is(err, apierrors.ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	if _, chats := env.client.Calls(); chats != 0 {
		t.Error("blank questions should not be sent")
	}
}

func TestAskCommand_ChatFailure(t *testing.T) {
	env := newTestEnv(t)
	env.client.ChatErr = apierrors.NewAPIError(400, models.EndpointChat, "Document not uploaded or processed yet. Please upload a file first.")

	err := env.run(t, "ask", "anything?")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	want := "Sorry, an error occurred: Document not uploaded or processed yet. Please upload a file first."
	if !strings.Contains(env.stdout.String(), want) {
		t.Errorf("output %q missing %q", env.stdout.String(), want)
	}
}

func TestAskCommand_UploadFirst(t *testing.T) {
	env := newTestEnv(t)
	env.client.UploadVal = &models.UploadResponse{Success: "ok"}
	env.client.ChatVal = &models.ChatResponse{Response: "from the new document"}

	if err := env.run(t, "ask", "--file", "new.pdf", "summary?"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if env.client.LastPath != "new.pdf" {
		t.Errorf("uploaded %q", env.client.LastPath)
	}
	if !strings.Contains(env.stdout.String(), "from the new document") {
		t.Errorf("unexpected output: %q", env.stdout.String())
	}
}

func TestAskCommand_UploadFailureStopsBeforeChat(t *testing.T) {
	env := newTestEnv(t)
	env.client.UploadErr = apierrors.NewAPIError(500, models.EndpointUpload, "")

	err := env.run(t, "ask", "--file", "bad.pdf", "summary?")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if _, chats := env.client.Calls(); chats != 0 {
		t.Error("questions were sent after a failed upload")
	}
	if !strings.Contains(env.stderr.String(), "Error: "+models.MsgUnknownError) {
		t.Errorf("stderr %q missing upload status", env.stderr.String())
	}
}

func TestAskCommand_DecoratedCopiesToClipboard(t *testing.T) {
	orig := clipboardWrite
	defer func() { clipboardWrite = orig }()

	var copied string
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}

	env := newTestEnv(t)
	env.deps.IsTTY = func() bool { return true }
	env.client.ChatVal = &models.ChatResponse{Response: "The contract ends in May."}

	t.Setenv("GLAMOUR_STYLE", "notty")
	if err := writeConfig(t, `{"copy_to_clipboard": true}`); err != nil {
		t.Fatal(err)
	}
	if err := env.run(t, "ask", "When does it end?"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if copied != "The contract ends in May." {
		t.Errorf("copied = %q", copied)
	}
	if !strings.Contains(env.stdout.String(), "When does it end?") {
		t.Errorf("decorated output missing question: %q", env.stdout.String())
	}
}
