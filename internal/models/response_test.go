package models

import (
	"errors"
	"testing"

	apierrors "github.com/diogo/docchat/internal/errors"
)

func TestParseUploadResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		success string
		errText string
		wantErr bool
	}{
		{"success", `{"success":"File 'a.pdf' uploaded and processed successfully."}`, "File 'a.pdf' uploaded and processed successfully.", "", false},
		{"error", `{"error":"No selected file"}`, "", "No selected file", false},
		{"empty object", `{}`, "", "", false},
		{"html", `<html>500</html>`, "", "", true},
		{"empty body", ``, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseUploadResponse([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, apierrors.ErrInvalidResponse) {
					t.Fatalf("expected ErrInvalidResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Success != tt.success {
				t.Errorf("Success = %q, want %q", resp.Success, tt.success)
			}
			if resp.Error != tt.errText {
				t.Errorf("Error = %q, want %q", resp.Error, tt.errText)
			}
		})
	}
}

func TestParseChatResponse(t *testing.T) {
	resp, err := ParseChatResponse([]byte(`{"response":"The total is **42**."}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Response != "The total is **42**." {
		t.Errorf("Response = %q", resp.Response)
	}

	if _, err := ParseChatResponse([]byte("not json")); err == nil {
		t.Error("expected parse error for non-JSON body")
	}
}

func TestErrorField(t *testing.T) {
	if got := ErrorField([]byte(`{"error":"Document not uploaded or processed yet."}`)); got != "Document not uploaded or processed yet." {
		t.Errorf("ErrorField() = %q", got)
	}
	if got := ErrorField([]byte(`{"response":"ok"}`)); got != "" {
		t.Errorf("ErrorField() = %q, want empty", got)
	}
	if got := ErrorField([]byte(`Bad Gateway`)); got != "" {
		t.Errorf("ErrorField() = %q, want empty", got)
	}
}

func TestStatusStateString(t *testing.T) {
	tests := map[StatusState]string{
		StatusIdle:       "idle",
		StatusProcessing: "processing",
		StatusSuccess:    "success",
		StatusError:      "error",
		StatusState(42):  "idle",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("StatusState(%d).String() = %q, want %q", state, got, want)
		}
	}
}

func TestProcessFailureMessage(t *testing.T) {
	if MsgProcessFailure[:len(UploadErrorPrefix)] != UploadErrorPrefix {
		t.Error("diagnostic should start with the upload error prefix")
	}
}
