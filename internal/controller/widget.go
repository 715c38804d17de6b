package controller

import (
	"go.uber.org/zap"

	"github.com/diogo/docchat/internal/api"
)

// Widget bundles the shared state with both controllers
type Widget struct {
	Transcript *Transcript
	Status     *StatusBoard
	Input      *InputGate
	Upload     *UploadController
	Chat       *ChatController
}

// NewWidget wires a fresh transcript, status line and closed input gate to
// an upload and a chat controller
func NewWidget(client api.DocChatClient, logger *zap.Logger) *Widget {
	transcript := NewTranscript()
	status := NewStatusBoard()
	gate := NewInputGate()

	return &Widget{
		Transcript: transcript,
		Status:     status,
		Input:      gate,
		Upload:     NewUploadController(client, transcript, status, gate, logger),
		Chat:       NewChatController(client, transcript, gate, logger),
	}
}

// OnChange registers fn on every piece of shared state
func (w *Widget) OnChange(fn func()) {
	w.Transcript.SetOnChange(fn)
	w.Status.SetOnChange(fn)
	w.Input.SetOnChange(fn)
}
