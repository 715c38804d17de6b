package controller

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/diogo/docchat/internal/api"
	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/logging"
	"github.com/diogo/docchat/internal/models"
)

// ChatController appends user messages to the transcript and resolves a
// placeholder per message with the backend's reply
type ChatController struct {
	client     api.DocChatClient
	transcript *Transcript
	gate       *InputGate
	logger     *zap.Logger
}

// NewChatController creates a ChatController over shared widget state
func NewChatController(client api.DocChatClient, transcript *Transcript, gate *InputGate, logger *zap.Logger) *ChatController {
	return &ChatController{
		client:     client,
		transcript: transcript,
		gate:       gate,
		logger:     logging.OrNop(logger),
	}
}

// Exchange is one message in flight. It owns exactly one placeholder entry.
type Exchange struct {
	Message       string
	UserID        string
	PlaceholderID string

	c *ChatController
}

// Begin records the user's message and its placeholder without touching the
// network. Blank messages are ignored and leave the transcript unchanged.
func (c *ChatController) Begin(text string) (*Exchange, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return nil, apierrors.ErrEmptyMessage
	}
	if !c.gate.Enabled() {
		return nil, apierrors.ErrChatLocked
	}

	user := c.transcript.Append(models.RoleUser, message, false)
	placeholder := c.transcript.Append(models.RoleBot, models.MsgThinking, true)

	return &Exchange{
		Message:       message,
		UserID:        user.ID,
		PlaceholderID: placeholder.ID,
		c:             c,
	}, nil
}

// Await sends the message and resolves the placeholder with the reply or
// with an error text. The placeholder is never left pending on return.
func (e *Exchange) Await(ctx context.Context) (models.Entry, error) {
	resp, err := e.c.client.Chat(ctx, e.Message)

	var text string
	if err != nil {
		e.c.logger.Warn("chat request failed", zap.Error(err))
		text = ChatErrorText(err)
	} else {
		e.c.logger.Debug("chat reply received", zap.Int("chars", len(resp.Response)))
		text = resp.Response
	}

	entry, resolveErr := e.c.transcript.Resolve(e.PlaceholderID, text)
	if resolveErr != nil {
		return entry, resolveErr
	}
	return entry, err
}

// Submit begins an exchange and waits for it
func (c *ChatController) Submit(ctx context.Context, text string) (models.Entry, error) {
	exchange, err := c.Begin(text)
	if err != nil {
		return models.Entry{}, err
	}
	return exchange.Await(ctx)
}

// ChatErrorText renders a chat failure into the placeholder text
func ChatErrorText(err error) string {
	reason := err.Error()
	if apierrors.IsAPIError(err) {
		reason = apierrors.ServerMessage(err)
		if reason == "" {
			reason = models.MsgNetworkNotOK
		}
	}
	return models.ChatErrorPrefix + reason
}
