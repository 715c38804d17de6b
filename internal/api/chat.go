package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/diogo/docchat/internal/models"
)

// chatRequest is the JSON body of a chat message
type chatRequest struct {
	Message string `json:"message"`
}

// Chat sends a message and returns the backend's reply
func (c *Client) Chat(ctx context.Context, message string) (*models.ChatResponse, error) {
	payload, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}

	resp, err := c.post(ctx, models.EndpointChat, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		return nil, statusError(models.EndpointChat, resp)
	}

	return models.ParseChatResponse(resp.body)
}
