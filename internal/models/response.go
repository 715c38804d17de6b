package models

import (
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/docchat/internal/errors"
)

// UploadResponse is the backend's reply to an upload
type UploadResponse struct {
	Success string
	Error   string
}

// ChatResponse is the backend's reply to a chat message
type ChatResponse struct {
	Response string
	Error    string
}

// ParseUploadResponse extracts the upload reply fields from a JSON body.
// Missing fields are left empty.
func ParseUploadResponse(body []byte) (*UploadResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("upload response is not valid JSON", EndpointUpload)
	}
	parsed := gjson.ParseBytes(body)
	return &UploadResponse{
		Success: parsed.Get(FieldSuccess).String(),
		Error:   parsed.Get(FieldError).String(),
	}, nil
}

// ParseChatResponse extracts the chat reply fields from a JSON body.
func ParseChatResponse(body []byte) (*ChatResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("chat response is not valid JSON", EndpointChat)
	}
	parsed := gjson.ParseBytes(body)
	return &ChatResponse{
		Response: parsed.Get(FieldResponse).String(),
		Error:    parsed.Get(FieldError).String(),
	}, nil
}

// ErrorField returns the "error" field of a JSON body, or "" if the body is
// not JSON or has no such field.
func ErrorField(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	return gjson.GetBytes(body, FieldError).String()
}
