// Package models contains data types and constants for the docchat client.
package models

// Endpoint paths on the document chat backend
const (
	EndpointUpload = "/upload"
	EndpointChat   = "/chat"
)

// Wire field names
const (
	FieldFile     = "file"
	FieldMessage  = "message"
	FieldSuccess  = "success"
	FieldError    = "error"
	FieldResponse = "response"
)

// User-visible texts shown by the upload and chat controllers
const (
	MsgSelectFile      = "Please select a file to upload."
	MsgUploading       = "Uploading and processing..."
	MsgDocumentReady   = "Your document has been processed. You can now ask questions."
	MsgUnknownError    = "An unknown error occurred."
	MsgThinking        = "Thinking..."
	MsgNetworkNotOK    = "Network response was not ok."
	ChatErrorPrefix    = "Sorry, an error occurred: "
	UploadErrorPrefix  = "Error: "
	ProcessFailureHint = "failed to process the file"
)

// MsgProcessFailure replaces the upload error text when the backend reports
// that it could not process the file.
const MsgProcessFailure = "Error: Failed to process the file.\n\n" +
	"This is likely a server-side issue. Common causes include:\n" +
	"- An unsupported or corrupted file.\n" +
	"- Missing backend dependencies (e.g., PyPDF).\n" +
	"- Problems downloading the embedding model.\n\n" +
	"Please check the backend server logs for the specific error."

// DefaultHeaders returns the headers sent with every backend request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": "docchat/0.1",
	}
}
