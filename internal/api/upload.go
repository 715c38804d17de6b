package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/models"
)

// MaxUploadSize is the largest document the client will send
const MaxUploadSize = 50 * 1024 * 1024 // 50MB

// Upload sends the document at path to the backend
func (c *Client) Upload(ctx context.Context, path string) (*models.UploadResponse, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, apierrors.NewValidationError("file", apierrors.ErrNoFile)
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if fileInfo.Size() > MaxUploadSize {
		return nil, apierrors.NewValidationError("file",
			fmt.Errorf("%w: %d bytes exceeds maximum %d bytes", apierrors.ErrFileTooLarge, fileInfo.Size(), MaxUploadSize))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return c.upload(ctx, file, filepath.Base(path))
}

// UploadReader sends a document read from r under fileName
func (c *Client) UploadReader(ctx context.Context, r io.Reader, fileName string) (*models.UploadResponse, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, apierrors.NewValidationError("file", apierrors.ErrNoFile)
	}

	// One extra byte tells an oversized stream apart from an exact fit
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, apierrors.NewValidationError("file",
			fmt.Errorf("%w: data exceeds maximum %d bytes", apierrors.ErrFileTooLarge, MaxUploadSize))
	}

	return c.upload(ctx, bytes.NewReader(data), fileName)
}

// upload builds the multipart body and posts it
func (c *Client) upload(ctx context.Context, reader io.Reader, fileName string) (*models.UploadResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreatePart(filePartHeader(fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := io.Copy(part, reader); err != nil {
		return nil, fmt.Errorf("failed to write file data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	c.logger.Info("uploading document",
		zap.String("file", fileName),
		zap.Int("bytes", body.Len()))

	resp, err := c.post(ctx, models.EndpointUpload, &body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		return nil, statusError(models.EndpointUpload, resp)
	}

	return models.ParseUploadResponse(resp.body)
}

// filePartHeader describes the "file" form field the way a browser does:
// the original file name and a content type guessed from its extension
func filePartHeader(fileName string) textproto.MIMEHeader {
	mimeType := mime.TypeByExtension(filepath.Ext(fileName))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		models.FieldFile, escapeQuotes(fileName)))
	h.Set("Content-Type", mimeType)
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
