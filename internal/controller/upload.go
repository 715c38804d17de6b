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

// UploadController sends the selected document and reflects the outcome in
// the status line, the input gate and the transcript
type UploadController struct {
	client     api.DocChatClient
	transcript *Transcript
	status     *StatusBoard
	gate       *InputGate
	logger     *zap.Logger
}

// NewUploadController creates an UploadController over shared widget state
func NewUploadController(client api.DocChatClient, transcript *Transcript, status *StatusBoard, gate *InputGate, logger *zap.Logger) *UploadController {
	return &UploadController{
		client:     client,
		transcript: transcript,
		status:     status,
		gate:       gate,
		logger:     logging.OrNop(logger),
	}
}

// Submit uploads the document at path. It makes at most one request.
// The returned error mirrors what the status line shows.
func (u *UploadController) Submit(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		u.status.Set(models.StatusError, models.MsgSelectFile)
		return apierrors.NewValidationError("file", apierrors.ErrNoFile)
	}

	u.status.Set(models.StatusProcessing, models.MsgUploading)
	u.gate.Disable()

	resp, err := u.client.Upload(ctx, path)
	if err != nil {
		u.logger.Warn("upload failed", zap.String("file", path), zap.Error(err))
		u.status.Set(models.StatusError, UploadErrorText(err))
		return err
	}

	u.logger.Info("upload processed", zap.String("file", path))
	u.status.Set(models.StatusSuccess, resp.Success)
	u.gate.Enable()
	u.transcript.Append(models.RoleBot, models.MsgDocumentReady, false)
	return nil
}

// UploadErrorText renders an upload failure for the status line.
// A backend report of a file it could not process gets the expanded
// diagnostic instead of the raw reason.
func UploadErrorText(err error) string {
	reason := uploadFailureReason(err)
	if strings.Contains(strings.ToLower(reason), models.ProcessFailureHint) {
		return models.MsgProcessFailure
	}
	return models.UploadErrorPrefix + reason
}

func uploadFailureReason(err error) string {
	if apierrors.IsAPIError(err) {
		if msg := apierrors.ServerMessage(err); msg != "" {
			return msg
		}
		return models.MsgUnknownError
	}
	return err.Error()
}
