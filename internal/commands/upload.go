package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/docchat/internal/controller"
	"github.com/diogo/docchat/internal/models"
	"github.com/diogo/docchat/internal/watch"
)

// NewUploadCmd creates the upload command
func NewUploadCmd(deps *Dependencies) *cobra.Command {
	var (
		watchFlag    bool
		debounceFlag time.Duration
	)

	cmd := &cobra.Command{
		Use:   "upload PATH",
		Short: "Upload a document for processing",
		Long: `Upload a document to the backend and wait until it has been processed.

With --watch the document is uploaded again every time it is saved, until
interrupted with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchFlag {
				return runUploadWatch(cmd.Context(), deps, args[0], debounceFlag)
			}
			return runUpload(cmd.Context(), deps, args[0])
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-upload whenever the file changes")
	cmd.Flags().DurationVar(&debounceFlag, "debounce", watch.DefaultDebounce, "Quiet period after a change before re-uploading")
	return cmd
}

func runUpload(ctx context.Context, deps *Dependencies, path string) error {
	client, err := deps.client()
	if err != nil {
		return err
	}
	defer client.Close()

	widget := controller.NewWidget(client, deps.Logger)

	stop := deps.startSpinner(models.MsgUploading)
	err = widget.Upload.Submit(ctx, path)
	stop()

	printStatus(deps.Stdout, widget.Status.Get())
	if err != nil {
		if deps.Config.Verbose {
			fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Upload failed"))
		}
		return errReported
	}
	return nil
}

func runUploadWatch(ctx context.Context, deps *Dependencies, path string, debounce time.Duration) error {
	client, err := deps.client()
	if err != nil {
		return err
	}
	defer client.Close()

	widget := controller.NewWidget(client, deps.Logger)
	// Every status transition is printed as it happens
	widget.Status.SetOnChange(func() {
		printStatus(deps.Stdout, widget.Status.Get())
	})

	upload := func(ctx context.Context, p string) {
		if err := widget.Upload.Submit(ctx, p); err != nil {
			deps.Logger.Debug("upload failed", zap.Error(err))
		}
	}

	w, err := watch.New(path, upload, watch.WithDebounce(debounce), watch.WithLogger(deps.Logger))
	if err != nil {
		return err
	}
	defer w.Stop()

	upload(ctx, w.Path())

	if err := w.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintln(deps.Stderr, dimStyle.Render(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", w.Path())))

	<-ctx.Done()
	return nil
}
