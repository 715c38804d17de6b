package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/diogo/docchat/internal/controller"
	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/models"
	"github.com/diogo/docchat/internal/render"
)

// maxConcurrentQuestions bounds how many questions are in flight at once
const maxConcurrentQuestions = 4

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

// NewAskCmd creates the one-shot question command
func NewAskCmd(deps *Dependencies) *cobra.Command {
	var (
		fileFlag string
		rawFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask one or more questions and print the answers",
		Long: `Ask questions about the document the backend currently holds.

Every argument is a separate question. Questions are sent concurrently and
the answers are printed in the order the questions were given. Use --file
to upload a document first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd.Context(), deps, args, fileFlag, rawFlag)
		},
	}

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Upload this document before asking")
	cmd.Flags().BoolVarP(&rawFlag, "raw", "r", false, "Print answers without formatting")
	return cmd
}

// answer pairs a question with its resolved transcript entry
type answer struct {
	question string
	entry    models.Entry
	err      error
}

func runAsk(ctx context.Context, deps *Dependencies, questions []string, file string, raw bool) error {
	client, err := deps.client()
	if err != nil {
		return err
	}
	defer client.Close()

	widget := controller.NewWidget(client, deps.Logger)

	if file != "" {
		stop := deps.startSpinner(models.MsgUploading)
		err := widget.Upload.Submit(ctx, file)
		stop()
		if err != nil {
			printStatus(deps.Stderr, widget.Status.Get())
			return errReported
		}
	} else {
		// The backend may already hold a document from an earlier upload
		widget.Input.Enable()
	}

	// Exchanges begin in argument order so the transcript reads in order
	var exchanges []*controller.Exchange
	for _, q := range questions {
		ex, err := widget.Chat.Begin(q)
		if errors.Is(err, apierrors.ErrEmptyMessage) {
			continue
		}
		if err != nil {
			return err
		}
		exchanges = append(exchanges, ex)
	}
	if len(exchanges) == 0 {
		return apierrors.NewValidationError("question", apierrors.ErrEmptyMessage)
	}

	answers := make([]answer, len(exchanges))
	stop := deps.startSpinner(fmt.Sprintf("Asking %d question(s)", len(exchanges)))

	var g errgroup.Group
	g.SetLimit(maxConcurrentQuestions)
	for i, ex := range exchanges {
		g.Go(func() error {
			entry, err := ex.Await(ctx)
			answers[i] = answer{question: ex.Message, entry: entry, err: err}
			return nil
		})
	}
	_ = g.Wait()
	stop()

	failed := 0
	for _, a := range answers {
		if a.err != nil {
			failed++
		}
	}
	deps.Logger.Debug("questions answered", zap.Int("count", len(answers)), zap.Int("failed", failed))

	if raw || !deps.IsTTY() {
		printRawAnswers(deps, answers)
	} else {
		printAnswers(deps, answers)
	}

	if failed > 0 {
		if deps.Config.Verbose {
			for _, a := range answers {
				if a.err != nil {
					fmt.Fprintln(deps.Stderr, formatErrorMessage(a.err, "Chat failed"))
				}
			}
		}
		return errReported
	}
	return nil
}

func printRawAnswers(deps *Dependencies, answers []answer) {
	for i, a := range answers {
		if len(answers) > 1 {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintf(deps.Stdout, "Q: %s\n", a.question)
		}
		fmt.Fprintln(deps.Stdout, a.entry.Text)
	}
}

func printAnswers(deps *Dependencies, answers []answer) {
	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	opts := render.OptionsFromConfig(deps.Config.Markdown).WithWidth(bubbleWidth - 4)

	for _, a := range answers {
		fmt.Fprintln(deps.Stdout, questionLabelStyle.Render("? "+a.question))
		fmt.Fprintln(deps.Stdout, answerLabelStyle.Render("Answer"))

		body := a.entry.Text
		if a.err == nil {
			body = render.Reply(body, opts)
		} else {
			body = failureStyle.Render(body)
		}
		fmt.Fprintln(deps.Stdout, answerBubbleStyle.Width(bubbleWidth).Render(body))
	}

	if deps.Config.CopyToClipboard && len(answers) == 1 && answers[0].err == nil {
		if err := clipboardWrite(answers[0].entry.Text); err != nil {
			fmt.Fprintln(deps.Stderr, failureStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else {
			fmt.Fprintln(deps.Stderr, successStyle.Render("✓ Copied to clipboard"))
		}
	}
}
