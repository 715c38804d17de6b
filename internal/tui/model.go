package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/docchat/internal/controller"
	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/logging"
	"github.com/diogo/docchat/internal/models"
	"github.com/diogo/docchat/internal/render"
)

// Message types for the TUI
type (
	uploadDoneMsg struct {
		err error
	}
	replyMsg struct {
		entry models.Entry
		err   error
	}
	// widgetChangedMsg reports a change to the transcript, status or gate
	// made outside Update
	widgetChangedMsg struct{}
)

// minViewportHeight keeps the transcript visible on very short terminals
const minViewportHeight = 3

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

// Options configures the chat widget
type Options struct {
	ServerURL string
	Render    render.Options
	// InitialFile is uploaded as soon as the program starts
	InitialFile string
	// CopyReplies copies every successful reply to the clipboard
	CopyReplies bool
	Logger      *zap.Logger
}

// Model is the bubbletea model of the chat widget
type Model struct {
	ctx    context.Context
	widget *controller.Widget
	opts   Options
	logger *zap.Logger

	// UI components
	viewport  viewport.Model
	textarea  textarea.Model
	pathInput textinput.Model
	spinner   spinner.Model

	// State
	ready         bool
	promptingPath bool
	uploading     bool
	ticking       bool
	notice        string

	// Dimensions
	width  int
	height int
}

// NewModel creates the chat widget over w. ctx bounds every request.
func NewModel(ctx context.Context, w *controller.Widget, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a question about your document..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(theme.Text)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(theme.TextDim)
	ta.BlurredStyle = ta.FocusedStyle

	ti := textinput.New()
	ti.Placeholder = "path/to/document.pdf"
	ti.Prompt = "> "
	ti.CharLimit = 1024

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	if opts.Render.Style == "" {
		opts.Render = render.DefaultOptions()
	}

	m := Model{
		ctx:       ctx,
		widget:    w,
		opts:      opts,
		logger:    logging.OrNop(opts.Logger),
		textarea:  ta,
		pathInput: ti,
		spinner:   s,
	}

	// Nothing can be typed until a document is processed, so without an
	// initial file the path prompt is the first thing the user sees.
	if opts.InitialFile != "" {
		m.uploading = true
		m.ticking = true
	} else if !w.Input.Enabled() {
		m.openPathPrompt()
	}
	m.syncInputFocus()
	return m
}

// Init starts the initial upload when a file was given on the command line
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.opts.InitialFile != "" {
		cmds = append(cmds, m.uploadCmd(m.opts.InitialFile), m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model. The layout is recomputed
// afterwards because the status line and notice change height.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handle(msg)
	updated := next.(Model)
	updated.relayout()
	return updated, cmd
}

func (m Model) handle(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.updateViewport()

	case tea.KeyMsg:
		if m.promptingPath {
			return m.updatePathPrompt(msg)
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+o":
			m.openPathPrompt()
			return m, textinput.Blink

		case "ctrl+y":
			m.copyLastReply()
			return m, nil

		case "enter":
			return m.submitInput()
		}

		if m.widget.Input.Enabled() {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}

	case uploadDoneMsg:
		m.uploading = false
		if msg.err != nil {
			m.logger.Debug("upload finished with error", zap.Error(msg.err))
		}
		m.syncInputFocus()
		m.updateViewport()
		m.viewport.GotoBottom()

	case widgetChangedMsg:
		m.updateViewport()

	case replyMsg:
		if msg.err == nil && m.opts.CopyReplies {
			if err := clipboardWrite(msg.entry.Text); err != nil {
				m.notice = "Clipboard unavailable: " + err.Error()
			}
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if !m.busy() {
			m.ticking = false
			break
		}
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewport()
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submitInput handles enter in the chat textarea
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())

	switch {
	case input == "/quit" || input == "/exit":
		return m, tea.Quit

	case input == "/upload":
		m.textarea.Reset()
		m.openPathPrompt()
		return m, textinput.Blink

	case strings.HasPrefix(input, "/upload "):
		m.textarea.Reset()
		return m.startUpload(strings.TrimSpace(strings.TrimPrefix(input, "/upload ")))
	}

	exchange, err := m.widget.Chat.Begin(input)
	if err != nil {
		// Blank or locked input: nothing to send
		if !errors.Is(err, apierrors.ErrEmptyMessage) {
			m.logger.Debug("message not sent", zap.Error(err))
		}
		return m, nil
	}

	m.textarea.Reset()
	m.notice = ""
	m.updateViewport()
	m.viewport.GotoBottom()

	tick := m.startTicking()
	return m, tea.Batch(m.awaitCmd(exchange), tick)
}

// updatePathPrompt handles keys while the document path prompt is open
func (m Model) updatePathPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.closePathPrompt()
		return m, nil

	case "enter":
		path := m.pathInput.Value()
		m.closePathPrompt()
		return m.startUpload(path)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) startUpload(path string) (tea.Model, tea.Cmd) {
	m.uploading = true
	m.notice = ""
	m.syncInputFocus()
	tick := m.startTicking()
	return m, tea.Batch(m.uploadCmd(path), tick)
}

func (m *Model) openPathPrompt() {
	m.promptingPath = true
	m.pathInput.Reset()
	m.pathInput.Focus()
	m.textarea.Blur()
}

func (m *Model) closePathPrompt() {
	m.promptingPath = false
	m.pathInput.Blur()
	m.syncInputFocus()
}

// syncInputFocus mirrors the input gate onto the textarea
func (m *Model) syncInputFocus() {
	if m.promptingPath {
		return
	}
	if m.widget.Input.Enabled() {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}
}

func (m *Model) copyLastReply() {
	entry, ok := m.widget.Transcript.LastBotReply()
	if !ok {
		m.notice = "Nothing to copy yet"
		return
	}
	if err := clipboardWrite(entry.Text); err != nil {
		m.notice = "Clipboard unavailable: " + err.Error()
		return
	}
	m.notice = "Copied last reply to clipboard"
}

// busy reports whether anything on screen is animated
func (m Model) busy() bool {
	return m.uploading || m.widget.Transcript.PendingCount() > 0
}

// startTicking starts the spinner unless a tick chain is already running
func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.spinner.Tick
}

func (m Model) uploadCmd(path string) tea.Cmd {
	ctx, upload := m.ctx, m.widget.Upload
	return func() tea.Msg {
		return uploadDoneMsg{err: upload.Submit(ctx, path)}
	}
}

func (m Model) awaitCmd(exchange *controller.Exchange) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		entry, err := exchange.Await(ctx)
		return replyMsg{entry: entry, err: err}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := width - 4
	m.textarea.SetWidth(contentWidth - 2)
	m.pathInput.Width = contentWidth - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, m.viewportHeight())
		m.ready = true
		return
	}
	m.viewport.Width = contentWidth
	m.viewport.Height = m.viewportHeight()
}

// relayout gives the viewport whatever height the other sections leave
func (m *Model) relayout() {
	if !m.ready {
		return
	}
	height := m.viewportHeight()
	if height == m.viewport.Height {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.Height = height
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// viewportHeight measures every section View renders around the transcript
func (m Model) viewportHeight() int {
	contentWidth := m.width - 4
	used := lipgloss.Height(headerStyle.Width(contentWidth).Render(m.renderHeader())) +
		lipgloss.Height(m.renderStatusLine(contentWidth)) +
		messagesAreaStyle.GetVerticalFrameSize() +
		lipgloss.Height(inputPanelStyle.Width(contentWidth).Render(m.renderInput())) +
		lipgloss.Height(m.renderShortcuts(contentWidth))
	if m.notice != "" {
		used += lipgloss.Height(noticeStyle.Render(m.notice))
	}

	height := m.height - used
	if height < minViewportHeight {
		height = minViewportHeight
	}
	return height
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	var sections []string

	sections = append(sections, headerStyle.Width(contentWidth).Render(m.renderHeader()))

	sections = append(sections, m.renderStatusLine(contentWidth))

	messages := m.viewport.View()
	if m.widget.Transcript.Len() == 0 {
		messages = m.renderWelcome()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messages))

	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(m.renderInput()))

	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	sections = append(sections, m.renderShortcuts(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("docchat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.opts.ServerURL),
	)
}

func (m Model) renderStatusLine(width int) string {
	status := m.widget.Status.Get()
	text := status.Message
	switch {
	case status.State == models.StatusProcessing:
		text = m.spinner.View() + " " + text
	case status.State == models.StatusIdle && text == "":
		text = "No document loaded"
	}
	return statusLineStyle(status.State).Width(width).Render(text)
}

func (m Model) renderInput() string {
	if m.promptingPath {
		return lipgloss.JoinVertical(lipgloss.Left,
			inputLabelStyle.Render("Document to upload"),
			m.pathInput.View(),
		)
	}
	if !m.widget.Input.Enabled() {
		hint := "Chat is disabled until a document is processed. Press ctrl+o to upload one."
		if m.uploading {
			hint = models.MsgUploading
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			inputLabelStyle.Render("You"),
			lockedInputStyle.Render(hint),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		inputLabelStyle.Render("You"),
		m.textarea.View(),
	)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 2
	body := "Upload a PDF or CSV to get started."
	if m.widget.Input.Enabled() {
		body = "Ask anything about your document."
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeTitleStyle.Width(width).Render("Chat with your document"),
		"",
		welcomeStyle.Width(width).Render(body),
	)
	top := (m.viewport.Height - lipgloss.Height(content)) / 2
	if top < 0 {
		top = 0
	}
	return strings.Repeat("\n", top) + content
}

func (m Model) renderShortcuts(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+O", "Upload"},
		{"Ctrl+Y", "Copy reply"},
		{"Esc", "Quit"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport refreshes the transcript shown in the viewport
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	for i, entry := range m.widget.Transcript.Entries() {
		if i > 0 {
			content.WriteString("\n")
		}

		if entry.IsUser() {
			content.WriteString(userLabelStyle.Render("You") + "\n")
			content.WriteString(userBubbleStyle.Width(bubbleWidth).Render(entry.Text))
		} else {
			content.WriteString(botLabelStyle.Render("Assistant") + "\n")
			var body string
			if entry.Pending {
				body = m.spinner.View() + " " + pendingStyle.Render(entry.Text)
			} else {
				body = render.Reply(entry.Text, m.opts.Render.WithWidth(bubbleWidth-4))
			}
			content.WriteString(botBubbleStyle.Width(bubbleWidth).Render(body))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// forwardChanges returns a widget hook that delivers widgetChangedMsg
// through send. Begin mutates the transcript from inside Update, where a
// blocking send would deadlock the program, so each send gets its own
// goroutine.
func forwardChanges(send func(tea.Msg)) func() {
	return func() {
		go send(widgetChangedMsg{})
	}
}

// RunChat runs the chat widget until the user quits
func RunChat(ctx context.Context, w *controller.Widget, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		NewModel(ctx, w, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	w.OnChange(forwardChanges(p.Send))
	defer w.OnChange(nil)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
