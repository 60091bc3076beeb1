package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/malcolmweb/internal/api"
	"github.com/diogo/malcolmweb/internal/chat"
	"github.com/diogo/malcolmweb/internal/device"
	apierrors "github.com/diogo/malcolmweb/internal/errors"
	"github.com/diogo/malcolmweb/internal/logging"
	"github.com/diogo/malcolmweb/internal/models"
	"github.com/diogo/malcolmweb/internal/render"
)

// Fixed user-facing strings for the upload feedback region.
const (
	feedbackNoFile      = "No file selected."
	feedbackUploadError = "Error uploading file."
)

// Message types for the TUI
type (
	// transcriptMsg signals that the session transcript changed.
	transcriptMsg struct{}
	// channelDownMsg signals that the realtime channel read loop exited.
	channelDownMsg struct{}
	uploadResultMsg struct {
		feedback string
	}
	recommendationsMsg struct {
		recs []string
	}
	optimizeFailedMsg struct {
		err error
	}
)

// SessionInterface defines the chat session operations needed by the TUI.
type SessionInterface interface {
	Send(text string)
	Log() *chat.Log
	Updates() <-chan struct{}
}

// Model represents the TUI state
type Model struct {
	client    api.MalcolmClientInterface
	session   SessionInterface
	collector device.Collector
	done      <-chan struct{}

	// UI components
	viewport viewport.Model
	textarea textarea.Model

	// State
	recommendations    []string
	hasRecommendations bool
	feedback           string
	channelDown        bool
	copyToClipboard    bool

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewChatModel creates a new chat TUI model. done, when non-nil, is the
// realtime channel's Done signal.
func NewChatModel(client api.MalcolmClientInterface, session SessionInterface, collector device.Collector, copyToClipboard bool, done <-chan struct{}) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a command, /upload <file>, or /optimize..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	return Model{
		client:          client,
		session:         session,
		collector:       collector,
		copyToClipboard: copyToClipboard,
		done:            done,
		textarea:        ta,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		listenForUpdates(m.session.Updates()),
	}
	if m.done != nil {
		cmds = append(cmds, watchDone(m.done))
	}
	return tea.Batch(cmds...)
}

// listenForUpdates waits for the next transcript change. Re-armed after each
// delivery; notifications coalesce on the session side.
func listenForUpdates(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-updates
		return transcriptMsg{}
	}
}

func watchDone(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return channelDownMsg{}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+y":
			if last, ok := m.session.Log().Last(models.RoleAssistant); ok {
				if err := clipboard.WriteAll(last.Text); err != nil {
					logging.Warn("clipboard copy failed", "error", err)
				}
			}

		case "enter":
			input := m.textarea.Value()
			// The field is cleared before anything else happens; the send
			// itself is fire-and-forget and the widget is immediately ready
			// for the next input.
			m.textarea.Reset()
			return m, m.dispatch(input)
		}

	case transcriptMsg:
		m.updateViewport()
		m.viewport.GotoBottom()
		if m.copyToClipboard {
			if last, ok := m.session.Log().Last(models.RoleAssistant); ok {
				if err := clipboard.WriteAll(last.Text); err != nil {
					logging.Warn("clipboard copy failed", "error", err)
				}
			}
		}
		cmds = append(cmds, listenForUpdates(m.session.Updates()))

	case channelDownMsg:
		m.channelDown = true

	case uploadResultMsg:
		m.feedback = msg.feedback

	case recommendationsMsg:
		// Replace the panel content entirely; prior entries do not linger.
		m.recommendations = msg.recs
		m.hasRecommendations = true
		m.resize()

	case optimizeFailedMsg:
		// The panel is left exactly as it was; the failure is diagnostic only.
		logging.Warn("optimize failed", "error", msg.err)
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// dispatch routes one submitted input line. It returns a command for inputs
// that run in the background, or nil when the input was handled in place.
func (m *Model) dispatch(input string) tea.Cmd {
	trimmed := strings.TrimSpace(input)

	switch {
	case trimmed == "exit" || trimmed == "quit" || trimmed == "/exit" || trimmed == "/quit":
		return tea.Quit

	case trimmed == "/optimize":
		return m.runOptimize()

	case strings.HasPrefix(trimmed, "/upload"):
		path := strings.TrimSpace(strings.TrimPrefix(trimmed, "/upload"))
		if path == "" {
			// Handled before the network layer is touched.
			m.feedback = feedbackNoFile
			return nil
		}
		m.feedback = "Uploading " + filepath.Base(path) + "..."
		return m.uploadFile(path)
	}

	// Everything else is chat. The text is sent as submitted; empty input
	// included, mirroring the service's contract.
	m.session.Send(input)
	return nil
}

// uploadFile performs the one-shot upload and reduces every failure to a
// fixed feedback string.
func (m Model) uploadFile(path string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.UploadFile(path)
		if err != nil {
			if errors.Is(err, apierrors.ErrNoFile) {
				return uploadResultMsg{feedback: feedbackNoFile}
			}
			logging.Warn("upload failed", "path", path, "error", err)
			return uploadResultMsg{feedback: feedbackUploadError}
		}
		return uploadResultMsg{feedback: result.Feedback}
	}
}

// runOptimize gathers a fresh device profile and requests recommendations.
func (m Model) runOptimize() tea.Cmd {
	client := m.client
	collector := m.collector
	return func() tea.Msg {
		recs, err := client.Optimize(collector.Collect())
		if err != nil {
			return optimizeFailedMsg{err: err}
		}
		return recommendationsMsg{recs: recs}
	}
}

// resize recomputes component dimensions from the window size.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}

	headerHeight := 3
	inputHeight := 5
	statusHeight := 2
	recsHeight := 0
	if m.hasRecommendations {
		recsHeight = len(m.recommendations) + 3
	}

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - recsHeight
	if vpHeight < 5 {
		vpHeight = 5
	}

	contentWidth := m.width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.textarea.SetWidth(contentWidth - 4)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
		m.textarea.SetWidth(contentWidth - 4)
	}
	m.updateViewport()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return hintStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	headerParts := []string{
		titleStyle.Render("Malcolm Chat"),
		hintStyle.Render("  -  "),
		subtitleStyle.Render(m.client.BaseURL()),
	}
	header := headerStyle.Width(contentWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, headerParts...))
	sections = append(sections, header)

	if m.hasRecommendations {
		sections = append(sections, m.renderRecommendations(contentWidth))
	}

	var messagesContent string
	if m.session.Log().Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	inputContent := lipgloss.JoinVertical(
		lipgloss.Left,
		inputLabelStyle.Render("You"),
		m.textarea.View(),
	)
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	if m.feedback != "" {
		sections = append(sections, feedbackStyle.Render("  "+m.feedback))
	}
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderRecommendations draws the optimizer panel. Each call replaces the
// panel wholesale with the current list, in order.
func (m Model) renderRecommendations(width int) string {
	lines := []string{recsTitleStyle.Render("Recommendations")}
	if len(m.recommendations) == 0 {
		lines = append(lines, hintStyle.Render("  (none)"))
	}
	for _, rec := range m.recommendations {
		lines = append(lines, recsItemStyle.Render("  - "+rec))
	}
	return recsPanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderWelcome renders the empty-transcript placeholder.
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	title := welcomeTitleStyle.Width(width).Render("Welcome to Malcolm")
	subtitle := welcomeStyle.Width(width).Render(
		"Type a command below. /upload <file> uploads, /optimize tunes.")

	content := lipgloss.JoinVertical(lipgloss.Center, "", title, "", subtitle, "")

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderStatusBar renders the bottom status bar with shortcuts.
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+Y", "Copy reply"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	bar := strings.Join(items, "  |  ")

	if m.channelDown {
		bar = errorStyle.Render("channel disconnected") + "   " + bar
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages.
// Message text goes through structured rendering only; no raw markup is
// ever concatenated into the output.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.session.Log().Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Role == models.RoleUser {
			label := userLabelStyle.Render("You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Text)
			content.WriteString(label + "\n" + bubble)
			continue
		}

		label := assistantLabelStyle.Render("Malcolm")
		rendered, err := render.MarkdownWithWidth(msg.Text, bubbleWidth-4)
		if err != nil {
			rendered = msg.Text
		}
		content.WriteString(label + "\n" + strings.TrimRight(rendered, "\n") + "\n")
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the interactive chat program and blocks until it exits.
func RunChat(client api.MalcolmClientInterface, session SessionInterface, collector device.Collector, copyToClipboard bool, done <-chan struct{}) error {
	m := NewChatModel(client, session, collector, copyToClipboard, done)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI failed: %w", err)
	}
	return nil
}
