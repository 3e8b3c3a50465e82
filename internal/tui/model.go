package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/agentchat/internal/api"
	"github.com/diogo/agentchat/internal/conversation"
	"github.com/diogo/agentchat/internal/models"
	"github.com/diogo/agentchat/internal/render"
)

// replyMsg carries the outcome of the in-flight chat request
type replyMsg struct {
	resp *models.ChatResponse
	err  error
}

// ModelOptions configures a chat Model
type ModelOptions struct {
	// Greeting seeds the transcript; empty uses the default greeting
	Greeting string
	// Endpoint is shown in the header
	Endpoint string
	Markdown render.Options
	Logger   *slog.Logger
}

// Model is the chat view. The transcript, draft and pending flag live in
// the conversation; the model only mirrors them on screen.
type Model struct {
	ctx    context.Context
	client api.ChatClient
	conv   *conversation.Conversation
	opts   ModelOptions
	logger *slog.Logger

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	ready bool

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a chat model that posts through client
func NewChatModel(ctx context.Context, client api.ChatClient, opts ModelOptions) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Markdown == (render.Options{}) {
		opts.Markdown = render.DefaultOptions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorMuted)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = typingStyle

	return Model{
		ctx:      ctx,
		client:   client,
		conv:     conversation.New(opts.Greeting),
		opts:     opts,
		logger:   logger,
		textarea: ta,
		spinner:  s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// The in-flight request cannot be cancelled; wait for it
			if m.conv.Pending() {
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "up", "down", "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		// Input is disabled while a reply is pending
		if m.conv.Pending() {
			return m, nil
		}
		m.textarea, cmd = m.textarea.Update(msg)
		m.conv.SetDraft(m.textarea.Value())
		return m, cmd

	case replyMsg:
		reply, ok := m.conv.Complete(msg.resp, msg.err)
		if !ok {
			return m, nil
		}
		switch {
		case msg.err != nil:
			m.logger.Warn("chat request failed", "error", msg.err)
		case msg.resp != nil:
			m.logger.Debug("agent replied", "status_code", msg.resp.StatusCode, "length", len(reply.Text))
		}
		cmds = append(cmds, m.textarea.Focus())
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.conv.Pending() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.updateViewport()
		}

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// submit handles Enter: at most one request in flight
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.conv.Pending() {
		return m, nil
	}

	m.conv.SetDraft(m.textarea.Value())
	message, ok := m.conv.Submit()
	if !ok {
		return m, nil
	}

	m.logger.Debug("sending message", "length", len(message))
	m.textarea.Reset()
	m.textarea.Blur()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.sendMessage(message), m.spinner.Tick)
}

// sendMessage creates a command that posts message and reports the outcome
func (m Model) sendMessage(message string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		resp, err := client.Chat(ctx, message)
		return replyMsg{resp: resp, err: err}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 4
	inputHeight := 6
	statusHeight := 1
	padding := 2

	vpHeight := height - headerHeight - inputHeight - statusHeight - padding
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := width - 4
	if contentWidth < render.MinWidth {
		contentWidth = render.MinWidth
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
	m.updateViewport()
	m.viewport.GotoBottom()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return typingStyle.Render("  Initializing...")
	}

	contentWidth := m.viewport.Width

	title := titleStyle.Render("Chat")
	if m.opts.Endpoint != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Center,
			title,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.opts.Endpoint),
		)
	}
	header := headerStyle.Width(contentWidth).Render(title)

	messages := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View())

	var input string
	if m.conv.Pending() {
		input = hintStyle.Render("Waiting for the agent...")
	} else {
		input = lipgloss.JoinVertical(lipgloss.Left,
			inputLabelStyle.Render(models.RoleUser.Label()),
			m.textarea.View(),
		)
	}
	inputPanel := inputPanelStyle.Width(contentWidth).Render(input)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		messages,
		inputPanel,
		m.renderStatusBar(contentWidth),
	)
}

// renderStatusBar renders the bottom bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}
	if m.conv.Pending() || strings.TrimSpace(m.textarea.Value()) == "" {
		shortcuts[0].desc = "Send (disabled)"
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport re-renders the transcript into the viewport
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript())
}

// transcript renders every turn in order, followed by the typing
// indicator while a reply is pending
func (m Model) transcript() string {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < render.MinWidth {
		bubbleWidth = render.MinWidth
	}

	for i, msg := range m.conv.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Role == models.RoleUser {
			content.WriteString(userLabelStyle.Render(msg.Role.Label()))
			content.WriteString("\n")
			content.WriteString(userBubbleStyle.Width(bubbleWidth).Render(msg.Text))
		} else {
			rendered := render.Reply(msg.Text, m.opts.Markdown.WithWidth(bubbleWidth-4))
			content.WriteString(agentLabelStyle.Render(msg.Role.Label()))
			content.WriteString("\n")
			content.WriteString(agentBubbleStyle.Width(bubbleWidth).Render(rendered))
		}
		content.WriteString("\n")
	}

	if m.conv.Pending() {
		content.WriteString("\n")
		content.WriteString(typingStyle.Render(m.spinner.View() + " " + models.TypingIndicator))
		content.WriteString("\n")
	}

	return content.String()
}

// Messages returns the transcript shown by the view
func (m Model) Messages() []models.Message {
	return m.conv.Messages()
}

// Pending reports whether a reply is awaited
func (m Model) Pending() bool {
	return m.conv.Pending()
}

// RunChat starts the chat TUI and blocks until the user quits
func RunChat(ctx context.Context, client api.ChatClient, opts ModelOptions) error {
	m := NewChatModel(ctx, client, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
