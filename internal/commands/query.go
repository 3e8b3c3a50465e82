package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/agentchat/internal/conversation"
	apierrors "github.com/diogo/agentchat/internal/errors"
	"github.com/diogo/agentchat/internal/models"
	"github.com/diogo/agentchat/internal/render"
)

// queryOptions holds the flags of the one-shot query
type queryOptions struct {
	file string
	raw  bool
	copy bool
}

// spinnerFrames are braille animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner displays an animated loading indicator on a writer
type spinner struct {
	out      io.Writer
	message  string
	stop     chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	frame    int
	stopped  bool
	interval time.Duration
}

func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:      out,
		message:  message,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		interval: 80 * time.Millisecond,
	}
}

func (s *spinner) start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

func (s *spinner) render() {
	theme := render.GetTUITheme()
	frameStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	textStyle := lipgloss.NewStyle().Foreground(theme.Muted).Italic(true)

	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	fmt.Fprintf(s.out, "\r%s %s\033[K", frameStyle.Render(frame), textStyle.Render(s.message))
}

// stopOnce halts the animation and clears the line. It is safe to call
// more than once.
func (s *spinner) stopOnce() bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.stop)
	<-s.done
	fmt.Fprint(s.out, "\r\033[K")
	return true
}

func (s *spinner) stopWithSuccess(message string) {
	if !s.stopOnce() {
		return
	}
	theme := render.GetTUITheme()
	style := lipgloss.NewStyle().Foreground(theme.Agent)
	fmt.Fprintln(s.out, style.Render("✓ "+message))
}

func (s *spinner) stopWithError() {
	if !s.stopOnce() {
		return
	}
	theme := render.GetTUITheme()
	style := lipgloss.NewStyle().Foreground(theme.Error)
	fmt.Fprintln(s.out, style.Render("✗ "+s.message))
}

// readInput resolves the one-shot message from --file, the positional
// argument or piped stdin, in that order. ok is false when none is given.
func readInput(deps *Dependencies, file string, args []string) (message string, ok bool, err error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	case len(args) > 0:
		return args[0], true, nil
	case deps.StdinIsPipe != nil && deps.StdinIsPipe():
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}
	return "", false, nil
}

// runQuery sends one message and prints the reply. The reply is resolved
// exactly as the chat view resolves it, so a transport failure still prints
// the network error text before the error is returned.
func (a *app) runQuery(ctx context.Context, message string, opts queryOptions) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return apierrors.ErrEmptyMessage
	}

	client, err := a.deps.NewClient(a.cfg.Endpoint, a.logger)
	if err != nil {
		return err
	}
	defer client.Close()

	raw := opts.raw || !a.deps.IsTTY()

	conv := conversation.New(a.cfg.Greeting)
	conv.SetDraft(message)
	text, _ := conv.Submit()

	var spin *spinner
	if !raw {
		spin = newSpinner(a.deps.Stderr, models.TypingIndicator)
		spin.start()
	}

	start := time.Now()
	resp, chatErr := client.Chat(ctx, text)
	reply, _ := conv.Complete(resp, chatErr)

	if chatErr != nil {
		a.logger.Warn("query_failed", "endpoint", a.cfg.Endpoint, "error", chatErr)
		if spin != nil {
			spin.stopWithError()
		}
	} else {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		a.logger.Info("query_reply",
			"endpoint", a.cfg.Endpoint,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds())
		if spin != nil {
			spin.stopWithSuccess("Done")
		}
	}

	if raw {
		fmt.Fprintln(a.deps.Stdout, reply.Text)
	} else {
		a.printReply(reply)
	}

	if opts.copy || a.cfg.CopyToClipboard {
		if err := a.deps.Clipboard(reply.Text); err != nil {
			fmt.Fprintf(a.deps.Stderr, "Warning: failed to copy to clipboard: %v\n", err)
		} else if !raw {
			fmt.Fprintln(a.deps.Stderr, "Copied to clipboard")
		}
	}

	if chatErr != nil {
		return fmt.Errorf("chat request failed: %w", chatErr)
	}
	return nil
}

// printReply draws the agent label and the reply as Markdown in a bubble
func (a *app) printReply(reply models.Message) {
	theme := render.GetTUITheme()

	width := a.deps.TerminalWidth()
	contentWidth := width - 6
	if contentWidth < render.MinWidth {
		contentWidth = render.MinWidth
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(theme.Agent).
		Bold(true)
	bubbleStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(contentWidth + 2)

	body := render.Reply(reply.Text, render.OptionsFromConfig(a.cfg.Markdown).WithWidth(contentWidth))

	fmt.Fprintln(a.deps.Stdout, labelStyle.Render(reply.Role.Label()))
	fmt.Fprintln(a.deps.Stdout, bubbleStyle.Render(body))
}
