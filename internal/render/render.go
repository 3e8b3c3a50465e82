// Package render turns agent replies into styled terminal output.
//
// Replies are Markdown; they are rendered with glamour the way a browser
// client would render them with a Markdown component.
package render

import "strings"

// Options configures the markdown renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style is a glamour style name (see AvailableStyles) or a path to a
	// JSON style file
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// WithWidth returns Options with the specified width. Widths below
// MinWidth are raised to MinWidth.
func (o Options) WithWidth(width int) Options {
	if width < MinWidth {
		width = MinWidth
	}
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// WithEmoji returns Options with emoji support enabled/disabled.
func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

// MinWidth is the narrowest width replies are wrapped to
const MinWidth = 20

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := replyRenderers.acquire(opts)
	if err != nil {
		return "", err
	}
	defer replyRenderers.release(opts, renderer)

	return renderer.Render(content)
}

// MarkdownWithWidth renders with default options at the given width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// Reply renders an agent reply, falling back to the raw text when the
// renderer fails. Surrounding blank lines added by glamour are trimmed.
func Reply(content string, opts Options) string {
	rendered, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}
