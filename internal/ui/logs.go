package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/poseview/internal/logtail"
)

// Log pane limits.
const (
	logTailLines  = 500
	logPaneHeight = 10
)

type logLinesMsg []string

type logErrorMsg struct{ err error }

func readLogCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, logTailLines)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logLinesMsg(lines)
	}
}

// logPane shows the tail of the log file.
type logPane struct {
	open     bool
	lines    []string
	err      error
	viewport viewport.Model
}

func (p *logPane) resize(width int) {
	p.viewport.Width = max(width-2, 1)
	p.viewport.Height = logPaneHeight - 3 // border and title
}

func (p *logPane) setLines(lines []string, styles Styles) {
	p.lines = lines
	p.err = nil
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(colorizeLogLine(line, styles))
	}
	p.viewport.SetContent(b.String())
	p.viewport.GotoBottom()
}

func (p *logPane) render(styles Styles, width int) string {
	title := styles.AccentText.Bold(true).Render("Log")
	body := p.viewport.View()
	if p.err != nil {
		body = styles.DangerText.Render(p.err.Error())
	} else if len(p.lines) == 0 {
		body = styles.MutedText.Render("log is empty")
	}
	return styles.Panel.Width(max(width-2, 1)).Render(title + "\n" + body)
}

// colorizeLogLine styles a standard log line by its inferred level.
func colorizeLogLine(line string, styles Styles) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	e := logtail.Parse(line)
	var msg lipgloss.Style
	switch e.Level {
	case logtail.LevelError:
		msg = styles.DangerText
	case logtail.LevelWarn:
		msg = styles.WarningText
	case logtail.LevelInfo:
		msg = styles.InfoText
	default:
		msg = styles.Text
	}
	if e.Time == "" {
		return msg.Render(e.Message)
	}
	return styles.FaintText.Render(e.Time) + " " + msg.Render(e.Message)
}
