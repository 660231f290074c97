package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/poseview/internal/session"
)

// labelPanelWidth is the fixed width of the toggle list, borders included.
const labelPanelWidth = 30

// labelState is the word shown next to a toggle.
func labelState(t session.Toggle) string {
	switch {
	case !t.Active:
		return "new"
	case t.Enabled:
		return "on"
	default:
		return "off"
	}
}

// labelList tracks the cursor over the session's toggles.
type labelList struct {
	cursor int
}

func (l *labelList) clamp(n int) {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *labelList) move(delta, n int) {
	l.cursor += delta
	l.clamp(n)
}

// selected returns the toggle under the cursor.
func (l *labelList) selected(toggles []session.Toggle) (session.Toggle, bool) {
	if len(toggles) == 0 {
		return session.Toggle{}, false
	}
	l.clamp(len(toggles))
	return toggles[l.cursor], true
}

// flip toggles the label under the cursor and reports the new visibility.
func (l *labelList) flip(sess *session.Session) (string, bool) {
	t, ok := l.selected(sess.Toggles())
	if !ok {
		return "", false
	}
	visible := !(t.Active && t.Enabled)
	sess.SetLabelVisible(t.Label, visible)
	return t.Label, visible
}

// enableAll shows every label that is not already shown.
func enableAll(sess *session.Session) int {
	n := 0
	for _, t := range sess.Toggles() {
		if t.Active && t.Enabled {
			continue
		}
		if sess.SetLabelVisible(t.Label, true) {
			n++
		}
	}
	return n
}

// render draws the toggle list into a panel of the given height.
func (l *labelList) render(sess *session.Session, styles Styles, height int, focused bool) string {
	toggles := sess.Toggles()
	l.clamp(len(toggles))

	inner := labelPanelWidth - 2
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Labels"))
	b.WriteString(styles.FaintText.Render(fmt.Sprintf(" %d", len(toggles))))
	b.WriteString("\n")

	if len(toggles) == 0 {
		b.WriteString(styles.MutedText.Render("waiting for samples"))
	}
	for i, t := range toggles {
		if i > 0 {
			b.WriteString("\n")
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color.Hex())).Render("■")
		state := labelState(t)
		stateStyle := styles.MutedText
		switch state {
		case "on":
			stateStyle = styles.SuccessText
		case "new":
			stateStyle = styles.WarningText
		}
		count := fmt.Sprintf("%d", sess.SampleCount(t.Label))
		name := truncate(t.Label, inner-len(count)-8)
		row := fmt.Sprintf(" %s %s %s", swatch, stateStyle.Render(fmt.Sprintf("%-3s", state)), name)
		pad := inner - lipgloss.Width(row) - len(count)
		if pad < 1 {
			pad = 1
		}
		row += strings.Repeat(" ", pad) + styles.FaintText.Render(count)
		if i == l.cursor && focused {
			row = styles.Selected.Width(inner).Render(row)
		}
		b.WriteString(row)
	}

	panel := styles.Panel
	if focused {
		panel = styles.PanelFocus
	}
	return panel.Width(inner).Height(max(height-2, 1)).Render(b.String())
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
