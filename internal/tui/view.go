// ABOUTME: Rendering of the map editor screen
// ABOUTME: Header with search and delete controls, map canvas, status bar, and notice modal

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harper/mapdraw/internal/editor"
)

const instructions = "right-drag: draw line · shift+right-drag or c: circle · click: select · d: delete · /: search · q: quit"

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body string
	if m.notice != "" {
		box := styleModal.Render(m.notice + "\n\n" + styleMuted.Render("enter: dismiss"))
		body = lipgloss.Place(m.vp.Width, m.vp.Height, lipgloss.Center, lipgloss.Center, box)
	} else {
		c := newCanvas(m.vp.Width, m.vp.Height)
		drawScene(c, m.vp, m.ed)
		body = strings.Join(c.render(), "\n")
	}

	return strings.Join([]string{m.header(), body, m.statusBar()}, "\n")
}

func (m Model) header() string {
	var search string
	if m.search.Busy() {
		search = styleSearchBox.Width(searchWidth).Render(styleMuted.Render("  Searching..."))
	} else {
		search = styleSearchBox.Width(searchWidth).Render(m.input.View())
	}

	del := styleButtonDisabled.Render(deleteLabel)
	if !m.ed.Selection().IsEmpty() {
		del = styleButton.Render(deleteLabel)
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, search, " ", del, "  ", styleMuted.Render(instructions))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func (m Model) statusBar() string {
	parts := []string{
		fmt.Sprintf("z%d %.5f,%.5f", m.vp.Zoom, m.vp.Center.Lat, m.vp.Center.Lng),
		fmt.Sprintf("%d lines · %d circles", len(m.ed.Lines()), m.committedCircles()),
	}
	if st := m.ed.State(); st != editor.Idle {
		parts = append(parts, st.String())
	}
	if m.circleMode {
		parts = append(parts, "circle mode")
	}
	if m.anySyncing() {
		parts = append(parts, "syncing")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.tileURL != "" {
		parts = append(parts, "tile "+m.vp.TileURL(m.tileURL))
	}
	return styleStatus.MaxWidth(m.width).Render(strings.Join(parts, "  |  "))
}

func (m Model) committedCircles() int {
	n := 0
	for _, c := range m.ed.Circles() {
		if !c.Drawing {
			n++
		}
	}
	return n
}

func (m Model) anySyncing() bool {
	for _, busy := range m.syncing {
		if busy {
			return true
		}
	}
	return false
}
