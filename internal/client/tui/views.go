package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkline rune ramp, lowest to highest.
var sparks = []rune("▁▂▃▄▅▆▇█")

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.view {
	case ViewLanding:
		body = m.viewLanding()
	case ViewList:
		body = m.viewList()
	case ViewDetail:
		body = m.viewDetail()
	case ViewCreate:
		body = m.viewForm("New user", m.createForm, "enter: next/submit · esc: cancel")
	case ViewEdit:
		body = m.viewForm(fmt.Sprintf("Edit user %d", m.editTarget.ID), m.editForm,
			"enter: next/submit · esc: cancel")
	case ViewConfirmDelete:
		body = m.viewConfirmDelete()
	case ViewConfirmSave:
		body = m.viewConfirmSave()
	case ViewStats:
		body = m.viewStats()
	case ViewLoggingIn:
		body = m.st.title.Render("Signing in") + "\n\n" +
			"Complete the sign-in in your browser, then return here.\n" +
			m.st.faint.Render("Waiting for the redirect...")
	}
	return body + "\n" + m.statusBar()
}

func (m Model) viewLanding() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("User Admin"))
	b.WriteString("\n\n")
	b.WriteString("Sign in with your Google account to manage users.\n\n")
	b.WriteString(fmt.Sprintf("  %s  sign in\n", m.st.badge.Render("i")))
	b.WriteString(fmt.Sprintf("  %s  sign in as admin\n", m.st.badge.Render("I")))
	b.WriteString(fmt.Sprintf("  %s  quit\n", m.st.badge.Render("q")))
	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder

	title := "Users"
	if m.controller.Query() != "" {
		title = fmt.Sprintf("Users matching %q", m.controller.Query())
	}
	b.WriteString(m.st.title.Render(title))
	b.WriteString("\n")

	search := m.searchInput.View()
	if m.focus != FocusSearch && m.searchInput.Value() == "" {
		search = m.st.faint.Render("press / to search")
	}
	b.WriteString(search)
	b.WriteString("\n\n")

	b.WriteString(m.st.header.Render(fmt.Sprintf("%-6s %-22s %-30s %-10s",
		"ID", "Name", "Email", "Created")))
	b.WriteString("\n")

	items := m.controller.Items()
	if m.controller.Loading() && len(items) == 0 {
		b.WriteString(m.st.faint.Render("loading..."))
		b.WriteString("\n")
	} else if len(items) == 0 {
		b.WriteString(m.st.faint.Render("no users found"))
		b.WriteString("\n")
	}
	for i, user := range items {
		line := fmt.Sprintf("%-6d %-22s %-30s %-10s",
			user.ID, truncate(user.Name, 22), truncate(user.Email, 30),
			user.CreatedAt.Format("2006-01-02"))
		if i == m.cursor {
			b.WriteString(m.st.selected.Render(line))
		} else {
			b.WriteString(m.st.row.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.pageFooter())
	b.WriteString("\n")
	b.WriteString(m.st.help.Render(
		"↑/↓ move · ←/→ page · s sort · / search · enter details · " +
			"c create · e edit · d delete · g stats · o sign out · q quit"))
	return b.String()
}

// pageFooter renders "Page n of m" with the direction arrows faded when the
// edge has been reached. The numbers come from the server's page metadata.
func (m Model) pageFooter() string {
	prev := "‹ prev"
	if m.controller.CanPrev() {
		prev = m.st.row.Render(prev)
	} else {
		prev = m.st.faint.Render(prev)
	}
	next := "next ›"
	if m.controller.CanNext() {
		next = m.st.row.Render(next)
	} else {
		next = m.st.faint.Render(next)
	}

	middle := fmt.Sprintf("Page %d of %d", m.controller.PageIndex()+1, m.controller.TotalPages())
	if m.controller.Query() == "" {
		middle += m.st.faint.Render(fmt.Sprintf("  ·  sorted by %s", m.controller.Sort()))
	}
	return prev + "   " + middle + "   " + next
}

func (m Model) viewDetail() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render(fmt.Sprintf("User %d", m.detail.ID)))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(m.st.label.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Name", m.detail.Name)
	row("Email", m.detail.Email)
	if m.detail.Picture != "" {
		row("Picture", m.detail.Picture)
	}
	row("Created", m.detail.CreatedAt.Format("2006-01-02 15:04"))
	row("Updated", m.detail.UpdatedAt.Format("2006-01-02 15:04"))

	b.WriteString("\n")
	b.WriteString(m.st.help.Render("e edit · d delete · esc back"))
	return b.String()
}

func (m Model) viewForm(title string, f form, help string) string {
	var b strings.Builder
	b.WriteString(m.st.title.Render(title))
	b.WriteString("\n\n")
	for i, input := range f.inputs {
		b.WriteString(m.st.label.Render(f.labels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.st.help.Render(help))
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	question := fmt.Sprintf("Delete user %s (ID: %d)? This cannot be undone.",
		m.deleteTarget.Name, m.deleteTarget.ID)
	return m.st.box.Render(
		m.st.title.Render("Confirm delete")+"\n\n"+
			question+"\n\n"+
			m.st.help.Render("y confirm · n cancel"))
}

func (m Model) viewConfirmSave() string {
	var changes strings.Builder
	fmt.Fprintf(&changes, "Name:  %s\n", m.editForm.value(fieldName))
	fmt.Fprintf(&changes, "Email: %s\n", m.editForm.value(fieldEmail))
	if m.editForm.value(fieldPassword) != "" {
		changes.WriteString("Password will be changed\n")
	}
	if m.editForm.value(fieldPicture) != "" {
		fmt.Fprintf(&changes, "Picture: %s\n", m.editForm.value(fieldPicture))
	}
	return m.st.box.Render(
		m.st.title.Render(fmt.Sprintf("Save changes to user %d?", m.editTarget.ID))+"\n\n"+
			changes.String()+"\n"+
			m.st.help.Render("y save · n back"))
}

func (m Model) viewStats() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("Admin dashboard"))
	b.WriteString("\n\n")
	b.WriteString(m.st.label.Render("Total users"))
	b.WriteString(fmt.Sprintf("%d\n", m.stats.TotalUsers))
	b.WriteString(m.st.label.Render("Active users"))
	b.WriteString(fmt.Sprintf("%d\n", m.stats.ActiveUsers))
	if len(m.stats.MonthlyGrowth) > 0 {
		b.WriteString(m.st.label.Render("Growth"))
		b.WriteString(sparkline(m.stats.MonthlyGrowth))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.st.help.Render("esc back"))
	return b.String()
}

// statusBar is the bottom line: session identity on the left, the current
// notice or error on the right.
func (m Model) statusBar() string {
	var left string
	if sess, ok := m.sessions.Current(); ok {
		left = sess.SubjectID
		if sess.IsAdmin() {
			left += " " + m.st.badge.Render("ADMIN")
		}
	} else {
		left = m.st.faint.Render("not signed in")
	}

	var right string
	switch {
	case m.errMsg != "":
		right = m.st.errText.Render(m.errMsg)
	case m.notice != "":
		right = m.st.notice.Render(m.notice)
	}

	if right == "" {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

// sparkline renders a series as one block character per value, scaled to
// the series maximum.
func sparkline(values []int64) string {
	var max int64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}
	var b strings.Builder
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		idx := int(v * int64(len(sparks)-1) / max)
		b.WriteRune(sparks[idx])
	}
	return b.String()
}
