package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/ebandobast/internal/nav"
)

// chromeless screens hide the sync chip and toast.
var chromeless = map[nav.Screen]bool{
	nav.Splash:     true,
	nav.Login:      true,
	nav.Verify:     true,
	nav.SOS:        true,
	nav.Onboarding: true,
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	snap := a.session.Snapshot()
	st := newStyles(snap.DarkTheme)
	current := a.nav.Current()
	state := a.sync.State()

	var b strings.Builder
	if state.Offline && current != nav.Splash {
		b.WriteString(a.fill(st.banner).Render("Offline · actions will sync when connected"))
		b.WriteString("\n")
	}
	b.WriteString(a.fill(st.header).Render("E-Bandobast · " + current.Title()))
	b.WriteString("\n")
	if who := strings.TrimSpace(snap.Rank + " " + snap.DisplayName); who != "" {
		role := ""
		if snap.IsAdmin {
			role = " · admin"
		}
		b.WriteString(st.session.Render(who + role))
		b.WriteString("\n")
	}
	if !chromeless[current] {
		b.WriteString(a.renderChip(st))
		b.WriteString("\n")
	}

	b.WriteString(st.body.Render(a.screen.View(snap)))
	b.WriteString("\n")

	if a.status != "" {
		b.WriteString(a.fill(st.status).Render(strings.ReplaceAll(a.status, "\n", " ")))
		b.WriteString("\n")
	}
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a *App) renderChip(st styles) string {
	state := a.sync.State()
	var chip string
	switch {
	case state.Syncing:
		chip = a.spinner.View() + " syncing"
	case state.PendingCount > 0:
		chip = fmt.Sprintf("%d pending", state.PendingCount)
	default:
		chip = "synced " + state.LastSyncAt.Format("15:04")
	}
	out := st.chip.Render(chip)
	if state.ToastVisible {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, "  ", st.toast.Render("All changes synced"))
	}
	return out
}

func (a *App) fill(s lipgloss.Style) lipgloss.Style {
	if a.width <= 0 {
		return s
	}
	return s.Width(a.width)
}
