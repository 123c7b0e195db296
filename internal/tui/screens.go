package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ebandobast/internal/nav"
	"github.com/jask/ebandobast/internal/report"
	"github.com/jask/ebandobast/internal/session"
)

// Callbacks is everything a hosted screen may ask of the shell. Screens never
// touch navigation or sync state themselves.
type Callbacks interface {
	Navigate(ev nav.Event) tea.Cmd
	// Targets lists the screens the current screen can open.
	Targets() []nav.Screen
	BackToDuty() tea.Cmd
	Submit(r report.Report) tea.Cmd
	SendMessageHook() tea.Cmd
	VerifyOTP(code string) tea.Cmd
	Logout() tea.Cmd
	SetDarkTheme(dark bool)
	SetAdmin(admin bool)
	SetProfile(name, rank string)
	StepGPSInterval(direction int)
	SetStatus(text string)
}

// screenModel is a hosted screen. A fresh one is built on every entry.
type screenModel interface {
	Update(msg tea.KeyMsg, s session.Snapshot, cb Callbacks) tea.Cmd
	View(s session.Snapshot) string
	Help() []key.Binding
	// Modal screens receive esc themselves instead of the hardware back handler.
	Modal() bool
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return ti
}

var enterKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))

// formScreen is a single text field with a terminal action on enter.
type formScreen struct {
	prompt     string
	input      textinput.Model
	transcript []string
	keepLog    bool
	onEnter    func(value string, s session.Snapshot, cb Callbacks) tea.Cmd
}

func newForm(prompt, placeholder string, onEnter func(string, session.Snapshot, Callbacks) tea.Cmd) *formScreen {
	return &formScreen{prompt: prompt, input: newInput(placeholder), onEnter: onEnter}
}

func (f *formScreen) Update(msg tea.KeyMsg, s session.Snapshot, cb Callbacks) tea.Cmd {
	if key.Matches(msg, enterKey) {
		v := strings.TrimSpace(f.input.Value())
		if v == "" {
			return nil
		}
		if f.keepLog {
			f.transcript = append(f.transcript, v)
			f.input.Reset()
		}
		return f.onEnter(v, s, cb)
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *formScreen) View(session.Snapshot) string {
	var b strings.Builder
	for _, line := range f.transcript {
		b.WriteString("  > " + line + "\n")
	}
	b.WriteString(f.prompt + "\n")
	b.WriteString(f.input.View())
	return b.String()
}

func (f *formScreen) Help() []key.Binding { return []key.Binding{enterKey} }
func (f *formScreen) Modal() bool         { return false }

type menuAction struct {
	binding   key.Binding
	adminOnly bool
	run       func(s session.Snapshot, cb Callbacks) tea.Cmd
}

// menuScreen renders a static body and maps keys to actions.
type menuScreen struct {
	body    func(s session.Snapshot) string
	actions []menuAction
}

func (m *menuScreen) Update(msg tea.KeyMsg, s session.Snapshot, cb Callbacks) tea.Cmd {
	for _, a := range m.actions {
		if a.run == nil || (a.adminOnly && !s.IsAdmin) {
			continue
		}
		if key.Matches(msg, a.binding) {
			return a.run(s, cb)
		}
	}
	return nil
}

func (m *menuScreen) View(s session.Snapshot) string {
	if m.body == nil {
		return ""
	}
	return m.body(s)
}

func (m *menuScreen) Help() []key.Binding {
	out := make([]key.Binding, 0, len(m.actions))
	for _, a := range m.actions {
		out = append(out, a.binding)
	}
	return out
}

func (m *menuScreen) Modal() bool { return false }

func bind(k, help string) key.Binding {
	return key.NewBinding(key.WithKeys(k), key.WithHelp(k, help))
}

func openAction(k string, target nav.Screen, adminOnly bool) menuAction {
	return menuAction{
		binding:   bind(k, target.Title()),
		adminOnly: adminOnly,
		run: func(_ session.Snapshot, cb Callbacks) tea.Cmd {
			return cb.Navigate(nav.Open{Target: target})
		},
	}
}

func staticBody(text string) func(session.Snapshot) string {
	return func(session.Snapshot) string { return text }
}

var adminOnlyTargets = map[nav.Screen]bool{nav.AdminConvoy: true, nav.AdminMap: true}

// dutyScreen is the hub. ":" opens a prompt that resolves a typed screen name.
type dutyScreen struct {
	menuScreen
	jumping bool
	jump    textinput.Model
}

func newDutyScreen() *dutyScreen {
	d := &dutyScreen{}
	d.body = func(s session.Snapshot) string {
		status := "Off duty"
		if s.OnDuty {
			status = "On duty"
		}
		who := strings.TrimSpace(s.Rank + " " + s.DisplayName)
		return fmt.Sprintf("%s\n%s · GPS every %s", who, status, time.Duration(s.GPSIntervalMs)*time.Millisecond)
	}
	d.actions = []menuAction{
		{binding: bind("i", "check in"), run: func(_ session.Snapshot, cb Callbacks) tea.Cmd { return cb.Navigate(nav.CheckIn{}) }},
		{binding: bind("o", "check out"), run: func(_ session.Snapshot, cb Callbacks) tea.Cmd { return cb.Navigate(nav.CheckOut{}) }},
		openAction("m", nav.Map, false),
		openAction("c", nav.Chat, false),
		openAction("n", nav.Notifications, false),
		openAction("s", nav.Settings, false),
		openAction("w", nav.Schedule, false),
		openAction("p", nav.PointDetail, false),
		openAction("t", nav.TeamContacts, false),
		openAction("l", nav.LeaveRequest, false),
		openAction("x", nav.ShiftSwap, false),
		openAction("r", nav.ReliefHandover, false),
		openAction("b", nav.PointBriefing, false),
		openAction("a", nav.AttendanceStats, false),
		openAction("v", nav.AdminConvoy, adminOnlyTargets[nav.AdminConvoy]),
		openAction("g", nav.AdminMap, adminOnlyTargets[nav.AdminMap]),
		openAction("!", nav.SOS, false),
		{binding: bind(":", "go to"), run: nil},
	}
	return d
}

func (d *dutyScreen) Update(msg tea.KeyMsg, s session.Snapshot, cb Callbacks) tea.Cmd {
	if d.jumping {
		switch {
		case msg.Type == tea.KeyEsc:
			d.jumping = false
			return nil
		case key.Matches(msg, enterKey):
			d.jumping = false
			target, err := nav.ParseScreen(d.jump.Value())
			if err != nil {
				cb.SetStatus(err.Error())
				return nil
			}
			if !slices.Contains(cb.Targets(), target) {
				cb.SetStatus("cannot open " + target.String() + " from here")
				return nil
			}
			if adminOnlyTargets[target] && !s.IsAdmin {
				cb.SetStatus(target.String() + " is for admins")
				return nil
			}
			return cb.Navigate(nav.Open{Target: target})
		}
		var cmd tea.Cmd
		d.jump, cmd = d.jump.Update(msg)
		return cmd
	}
	if msg.String() == ":" {
		d.jumping = true
		d.jump = newInput("screen name")
		return nil
	}
	return d.menuScreen.Update(msg, s, cb)
}

func (d *dutyScreen) View(s session.Snapshot) string {
	out := d.menuScreen.View(s)
	if d.jumping {
		out += "\n\ngo to: " + d.jump.View()
	}
	return out
}

func (d *dutyScreen) Modal() bool { return d.jumping }

// settingsScreen edits the session through its setters.
type settingsScreen struct {
	menuScreen
	editing bool
	profile textinput.Model
}

func newSettingsScreen() *settingsScreen {
	st := &settingsScreen{}
	st.body = func(s session.Snapshot) string {
		return fmt.Sprintf("Theme: %s\nAdmin: %t\nProfile: %s / %s\nGPS interval: %d ms",
			themeName(s.DarkTheme), s.IsAdmin, s.DisplayName, s.Rank, s.GPSIntervalMs)
	}
	st.actions = []menuAction{
		{binding: bind("d", "toggle theme"), run: func(s session.Snapshot, cb Callbacks) tea.Cmd { cb.SetDarkTheme(!s.DarkTheme); return nil }},
		{binding: bind("a", "toggle admin"), run: func(s session.Snapshot, cb Callbacks) tea.Cmd { cb.SetAdmin(!s.IsAdmin); return nil }},
		{binding: bind("+", "gps slower"), run: func(_ session.Snapshot, cb Callbacks) tea.Cmd { cb.StepGPSInterval(1); return nil }},
		{binding: bind("-", "gps faster"), run: func(_ session.Snapshot, cb Callbacks) tea.Cmd { cb.StepGPSInterval(-1); return nil }},
		{binding: bind("e", "edit profile"), run: nil},
		{binding: bind("L", "logout"), run: func(_ session.Snapshot, cb Callbacks) tea.Cmd { return cb.Logout() }},
	}
	return st
}

func (st *settingsScreen) Update(msg tea.KeyMsg, s session.Snapshot, cb Callbacks) tea.Cmd {
	if st.editing {
		switch {
		case msg.Type == tea.KeyEsc:
			st.editing = false
			return nil
		case key.Matches(msg, enterKey):
			st.editing = false
			name, rank := splitProfile(st.profile.Value())
			if name == "" {
				return nil
			}
			cb.SetProfile(name, rank)
			return nil
		}
		var cmd tea.Cmd
		st.profile, cmd = st.profile.Update(msg)
		return cmd
	}
	if msg.String() == "e" {
		st.editing = true
		st.profile = newInput("Name, Rank")
		st.profile.SetValue(strings.TrimSuffix(s.DisplayName+", "+s.Rank, ", "))
		return nil
	}
	return st.menuScreen.Update(msg, s, cb)
}

func (st *settingsScreen) View(s session.Snapshot) string {
	out := st.menuScreen.View(s)
	if st.editing {
		out += "\n\nprofile: " + st.profile.View()
	}
	return out
}

func (st *settingsScreen) Modal() bool { return st.editing }

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// splitProfile parses "Name, Rank".
func splitProfile(v string) (name, rank string) {
	name, rank, _ = strings.Cut(v, ",")
	return strings.TrimSpace(name), strings.TrimSpace(rank)
}

func isDigits(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func backAction(k, help string) menuAction {
	return menuAction{binding: bind(k, help), run: func(_ session.Snapshot, cb Callbacks) tea.Cmd { return cb.BackToDuty() }}
}

func submitForm(prompt string) *formScreen {
	return newForm(prompt, `{"origin": "...", "destination": "..."} or free text`,
		func(v string, _ session.Snapshot, cb Callbacks) tea.Cmd {
			return cb.Submit(report.Decode([]byte(v)))
		})
}

// newScreen builds the collaborator hosted for screen.
func newScreen(screen nav.Screen) screenModel {
	switch screen {
	case nav.Splash:
		return &menuScreen{body: staticBody("Gujarat Police · E-Bandobast\nloading…")}
	case nav.Login:
		return newForm("Mobile number", "10 digits", func(v string, _ session.Snapshot, cb Callbacks) tea.Cmd {
			if !isDigits(v) {
				cb.SetStatus("mobile number must be digits")
				return nil
			}
			cb.SetStatus("OTP sent to " + v)
			return cb.Navigate(nav.OTPSent{Identifier: v})
		})
	case nav.Verify:
		return newForm("One-time code", "6 digits", func(v string, _ session.Snapshot, cb Callbacks) tea.Cmd {
			return cb.VerifyOTP(v)
		})
	case nav.Onboarding:
		return newForm("Name, Rank", "e.g. Asha Patel, HC", func(v string, _ session.Snapshot, cb Callbacks) tea.Cmd {
			name, rank := splitProfile(v)
			if name == "" {
				cb.SetStatus("name is required")
				return nil
			}
			return cb.Navigate(nav.OnboardingCompleted{Name: name, Rank: rank})
		})
	case nav.Duty:
		return newDutyScreen()
	case nav.Settings:
		return newSettingsScreen()
	case nav.Chat:
		f := newForm("Message", "type and press enter", func(_ string, _ session.Snapshot, cb Callbacks) tea.Cmd {
			return cb.SendMessageHook()
		})
		f.keepLog = true
		return f
	case nav.PointDetail:
		return submitForm("Duty point report")
	case nav.LeaveRequest:
		return submitForm("Leave request")
	case nav.ShiftSwap:
		return submitForm("Shift swap request")
	case nav.ReliefHandover:
		return submitForm("Relief handover report")
	case nav.AdminConvoy:
		return submitForm("Convoy mission")
	case nav.Map:
		return &menuScreen{body: func(s session.Snapshot) string {
			return fmt.Sprintf("Live location · sampling every %d ms", s.GPSIntervalMs)
		}}
	case nav.AdminMap:
		return &menuScreen{
			body: func(s session.Snapshot) string {
				m := s.ActiveMission
				if m == nil {
					return "No active convoy mission"
				}
				return fmt.Sprintf("Convoy %s → %s · %d legs", m.Origin, m.Destination, len(m.Legs))
			},
			actions: []menuAction{openAction("c", nav.Chat, false)},
		}
	case nav.CheckInConfirm:
		return &menuScreen{body: staticBody("Checked in. Location sharing is on."), actions: []menuAction{backAction("enter", "confirm")}}
	case nav.SOS:
		return &menuScreen{body: staticBody("SOS alert armed"), actions: []menuAction{backAction("enter", "cancel SOS")}}
	case nav.Notifications:
		return &menuScreen{body: staticBody("No new notifications")}
	case nav.Schedule:
		return &menuScreen{body: staticBody("Weekly roster")}
	case nav.TeamContacts:
		return &menuScreen{body: staticBody("Team contacts")}
	case nav.PointBriefing:
		return &menuScreen{body: staticBody("Point briefing")}
	case nav.AttendanceStats:
		return &menuScreen{body: staticBody("Attendance summary")}
	}
	return &menuScreen{}
}
