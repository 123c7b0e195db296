package tui

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ebandobast/internal/config"
	"github.com/jask/ebandobast/internal/nav"
	"github.com/jask/ebandobast/internal/offline"
	"github.com/jask/ebandobast/internal/report"
	"github.com/jask/ebandobast/internal/session"
)

// IntervalStore persists the GPS sampling interval.
type IntervalStore interface {
	Save(ctx context.Context, ms int) error
}

// splashElapsedMsg carries the splash generation it was scheduled in.
type splashElapsedMsg struct{ gen int }

// App ties the controller, the back-stack synchronizer, the sync coordinator
// and the session together and hosts the screens.
type App struct {
	ctx     context.Context
	cfg     config.Config
	session *session.State
	nav     *nav.Controller
	history *nav.Synchronizer
	sync    *offline.Coordinator
	gps     IntervalStore

	screen    screenModel
	splashGen int
	spinning  bool
	status    string
	quitting  bool
	width     int
	height    int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
}

// New builds the shell. gpsIntervalMs is the value loaded from storage at startup.
// A non-nil deepLink opens the app directly on that screen with no back-stack.
func New(ctx context.Context, cfg config.Config, gps IntervalStore, gpsIntervalMs int, deepLink *nav.Screen) *App {
	s := session.New(gpsIntervalMs, cfg.UI.DarkMode)
	ctrl := nav.NewController(s, nav.ReservedProfile{
		Identifier: cfg.Auth.ReservedIdentifier,
		Name:       cfg.Auth.ReservedName,
		Rank:       cfg.Auth.ReservedRank,
	})
	start := nav.Splash
	if deepLink != nil {
		start = *deepLink
		ctrl.Force(start)
	}
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		session: s,
		nav:     ctrl,
		history: nav.NewSynchronizer(start),
		sync: offline.New(offline.Options{
			SyncDelay:     cfg.Timing.SyncDelay,
			ToastDuration: cfg.Timing.ToastDuration,
			StartOffline:  cfg.Connectivity.StartOffline,
		}),
		gps:     gps,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   80,
		height:  24,
	}
	a.enter(start)
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.probe(0)}
	if a.nav.Current() == nav.Splash {
		gen := a.splashGen
		cmds = append(cmds, tea.Tick(a.cfg.Timing.SplashDelay, func(time.Time) tea.Msg {
			return splashElapsedMsg{gen: gen}
		}))
	}
	return tea.Batch(cmds...)
}

func (a *App) probe(after time.Duration) tea.Cmd {
	return offline.Probe(a.cfg.Connectivity.ProbeAddress, after, 2*time.Second)
}

// Screen is the screen currently rendered.
func (a *App) Screen() nav.Screen { return a.nav.Current() }

// History is the back-stack as the synchronizer sees it.
func (a *App) History() nav.History { return a.history.History() }

func (a *App) Session() session.Snapshot { return a.session.Snapshot() }

func (a *App) SyncState() offline.State { return a.sync.State() }

func (a *App) Status() string { return a.status }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		return a, nil
	case splashElapsedMsg:
		if m.gen != a.splashGen || a.nav.Current() != nav.Splash {
			return a, nil
		}
		cmd = a.Navigate(nav.SplashElapsed{})
	case offline.ProbeMsg:
		cmd = tea.Batch(a.sync.SetConnectivity(m.Online), a.probe(a.cfg.Connectivity.ProbeInterval))
	case spinner.TickMsg:
		if !a.sync.State().Syncing {
			a.spinning = false
			return a, nil
		}
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case tea.KeyMsg:
		cmd = a.handleKey(m)
	default:
		cmd = a.sync.Update(msg)
	}
	return a, tea.Batch(cmd, a.spin())
}

// spin starts the syncing spinner when a cycle is running and it is not already ticking.
func (a *App) spin() tea.Cmd {
	if a.spinning || !a.sync.State().Syncing {
		return nil
	}
	a.spinning = true
	return a.spinner.Tick
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case a.screen.Modal():
		return a.screen.Update(msg, a.session.Snapshot(), a)
	case key.Matches(msg, a.keys.Back):
		return a.hardwareBack()
	case key.Matches(msg, a.keys.SoftBack):
		if a.nav.Current() == nav.Verify {
			return a.Navigate(nav.BackToLogin{})
		}
		return a.BackToDuty()
	case key.Matches(msg, a.keys.Network):
		return a.sync.SetConnectivity(a.sync.State().Offline)
	case key.Matches(msg, a.keys.Sync):
		return a.sync.TriggerSync()
	}
	return a.screen.Update(msg, a.session.Snapshot(), a)
}

// quit tears down every timer before leaving the loop.
func (a *App) quit() tea.Cmd {
	a.teardown()
	a.quitting = true
	return tea.Quit
}

// teardown drops every pending timer, the sync cycle included.
func (a *App) teardown() {
	a.splashGen++
	a.sync.Cancel()
}

func (a *App) hardwareBack() tea.Cmd {
	from := a.nav.Current()
	out := a.history.Back(from)
	if out.Exit {
		log.Printf("nav: back from %s left to platform, exiting", from)
		return a.quit()
	}
	log.Printf("nav: back from %s intercepted, history depth %d", from, out.History.Depth())
	a.settle(from, out.Screen)
	return nil
}

// settle applies a screen chosen by the synchronizer.
func (a *App) settle(from, to nav.Screen) {
	a.nav.Force(to)
	if from != to {
		log.Printf("nav: %s -> %s (back)", from, to)
		a.enter(to)
	}
}

func (a *App) enter(screen nav.Screen) {
	a.screen = newScreen(screen)
	a.keys.screenHelp = a.screen.Help()
}

// Navigate runs a controller transition and applies its side effects.
func (a *App) Navigate(ev nav.Event) tea.Cmd {
	res, err := a.nav.Transition(ev)
	if err != nil {
		log.Printf("nav: ignored: %v", err)
		return nil
	}
	switch {
	case res.Forward:
		a.history.Forward(res.To)
	case res.Retreat:
		a.history.Retreat(res.To)
	}

	var cmds []tea.Cmd
	if res.Reset {
		a.splashGen++
		a.status = ""
		cmds = append(cmds, a.sync.EndSession())
	}
	if res.RecordAction && a.sync.RecordAction(actionKind(ev)) {
		log.Printf("offline: queued %s, %d pending", actionKind(ev), a.sync.State().PendingCount)
	}
	if res.Acknowledge {
		cmds = append(cmds, a.sync.Acknowledge())
	}
	if res.From != res.To {
		log.Printf("nav: %s -> %s", res.From, res.To)
		a.enter(res.To)
	}
	return tea.Batch(cmds...)
}

func actionKind(ev nav.Event) string {
	switch ev.(type) {
	case nav.CheckIn:
		return "check-in"
	case nav.Submitted:
		return "report"
	case nav.MessageSent:
		return "chat-message"
	}
	return "action"
}

// BackToDuty is the screens' own back button.
func (a *App) BackToDuty() tea.Cmd {
	from := a.nav.Current()
	out := a.history.SoftBack(from)
	a.settle(from, out.Screen)
	return nil
}

func (a *App) Targets() []nav.Screen { return a.nav.Targets() }

func (a *App) Submit(r report.Report) tea.Cmd {
	return a.Navigate(nav.Submitted{Report: r})
}

func (a *App) SendMessageHook() tea.Cmd {
	return a.Navigate(nav.MessageSent{})
}

// VerifyOTP checks the mocked one-time code. Admin role follows the configured identifiers.
func (a *App) VerifyOTP(code string) tea.Cmd {
	if code != a.cfg.Auth.MockOTP {
		a.status = "invalid code"
		return nil
	}
	a.status = ""
	admin := false
	for _, id := range a.cfg.Auth.AdminIdentifiers {
		if id == a.session.Identifier() {
			admin = true
			break
		}
	}
	return a.Navigate(nav.LoginSucceeded{Admin: admin})
}

func (a *App) Logout() tea.Cmd {
	return a.Navigate(nav.Logout{})
}

func (a *App) SetDarkTheme(dark bool) { a.session.SetDarkTheme(dark) }

func (a *App) SetAdmin(admin bool) { a.session.SetAdmin(admin) }

func (a *App) SetProfile(name, rank string) {
	a.session.SetDisplayName(name)
	a.session.SetRank(rank)
}

// StepGPSInterval moves the interval one configured step and writes it through
// before returning, so a crash right after the change keeps it.
func (a *App) StepGPSInterval(direction int) {
	ms := a.session.GPSIntervalMs() + direction*a.cfg.GPS.StepMs
	if ms < a.cfg.GPS.MinIntervalMs {
		ms = a.cfg.GPS.MinIntervalMs
	}
	if ms == a.session.GPSIntervalMs() {
		return
	}
	if err := a.gps.Save(a.ctx, ms); err != nil {
		log.Printf("settings: %v", err)
		a.status = "could not save GPS interval"
		return
	}
	a.session.SetGPSIntervalMs(ms)
	a.status = ""
}

func (a *App) SetStatus(text string) { a.status = text }
