package nav

import (
	"errors"
	"fmt"

	"github.com/jask/ebandobast/internal/report"
	"github.com/jask/ebandobast/internal/session"
)

// ErrNoTransition is returned for an event with no edge from the current screen.
var ErrNoTransition = errors.New("no transition")

// Event is a user or system signal the controller reacts to.
type Event interface{ isEvent() }

// SplashElapsed fires once the splash delay has run out.
type SplashElapsed struct{}

// OTPSent is reported by login once a code was dispatched to Identifier.
type OTPSent struct{ Identifier string }

// BackToLogin is verify's own back button.
type BackToLogin struct{}

// LoginSucceeded is reported by verify. Admin is the role the verification granted.
type LoginSucceeded struct{ Admin bool }

// OnboardingCompleted commits the profile entered on onboarding.
type OnboardingCompleted struct{ Name, Rank string }

// Open follows a named edge to Target.
type Open struct{ Target Screen }

type CheckIn struct{}

// CheckOut starts the relief-handover report rather than flipping duty status.
type CheckOut struct{}

// Submitted carries a report from a screen's submit callback.
type Submitted struct{ Report report.Report }

// MessageSent is chat's send hook.
type MessageSent struct{}

type Logout struct{}

func (SplashElapsed) isEvent()       {}
func (OTPSent) isEvent()             {}
func (BackToLogin) isEvent()         {}
func (LoginSucceeded) isEvent()      {}
func (OnboardingCompleted) isEvent() {}
func (Open) isEvent()                {}
func (CheckIn) isEvent()             {}
func (CheckOut) isEvent()            {}
func (Submitted) isEvent()           {}
func (MessageSent) isEvent()         {}
func (Logout) isEvent()              {}

// Result describes a transition and the side effects the caller must apply.
type Result struct {
	From, To Screen
	// Forward transitions push a history record for To.
	Forward bool
	// Retreat transitions pop back to To instead of pushing.
	Retreat bool
	// RecordAction asks the sync coordinator to count a pending action.
	RecordAction bool
	// Acknowledge asks for the sync toast when the action did not need to queue.
	Acknowledge bool
	// Reset is set on logout; session-scoped timers must be cancelled.
	Reset bool
}

// ReservedProfile is a test identity that skips onboarding.
type ReservedProfile struct {
	Identifier string
	Name       string
	Rank       string
}

var openEdges = map[Screen]map[Screen]bool{
	Duty: {
		Map: true, Chat: true, Notifications: true, Settings: true, Schedule: true,
		PointDetail: true, TeamContacts: true, LeaveRequest: true, ShiftSwap: true,
		ReliefHandover: true, PointBriefing: true, AttendanceStats: true,
		AdminConvoy: true, AdminMap: true, SOS: true,
	},
	AdminMap: {Chat: true},
}

var submitters = map[Screen]bool{
	PointDetail:    true,
	LeaveRequest:   true,
	ShiftSwap:      true,
	ReliefHandover: true,
	AdminConvoy:    true,
}

// Controller owns the current screen. Its transitions are a deterministic
// function of the current screen, the event and the session.
type Controller struct {
	current  Screen
	session  *session.State
	reserved ReservedProfile
}

func NewController(s *session.State, reserved ReservedProfile) *Controller {
	return &Controller{current: Splash, session: s, reserved: reserved}
}

func (c *Controller) Current() Screen { return c.current }

// Force moves to screen without consulting the transition table. The
// synchronizer uses it to normalize back navigation.
func (c *Controller) Force(screen Screen) { c.current = screen }

// Targets lists the screens reachable with Open from the current screen.
func (c *Controller) Targets() []Screen {
	var out []Screen
	for _, s := range Screens() {
		if openEdges[c.current][s] {
			out = append(out, s)
		}
	}
	return out
}

// canSubmit reports whether the current screen has a submit callback.
func (c *Controller) canSubmit() bool { return submitters[c.current] }

func (c *Controller) Transition(ev Event) (Result, error) {
	from := c.current
	res, err := c.next(ev)
	if err != nil {
		return Result{From: from, To: from}, fmt.Errorf("%w: %T from %s", err, ev, from)
	}
	res.From = from
	c.current = res.To
	return res, nil
}

func (c *Controller) next(ev Event) (Result, error) {
	switch e := ev.(type) {
	case SplashElapsed:
		if c.current != Splash {
			return Result{}, ErrNoTransition
		}
		return Result{To: Login, Forward: true}, nil

	case OTPSent:
		if c.current != Login {
			return Result{}, ErrNoTransition
		}
		c.session.SetIdentifier(e.Identifier)
		return Result{To: Verify, Forward: true}, nil

	case BackToLogin:
		if c.current != Verify {
			return Result{}, ErrNoTransition
		}
		return Result{To: Login, Retreat: true}, nil

	case LoginSucceeded:
		if c.current != Verify {
			return Result{}, ErrNoTransition
		}
		c.session.SetAdmin(e.Admin)
		if c.reserved.Identifier != "" && c.session.Identifier() == c.reserved.Identifier {
			c.session.SetDisplayName(c.reserved.Name)
			c.session.SetRank(c.reserved.Rank)
			return Result{To: Duty, Forward: true}, nil
		}
		if c.session.DisplayName() == "" {
			return Result{To: Onboarding, Forward: true}, nil
		}
		return Result{To: Duty, Forward: true}, nil

	case OnboardingCompleted:
		if c.current != Onboarding {
			return Result{}, ErrNoTransition
		}
		c.session.SetDisplayName(e.Name)
		c.session.SetRank(e.Rank)
		return Result{To: Duty, Forward: true}, nil

	case Open:
		if !openEdges[c.current][e.Target] {
			return Result{}, ErrNoTransition
		}
		return Result{To: e.Target, Forward: true}, nil

	case CheckIn:
		if c.current != Duty {
			return Result{}, ErrNoTransition
		}
		c.session.SetOnDuty(true)
		return Result{To: CheckInConfirm, Forward: true, RecordAction: true}, nil

	case CheckOut:
		if c.current != Duty {
			return Result{}, ErrNoTransition
		}
		return Result{To: ReliefHandover, Forward: true}, nil

	case Submitted:
		if !c.canSubmit() {
			return Result{}, ErrNoTransition
		}
		if e.Report.IsMission() {
			c.session.SetActiveMission(e.Report.Mission)
		}
		return Result{To: Duty, Forward: true, RecordAction: true, Acknowledge: true}, nil

	case MessageSent:
		if c.current != Chat {
			return Result{}, ErrNoTransition
		}
		return Result{To: Chat, RecordAction: true}, nil

	case Logout:
		c.session.Reset()
		return Result{To: Login, Forward: true, Reset: true}, nil
	}
	return Result{}, ErrNoTransition
}
