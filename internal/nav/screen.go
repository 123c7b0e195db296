package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Screen identifies the single visible view.
type Screen int

const (
	Splash Screen = iota
	Login
	Verify
	Onboarding
	Duty
	Map
	CheckInConfirm
	SOS
	Chat
	Notifications
	Settings
	Schedule
	PointDetail
	TeamContacts
	LeaveRequest
	ShiftSwap
	ReliefHandover
	PointBriefing
	AttendanceStats
	AdminConvoy
	AdminMap
)

var screenInfo = [...]struct {
	slug  string
	title string
}{
	Splash:          {"splash", "E-Bandobast"},
	Login:           {"login", "Login"},
	Verify:          {"verify", "Verify OTP"},
	Onboarding:      {"onboarding", "Profile Setup"},
	Duty:            {"duty", "Duty"},
	Map:             {"map", "Map"},
	CheckInConfirm:  {"checkin-confirm", "Check-in Confirmed"},
	SOS:             {"sos", "SOS"},
	Chat:            {"chat", "Chat"},
	Notifications:   {"notifications", "Notifications"},
	Settings:        {"settings", "Settings"},
	Schedule:        {"schedule", "Weekly Schedule"},
	PointDetail:     {"point-detail", "Duty Point"},
	TeamContacts:    {"team-contacts", "Team Contacts"},
	LeaveRequest:    {"leave-request", "Leave Request"},
	ShiftSwap:       {"shift-swap", "Shift Swap"},
	ReliefHandover:  {"relief-handover", "Relief Handover"},
	PointBriefing:   {"point-briefing", "Point Briefing"},
	AttendanceStats: {"attendance-stats", "Attendance"},
	AdminConvoy:     {"admin-convoy", "Convoy Planner"},
	AdminMap:        {"admin-map", "Convoy Map"},
}

// ErrUnknownScreen is returned by ParseScreen when no screen is close enough.
var ErrUnknownScreen = errors.New("unknown screen")

func (s Screen) valid() bool { return s >= 0 && int(s) < len(screenInfo) }

func (s Screen) String() string {
	if !s.valid() {
		return fmt.Sprintf("screen(%d)", int(s))
	}
	return screenInfo[s].slug
}

// Title is the human label for the screen.
func (s Screen) Title() string {
	if !s.valid() {
		return s.String()
	}
	return screenInfo[s].title
}

// Screens lists every screen in declaration order.
func Screens() []Screen {
	out := make([]Screen, len(screenInfo))
	for i := range screenInfo {
		out[i] = Screen(i)
	}
	return out
}

// maxTypoDistance bounds how far a typed name may be from a slug.
const maxTypoDistance = 2

// ParseScreen resolves a screen name, tolerating case, separators and small typos.
// Ambiguous near-matches are rejected.
func ParseScreen(name string) (Screen, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	if norm == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownScreen)
	}
	best, bestDist, tie := Screen(-1), maxTypoDistance+1, false
	for i, info := range screenInfo {
		if info.slug == norm {
			return Screen(i), nil
		}
		d := levenshtein.ComputeDistance(norm, info.slug)
		switch {
		case d < bestDist:
			best, bestDist, tie = Screen(i), d, false
		case d == bestDist:
			tie = true
		}
	}
	if best < 0 || tie {
		return 0, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	return best, nil
}
