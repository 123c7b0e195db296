// Package session holds the identity, role and duty status shared across screens.
package session

import "github.com/jask/ebandobast/internal/report"

// State is the mutable session bundle. The GPS interval outlives logout; every
// other field returns to its default on Reset.
type State struct {
	identifier    string
	displayName   string
	rank          string
	isAdmin       bool
	onDuty        bool
	activeMission *report.Mission
	darkTheme     bool
	gpsIntervalMs int

	defaultDark bool
}

// Snapshot is the read-only view handed to screens.
type Snapshot struct {
	Identifier    string
	DisplayName   string
	Rank          string
	IsAdmin       bool
	OnDuty        bool
	ActiveMission *report.Mission
	DarkTheme     bool
	GPSIntervalMs int
}

// New returns an empty session with the given persisted GPS interval.
func New(gpsIntervalMs int, darkByDefault bool) *State {
	return &State{gpsIntervalMs: gpsIntervalMs, darkTheme: darkByDefault, defaultDark: darkByDefault}
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Identifier:    s.identifier,
		DisplayName:   s.displayName,
		Rank:          s.rank,
		IsAdmin:       s.isAdmin,
		OnDuty:        s.onDuty,
		ActiveMission: copyMission(s.activeMission),
		DarkTheme:     s.darkTheme,
		GPSIntervalMs: s.gpsIntervalMs,
	}
}

// Reset clears everything except the GPS interval. Calling it twice is the same as once.
func (s *State) Reset() {
	*s = State{gpsIntervalMs: s.gpsIntervalMs, darkTheme: s.defaultDark, defaultDark: s.defaultDark}
}

func (s *State) Identifier() string             { return s.identifier }
func (s *State) DisplayName() string            { return s.displayName }
func (s *State) Rank() string                   { return s.rank }
func (s *State) IsAdmin() bool                  { return s.isAdmin }
func (s *State) OnDuty() bool                   { return s.onDuty }
func (s *State) ActiveMission() *report.Mission { return s.activeMission }
func (s *State) DarkTheme() bool                { return s.darkTheme }
func (s *State) GPSIntervalMs() int             { return s.gpsIntervalMs }

func (s *State) SetIdentifier(id string)            { s.identifier = id }
func (s *State) SetDisplayName(name string)         { s.displayName = name }
func (s *State) SetRank(rank string)                { s.rank = rank }
func (s *State) SetAdmin(admin bool)                { s.isAdmin = admin }
func (s *State) SetOnDuty(on bool)                  { s.onDuty = on }
func (s *State) SetActiveMission(m *report.Mission) { s.activeMission = m }
func (s *State) SetDarkTheme(dark bool)             { s.darkTheme = dark }
func (s *State) SetGPSIntervalMs(ms int)            { s.gpsIntervalMs = ms }

func copyMission(m *report.Mission) *report.Mission {
	if m == nil {
		return nil
	}
	c := *m
	c.Legs = append([]report.Leg(nil), m.Legs...)
	return &c
}
