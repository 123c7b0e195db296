package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/ebandobast/internal/report"
)

func populated() *State {
	s := New(15000, false)
	s.SetIdentifier("9876543210")
	s.SetDisplayName("X")
	s.SetRank("Y")
	s.SetAdmin(true)
	s.SetOnDuty(true)
	s.SetActiveMission(&report.Mission{Origin: "A", Destination: "B"})
	s.SetDarkTheme(true)
	return s
}

func TestNewIsEmpty(t *testing.T) {
	s := New(30000, false)
	require.Equal(t, Snapshot{GPSIntervalMs: 30000}, s.Snapshot())
}

func TestResetKeepsOnlyGPSInterval(t *testing.T) {
	s := populated()
	s.SetGPSIntervalMs(20000)

	s.Reset()
	require.Equal(t, Snapshot{GPSIntervalMs: 20000}, s.Snapshot())
}

func TestResetIdempotent(t *testing.T) {
	s := populated()
	s.Reset()
	first := s.Snapshot()
	s.Reset()
	require.Equal(t, first, s.Snapshot())
}

func TestResetRestoresDefaultTheme(t *testing.T) {
	s := New(30000, true)
	s.SetDarkTheme(false)
	s.Reset()
	require.True(t, s.DarkTheme())
}

func TestSnapshotIsDetached(t *testing.T) {
	s := populated()
	snap := s.Snapshot()
	s.SetDisplayName("Z")
	require.Equal(t, "X", snap.DisplayName)
	require.Equal(t, "Z", s.DisplayName())
}

func TestSnapshotMissionIsACopy(t *testing.T) {
	s := New(30000, false)
	s.SetActiveMission(&report.Mission{Origin: "A", Destination: "B", Legs: []report.Leg{{From: "A", To: "B"}}})

	snap := s.Snapshot()
	snap.ActiveMission.Origin = "Z"
	snap.ActiveMission.Legs[0].To = "Z"

	m := s.ActiveMission()
	require.Equal(t, "A", m.Origin)
	require.Equal(t, "B", m.Legs[0].To)
	require.Equal(t, m, s.Snapshot().ActiveMission)
}
