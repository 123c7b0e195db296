package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/ebandobast/internal/report"
	"github.com/jask/ebandobast/internal/session"
)

var testReserved = ReservedProfile{Identifier: "123456789", Name: "Rakesh", Rank: "PI"}

func newTestController() (*Controller, *session.State) {
	s := session.New(30000, false)
	return NewController(s, testReserved), s
}

func mustTransition(t *testing.T, c *Controller, ev Event) Result {
	t.Helper()
	res, err := c.Transition(ev)
	require.NoError(t, err)
	return res
}

func loginAs(t *testing.T, c *Controller, id string) Result {
	t.Helper()
	mustTransition(t, c, SplashElapsed{})
	mustTransition(t, c, OTPSent{Identifier: id})
	return mustTransition(t, c, LoginSucceeded{})
}

func TestSplashGoesToLogin(t *testing.T) {
	c, _ := newTestController()
	require.Equal(t, Splash, c.Current())
	res := mustTransition(t, c, SplashElapsed{})
	require.Equal(t, Login, res.To)
	require.True(t, res.Forward)

	_, err := c.Transition(SplashElapsed{})
	require.ErrorIs(t, err, ErrNoTransition)
	require.Equal(t, Login, c.Current())
}

func TestReservedIdentifierSkipsOnboarding(t *testing.T) {
	c, s := newTestController()
	res := loginAs(t, c, "123456789")
	require.Equal(t, Duty, res.To)
	require.Equal(t, "Rakesh", s.DisplayName())
	require.Equal(t, "PI", s.Rank())
}

func TestNovelIdentifierOnboards(t *testing.T) {
	c, s := newTestController()
	res := loginAs(t, c, "9000000001")
	require.Equal(t, Onboarding, res.To)

	res = mustTransition(t, c, OnboardingCompleted{Name: "X", Rank: "Y"})
	require.Equal(t, Duty, res.To)
	require.True(t, res.Forward)
	require.Equal(t, "X", s.DisplayName())
	require.Equal(t, "Y", s.Rank())
}

func TestKnownNameSkipsOnboarding(t *testing.T) {
	c, s := newTestController()
	s.SetDisplayName("Existing")
	res := loginAs(t, c, "9000000001")
	require.Equal(t, Duty, res.To)
}

func TestLoginCommitsAdminFlag(t *testing.T) {
	c, s := newTestController()
	mustTransition(t, c, SplashElapsed{})
	mustTransition(t, c, OTPSent{Identifier: "123456789"})
	mustTransition(t, c, LoginSucceeded{Admin: true})
	require.True(t, s.IsAdmin())
}

func TestBackToLoginRetreats(t *testing.T) {
	c, _ := newTestController()
	mustTransition(t, c, SplashElapsed{})
	mustTransition(t, c, OTPSent{Identifier: "1"})
	res := mustTransition(t, c, BackToLogin{})
	require.Equal(t, Login, res.To)
	require.True(t, res.Retreat)
	require.False(t, res.Forward)
}

func TestDutyEdges(t *testing.T) {
	targets := []Screen{Map, Chat, Notifications, Settings, Schedule, PointDetail, TeamContacts,
		LeaveRequest, ShiftSwap, ReliefHandover, PointBriefing, AttendanceStats, AdminConvoy, AdminMap, SOS}
	for _, target := range targets {
		c, _ := newTestController()
		loginAs(t, c, "123456789")
		res := mustTransition(t, c, Open{Target: target})
		require.Equal(t, target, res.To)
		require.True(t, res.Forward)
	}
}

func TestOpenWithoutEdgeIsRejected(t *testing.T) {
	c, _ := newTestController()
	loginAs(t, c, "123456789")
	mustTransition(t, c, Open{Target: Map})

	_, err := c.Transition(Open{Target: Chat})
	require.ErrorIs(t, err, ErrNoTransition)
	require.Equal(t, Map, c.Current())

	_, err = c.Transition(Open{Target: Login})
	require.ErrorIs(t, err, ErrNoTransition)
}

func TestAdminMapOpensChat(t *testing.T) {
	c, _ := newTestController()
	loginAs(t, c, "123456789")
	mustTransition(t, c, Open{Target: AdminMap})
	res := mustTransition(t, c, Open{Target: Chat})
	require.Equal(t, Chat, res.To)
}

func TestCheckIn(t *testing.T) {
	c, s := newTestController()
	loginAs(t, c, "123456789")
	res := mustTransition(t, c, CheckIn{})
	require.Equal(t, CheckInConfirm, res.To)
	require.True(t, res.RecordAction)
	require.True(t, s.OnDuty())
}

func TestCheckOutIsReportFlow(t *testing.T) {
	c, s := newTestController()
	loginAs(t, c, "123456789")
	mustTransition(t, c, CheckIn{})
	c.Force(Duty)

	res := mustTransition(t, c, CheckOut{})
	require.Equal(t, ReliefHandover, res.To)
	require.True(t, s.OnDuty(), "check-out does not flip duty status directly")
}

func TestSubmitMissionSetsActiveMission(t *testing.T) {
	c, s := newTestController()
	loginAs(t, c, "123456789")
	mustTransition(t, c, Open{Target: ReliefHandover})

	res := mustTransition(t, c, Submitted{Report: report.Decode([]byte(`{"origin":"A","destination":"B"}`))})
	require.Equal(t, Duty, res.To)
	require.True(t, res.RecordAction)
	require.True(t, res.Acknowledge)
	require.NotNil(t, s.ActiveMission())
	require.Equal(t, "A", s.ActiveMission().Origin)

	mustTransition(t, c, Open{Target: ShiftSwap})
	mustTransition(t, c, Submitted{Report: report.Decode([]byte(`{"note":"swap with HC 12"}`))})
	require.Equal(t, "A", s.ActiveMission().Origin, "generic report leaves the mission alone")
}

func TestSubmitFromNonSubmitterRejected(t *testing.T) {
	c, _ := newTestController()
	loginAs(t, c, "123456789")
	mustTransition(t, c, Open{Target: Map})
	_, err := c.Transition(Submitted{Report: report.Generic(nil)})
	require.ErrorIs(t, err, ErrNoTransition)
}

func TestMessageSentStaysInChat(t *testing.T) {
	c, _ := newTestController()
	loginAs(t, c, "123456789")
	mustTransition(t, c, Open{Target: Chat})
	res := mustTransition(t, c, MessageSent{})
	require.Equal(t, Chat, res.To)
	require.False(t, res.Forward)
	require.True(t, res.RecordAction)
}

func TestLogoutResetsFromAnywhere(t *testing.T) {
	for _, start := range Screens() {
		c, s := newTestController()
		loginAs(t, c, "123456789")
		mustTransition(t, c, Open{Target: AdminConvoy})
		mustTransition(t, c, Submitted{Report: report.Decode([]byte(`{"legs":[]}`))})
		s.SetOnDuty(true)
		c.Force(start)

		res := mustTransition(t, c, Logout{})
		require.Equal(t, Login, res.To)
		require.True(t, res.Reset)
		require.Equal(t, session.Snapshot{GPSIntervalMs: 30000}, s.Snapshot())

		res = mustTransition(t, c, Logout{})
		require.Equal(t, Login, res.To)
		require.Equal(t, session.Snapshot{GPSIntervalMs: 30000}, s.Snapshot())
	}
}

func TestTargetsFromDutyAndCanSubmit(t *testing.T) {
	c, _ := newTestController()
	loginAs(t, c, "123456789")
	require.Len(t, c.Targets(), 15)
	require.False(t, c.canSubmit())
	mustTransition(t, c, Open{Target: LeaveRequest})
	require.True(t, c.canSubmit())
	require.Empty(t, c.Targets())
}
