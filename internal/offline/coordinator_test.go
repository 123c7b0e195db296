package offline

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestCoordinator(offline bool) *Coordinator {
	return New(Options{
		SyncDelay:     time.Millisecond,
		ToastDuration: time.Millisecond,
		StartOffline:  offline,
		Now:           func() time.Time { return fixedNow },
	})
}

func TestRecordActionOfflineIncrements(t *testing.T) {
	c := newTestCoordinator(true)
	for i := 1; i <= 3; i++ {
		require.True(t, c.RecordAction("check-in"))
		require.Equal(t, i, c.State().PendingCount)
	}
	require.Len(t, c.queue, 3)
	require.NotEqual(t, c.queue[0].ID, c.queue[1].ID)
}

func TestRecordActionOnlineIsNoop(t *testing.T) {
	c := newTestCoordinator(false)
	require.False(t, c.RecordAction("submit"))
	require.Zero(t, c.State().PendingCount)
}

func TestOnlineWithPendingRunsSync(t *testing.T) {
	c := newTestCoordinator(true)
	c.RecordAction("check-in")
	c.lastSyncAt = time.Time{}

	cmd := c.Update(ConnectivityMsg{Online: true})
	require.NotNil(t, cmd)
	require.True(t, c.State().Syncing)
	require.Equal(t, 1, c.State().PendingCount, "queue drains only when the cycle completes")

	msg := cmd()
	require.IsType(t, syncDoneMsg{}, msg)
	toastCmd := c.Update(msg)
	require.NotNil(t, toastCmd)

	st := c.State()
	require.False(t, st.Syncing)
	require.Zero(t, st.PendingCount)
	require.Equal(t, fixedNow, st.LastSyncAt)
	require.True(t, st.ToastVisible)

	require.Nil(t, c.Update(toastCmd()))
	require.False(t, c.State().ToastVisible)
}

func TestOnlineWithoutPendingDoesNotSync(t *testing.T) {
	c := newTestCoordinator(true)
	require.Nil(t, c.SetConnectivity(true))
	require.False(t, c.State().Syncing)
	require.False(t, c.State().Offline)
}

func TestSyncIsSingleFlight(t *testing.T) {
	c := newTestCoordinator(true)
	c.RecordAction("a")
	first := c.SetConnectivity(true)
	require.NotNil(t, first)

	require.Nil(t, c.TriggerSync())
	require.Nil(t, c.SetConnectivity(true), "online mid-sync must not start a second cycle")

	c.Update(first())
	require.Zero(t, c.State().PendingCount)
}

func TestTriggerSyncOfflineIsNoop(t *testing.T) {
	c := newTestCoordinator(true)
	c.RecordAction("a")
	require.Nil(t, c.TriggerSync())
	require.False(t, c.State().Syncing)
}

func TestCancelDropsInFlightTimers(t *testing.T) {
	c := newTestCoordinator(true)
	c.RecordAction("a")
	cmd := c.SetConnectivity(true)
	stale := cmd()

	c.Cancel()
	require.False(t, c.State().Syncing)
	require.Nil(t, c.Update(stale))
	require.Equal(t, 1, c.State().PendingCount)
	require.False(t, c.State().ToastVisible)

	toast := c.Acknowledge()
	staleToast := toast()
	c.Cancel()
	c.toastVisible = true
	c.Update(staleToast)
	require.True(t, c.State().ToastVisible, "expiry from a cancelled generation is ignored")
}

func TestEndSessionLetsRunningSyncFinishWithoutToast(t *testing.T) {
	c := newTestCoordinator(true)
	c.RecordAction("check-in")
	done := c.SetConnectivity(true)()
	shown := c.Acknowledge()

	require.Nil(t, c.EndSession())
	require.True(t, c.State().Syncing)
	require.False(t, c.State().ToastVisible)

	require.Nil(t, c.Update(done))
	st := c.State()
	require.False(t, st.Syncing)
	require.Zero(t, st.PendingCount)
	require.False(t, st.ToastVisible)

	c.toastVisible = true
	c.Update(shown())
	require.True(t, c.State().ToastVisible, "expiry of a toast hidden at session end is ignored")
}

func TestEndSessionStartsSyncForStrandedQueue(t *testing.T) {
	c := newTestCoordinator(true)
	c.RecordAction("check-in")
	c.SetConnectivity(true)
	c.Cancel()
	require.Equal(t, 1, c.State().PendingCount)
	require.False(t, c.State().Syncing)

	cmd := c.EndSession()
	require.NotNil(t, cmd)
	require.True(t, c.State().Syncing)
	require.Nil(t, c.Update(cmd()))
	require.Zero(t, c.State().PendingCount)
	require.False(t, c.State().ToastVisible)
}

func TestEndSessionOfflineKeepsQueue(t *testing.T) {
	c := newTestCoordinator(true)
	c.RecordAction("check-in")
	require.Nil(t, c.EndSession())
	require.Equal(t, 1, c.State().PendingCount)

	cmd := c.SetConnectivity(true)
	c.Update(cmd())
	require.Zero(t, c.State().PendingCount)
	require.True(t, c.State().ToastVisible, "a later session's sync shows its toast")
}

func TestNewerToastOutlivesOlderExpiry(t *testing.T) {
	c := newTestCoordinator(false)
	older := c.Acknowledge()
	newer := c.Acknowledge()

	c.Update(older())
	require.True(t, c.State().ToastVisible)
	c.Update(newer())
	require.False(t, c.State().ToastVisible)
}

func TestAcknowledgeOffline(t *testing.T) {
	c := newTestCoordinator(true)
	require.Nil(t, c.Acknowledge())
	require.False(t, c.State().ToastVisible)
}

func TestForeignTimerIgnored(t *testing.T) {
	a := newTestCoordinator(true)
	b := newTestCoordinator(true)
	a.RecordAction("x")
	b.RecordAction("y")
	cmd := a.SetConnectivity(true)
	b.SetConnectivity(true)

	b.Update(cmd())
	require.True(t, b.State().Syncing)
	require.Equal(t, 1, b.State().PendingCount)
}

func TestLastSyncStartsAtCreation(t *testing.T) {
	c := newTestCoordinator(false)
	require.Equal(t, fixedNow, c.State().LastSyncAt)
}

func TestProbe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	msg := Probe(addr, 0, time.Second)()
	require.Equal(t, ProbeMsg{Online: true}, msg)

	require.NoError(t, ln.Close())
	msg = Probe(addr, 0, 200*time.Millisecond)()
	require.Equal(t, ProbeMsg{Online: false}, msg)

	require.Nil(t, Probe("", time.Second, time.Second))
}
