// Package offline queues actions taken without connectivity and drains them
// with a simulated sync cycle once the device is back online.
package offline

import (
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Action is one pending user action recorded while offline.
type Action struct {
	ID   uuid.UUID
	Kind string
	At   time.Time
}

// State is the sync status shown by the host.
type State struct {
	Offline      bool
	PendingCount int
	Syncing      bool
	LastSyncAt   time.Time
	ToastVisible bool
}

// ConnectivityMsg is an online/offline boundary event.
type ConnectivityMsg struct {
	Online bool
}

// syncDoneMsg and toastExpiredMsg are the coordinator's own timers. They carry
// the owner id and the generation they were started in; Cancel bumps the
// generation so anything already scheduled is dropped on arrival.
type syncDoneMsg struct {
	id  int
	gen int
}

type toastExpiredMsg struct {
	id  int
	gen int
	seq int
}

// Options configures a Coordinator. Zero delays fire on the next loop turn.
type Options struct {
	SyncDelay     time.Duration
	ToastDuration time.Duration
	StartOffline  bool
	Now           func() time.Time
}

// Coordinator owns the pending-action queue and the sync cycle. It is driven
// from the bubbletea loop and is not safe for concurrent use.
type Coordinator struct {
	id  int
	gen int

	offline      bool
	syncing      bool
	queue        []Action
	lastSyncAt   time.Time
	toastVisible bool
	toastSeq     int
	// quiet suppresses the toast of the cycle running when a session ended.
	quiet bool

	syncDelay     time.Duration
	toastDuration time.Duration
	now           func() time.Time
}

func New(opts Options) *Coordinator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Coordinator{
		id:            nextID(),
		offline:       opts.StartOffline,
		lastSyncAt:    now(),
		syncDelay:     opts.SyncDelay,
		toastDuration: opts.ToastDuration,
		now:           now,
	}
}

func (c *Coordinator) State() State {
	return State{
		Offline:      c.offline,
		PendingCount: len(c.queue),
		Syncing:      c.syncing,
		LastSyncAt:   c.lastSyncAt,
		ToastVisible: c.toastVisible,
	}
}

// RecordAction queues an action when offline. Online actions are already
// synced, so nothing is recorded. It reports whether the action was queued.
func (c *Coordinator) RecordAction(kind string) bool {
	if !c.offline {
		return false
	}
	c.queue = append(c.queue, Action{ID: uuid.New(), Kind: kind, At: c.now()})
	return true
}

// SetConnectivity applies a connectivity boundary. Coming online with pending
// actions starts a sync.
func (c *Coordinator) SetConnectivity(online bool) tea.Cmd {
	if !online {
		if !c.offline {
			log.Printf("offline: connectivity lost")
		}
		c.offline = true
		return nil
	}
	if c.offline {
		log.Printf("offline: connectivity restored, %d pending", len(c.queue))
	}
	c.offline = false
	if len(c.queue) > 0 {
		return c.TriggerSync()
	}
	return nil
}

// TriggerSync starts a sync cycle. Only one cycle runs at a time, and none
// starts while offline.
func (c *Coordinator) TriggerSync() tea.Cmd {
	if c.syncing || c.offline {
		return nil
	}
	c.syncing = true
	id, gen := c.id, c.gen
	return tea.Tick(c.syncDelay, func(time.Time) tea.Msg {
		return syncDoneMsg{id: id, gen: gen}
	})
}

// Acknowledge shows the toast for an action that completed online without
// going through a sync.
func (c *Coordinator) Acknowledge() tea.Cmd {
	if c.offline {
		return nil
	}
	return c.showToast()
}

// Cancel drops every scheduled timer. Queued actions stay queued. It is meant
// for program exit; a logout uses EndSession.
func (c *Coordinator) Cancel() {
	c.gen++
	c.syncing = false
	c.toastVisible = false
	c.quiet = false
}

// EndSession hides the toast and drops its timer, but lets the queue drain:
// a running cycle completes, and an idle online coordinator with pending
// actions starts one. Neither shows a toast.
func (c *Coordinator) EndSession() tea.Cmd {
	c.toastVisible = false
	c.toastSeq++
	if c.syncing {
		c.quiet = true
		return nil
	}
	cmd := c.TriggerSync()
	c.quiet = cmd != nil
	return cmd
}

func (c *Coordinator) showToast() tea.Cmd {
	c.toastVisible = true
	c.toastSeq++
	id, gen, seq := c.id, c.gen, c.toastSeq
	return tea.Tick(c.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id, gen: gen, seq: seq}
	})
}

// Update handles connectivity signals and the coordinator's own timers.
func (c *Coordinator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ConnectivityMsg:
		return c.SetConnectivity(msg.Online)
	case syncDoneMsg:
		if msg.id != c.id || msg.gen != c.gen || !c.syncing {
			return nil
		}
		drained := len(c.queue)
		c.syncing = false
		c.queue = nil
		c.lastSyncAt = c.now()
		log.Printf("offline: sync complete, drained %d actions", drained)
		if c.quiet {
			c.quiet = false
			return nil
		}
		return c.showToast()
	case toastExpiredMsg:
		if msg.id != c.id || msg.gen != c.gen || msg.seq != c.toastSeq {
			return nil
		}
		c.toastVisible = false
	}
	return nil
}
