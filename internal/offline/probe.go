package offline

import (
	"net"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ProbeMsg reports one reachability check. The host re-arms the probe on receipt.
type ProbeMsg struct {
	Online bool
}

// Probe schedules a TCP dial to addr after interval. An empty addr disables probing.
func Probe(addr string, interval, timeout time.Duration) tea.Cmd {
	if addr == "" {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return ProbeMsg{Online: reachable(addr, timeout)}
	})
}

func reachable(addr string, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
