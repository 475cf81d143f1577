// Package ws exposes a websocket tap that streams frames to
// monitoring clients.
package ws

import (
	"sync"

	"golang.org/x/net/websocket"

	"github.com/robotalks/sense.go/pkg/bus"
)

// Monitor fans frames out to connected websocket clients as wire
// records. It implements bus.FrameWriter so it can be teed behind the
// primary bus writer; delivery is best-effort, a dead client only
// loses its own feed.
type Monitor struct {
	lock  sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewMonitor creates a Monitor.
func NewMonitor() *Monitor {
	return &Monitor{conns: make(map[*websocket.Conn]struct{})}
}

// Handler returns the websocket handler registering monitor clients.
// The connection is held open until the client goes away.
func (m *Monitor) Handler() websocket.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		m.lock.Lock()
		m.conns[conn] = struct{}{}
		m.lock.Unlock()
		defer func() {
			m.lock.Lock()
			delete(m.conns, conn)
			m.lock.Unlock()
		}()
		var b [1]byte
		for {
			if _, err := conn.Read(b[:]); err != nil {
				return
			}
		}
	})
}

// Clients reports the number of connected clients.
func (m *Monitor) Clients() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.conns)
}

// WriteFrame implements bus.FrameWriter.
func (m *Monitor) WriteFrame(f bus.Frame) error {
	rec := f.EncodeRecord()
	m.lock.Lock()
	defer m.lock.Unlock()
	for conn := range m.conns {
		if err := websocket.Message.Send(conn, rec); err != nil {
			conn.Close()
			delete(m.conns, conn)
		}
	}
	return nil
}
