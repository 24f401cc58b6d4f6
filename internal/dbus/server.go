package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// DBusInterface is the control interface name.
	DBusInterface = "io.github.jmylchreest.Bezel"
	// DBusPath is the control object path.
	DBusPath = dbus.ObjectPath("/io/github/jmylchreest/Bezel")
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.jmylchreest.Bezel"
)

// ControlServer implements the io.github.jmylchreest.Bezel D-Bus interface.
type ControlServer struct {
	conn    *dbus.Conn
	logger  *slog.Logger
	handler Handler

	mu      sync.RWMutex
	running bool
}

// NewControlServer creates a server that forwards requests to handler.
func NewControlServer(handler Handler, logger *slog.Logger) *ControlServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ControlServer{
		logger:  logger,
		handler: handler,
	}
}

// Start connects to the session bus and exports the control service.
func (s *ControlServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return s.StartOn(conn)
}

// StartOn exports the control service on an existing connection.
func (s *ControlServer) StartOn(conn *dbus.Conn) error {
	s.conn = conn

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: string(DBusPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: controlMethods(),
				Signals: controlSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken, is bezeld already running?", DBusBusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus control server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name.
func (s *ControlServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus control server stopped")
	return nil
}

// Expand requests the expanded state.
// D-Bus method: Expand() -> b
func (s *ControlServer) Expand() (bool, *dbus.Error) {
	s.logger.Debug("Expand called")
	return s.handler.Expand(), nil
}

// Collapse requests the collapsed state.
// D-Bus method: Collapse() -> b
func (s *ControlServer) Collapse() (bool, *dbus.Error) {
	s.logger.Debug("Collapse called")
	return s.handler.Collapse(), nil
}

// SetEnabled turns hover handling and the surface on or off.
// D-Bus method: SetEnabled(b)
func (s *ControlServer) SetEnabled(enabled bool) *dbus.Error {
	s.logger.Debug("SetEnabled called", "enabled", enabled)
	s.handler.SetEnabled(enabled)
	return nil
}

// GetState returns the state name, the enabled flag and the time of the last
// state change in Unix milliseconds.
// D-Bus method: GetState() -> (s, b, x)
func (s *ControlServer) GetState() (string, bool, int64, *dbus.Error) {
	st := s.handler.Status()
	return st.State, st.Enabled, unixMillis(st.ChangedAt), nil
}

func controlMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Expand",
			Args: []introspect.Arg{
				{Name: "accepted", Type: "b", Direction: "out"},
			},
		},
		{
			Name: "Collapse",
			Args: []introspect.Arg{
				{Name: "accepted", Type: "b", Direction: "out"},
			},
		},
		{
			Name: "SetEnabled",
			Args: []introspect.Arg{
				{Name: "enabled", Type: "b", Direction: "in"},
			},
		},
		{
			Name: "GetState",
			Args: []introspect.Arg{
				{Name: "state", Type: "s", Direction: "out"},
				{Name: "enabled", Type: "b", Direction: "out"},
				{Name: "changed_unix_ms", Type: "x", Direction: "out"},
			},
		},
	}
}

func controlSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "StateChanged",
			Args: []introspect.Arg{
				{Name: "from", Type: "s"},
				{Name: "to", Type: "s"},
			},
		},
	}
}
