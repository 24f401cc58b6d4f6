package dbus

import "fmt"

// EmitStateChanged emits the StateChanged signal. It is a no-op before Start.
func (s *ControlServer) EmitStateChanged(from, to string) error {
	s.mu.RLock()
	running := s.running
	s.mu.RUnlock()
	if !running || s.conn == nil {
		return nil
	}

	s.logger.Debug("emitting StateChanged", "from", from, "to", to)
	if err := s.conn.Emit(DBusPath, DBusInterface+".StateChanged", from, to); err != nil {
		return fmt.Errorf("failed to emit StateChanged: %w", err)
	}
	return nil
}
