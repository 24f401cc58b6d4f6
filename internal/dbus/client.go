package dbus

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsInterface = "org.freedesktop.Notifications"
	notificationsPath      = dbus.ObjectPath("/org/freedesktop/Notifications")
)

// Client calls a running bezeld over the session bus.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Dial connects to the session bus.
func Dial() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return NewClient(conn), nil
}

// NewClient wraps an existing connection.
func NewClient(conn *dbus.Conn) *Client {
	return &Client{conn: conn, obj: conn.Object(DBusBusName, DBusPath)}
}

// Expand asks the overlay to expand. It returns false if the request was
// rejected, e.g. while another animation runs.
func (c *Client) Expand(ctx context.Context) (bool, error) {
	return c.callBool(ctx, "Expand")
}

// Collapse asks the overlay to collapse.
func (c *Client) Collapse(ctx context.Context) (bool, error) {
	return c.callBool(ctx, "Collapse")
}

// SetEnabled turns the overlay on or off.
func (c *Client) SetEnabled(ctx context.Context, enabled bool) error {
	if err := c.obj.CallWithContext(ctx, DBusInterface+".SetEnabled", 0, enabled).Err; err != nil {
		return fmt.Errorf("SetEnabled: %w", err)
	}
	return nil
}

// Toggle flips the enabled flag and returns the new value.
func (c *Client) Toggle(ctx context.Context) (bool, error) {
	st, err := c.Status(ctx)
	if err != nil {
		return false, err
	}
	if err := c.SetEnabled(ctx, !st.Enabled); err != nil {
		return false, err
	}
	return !st.Enabled, nil
}

// Status returns the overlay state.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var (
		state   string
		enabled bool
		changed int64
	)
	err := c.obj.CallWithContext(ctx, DBusInterface+".GetState", 0).Store(&state, &enabled, &changed)
	if err != nil {
		return Status{}, fmt.Errorf("GetState: %w", err)
	}
	return Status{State: state, Enabled: enabled, ChangedAt: fromUnixMillis(changed)}, nil
}

func (c *Client) callBool(ctx context.Context, method string) (bool, error) {
	var ok bool
	if err := c.obj.CallWithContext(ctx, DBusInterface+"."+method, 0).Store(&ok); err != nil {
		return false, fmt.Errorf("%s: %w", method, err)
	}
	return ok, nil
}

// NotificationSender delivers desktop notifications to whatever daemon owns
// org.freedesktop.Notifications.
type NotificationSender struct {
	conn *dbus.Conn
}

// NewNotificationSender wraps a session bus connection.
func NewNotificationSender(conn *dbus.Conn) *NotificationSender {
	return &NotificationSender{conn: conn}
}

// Send calls Notify and returns the server-assigned id.
func (s *NotificationSender) Send(n *Notification) (uint32, error) {
	actions := n.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := n.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}

	obj := s.conn.Object(notificationsInterface, notificationsPath)
	var id uint32
	err := obj.Call(notificationsInterface+".Notify", 0,
		n.AppName, n.ReplacesID, n.AppIcon, n.Summary, n.Body,
		actions, hints, n.ExpireTimeout,
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to send notification: %w", err)
	}
	return id, nil
}
