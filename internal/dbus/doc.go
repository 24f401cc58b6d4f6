// Package dbus exposes bezeld's control interface on the session bus and
// sends desktop notifications through org.freedesktop.Notifications.
//
// The control service lets the CLI expand, collapse, enable and disable a
// running overlay and query its state.
package dbus
