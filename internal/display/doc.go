// Package display renders the bezel as a GTK4 layer-shell surface.
// It draws the silhouette with cairo, reports pointer motion in screen
// coordinates, detects the target monitor, and schedules callbacks on the
// GLib main loop.
package display
