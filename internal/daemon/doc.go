// Package daemon provides the main orchestration for bezeld.
// It ties the hover-intent debouncer, the transition controller, the
// countdown timer and the chime player to a drawable surface, and
// handles configuration hot-reload.
package daemon
