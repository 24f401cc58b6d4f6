// Package theme resolves CSS themes for the bezel surface.
// Themes are GTK CSS files; the bezel fill and text colours are read from
// @define-color rules so the cairo renderer and the terminal simulator can
// use the same palette. Installing the CSS into GTK is left to display, so
// this package builds without cgo.
package theme
