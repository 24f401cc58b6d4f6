// Package geometry describes the display's notch (or a synthesized
// equivalent) and derives the overlay frames for each visual state.
// Screen space is y-up: a Rect's bottom edge is Y and its top edge is Y+Height.
package geometry
