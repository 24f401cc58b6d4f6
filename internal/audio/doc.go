// Package audio plays the countdown completion chime.
// It uses the beep library to decode WAV, OGG and MP3 files and plays
// them through the default output with volume control.
package audio
