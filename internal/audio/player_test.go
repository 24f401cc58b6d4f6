package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_Volume(t *testing.T) {
	p := NewPlayer(nil)
	assert.Equal(t, 1.0, p.Volume())

	p.SetVolume(80)
	assert.InDelta(t, 0.8, p.Volume(), 1e-9)

	p.SetVolume(150)
	assert.Equal(t, 1.0, p.Volume())

	p.SetVolume(-5)
	assert.Equal(t, 0.0, p.Volume())
}

func TestVolumeToExponent(t *testing.T) {
	assert.Equal(t, 0.0, volumeToExponent(1))
	assert.InDelta(t, -1, volumeToExponent(0.5), 1e-9)
	assert.InDelta(t, -2, volumeToExponent(0.25), 1e-9)
	assert.Equal(t, -10.0, volumeToExponent(0))
}

func TestPlayer_EmptyPathIsNoop(t *testing.T) {
	p := NewPlayer(nil)
	assert.NoError(t, p.Play(""))
	assert.NoError(t, p.Preload(""))
}

func TestDecodeFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := decodeFile(filepath.Join(dir, "missing.wav"))
	assert.ErrorContains(t, err, "failed to open sound file")

	txt := filepath.Join(dir, "chime.txt")
	require.NoError(t, os.WriteFile(txt, []byte("ding"), 0644))
	_, err = decodeFile(txt)
	assert.ErrorContains(t, err, "unsupported audio format")

	bad := filepath.Join(dir, "chime.wav")
	require.NoError(t, os.WriteFile(bad, []byte("not a wav"), 0644))
	_, err = decodeFile(bad)
	assert.ErrorContains(t, err, "failed to decode sound")
}

func TestDecodeFile_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chime.WAV")
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

	f, err := os.Create(path)
	require.NoError(t, err)
	n := format.SampleRate.N(50 * time.Millisecond)
	require.NoError(t, wav.Encode(f, beep.Silence(n), format))
	require.NoError(t, f.Close())

	buffer, err := decodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, n, buffer.Len())
	assert.Equal(t, format.SampleRate, buffer.Format().SampleRate)
}
