package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stretch "github.com/tphakala/go-audio-stretch"
	"github.com/tphakala/go-audio-stretch/internal/testutil"
)

const testRate = 44100

func smallTransformer(t *testing.T) *stretch.Transformer {
	t.Helper()
	tr, err := stretch.New(&stretch.Config{WindowSize: 1024, Hop: 256, EnableSIMD: true, EnableParallel: true})
	require.NoError(t, err)
	return tr
}

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	// Create a temporary file that's not a WAV
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	err := os.WriteFile(invalidFile, []byte("not a wav file"), 0o644)
	require.NoError(t, err)

	_, err = openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestOpenWAVInput_RejectsStereo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	writeTestWAV(t, path, 16, 2, make([]int, 2000))

	_, err := openWAVInput(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only mono")
}

func TestOpenWAVInput_Rejects24Bit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hires.wav")
	writeTestWAV(t, path, 24, 1, make([]int, 1000))

	_, err := openWAVInput(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only 16-bit")
}

func TestWriteWAV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	samples := testutil.Sine16(10000, 440, testRate, 12000)
	samples[0], samples[1] = math.MaxInt16, math.MinInt16

	require.NoError(t, writeWAV(path, testRate, samples))

	input, err := openWAVInput(path, true)
	require.NoError(t, err)
	defer func() { _ = input.Close() }()

	assert.Equal(t, testRate, input.rate)
	got, err := input.readAll(true)
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestWriteWAV_InvalidDirectory(t *testing.T) {
	err := writeWAV("/nonexistent/dir/output.wav", testRate, []int16{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestResolveFactor(t *testing.T) {
	assert.InDelta(t, 0.5, resolveFactor(0.5, 12), 1e-15, "explicit factor wins")
	assert.InDelta(t, 2.0, resolveFactor(0, 12), 1e-12)
	assert.InDelta(t, math.Pow(2, 5.0/12.0), resolveFactor(0, defaultSemitones), 1e-12)
}

func TestParseTones(t *testing.T) {
	tones, err := parseTones(defaultTones)
	require.NoError(t, err)
	assert.Equal(t, stretch.DemoTones, tones)

	tones, err = parseTones(" 1.5, -3 ,,")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -3}, tones)

	for _, bad := range []string{"", ",", "five", "1,NaN", "Inf"} {
		_, err := parseTones(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestBatchOutputPath(t *testing.T) {
	tests := []struct {
		path string
		n    float64
		want string
	}{
		{"out.wav", 5, "out_+5st.wav"},
		{"out.wav", -10, "out_-10st.wav"},
		{"dir/take.WAV", 0, "dir/take_+0st.WAV"},
		{"noext", 2.5, "noext_+2.5st.wav"},
		{"out.wav", math.Copysign(0, -1), "out_+0st.wav"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, batchOutputPath(tt.path, tt.n))
	}
}

func TestSemitoneLabel(t *testing.T) {
	assert.Equal(t, "+5st", semitoneLabel(5))
	assert.Equal(t, "-10st", semitoneLabel(-10))
	assert.Equal(t, "+0st", semitoneLabel(0))
	assert.Equal(t, "+0st", semitoneLabel(math.Copysign(0, -1)))
	assert.Equal(t, "-0.5st", semitoneLabel(-0.5))
}

func TestTransform_Modes(t *testing.T) {
	tr := smallTransformer(t)
	samples := testutil.Sine16(8000, 440, testRate, 10000)

	speed, err := transform(tr, &jobSpec{mode: modeSpeed, factor: 2}, samples)
	require.NoError(t, err)
	require.Len(t, speed, 1)
	assert.Len(t, speed[0].samples, 4000)

	slow, err := transform(tr, &jobSpec{mode: modeStretch, factor: 0.5}, samples)
	require.NoError(t, err)
	require.Len(t, slow, 1)
	assert.Len(t, slow[0].samples, 16000+1024)

	pitch, err := transform(tr, &jobSpec{mode: modePitch, semitones: 0}, samples)
	require.NoError(t, err)
	require.Len(t, pitch, 1)
	assert.Len(t, pitch[0].samples, len(samples))
	assert.Equal(t, "+0st", pitch[0].label)

	batch, err := transform(tr, &jobSpec{mode: modeBatch, tones: []float64{3, -3}}, samples)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.InDelta(t, -3.0, batch[1].semitones, 0)
	assert.Equal(t, "-3st", batch[1].label)

	_, err = transform(tr, &jobSpec{mode: "rewind"}, samples)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")

	_, err = transform(tr, &jobSpec{mode: modeSpeed, factor: -1}, samples)
	require.ErrorIs(t, err, stretch.ErrInvalidFactor)
}

func TestProcessWAV_Batch(t *testing.T) {
	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "in.wav")
	outputPath := filepath.Join(tmpDir, "out.wav")
	require.NoError(t, writeWAV(inputPath, testRate, testutil.Sine16(8000, 440, testRate, 10000)))

	tr := smallTransformer(t)
	stats, err := processWAV(tr, &jobSpec{mode: modeBatch, tones: []float64{5, -5}}, inputPath, outputPath, false)
	require.NoError(t, err)

	assert.Equal(t, testRate, stats.rate)
	assert.Equal(t, 8000, stats.inputSamples)
	require.Len(t, stats.outputs, 2)

	for _, name := range []string{"out_+5st.wav", "out_-5st.wav"} {
		in, err := openWAVInput(filepath.Join(tmpDir, name), false)
		require.NoError(t, err, name)
		got, err := in.readAll(false)
		require.NoError(t, err)
		require.NoError(t, in.Close())
		testutil.AssertLengthNear(t, 8000, len(got), 2, name)
	}
}

func TestProgressTracker_VerboseMode(t *testing.T) {
	tracker := newProgressTracker(1000, true)
	require.NotNil(t, tracker)

	assert.Equal(t, int64(1000), tracker.totalSamples)
	assert.True(t, tracker.verbose)
	assert.Equal(t, 0, tracker.lastProgress)

	tracker.reportIfNeeded(250)
	assert.Equal(t, 25, tracker.lastProgress)
}

func TestProgressTracker_NonVerboseMode(t *testing.T) {
	tracker := newProgressTracker(1000, false)
	require.NotNil(t, tracker)

	assert.False(t, tracker.verbose)
	// reportIfNeeded should do nothing in non-verbose mode
	tracker.reportIfNeeded(500)
	assert.Equal(t, 0, tracker.lastProgress)
}

func TestProgressTracker_ZeroSamples(t *testing.T) {
	tracker := newProgressTracker(0, true)
	require.NotNil(t, tracker)

	// Should not panic with zero samples
	tracker.reportIfNeeded(100)
}

func writeTestWAV(t *testing.T, path string, bitDepth, channels int, data []int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	enc := wav.NewEncoder(f, testRate, bitDepth, channels, wavFormatPCM)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: testRate, NumChannels: channels},
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())
}
