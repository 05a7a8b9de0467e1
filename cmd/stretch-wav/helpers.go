package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	stretch "github.com/tphakala/go-audio-stretch"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	totalSamples int64
	format       *audio.Format
}

// openWAVInput opens a WAV file and checks that it is mono 16-bit PCM.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	// Open input file
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	// Create WAV decoder
	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	// Read format info
	format := decoder.Format()
	inputRate := format.SampleRate
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", inputRate, channels, bitDepth)
	}

	if channels != monoChannels {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported channel count %d: only mono input is supported", channels)
	}
	if bitDepth != bitsPerSample16 {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d: only 16-bit PCM is supported", bitDepth)
	}

	// Get total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalSamples := int64(duration.Seconds() * float64(inputRate))

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         inputRate,
		totalSamples: totalSamples,
		format:       format,
	}, nil
}

// readAll decodes every sample of the input. The transforms need the whole
// signal, so the decoder is drained in fixed-size chunks.
func (w *wavInputInfo) readAll(verbose bool) ([]int16, error) {
	buf := &audio.IntBuffer{
		Data:   make([]int, bufferSize),
		Format: w.format,
	}

	samples := make([]int16, 0, max(w.totalSamples, 0))
	progress := newProgressTracker(w.totalSamples, verbose)

	for {
		n, err := w.decoder.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}

		for _, v := range buf.Data[:n] {
			samples = append(samples, int16(v))
		}
		progress.reportIfNeeded(int64(len(samples)))
	}

	return samples, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// writeWAV writes samples as a mono 16-bit PCM WAV file.
func writeWAV(path string, sampleRate int, samples []int16) (err error) {
	// Create output file
	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	// Close output, capturing close errors on success path
	defer func() {
		if closeErr := outputFile.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	encoder := wav.NewEncoder(outputFile, sampleRate, bitsPerSample16, monoChannels, wavFormatPCM)

	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: monoChannels},
		SourceBitDepth: bitsPerSample16,
	}

	if err := encoder.Write(buf); err != nil {
		_ = encoder.Close()
		return fmt.Errorf("failed to write audio data: %w", err)
	}

	// The encoder finalizes the RIFF header sizes on close
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	return nil
}

// resolveFactor returns factor when it was given explicitly, otherwise the
// semitone ratio of semitones.
func resolveFactor(factor, semitones float64) float64 {
	if factor != 0 {
		return factor
	}
	return stretch.SemitoneRatio(semitones)
}

// parseTones parses a comma-separated list of semitone counts.
func parseTones(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	tones := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid semitone value %q: %w", f, err)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("invalid semitone value %q: must be finite", f)
		}
		tones = append(tones, n)
	}
	if len(tones) == 0 {
		return nil, fmt.Errorf("no semitone values in %q", s)
	}
	return tones, nil
}

// semitoneLabel formats a shift with an explicit sign, e.g. "+5st".
func semitoneLabel(n float64) string {
	if n == 0 {
		n = 0 // drop the sign of -0
	}
	label := strconv.FormatFloat(n, 'f', -1, 64) + "st"
	if n >= 0 {
		label = "+" + label
	}
	return label
}

// batchOutputPath derives the file name for one batch entry from the
// output path: out.wav with +5 semitones becomes out_+5st.wav.
func batchOutputPath(path string, n float64) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if ext == "" {
		ext = ".wav"
	}
	return base + "_" + semitoneLabel(n) + ext
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Reading: %d%%", progress)
		p.lastProgress = progress
	}
}
