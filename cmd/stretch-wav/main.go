// Command stretch-wav time-stretches, speeds up or pitch-shifts mono 16-bit
// WAV files.
//
// Usage:
//
//	stretch-wav -mode pitch -semitones 7 input.wav output.wav
//	stretch-wav -mode stretch -factor 0.5 input.wav slower.wav   # twice as long, same pitch
//	stretch-wav -mode speed -semitones -12 input.wav tape.wav    # half speed, octave down
//	stretch-wav -mode batch input.wav shifted.wav                # shifted_+5st.wav, shifted_-10st.wav, ...
//
// When -factor is not given, the stretch and speed modes use the semitone
// ratio 2^(n/12) of -semitones.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	stretch "github.com/tphakala/go-audio-stretch"
	"github.com/tphakala/go-audio-stretch/internal/simdops"
)

const (
	// Samples per decoder read
	bufferSize = 65536

	// Only mono 16-bit PCM is processed
	monoChannels    = 1
	bitsPerSample16 = 16

	// WAV audio format tag for integer PCM
	wavFormatPCM = 1

	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// CLI defaults
	defaultMode      = modePitch
	defaultSemitones = 5.0
	defaultTones     = "5,10,20,-5,-10,-20"
	minRequiredArgs  = 2
)

// Processing modes
const (
	modeStretch = "stretch"
	modeSpeed   = "speed"
	modePitch   = "pitch"
	modeBatch   = "batch"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse command line flags
	mode := flag.String("mode", defaultMode, "Transform: stretch, speed, pitch, batch")
	semitones := flag.Float64("semitones", defaultSemitones, "Pitch shift in semitones (also sets the stretch/speed factor 2^(n/12))")
	factor := flag.Float64("factor", 0, "Explicit stretch/speed factor (>1 faster, <1 slower); overrides -semitones")
	tones := flag.String("tones", defaultTones, "Comma-separated semitone list for batch mode")
	window := flag.Int("window", stretch.DefaultWindowSize, "Analysis window size in samples")
	hop := flag.Int("hop", stretch.DefaultHop, "Analysis hop in samples")
	wrap := flag.String("wrap", "true", "Phase wrapping: true, legacy")
	simd := flag.Bool("simd", true, "Enable SIMD kernels")
	parallel := flag.Bool("parallel", true, "Run batch shifts concurrently")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	// Validate arguments before setting up profiling
	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -mode pitch -semitones 12 voice.wav voice_up.wav  # Octave up\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -mode stretch -factor 0.5 loop.wav loop_slow.wav  # Twice as long\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -mode batch voice.wav voice.wav                   # voice_+5st.wav ...\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	// Start CPU profiling if requested (for PGO)
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]

	wrapMode, err := stretch.ParsePhaseWrap(strings.ToLower(*wrap))
	if err != nil {
		return err
	}

	config := stretch.Config{
		WindowSize:     *window,
		Hop:            *hop,
		PhaseWrap:      wrapMode,
		EnableSIMD:     *simd,
		EnableParallel: *parallel,
	}
	t, err := stretch.New(&config)
	if err != nil {
		return err
	}

	job := &jobSpec{
		mode:      strings.ToLower(*mode),
		semitones: *semitones,
		factor:    resolveFactor(*factor, *semitones),
	}
	if job.mode == modeBatch {
		job.tones, err = parseTones(*tones)
		if err != nil {
			return err
		}
	}

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Mode: %s", job.mode)
		switch job.mode {
		case modePitch:
			log.Printf("Semitones: %g", job.semitones)
		case modeBatch:
			log.Printf("Tones: %v", job.tones)
		default:
			log.Printf("Factor: %.6f", job.factor)
		}
		log.Printf("Window: %d, hop: %d, phase wrap: %s", config.WindowSize, config.Hop, config.PhaseWrap)
		if config.EnableSIMD {
			log.Printf("SIMD: %s", simdops.Info())
		} else {
			log.Printf("SIMD: disabled (pure Go)")
		}
	}

	// Process the file
	start := time.Now()
	stats, err := processWAV(t, job, inputPath, outputPath, *verbose)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Print summary
	for _, out := range stats.outputs {
		fmt.Printf("Processed %s -> %s\n", filepath.Base(inputPath), filepath.Base(out.path))
		fmt.Printf("  %s, %d samples -> %d samples\n", out.label, stats.inputSamples, out.samples)
	}
	fmt.Printf("  %d Hz mono 16-bit, Duration: %.2fs, Speed: %.1fx realtime\n",
		stats.rate,
		elapsed.Seconds(),
		float64(stats.inputSamples)/float64(stats.rate)/elapsed.Seconds())

	return nil
}

// jobSpec describes one invocation's transform.
type jobSpec struct {
	mode      string
	semitones float64
	factor    float64
	tones     []float64
}

type outputStats struct {
	path    string
	label   string
	samples int
}

type processStats struct {
	rate         int
	inputSamples int
	outputs      []outputStats
}

func processWAV(t *stretch.Transformer, job *jobSpec, inputPath, outputPath string, verbose bool) (*processStats, error) {
	// 1. Read and validate input
	input, err := openWAVInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	samples, err := input.readAll(verbose)
	closeErr := input.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close input file: %w", closeErr)
	}

	stats := &processStats{
		rate:         input.rate,
		inputSamples: len(samples),
	}

	// 2. Transform
	results, err := transform(t, job, samples)
	if err != nil {
		return nil, err
	}

	// 3. Write outputs
	for _, r := range results {
		path := outputPath
		if job.mode == modeBatch {
			path = batchOutputPath(outputPath, r.semitones)
		}
		if verbose {
			log.Printf("Writing %d samples to %s", len(r.samples), path)
		}
		if err := writeWAV(path, input.rate, r.samples); err != nil {
			return nil, err
		}
		stats.outputs = append(stats.outputs, outputStats{
			path:    path,
			label:   r.label,
			samples: len(r.samples),
		})
	}

	return stats, nil
}

type transformResult struct {
	label     string
	semitones float64
	samples   []int16
}

// transform applies the job's mode to samples.
func transform(t *stretch.Transformer, job *jobSpec, samples []int16) ([]transformResult, error) {
	switch job.mode {
	case modeStretch:
		out, err := t.Stretch(samples, job.factor)
		if err != nil {
			return nil, fmt.Errorf("stretch failed: %w", err)
		}
		return []transformResult{{label: fmt.Sprintf("stretch x%.4f", job.factor), samples: out}}, nil

	case modeSpeed:
		out, err := t.Speedx(samples, job.factor)
		if err != nil {
			return nil, fmt.Errorf("speed change failed: %w", err)
		}
		return []transformResult{{label: fmt.Sprintf("speed x%.4f", job.factor), samples: out}}, nil

	case modePitch:
		out, err := t.PitchShift(samples, job.semitones)
		if err != nil {
			return nil, fmt.Errorf("pitch shift failed: %w", err)
		}
		return []transformResult{{label: semitoneLabel(job.semitones), semitones: job.semitones, samples: out}}, nil

	case modeBatch:
		outs, err := t.PitchShiftBatch(samples, job.tones)
		if err != nil {
			return nil, fmt.Errorf("batch pitch shift failed: %w", err)
		}
		results := make([]transformResult, len(outs))
		for i, out := range outs {
			results[i] = transformResult{label: semitoneLabel(job.tones[i]), semitones: job.tones[i], samples: out}
		}
		return results, nil

	default:
		return nil, fmt.Errorf("unknown mode %q (want %s, %s, %s or %s)", job.mode, modeStretch, modeSpeed, modePitch, modeBatch)
	}
}
