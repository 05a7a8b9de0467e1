// Command stretch-demo runs a synthetic tone through each transform and
// reports the resulting length and dominant frequency.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	stretch "github.com/tphakala/go-audio-stretch"
	"github.com/tphakala/go-audio-stretch/internal/analysis"
	"github.com/tphakala/go-audio-stretch/internal/simdops"
)

func main() {
	// Command-line flags
	var (
		sampleRate = flag.Float64("rate", defaultSampleRate, "Sample rate in Hz")
		frequency  = flag.Float64("freq", defaultFrequency, "Test tone frequency in Hz")
		duration   = flag.Float64("duration", defaultDuration, "Test tone duration in seconds")
		semitones  = flag.Float64("semitones", defaultSemitones, "Pitch shift in semitones")
		window     = flag.Int("window", stretch.DefaultWindowSize, "Analysis window size in samples")
		hop        = flag.Int("hop", stretch.DefaultHop, "Analysis hop in samples")
		demo       = flag.Bool("demo", false, "Run the full demonstration")
	)
	flag.Parse()

	config := stretch.DefaultConfig()
	config.WindowSize = *window
	config.Hop = *hop

	t, err := stretch.New(&config)
	if err != nil {
		log.Fatalf("Failed to create transformer: %v", err)
	}

	input := generateTestSignal(int(*sampleRate * *duration), *frequency, *sampleRate)

	fmt.Printf("Transformer created:\n")
	fmt.Printf("  Window: %d samples, hop: %d samples\n", config.WindowSize, config.Hop)
	fmt.Printf("  Phase wrap: %s\n", config.PhaseWrap)
	fmt.Printf("  SIMD: %v (%s)\n", config.EnableSIMD, simdops.Info())

	if *demo {
		runDemo(t, input, *frequency, *sampleRate)
		return
	}

	fmt.Printf("\nPitch shifting %.0f Hz by %+g semitones...\n", *frequency, *semitones)
	output, err := t.PitchShift(input, *semitones)
	if err != nil {
		log.Fatalf("Processing failed: %v", err)
	}

	report("input", input, *sampleRate)
	report("output", output, *sampleRate)
	fmt.Printf("Expected frequency: %.1f Hz\n", *frequency*stretch.SemitoneRatio(*semitones))
}

func generateTestSignal(samples int, frequency, sampleRate float64) []int16 {
	signal := make([]int16, samples)
	omega := 2 * math.Pi * frequency / sampleRate

	for i := range signal {
		signal[i] = int16(testSignalAmplitude * math.Sin(omega*float64(i)))
	}

	return signal
}

func report(name string, s []int16, sampleRate float64) {
	x := stretch.Int16ToFloat64(s)
	fmt.Printf("  %-10s %7d samples, %8.1f Hz, peak %6.0f, rms %7.1f\n",
		name, len(s), analysis.DominantFrequency(x, sampleRate), analysis.Peak(x), analysis.RMS(x))
}

func runDemo(t *stretch.Transformer, input []int16, frequency, sampleRate float64) {
	fmt.Println("\n=== Go Audio Stretch Demo ===")

	// Demo 1: Time stretching keeps pitch
	fmt.Println("\n1. Stretch (duration changes, pitch kept)")
	fmt.Println("-----------------------------------------")
	report("input", input, sampleRate)
	for _, f := range demoFactors {
		out, err := t.Stretch(input, f)
		if err != nil {
			fmt.Printf("  x%.2f: Error - %v\n", f, err)
			continue
		}
		report(fmt.Sprintf("x%.2f", f), out, sampleRate)
	}

	// Demo 2: Speed change moves both
	fmt.Println("\n2. Speed (duration and pitch change together)")
	fmt.Println("---------------------------------------------")
	for _, f := range demoFactors {
		out, err := t.Speedx(input, f)
		if err != nil {
			fmt.Printf("  x%.2f: Error - %v\n", f, err)
			continue
		}
		report(fmt.Sprintf("x%.2f", f), out, sampleRate)
	}

	// Demo 3: Pitch shift keeps duration
	fmt.Println("\n3. Pitch shift (pitch changes, duration kept)")
	fmt.Println("---------------------------------------------")
	outs, err := t.PitchShiftBatch(input, stretch.DemoTones)
	if err != nil {
		fmt.Printf("  Error - %v\n", err)
	} else {
		for i, n := range stretch.DemoTones {
			report(fmt.Sprintf("%+gst", n), outs[i], sampleRate)
			fmt.Printf("  %-10s expected %8.1f Hz\n", "", frequency*stretch.SemitoneRatio(n))
		}
	}

	fmt.Println("\n=== Demo Complete ===")
}
