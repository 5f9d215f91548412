// Command yinpitch prints the pitch of successive frames of a WAV file or a
// synthesized tone.
//
// Usage:
//
//	yinpitch [flags] [file.wav]
//
// Examples:
//
//	yinpitch guitar.wav
//	yinpitch -frame 4096 -threshold 0.15 cello.wav
//	yinpitch -tone 440 -partials 6 -noise 0.05
//	yinpitch -tone 220 -lead 0.5
//	yinpitch -backend gonum -v voice.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	ossignal "os/signal"
	"text/tabwriter"

	"github.com/cwbudde/algo-pitch/dsp/realfft"
	"github.com/cwbudde/algo-pitch/dsp/signal"
	"github.com/cwbudde/algo-pitch/dsp/tuner"
	"github.com/cwbudde/algo-pitch/dsp/yin"
)

type config struct {
	path      string
	frame     int
	hop       int
	threshold float64
	backend   string
	gate      float64
	smooth    int
	tone      float64
	partials  int
	noise     float64
	lead      float64
	rate      int
	duration  float64
	verbose   bool
}

func main() {
	var cfg config
	flag.IntVar(&cfg.frame, "frame", 2048, "frame length in samples")
	flag.IntVar(&cfg.hop, "hop", 0, "hop between frames in samples (default frame/2)")
	flag.Float64Var(&cfg.threshold, "threshold", yin.DefaultThreshold, "YIN threshold in (0,1)")
	flag.StringVar(&cfg.backend, "backend", realfft.BackendAlgoFFT.String(), "FFT backend: algofft, gonum, godsp")
	flag.Float64Var(&cfg.gate, "gate", tuner.DefaultLevelGate, "skip frames whose peak level is below this")
	flag.IntVar(&cfg.smooth, "smooth", tuner.DefaultSmoothingWindow, "number of readings to smooth over (1 disables)")
	flag.Float64Var(&cfg.tone, "tone", 0, "synthesize a tone at this frequency instead of reading a file")
	flag.IntVar(&cfg.partials, "partials", 1, "number of harmonics in the synthesized tone")
	flag.Float64Var(&cfg.noise, "noise", 0, "white noise amplitude added to the synthesized tone")
	flag.Float64Var(&cfg.lead, "lead", 0, "seconds of silence before the synthesized tone")
	flag.IntVar(&cfg.rate, "rate", 44100, "sample rate of the synthesized tone")
	flag.Float64Var(&cfg.duration, "duration", 1, "duration of the synthesized tone in seconds")
	flag.BoolVar(&cfg.verbose, "v", false, "log diagnostics to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: yinpitch [flags] [file.wav]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the detected pitch of each analysis frame.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  yinpitch guitar.wav\n")
		fmt.Fprintf(os.Stderr, "  yinpitch -tone 440 -partials 6 -noise 0.05\n")
	}
	flag.Parse()

	if flag.NArg() > 0 {
		cfg.path = flag.Arg(0)
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(ctx, cfg, os.Stdout, logger); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, out io.Writer, logger *slog.Logger) error {
	backend, err := realfft.ParseBackend(cfg.backend)
	if err != nil {
		return err
	}

	src, sampleRate, closeSrc, err := openSource(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSrc()

	engine, err := yin.New(sampleRate, cfg.frame,
		yin.WithThreshold(cfg.threshold),
		yin.WithBackend(backend),
		yin.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := []tuner.Option{
		tuner.WithLevelGate(cfg.gate),
		tuner.WithSmoothing(cfg.smooth),
		tuner.WithLogger(logger),
	}
	if cfg.hop > 0 {
		opts = append(opts, tuner.WithHop(cfg.hop))
	}
	tr, err := tuner.NewTracker(engine, opts...)
	if err != nil {
		return err
	}

	lo, hi := engine.Config().FrequencyRange()
	logger.Debug("analysis range", "min_hz", lo, "max_hz", hi, "hop", tr.Hop())

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Frame\tTime [s]\tPitch [Hz]\tNote\tCents\tPeak\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	var writeErr error
	err = tr.Run(ctx, src, func(ev tuner.Event) {
		if writeErr != nil {
			return
		}
		writeErr = writeRow(tw, ev, sampleRate)
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("write row: %w", writeErr)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, ev tuner.Event, sampleRate int) error {
	t := float64(ev.Start) / float64(sampleRate)
	switch {
	case ev.Gated:
		_, err := fmt.Fprintf(w, "%d\t%.3f\t-\tquiet\t-\t%.4f\n", ev.Index, t, ev.Peak)
		return err
	case !ev.Found:
		_, err := fmt.Fprintf(w, "%d\t%.3f\t-\t-\t-\t%.4f\n", ev.Index, t, ev.Peak)
		return err
	default:
		_, err := fmt.Fprintf(w, "%d\t%.3f\t%.2f\t%s\t%+.1f\t%.4f\n",
			ev.Index, t, ev.State.Hz, ev.State.Note.Name, ev.State.Cents, ev.Peak)
		return err
	}
}

func openSource(cfg config, logger *slog.Logger) (tuner.Source, int, func(), error) {
	if cfg.tone > 0 {
		samples, err := synthesize(cfg)
		if err != nil {
			return nil, 0, nil, err
		}
		return tuner.NewSliceSource(samples), cfg.rate, func() {}, nil
	}

	if cfg.path == "" {
		return nil, 0, nil, errors.New("no input: pass a WAV file or -tone")
	}

	w, err := openWAV(cfg.path)
	if err != nil {
		return nil, 0, nil, err
	}
	logger.Debug("wav input",
		"path", cfg.path,
		"sample_rate", w.SampleRate(),
		"samples", w.Len(),
		"seconds", float64(w.Len())/float64(w.SampleRate()),
	)
	return w, w.SampleRate(), func() { _ = w.Close() }, nil
}

func synthesize(cfg config) ([]float64, error) {
	g, err := signal.NewGenerator(float64(cfg.rate))
	if err != nil {
		return nil, err
	}

	n := int(cfg.duration * float64(cfg.rate))
	samples, err := g.Harmonic(cfg.tone, 0.5, cfg.partials, n)
	if err != nil {
		return nil, err
	}

	if cfg.noise > 0 {
		noise, err := g.WhiteNoise(cfg.noise, n)
		if err != nil {
			return nil, err
		}
		if err := signal.AddInPlace(samples, noise); err != nil {
			return nil, err
		}
	}

	if cfg.lead > 0 {
		silence, err := g.Silence(int(cfg.lead * float64(cfg.rate)))
		if err != nil {
			return nil, err
		}
		samples = append(silence, samples...)
	}
	return samples, nil
}
