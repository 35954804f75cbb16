package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/skypro1111/speechkit/audio"
	"github.com/skypro1111/speechkit/internal/config"
	"github.com/skypro1111/speechkit/internal/metrics"
	"github.com/skypro1111/speechkit/internal/server"
	"github.com/skypro1111/speechkit/term"
	"github.com/skypro1111/speechkit/vad"
)

const (
	toolName    = "speechkit"
	toolVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (defaults apply when empty)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [-config config.yaml] file.wav [file.wav ...]\n", toolName)
		os.Exit(2)
	}

	// Load configuration
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Initialize logger based on configuration
	logger := initLogger(cfg.Logging)

	logger.Info("Tool starting",
		slog.String("tool", toolName),
		slog.String("version", toolVersion),
		slog.Int("files", flag.NArg()),
	)
	logger.Info("Configuration loaded",
		slog.Int("sample_rate", cfg.Audio.SampleRate),
		slog.Float64("vad_threshold", float64(cfg.VAD.Threshold)),
		slog.Float64("vad_freq_threshold", float64(cfg.VAD.FreqThreshold)),
		slog.Int("vad_window_ms", cfg.VAD.WindowMS),
		slog.Bool("output_enabled", cfg.Output.Enabled),
		slog.String("log_level", cfg.Logging.Level),
	)

	// Initialize Prometheus metrics
	appMetrics := metrics.NewMetrics()

	// Start the monitoring HTTP server (if enabled)
	var httpServer *server.HTTPServer
	if cfg.HTTP.Enabled {
		httpServer = server.NewHTTPServer(cfg.HTTP, logger, cfg, appMetrics)
		if err := httpServer.Start(); err != nil {
			logger.Error("Failed to start HTTP server", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	exitCode := 0
	for _, path := range flag.Args() {
		if err := processFile(path, cfg, logger, appMetrics); err != nil {
			logger.Error("Failed to process file",
				slog.String("file", path),
				slog.String("error", err.Error()),
			)
			exitCode = 1
		}
	}

	// With the monitoring endpoint enabled, stay up after the batch so the
	// final metrics can still be scraped; shut down on SIGINT/SIGTERM.
	if httpServer != nil {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		logger.Info("Batch complete, monitoring endpoint still serving...")
		sig := <-sigChan
		logger.Info("Received shutdown signal", slog.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping HTTP server", slog.String("error", err.Error()))
		}
	}

	logger.Info("Tool finished")
	os.Exit(exitCode)
}

// processFile runs the full pipeline on one input: decode, pre-filter,
// segment, print, and optionally write segment WAV files.
func processFile(path string, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) error {
	start := time.Now()

	mono, _, err := audio.DecodeWAVFile(path, false)
	if err != nil {
		m.DecodeErrors.Inc()
		return err
	}
	m.FilesDecoded.Inc()
	m.SamplesDecoded.Add(float64(len(mono)))

	if cfg.Audio.HighPassCutoff > 0 {
		vad.HighPass(mono, float32(cfg.Audio.HighPassCutoff), float32(cfg.Audio.SampleRate))
	}

	// Trailing-window diagnostic: whether the file ends in speech.
	detector := &vad.Detector{
		Threshold:     cfg.VAD.Threshold,
		FreqThreshold: cfg.VAD.FreqThreshold,
		WindowMS:      cfg.VAD.WindowMS,
	}
	if cfg.VAD.Verbose {
		detector.Logger = logger
	}
	tailSpeech := detector.SpeechInTail(mono, cfg.Audio.SampleRate)

	segmenter := vad.NewSegmenter(vad.SegmenterConfig{
		SampleRate:         cfg.Audio.SampleRate,
		WindowMS:           cfg.VAD.WindowMS,
		Threshold:          cfg.VAD.Threshold,
		FreqThreshold:      cfg.VAD.FreqThreshold,
		MinSpeechDuration:  cfg.VAD.GetMinSpeechDuration(),
		MinSilenceDuration: cfg.VAD.GetMinSilenceDuration(),
		MaxSegmentDuration: cfg.VAD.GetMaxSegmentDuration(),
	})
	segments := segmenter.Segments(mono)

	m.VADWindowsProcessed.Add(float64(segmenter.WindowsProcessed()))
	m.VADSpeechWindows.Add(float64(segmenter.SpeechWindows()))
	m.SegmentsCreated.Add(float64(len(segments)))
	for _, s := range segments {
		m.SegmentDuration.Observe(s.Duration(cfg.Audio.SampleRate).Seconds())
	}

	printSegments(path, segments, cfg)

	if cfg.Output.Enabled {
		if err := writeSegments(path, mono, segments, cfg, m); err != nil {
			m.EncodeErrors.Inc()
			return err
		}
	}

	m.FileProcessingTime.Observe(time.Since(start).Seconds())
	logger.Info("File processed",
		slog.String("file", path),
		slog.Int("samples", len(mono)),
		slog.Int("segments", len(segments)),
		slog.Bool("tail_speech", tailSpeech),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// printSegments renders one line per segment, colored by segment energy
// relative to the VAD threshold.
func printSegments(path string, segments []vad.Segment, cfg *config.Config) {
	palette := term.ConfidencePalette()
	for _, s := range segments {
		col := palette[energyIndex(s.Energy, cfg.VAD.Threshold, len(palette))]
		fmt.Printf("%s  [%s --> %s]  %senergy=%.4f%s\n",
			path,
			audio.Timestamp(s.T0, false),
			audio.Timestamp(s.T1, false),
			col, s.Energy, term.Reset,
		)
	}
}

// energyIndex maps a segment energy to a palette slot: the threshold itself
// sits in the middle, twice the threshold and above saturates at the top.
func energyIndex(energy, threshold float32, n int) int {
	if threshold <= 0 {
		return n - 1
	}
	idx := int(energy / (2 * threshold) * float32(n))
	return max(0, min(n-1, idx))
}

// writeSegments writes each segment to its own WAV file in the output dir.
func writeSegments(path string, pcm []float32, segments []vad.Segment, cfg *config.Config, m *metrics.Metrics) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var w audio.Writer
	defer w.Close()

	for i, s := range segments {
		name := filepath.Join(cfg.Output.Dir, fmt.Sprintf("%s_%03d.wav", base, i))
		// The decoder mixes the input down to mono, so segment files are
		// always single-channel.
		if err := w.Open(name, cfg.Audio.SampleRate, cfg.Output.BitsPerSample, 1); err != nil {
			return err
		}
		if err := w.Write(pcm[s.Start:s.End]); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		m.SamplesWritten.Add(float64(s.End - s.Start))
	}
	return nil
}

// initLogger creates and configures the structured logger based on configuration
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var output *os.File
	switch cfg.Output {
	case "stdout":
		output = os.Stdout
	case "stderr", "":
		output = os.Stderr
	default:
		// Assume it's a file path
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stderr\n", cfg.Output, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
