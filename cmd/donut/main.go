package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"golang.org/x/term"

	"ascii-donut/internal/anim"
	"ascii-donut/internal/config"
	"ascii-donut/internal/display"
)

const (
	logDir      = "logs"
	logFileName = "donut.log"
)

func main() {
	preset := flag.String("preset", "", "preset: "+strings.Join(config.PresetNames(), ", "))
	displayName := flag.String("display", "", "display: "+strings.Join(config.Displays, ", "))
	fps := flag.Int("fps", 0, "frames per second (default from preset)")
	frames := flag.Int64("frames", -1, "frames to play, 0 plays forever (default from preset)")
	ramp := flag.String("ramp", "", "glyphs from darkest to brightest")
	noColor := flag.Bool("no-color", false, "plain glyphs without shading")
	hold := flag.Bool("hold", true, "keep the last frame until a quit key")
	debugLog := flag.Bool("debug", false, "write logs to "+filepath.Join(logDir, logFileName))
	flag.Parse()

	if logFile := setupLogging(*debugLog); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig(*preset, *displayName, *fps, *frames, *ramp, *noColor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "donut: %v\n", err)
		os.Exit(2)
	}

	surface, err := newSurface(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "donut: %v\n", err)
		os.Exit(1)
	}

	if err := surface.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "donut: %v\n", err)
		os.Exit(1)
	}

	// Panic recovery: restore the terminal before reporting the crash
	defer func() {
		if r := recover(); r != nil {
			surface.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mDONUT CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	w, h := surface.Size()
	log.Printf("Display %s %dx%d, preset %s", cfg.Display, w, h, cfg.Preset)

	loop := anim.NewLoop(cfg.Schedule(), cfg.FPS)

	runErr := display.Run(surface, loop, cfg.Pipeline, *hold && term.IsTerminal(int(os.Stdin.Fd())))
	loop.Stop()
	surface.Fini()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "donut: %v\n", runErr)
		os.Exit(1)
	}
}

// loadConfig layers the preset, the environment and the flags.
func loadConfig(preset, displayName string, fps int, frames int64, ramp string, noColor bool) (config.Config, error) {
	cfg := config.Default()
	if preset != "" {
		p, err := config.FromPreset(preset)
		if err != nil {
			return cfg, err
		}
		cfg = p
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	if displayName != "" {
		cfg.Display = displayName
	}
	if fps > 0 {
		cfg.FPS = fps
	}
	if frames >= 0 {
		cfg.Frames = uint64(frames)
	}
	if ramp != "" {
		cfg.Ramp = ramp
	}
	if noColor {
		cfg.Color = false
	}
	return cfg, cfg.Validate()
}

func newSurface(cfg config.Config) (display.Surface, error) {
	ramp, err := cfg.GlyphRamp()
	if err != nil {
		return nil, err
	}
	switch cfg.Display {
	case config.DisplayTcell:
		return display.NewTcell(nil, ramp, cfg.Color)
	case config.DisplayTermbox:
		return display.NewTermbox(ramp, cfg.Color), nil
	case config.DisplayTea:
		return display.NewTea(cfg.Preset), nil
	default:
		// only a terminal can send quit keys; piped input would end at EOF
		var in io.Reader
		if term.IsTerminal(int(os.Stdin.Fd())) {
			in = os.Stdin
		}
		return display.NewANSI(os.Stdout, in, ramp, cfg.Color), nil
	}
}

// setupLogging sends log output to a file in debug mode and discards it
// otherwise, so log lines never land on the animated screen.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.Ltime | log.Lshortfile)
	return f
}
