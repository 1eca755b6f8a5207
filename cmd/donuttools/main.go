package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"ascii-donut/internal/config"
	"ascii-donut/internal/render"
)

var headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "frame":
		os.Exit(runFrame(os.Stdout, os.Stderr, args))
	case "stats":
		os.Exit(runStats(os.Stdout, os.Stderr, args))
	case "presets":
		os.Exit(runPresets(os.Stdout))
	case "all":
		os.Exit(runAll(os.Stdout, os.Stderr, args))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: donuttools <command> [flags]

Commands:
  frame    Print one frame as plain text
  stats    Coverage and brightness over the animation schedule
  presets  List presets and their parameters
  all      Run presets, then frame + stats for every preset

Common flags:
  -preset <name>  -w <cols>  -h <rows>`)
}

// viewFlags are the flags every rendering command shares.
type viewFlags struct {
	preset        string
	width, height int
}

func (v *viewFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&v.preset, "preset", config.PresetReference, "preset name")
	fs.IntVar(&v.width, "w", 80, "viewport columns")
	fs.IntVar(&v.height, "h", 24, "viewport rows")
}

func (v *viewFlags) pipeline() (config.Config, *render.Pipeline, error) {
	cfg, err := config.FromPreset(v.preset)
	if err != nil {
		return cfg, nil, err
	}
	p, err := cfg.Pipeline(v.width, v.height)
	return cfg, p, err
}

// --- frame ---

func runFrame(stdout, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("frame", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var v viewFlags
	v.register(fs)
	a := fs.Float64("a", 0, "rotation angle A")
	b := fs.Float64("b", 0, "rotation angle B")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	_, p, err := v.pipeline()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fb := p.Frame(*a, *b)
	fmt.Fprintln(stdout, fb.String())
	return 0
}

// --- stats ---

// frameStats summarizes one rendered frame.
type frameStats struct {
	coverage   float64 // percent of cells drawn
	brightness float64 // mean glyph brightness of drawn cells
}

func measure(fb render.FrameBuffer, ramp render.GlyphRamp) frameStats {
	drawn := 0
	sum := 0.0
	for _, c := range fb.Cells {
		if c == render.Blank {
			continue
		}
		drawn++
		sum += ramp.Brightness(c)
	}
	s := frameStats{coverage: float64(drawn) / float64(len(fb.Cells)) * 100}
	if drawn > 0 {
		s.brightness = sum / float64(drawn)
	}
	return s
}

func runStats(stdout, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var v viewFlags
	v.register(fs)
	frames := fs.Int("frames", 0, "frames to sample (default: one turn of angle A)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, p, err := v.pipeline()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	n := *frames
	if n <= 0 {
		n = int(math.Ceil(2 * math.Pi / cfg.Step))
	}
	ramp := p.Rasterizer.Ramp()
	schedule := cfg.Schedule()

	coverage := make([]float64, 0, n)
	brightness := make([]float64, 0, n)
	glyphs := make(map[rune]int)
	for i := 0; i < n; i++ {
		a, b := schedule.Angles(uint64(i))
		fb := p.Frame(a, b)
		s := measure(fb, ramp)
		coverage = append(coverage, s.coverage)
		brightness = append(brightness, s.brightness)
		for _, c := range fb.Cells {
			if c != render.Blank {
				glyphs[c]++
			}
		}
	}

	fmt.Fprintln(stdout, headingStyle.Render(fmt.Sprintf("%s %dx%d, %d frames", cfg.Preset, v.width, v.height, n)))
	fmt.Fprintln(stdout, asciigraph.Plot(coverage, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("coverage %")))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, asciigraph.Plot(brightness, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("mean brightness")))
	fmt.Fprintln(stdout)

	writeGlyphHistogram(stdout, ramp, glyphs)
	return 0
}

// writeGlyphHistogram prints glyph counts, darkest glyph first.
func writeGlyphHistogram(w io.Writer, ramp render.GlyphRamp, counts map[rune]int) {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		fmt.Fprintln(w, "  no glyphs drawn")
		return
	}

	var order []rune
	for r := range counts {
		order = append(order, r)
	}
	sort.Slice(order, func(i, j int) bool {
		ri, _ := ramp.Rank(order[i])
		rj, _ := ramp.Rank(order[j])
		return ri < rj
	})

	for _, r := range order {
		pct := float64(counts[r]) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Fprintf(w, "  %q %7d (%5.1f%%) %s\n", r, counts[r], pct, bar)
	}
}

// --- presets ---

func runPresets(stdout io.Writer) int {
	fmt.Fprintln(stdout, headingStyle.Render("Presets"))
	for _, name := range config.PresetNames() {
		c, err := config.FromPreset(name)
		if err != nil {
			continue
		}
		limit := "forever"
		if c.Frames > 0 {
			limit = fmt.Sprintf("%d frames", c.Frames)
		}
		fmt.Fprintf(stdout, "  %-10s r1=%-4v n1=%-4d r2=%-4v n2=%-4d k1=%-4v k2=%-4v %2d fps, step %.2f ratio %.2f, %s, ramp %q\n",
			name, c.R1, c.N1, c.R2, c.N2, c.K1, c.K2, c.FPS, c.Step, c.Ratio, limit, c.Ramp)
	}
	return 0
}

// --- all ---

func runAll(stdout, stderr io.Writer, args []string) int {
	fmt.Fprintln(stdout, "=== PRESETS ===")
	runPresets(stdout)

	for _, name := range config.PresetNames() {
		presetArgs := append([]string{"-preset", name}, args...)
		fmt.Fprintf(stdout, "\n=== FRAME: %s ===\n", name)
		if code := runFrame(stdout, stderr, presetArgs); code != 0 {
			return code
		}
		fmt.Fprintf(stdout, "\n=== STATS: %s ===\n", name)
		if code := runStats(stdout, stderr, presetArgs); code != 0 {
			return code
		}
	}
	return 0
}
