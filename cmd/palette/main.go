// Command palette prints generated palettes as terminal swatches.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/color-palette/api/colorspace"
	"github.com/color-palette/api/models"
	"github.com/color-palette/api/naming"
	"github.com/color-palette/api/palette"
)

type options struct {
	harmony  models.Harmony
	style    models.Style
	count    int
	seed     int64
	name     bool
	strategy string
	noColor  bool
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	harmony := fs.String("harmony", string(models.HarmonyRandom), "harmony: "+joinHarmonies())
	style := fs.String("style", string(models.StyleRetro), "style: retro, modern, pastel, vibrant")
	count := fs.Int("n", 1, "number of palettes")
	seed := fs.Int64("seed", 0, "random seed, 0 uses the clock")
	name := fs.Bool("name", false, "name each palette")
	strategy := fs.String("strategy", "plain", "naming strategy: plain, rhyming")
	noColor := fs.Bool("no-color", false, "print hex codes only")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{count: *count, seed: *seed, name: *name, strategy: *strategy, noColor: *noColor}
	var err error
	if opts.harmony, err = models.ParseHarmony(*harmony); err != nil {
		return options{}, err
	}
	if opts.style, err = models.ParseStyle(*style); err != nil {
		return options{}, err
	}
	if opts.count < 1 {
		return options{}, fmt.Errorf("-n must be at least 1")
	}
	return opts, nil
}

func joinHarmonies() string {
	names := make([]string, len(models.Harmonies))
	for i, h := range models.Harmonies {
		names[i] = string(h)
	}
	return strings.Join(names, ", ")
}

// swatch renders hex as a colored block followed by its code
func swatch(hex string) string {
	r, g, b := colorspace.RGB(hex)
	block := color.BgRGB(r, g, b).Sprint("      ")
	return block + " " + hex
}

func render(w io.Writer, p models.Palette, name string) {
	header := color.New(color.Bold).Sprintf("%s / %s", p.Harmony, p.Style)
	if name != "" {
		header += "  " + color.New(color.FgHiCyan).Sprint(name)
	}
	fmt.Fprintln(w, header)
	for _, c := range p.Colors {
		fmt.Fprintln(w, "  "+swatch(c))
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.noColor {
		color.NoColor = true
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := palette.NewEngineWithRand(rand.New(rand.NewSource(seed)))

	var namer *naming.Namer
	if opts.name {
		strategy, err := naming.StrategyByName(opts.strategy)
		if err != nil {
			return err
		}
		var completer naming.Completer
		if key := os.Getenv("NAMING_API_KEY"); key != "" {
			completer = naming.NewChatService(os.Getenv("NAMING_API_URL"), key, os.Getenv("NAMING_MODEL"))
		}
		namer = naming.NewNamer(completer, strategy, 0, rand.New(rand.NewSource(seed)))
	}

	for i := 0; i < opts.count; i++ {
		p := engine.Generate(opts.harmony, opts.style)
		name := ""
		if namer != nil {
			name = namer.GeneratePaletteName(ctx, p.Colors)
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		render(out, p, name)
	}
	return nil
}

func main() {
	_ = godotenv.Load()
	log.SetFlags(0)

	if err := run(context.Background(), os.Args[1:], color.Output); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("palette: %v", err)
	}
}
