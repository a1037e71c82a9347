// Package palette derives five-color palettes from a random seed color using
// color-wheel harmonies, then applies a style filter.
package palette

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/color-palette/api/colorspace"
	"github.com/color-palette/api/models"
)

// Engine generates palettes from a seedable random source. It is safe for
// concurrent use.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine returns an engine seeded from the clock.
func NewEngine() *Engine {
	return NewEngineWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEngineWithRand returns an engine drawing from rng. Tests pass a fixed
// seed here.
func NewEngineWithRand(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// RandomHex returns a uniformly random color.
func (e *Engine) RandomHex() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.randomHexLocked()
}

func (e *Engine) randomHexLocked() string {
	return fmt.Sprintf("#%06x", e.rng.Intn(1<<24))
}

// Intn exposes the engine's random source to callers that need to stay on
// the same seed.
func (e *Engine) Intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

// Generate builds a palette of models.PaletteSize colors for the harmony and
// then applies the style filter.
func (e *Engine) Generate(harmony models.Harmony, style models.Style) models.Palette {
	colors := e.Harmonize(harmony, models.PaletteSize)
	return models.Palette{
		Colors:  ApplyStyleFilter(colors, style),
		Style:   style,
		Harmony: harmony,
	}
}

// Harmonize returns count unstyled colors for the harmony. Unknown harmonies
// behave like random.
func (e *Engine) Harmonize(harmony models.Harmony, count int) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if harmony == models.HarmonyRandom || !harmonic(harmony) {
		colors := make([]string, count)
		for i := range colors {
			colors[i] = e.randomHexLocked()
		}
		return colors
	}

	base := colorspace.HexToHSL(e.randomHexLocked())
	return harmonyColors(harmony, base, count)
}

func harmonic(h models.Harmony) bool {
	switch h {
	case models.HarmonyMonochromatic, models.HarmonyComplementary, models.HarmonyAnalogous,
		models.HarmonyTriadic, models.HarmonySplitComplementary:
		return true
	}
	return false
}

// harmonyColors applies the per-position hue pattern and saturation/lightness
// rules of a harmony to the base color.
func harmonyColors(harmony models.Harmony, base colorspace.HSL, count int) []string {
	hues := HuePattern(harmony, base.H, count)
	colors := make([]string, count)
	for i, hue := range hues {
		var s, l float64
		switch harmony {
		case models.HarmonyMonochromatic:
			s = colorspace.Clamp(base.S+float64(i-2)*15, 30, 90)
			l = colorspace.Clamp(base.L+float64(i-2)*10, 25, 75)
		case models.HarmonyComplementary:
			s = colorspace.Clamp(base.S+float64(i%2)*10, 30, 90)
			l = colorspace.Clamp(base.L+float64(i%3-1)*15, 25, 75)
		case models.HarmonyAnalogous:
			s = colorspace.Clamp(base.S, 40, 90)
			l = colorspace.Clamp(base.L+float64(i%3-1)*10, 35, 65)
		default: // triadic, split-complementary
			s = colorspace.Clamp(base.S, 40, 90)
			l = colorspace.Clamp(base.L, 35, 65)
		}
		colors[i] = colorspace.HSLToHex(colorspace.HSL{H: hue, S: s, L: l})
	}
	return colors
}

// HuePattern returns the hue assigned to each position for a harmony. The
// patterns are defined for five positions and repeat cyclically beyond that.
func HuePattern(harmony models.Harmony, h float64, count int) []float64 {
	var pattern []float64
	switch harmony {
	case models.HarmonyComplementary:
		c := h + 180
		pattern = []float64{h, h, c, c, h}
	case models.HarmonyAnalogous:
		pattern = []float64{h, h, h + 30, h + 330, h + 330}
	case models.HarmonyTriadic:
		t1, t2, t3 := h, h+120, h+240
		pattern = []float64{t1, t2, t3, t1, t2}
	case models.HarmonySplitComplementary:
		s1, s2, s3 := h, h+150, h+210
		pattern = []float64{s1, s1, s2, s3, s1}
	default:
		pattern = []float64{h, h, h, h, h}
	}

	hues := make([]float64, count)
	for i := range hues {
		hues[i] = colorspace.NormalizeHue(pattern[i%len(pattern)])
	}
	return hues
}
