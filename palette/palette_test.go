package palette

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/color-palette/api/colorspace"
	"github.com/color-palette/api/models"
)

var hexPattern = `^#[0-9a-f]{6}$`

func hueDistance(a, b float64) float64 {
	d := math.Abs(colorspace.NormalizeHue(a) - colorspace.NormalizeHue(b))
	return math.Min(d, 360-d)
}

func seeded(seed int64) *Engine {
	return NewEngineWithRand(rand.New(rand.NewSource(seed)))
}

func TestGenerateAlwaysFiveValidColors(t *testing.T) {
	e := seeded(1)
	for _, h := range models.Harmonies {
		for _, s := range models.Styles {
			for i := 0; i < 20; i++ {
				p := e.Generate(h, s)
				require.Len(t, p.Colors, models.PaletteSize)
				assert.Equal(t, h, p.Harmony)
				assert.Equal(t, s, p.Style)
				for _, c := range p.Colors {
					assert.Regexp(t, hexPattern, c)
				}
			}
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := seeded(99).Generate(models.HarmonyAnalogous, models.StyleModern)
	b := seeded(99).Generate(models.HarmonyAnalogous, models.StyleModern)
	assert.Equal(t, a, b)
}

// baseHue replays the first draw of a seeded engine, which is the base color
// of every harmonic palette.
func baseHue(seed int64) float64 {
	first := rand.New(rand.NewSource(seed)).Intn(1 << 24)
	return colorspace.HexToHSL(fmt.Sprintf("#%06x", first)).H
}

func TestMonochromaticSharesBaseHue(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		base := baseHue(seed)
		colors := seeded(seed).Harmonize(models.HarmonyMonochromatic, 5)
		for _, c := range colors {
			assert.LessOrEqual(t, hueDistance(base, colorspace.HexToHSL(c).H), 3.5, colors)
		}

		for _, style := range models.Styles {
			want := base
			if style == models.StyleRetro {
				want += 15
			}
			p := seeded(seed).Generate(models.HarmonyMonochromatic, style)
			for _, c := range p.Colors {
				assert.LessOrEqual(t, hueDistance(want, colorspace.HexToHSL(c).H), 12.0, style, p.Colors)
			}
		}
	}
}

func TestComplementaryOpposesBaseHue(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		base := baseHue(seed)
		colors := seeded(seed).Harmonize(models.HarmonyComplementary, 5)
		for _, i := range []int{0, 1, 4} {
			assert.LessOrEqual(t, hueDistance(base, colorspace.HexToHSL(colors[i]).H), 3.5, colors)
		}
		for _, i := range []int{2, 3} {
			assert.LessOrEqual(t, hueDistance(base+180, colorspace.HexToHSL(colors[i]).H), 3.5, colors)
		}
	}
}

func TestHuePatterns(t *testing.T) {
	cases := map[models.Harmony][]float64{
		models.HarmonyMonochromatic:      {100, 100, 100, 100, 100},
		models.HarmonyComplementary:      {100, 100, 280, 280, 100},
		models.HarmonyAnalogous:          {100, 100, 130, 70, 70},
		models.HarmonyTriadic:            {100, 220, 340, 100, 220},
		models.HarmonySplitComplementary: {100, 100, 250, 310, 100},
	}
	for harmony, want := range cases {
		assert.Equal(t, want, HuePattern(harmony, 100, 5), harmony)
	}

	// wrap past 360
	assert.Equal(t, []float64{300, 300, 120, 120, 300}, HuePattern(models.HarmonyComplementary, 300, 5))
	assert.Equal(t, []float64{10, 10, 40, 340, 340}, HuePattern(models.HarmonyAnalogous, 10, 5))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0}, HuePattern(models.HarmonyMonochromatic, 360, 7))
}

func TestHarmonyClampBounds(t *testing.T) {
	hex := func(h, s, l float64) string { return colorspace.HSLToHex(colorspace.HSL{H: h, S: s, L: l}) }

	high := colorspace.HSL{H: 200, S: 95, L: 90}
	low := colorspace.HSL{H: 200, S: 5, L: 5}

	assert.Equal(t, []string{
		hex(200, 65, 70), hex(200, 80, 75), hex(200, 90, 75), hex(200, 90, 75), hex(200, 90, 75),
	}, harmonyColors(models.HarmonyMonochromatic, high, 5))
	assert.Equal(t, []string{
		hex(200, 30, 25), hex(200, 30, 25), hex(200, 30, 25), hex(200, 30, 25), hex(200, 35, 25),
	}, harmonyColors(models.HarmonyMonochromatic, low, 5))

	assert.Equal(t, []string{
		hex(200, 90, 75), hex(200, 90, 75), hex(20, 90, 75), hex(20, 90, 75), hex(200, 90, 75),
	}, harmonyColors(models.HarmonyComplementary, high, 5))
	assert.Equal(t, []string{
		hex(200, 30, 25), hex(200, 30, 25), hex(20, 30, 25), hex(20, 30, 25), hex(200, 30, 25),
	}, harmonyColors(models.HarmonyComplementary, low, 5))

	mid := colorspace.HSL{H: 200, S: 50, L: 50}
	assert.Equal(t, []string{
		hex(200, 50, 35), hex(200, 60, 50), hex(20, 50, 65), hex(20, 60, 35), hex(200, 50, 50),
	}, harmonyColors(models.HarmonyComplementary, mid, 5))
	assert.Equal(t, []string{
		hex(200, 50, 40), hex(200, 50, 50), hex(230, 50, 60), hex(170, 50, 40), hex(170, 50, 50),
	}, harmonyColors(models.HarmonyAnalogous, mid, 5))

	assert.Equal(t, []string{
		hex(200, 90, 65), hex(200, 90, 65), hex(230, 90, 65), hex(170, 90, 65), hex(170, 90, 65),
	}, harmonyColors(models.HarmonyAnalogous, high, 5))
	assert.Equal(t, []string{
		hex(200, 40, 35), hex(320, 40, 35), hex(80, 40, 35), hex(200, 40, 35), hex(320, 40, 35),
	}, harmonyColors(models.HarmonyTriadic, low, 5))
	assert.Equal(t, []string{
		hex(200, 90, 65), hex(200, 90, 65), hex(350, 90, 65), hex(50, 90, 65), hex(200, 90, 65),
	}, harmonyColors(models.HarmonySplitComplementary, high, 5))
}

func TestRandomHarmonyIgnoresBase(t *testing.T) {
	colors := seeded(11).Harmonize(models.HarmonyRandom, 5)
	require.Len(t, colors, 5)
	for _, c := range colors {
		assert.Regexp(t, hexPattern, c)
	}

	// random draws exactly count colors from the source and nothing else
	rng := rand.New(rand.NewSource(11))
	for _, c := range colors {
		want := rng.Intn(1 << 24)
		r, g, b := colorspace.RGB(c)
		assert.Equal(t, want, r<<16|g<<8|b)
	}
}

func TestTriadicVibrantEndToEnd(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		base := baseHue(seed)
		p := seeded(seed).Generate(models.HarmonyTriadic, models.StyleVibrant)

		distinct := map[string]bool{}
		for _, c := range p.Colors {
			distinct[c] = true
			assert.GreaterOrEqual(t, colorspace.HexToHSL(c).S, 68.0, p.Colors)
		}
		assert.Len(t, distinct, 3, p.Colors)
		assert.Equal(t, p.Colors[0], p.Colors[3])
		assert.Equal(t, p.Colors[1], p.Colors[4])

		for i, offset := range []float64{0, 120, 240} {
			assert.LessOrEqual(t, hueDistance(base+offset, colorspace.HexToHSL(p.Colors[i]).H), 3.0, p.Colors)
		}
	}
}

func TestStyleFilterTransforms(t *testing.T) {
	hex := func(h, s, l float64) string { return colorspace.HSLToHex(colorspace.HSL{H: h, S: s, L: l}) }

	red := []string{"#ff0000"} // 0, 100, 50
	assert.Equal(t, []string{hex(15, 65, 45)}, ApplyStyleFilter(red, models.StyleRetro))
	assert.Equal(t, []string{hex(0, 90, 40)}, ApplyStyleFilter(red, models.StyleModern))
	assert.Equal(t, []string{hex(0, 40, 70)}, ApplyStyleFilter(red, models.StylePastel))
	assert.Equal(t, []string{hex(0, 100, 50)}, ApplyStyleFilter(red, models.StyleVibrant))

	light := []string{hex(120, 20, 80)}
	lightHSL := colorspace.HexToHSL(light[0])
	assert.Equal(t, []string{hex(lightHSL.H, lightHSL.S+10, 90)}, ApplyStyleFilter(light, models.StyleModern))

	black := []string{"#000000"}
	assert.Equal(t, []string{hex(15, 0, 30)}, ApplyStyleFilter(black, models.StyleRetro))
	assert.Equal(t, []string{hex(0, 10, 15)}, ApplyStyleFilter(black, models.StyleModern))
	assert.Equal(t, []string{hex(0, 30, 45)}, ApplyStyleFilter(black, models.StyleVibrant))

	in := []string{"#123456", "#abcdef"}
	assert.Equal(t, in, ApplyStyleFilter(in, models.Style("noir")))
}

func TestPastelIsStableUnderRepetition(t *testing.T) {
	e := seeded(8)
	for i := 0; i < 200; i++ {
		once := ApplyStyleFilter(e.Harmonize(models.HarmonyRandom, 5), models.StylePastel)
		twice := ApplyStyleFilter(once, models.StylePastel)
		for _, colors := range [][]string{once, twice} {
			for _, c := range colors {
				hsl := colorspace.HexToHSL(c)
				assert.LessOrEqual(t, hsl.S, 44.0, c)
				assert.GreaterOrEqual(t, hsl.L, 69.5, c)
				assert.LessOrEqual(t, hsl.L, 90.5, c)
			}
		}
	}
}

func TestHarmonyDescription(t *testing.T) {
	assert.Contains(t, HarmonyDescription(models.HarmonyTriadic), "evenly spaced")
	assert.Equal(t, "Random colors with no specific harmony.", HarmonyDescription(models.HarmonyRandom))
}
