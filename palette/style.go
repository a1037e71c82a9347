package palette

import (
	"math"

	"github.com/color-palette/api/colorspace"
	"github.com/color-palette/api/models"
)

// ApplyStyleFilter restyles every color for the given mood. An unknown style
// returns the colors unchanged.
func ApplyStyleFilter(colors []string, style models.Style) []string {
	transform, ok := styleTransforms[style]
	if !ok {
		return colors
	}

	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = colorspace.HSLToHex(transform(colorspace.HexToHSL(c)))
	}
	return out
}

var styleTransforms = map[models.Style]func(colorspace.HSL) colorspace.HSL{
	// muted, warm shift
	models.StyleRetro: func(c colorspace.HSL) colorspace.HSL {
		return colorspace.HSL{
			H: colorspace.NormalizeHue(c.H + 15),
			S: math.Min(c.S, 65),
			L: colorspace.Clamp(c.L-5, 30, 70),
		}
	},
	// high contrast: push lightness away from the middle
	models.StyleModern: func(c colorspace.HSL) colorspace.HSL {
		l := math.Max(c.L-10, 15)
		if c.L > 50 {
			l = math.Min(c.L+10, 90)
		}
		return colorspace.HSL{H: c.H, S: math.Min(c.S+10, 90), L: l}
	},
	models.StylePastel: func(c colorspace.HSL) colorspace.HSL {
		return colorspace.HSL{H: c.H, S: math.Min(c.S, 40), L: colorspace.Clamp(c.L+20, 70, 90)}
	},
	models.StyleVibrant: func(c colorspace.HSL) colorspace.HSL {
		return colorspace.HSL{H: c.H, S: math.Min(c.S+30, 100), L: colorspace.Clamp(c.L, 45, 65)}
	},
}

var harmonyDescriptions = map[models.Harmony]string{
	models.HarmonyMonochromatic:      "Uses one color in different shades. Clean, harmonious, easy on the eyes.",
	models.HarmonyComplementary:      "Uses two colors opposite on the color wheel. Bold, high-contrast, attention-grabbing.",
	models.HarmonyAnalogous:          "Uses three adjacent colors on the wheel. Natural, cohesive, soft transitions.",
	models.HarmonyTriadic:            "Uses three colors evenly spaced around the wheel. Balanced but colorful.",
	models.HarmonySplitComplementary: "One base color plus two colors next to its opposite. Dynamic but less intense.",
}

// HarmonyDescription is the tooltip text shown for a harmony.
func HarmonyDescription(h models.Harmony) string {
	if d, ok := harmonyDescriptions[h]; ok {
		return d
	}
	return "Random colors with no specific harmony."
}
