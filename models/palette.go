package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaletteSize is the number of colors in every generated palette
const PaletteSize = 5

type Style string

const (
	StyleRetro   Style = "retro"
	StyleModern  Style = "modern"
	StylePastel  Style = "pastel"
	StyleVibrant Style = "vibrant"
)

// Styles in the order the UI cycles through them
var Styles = []Style{StyleRetro, StyleModern, StylePastel, StyleVibrant}

type Harmony string

const (
	HarmonyRandom             Harmony = "random"
	HarmonyMonochromatic      Harmony = "monochromatic"
	HarmonyComplementary      Harmony = "complementary"
	HarmonyAnalogous          Harmony = "analogous"
	HarmonyTriadic            Harmony = "triadic"
	HarmonySplitComplementary Harmony = "split-complementary"
)

// Harmonies in the order the UI cycles through them
var Harmonies = []Harmony{
	HarmonyRandom,
	HarmonyMonochromatic,
	HarmonyComplementary,
	HarmonyAnalogous,
	HarmonyTriadic,
	HarmonySplitComplementary,
}

// ParseStyle accepts a style name in any case
func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Styles, style) {
		return "", fmt.Errorf("unknown style %q", s)
	}
	return style, nil
}

// ParseHarmony accepts a harmony name in any case
func ParseHarmony(s string) (Harmony, error) {
	harmony := Harmony(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Harmonies, harmony) {
		return "", fmt.Errorf("unknown harmony %q", s)
	}
	return harmony, nil
}

// Next returns the style after s, wrapping around
func (s Style) Next() Style {
	i := slices.Index(Styles, s)
	return Styles[(i+1)%len(Styles)]
}

// Next returns the harmony after h, wrapping around
func (h Harmony) Next() Harmony {
	i := slices.Index(Harmonies, h)
	return Harmonies[(i+1)%len(Harmonies)]
}

// Palette is an ordered set of hex colors tagged with the style and harmony
// that produced it
type Palette struct {
	Colors  []string `json:"colors"`
	Style   Style    `json:"style"`
	Harmony Harmony  `json:"harmony"`
}

// SameAs reports whether two palettes hold the same multiset of colors with
// the same style and harmony. Color order and hex case are ignored.
func (p Palette) SameAs(other Palette) bool {
	if p.Style != other.Style || p.Harmony != other.Harmony {
		return false
	}
	if len(p.Colors) != len(other.Colors) {
		return false
	}
	return slices.Equal(sortedColors(p.Colors), sortedColors(other.Colors))
}

func sortedColors(colors []string) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = strings.ToLower(c)
	}
	slices.Sort(out)
	return out
}

type FavoritePalette struct {
	ID string `json:"id"`
	Palette
	SavedAt int64 `json:"savedAt"` // unix milliseconds
}

func NewFavoritePalette(p Palette) FavoritePalette {
	return FavoritePalette{
		ID:      uuid.New().String(),
		Palette: Palette{Colors: slices.Clone(p.Colors), Style: p.Style, Harmony: p.Harmony},
		SavedAt: time.Now().UnixMilli(),
	}
}

// DailyPalette is the palette of the day generated by the scheduler
type DailyPalette struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Palette
	CreatedAt time.Time `json:"createdAt"`
}
