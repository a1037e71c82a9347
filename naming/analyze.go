// Package naming gives palettes a human name, either from a remote chat
// completion service or from a local fallback built on color descriptors.
package naming

import (
	"github.com/color-palette/api/colorspace"
)

// Descriptors produced by AnalyzeColors
const (
	Dark    = "Dark"
	Light   = "Light"
	Red     = "Red"
	Green   = "Green"
	Blue    = "Blue"
	Pastel  = "Pastel"
	Earthy  = "Earthy"
	Vibrant = "Vibrant"
)

// AnalyzeColors derives qualitative descriptors from hex colors, deduplicated
// in first-seen order.
func AnalyzeColors(colors []string) []string {
	var descriptors []string
	seen := make(map[string]bool)
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			descriptors = append(descriptors, d)
		}
	}

	for _, c := range colors {
		r, g, b := colorspace.RGB(c)

		brightness := float64(r*299+g*587+b*114) / 1000
		if brightness < 50 {
			add(Dark)
		} else if brightness > 200 {
			add(Light)
		}

		if r > g+b {
			add(Red)
		}
		if g > r+b {
			add(Green)
		}
		if b > r+g {
			add(Blue)
		}

		if r > 200 && g > 200 && b > 200 && abs(r-g) < 50 && abs(g-b) < 50 && abs(r-b) < 50 {
			add(Pastel)
		}

		if r > g && g > b && r < 200 && g < 150 {
			add(Earthy)
		}

		// a bright channel AND a wide spread between any two channels
		if max3(r, g, b) > 200 && (abs(r-g) > 100 || abs(g-b) > 100 || abs(r-b) > 100) {
			add(Vibrant)
		}
	}

	return descriptors
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max3(a, b, c int) int {
	return max(a, max(b, c))
}
