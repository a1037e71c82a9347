// Package colorspace converts between #RRGGBB hex strings and HSL triples.
//
// Hue is in degrees [0,360), saturation and lightness are percentages [0,100].
// HexToHSL and HSLToHex trust their input; use ParseHex on anything that comes
// from outside the process.
package colorspace

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL is a hue/saturation/lightness triple.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

var ErrInvalidHex = errors.New("color must be a 6 digit hex string like #a1b2c3")

// ParseHex validates a hex color and returns it in canonical lowercase
// #rrggbb form. The leading # is optional.
func ParseHex(s string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(digits) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	if _, err := colorful.Hex("#" + digits); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return "#" + strings.ToLower(digits), nil
}

// RGB decodes the three channels of a hex color. The leading # is optional.
func RGB(hex string) (r, g, b int) {
	digits := strings.TrimPrefix(hex, "#")
	r = channel(digits, 0)
	g = channel(digits, 2)
	b = channel(digits, 4)
	return r, g, b
}

func channel(digits string, at int) int {
	if len(digits) < at+2 {
		return 0
	}
	v, err := strconv.ParseUint(digits[at:at+2], 16, 8)
	if err != nil {
		return 0
	}
	return int(v)
}

// HexToHSL converts a hex color to HSL.
func HexToHSL(hex string) HSL {
	ri, gi, bi := RGB(hex)
	r := float64(ri) / 255
	g := float64(gi) / 255
	b := float64(bi) / 255

	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	l := (hi + lo) / 2

	if hi == lo {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := hi - lo
	var s float64
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	var h float64
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}

	return HSL{H: NormalizeHue(h * 60), S: s * 100, L: l * 100}
}

// HSLToHex converts an HSL triple to a lowercase #rrggbb string. Hue is taken
// modulo 360; saturation and lightness are clamped to [0,100].
func HSLToHex(c HSL) string {
	h := NormalizeHue(c.H) / 360
	s := Clamp(c.S, 0, 100) / 100
	l := Clamp(c.L, 0, 100) / 100

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}

	return fmt.Sprintf("#%02x%02x%02x", toByte(r), toByte(g), toByte(b))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func toByte(x float64) int {
	return int(Clamp(math.Round(x*255), 0, 255))
}

// NormalizeHue maps any angle into [0,360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
