package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteSameAsIgnoresOrderAndCase(t *testing.T) {
	a := Palette{Colors: []string{"#aa0000", "#00bb00", "#0000cc"}, Style: StyleRetro, Harmony: HarmonyTriadic}
	b := Palette{Colors: []string{"#0000CC", "#aa0000", "#00bb00"}, Style: StyleRetro, Harmony: HarmonyTriadic}
	assert.True(t, a.SameAs(b))

	b.Style = StylePastel
	assert.False(t, a.SameAs(b))

	c := Palette{Colors: []string{"#aa0000", "#aa0000", "#0000cc"}, Style: StyleRetro, Harmony: HarmonyTriadic}
	assert.False(t, a.SameAs(c), "multiset semantics")

	d := Palette{Colors: []string{"#aa0000", "#00bb00", "#0000cc"}, Style: StyleRetro, Harmony: HarmonyAnalogous}
	assert.False(t, a.SameAs(d))
}

func TestParseStyleAndHarmony(t *testing.T) {
	s, err := ParseStyle(" Pastel ")
	require.NoError(t, err)
	assert.Equal(t, StylePastel, s)

	_, err = ParseStyle("neon")
	assert.Error(t, err)

	h, err := ParseHarmony("SPLIT-COMPLEMENTARY")
	require.NoError(t, err)
	assert.Equal(t, HarmonySplitComplementary, h)

	_, err = ParseHarmony("tetradic")
	assert.Error(t, err)
}

func TestCycleOrder(t *testing.T) {
	assert.Equal(t, StyleModern, StyleRetro.Next())
	assert.Equal(t, StyleRetro, StyleVibrant.Next())
	assert.Equal(t, HarmonyMonochromatic, HarmonyRandom.Next())
	assert.Equal(t, HarmonyRandom, HarmonySplitComplementary.Next())
}

func TestNewFavoritePaletteCopiesColors(t *testing.T) {
	p := Palette{Colors: []string{"#111111", "#222222"}, Style: StyleModern, Harmony: HarmonyRandom}
	fav := NewFavoritePalette(p)
	p.Colors[0] = "#ffffff"

	assert.NotEmpty(t, fav.ID)
	assert.Equal(t, "#111111", fav.Colors[0])
	assert.InDelta(t, time.Now().UnixMilli(), fav.SavedAt, 5000)
}

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := NewAdminToken("secret", time.Now().Add(time.Minute))
	require.NoError(t, err)

	claims, err := ValidateJWTToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, Admin, claims.Kind)

	_, err = ValidateJWTToken(token, "other")
	assert.Error(t, err)

	expired, err := NewAdminToken("secret", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = ValidateJWTToken(expired, "secret")
	assert.Error(t, err)
}
