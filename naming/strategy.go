package naming

import (
	"fmt"
	"math/rand"
	"strings"
)

// Strategy supplies the prompt sent to the remote service and the local
// name used when the remote call fails.
type Strategy interface {
	Name() string
	SystemPrompt() string
	UserPrompt(colors []string) string
	Fallback(descriptors []string, rng *rand.Rand) string
}

// StrategyByName returns the strategy registered under name ("plain" or
// "rhyming").
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain":
		return Plain{}, nil
	case "rhyming", "funny":
		return Rhyming{}, nil
	}
	return nil, fmt.Errorf("unknown naming strategy %q", name)
}

// Plain names a palette with up to two descriptors and a noun, e.g.
// "Dark Vibrant Horizon".
type Plain struct{}

var plainNouns = []string{"Palette", "Spectrum", "Harmony", "Collection", "Scheme", "Horizon", "Vision", "Tones"}

func (Plain) Name() string { return "plain" }

func (Plain) SystemPrompt() string {
	return "You are a creative assistant that specializes in naming color palettes. " +
		"Generate a short, catchy, and evocative name that captures the mood or theme suggested by these colors. " +
		"Keep the name between 2-5 words. Do not include explanations, just return the name."
}

func (Plain) UserPrompt(colors []string) string {
	return fmt.Sprintf("Create a name for a color palette with these hex colors: %s. Respond only with the name.", strings.Join(colors, ", "))
}

func (Plain) Fallback(descriptors []string, rng *rand.Rand) string {
	if len(descriptors) == 0 {
		return "Color Harmony"
	}
	selected := descriptors[:min(2, len(descriptors))]
	noun := plainNouns[rng.Intn(len(plainNouns))]
	return strings.Join(selected, " ") + " " + noun
}

// Rhyming builds a silly name from a family of words rhyming with the first
// recognised descriptor, e.g. "Bean Queen Green".
type Rhyming struct{}

var rhymeFamilies = map[string][]string{
	Dark:    {"Stark", "Spark", "Lark", "Park", "Bark", "Shark"},
	Light:   {"Bright", "Night", "Kite", "Delight", "Sprite", "Flight"},
	Red:     {"Bread", "Thread", "Sled", "Shed", "Shred", "Spread"},
	Green:   {"Bean", "Queen", "Machine", "Tangerine", "Scene", "Sheen"},
	Blue:    {"Shoe", "Stew", "Goo", "Kangaroo", "Zoo", "Bamboo"},
	Pastel:  {"Gazelle", "Caramel", "Carousel", "Seashell", "Motel", "Bell"},
	Earthy:  {"Worthy", "Thirsty", "Sturdy", "Birdie", "Flirty", "Nerdy"},
	Vibrant: {"Jazz", "Pizzazz", "Razzmatazz", "Snazz", "Topaz", "Alcatraz"},
}

var defaultRhymes = []string{"Doodle", "Noodle", "Poodle", "Strudel", "Caboodle", "Kit"}

func (Rhyming) Name() string { return "rhyming" }

func (Rhyming) SystemPrompt() string {
	return "You are a playful assistant that names color palettes. " +
		"Generate a funny, rhyming name inspired by these colors. " +
		"Keep the name between 2-4 words. Do not include explanations, just return the name."
}

func (Rhyming) UserPrompt(colors []string) string {
	return fmt.Sprintf("Create a funny rhyming name for a color palette with these hex colors: %s. Respond only with the name.", strings.Join(colors, ", "))
}

func (Rhyming) Fallback(descriptors []string, rng *rand.Rand) string {
	family := defaultRhymes
	matched := ""
	for _, d := range descriptors {
		if words, ok := rhymeFamilies[d]; ok {
			family, matched = words, d
			break
		}
	}

	words := make([]string, len(family))
	copy(words, family)
	rng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	words = words[:min(2+rng.Intn(2), len(words))]

	if matched != "" {
		switch rng.Intn(3) {
		case 0:
			words = append([]string{matched}, words...)
		case 1:
			words = append(words, matched)
		}
	}
	return strings.Join(words, " ")
}
