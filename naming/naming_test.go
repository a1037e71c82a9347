package naming

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeColors(t *testing.T) {
	cases := []struct {
		name   string
		colors []string
		want   []string
	}{
		{"black", []string{"#000000"}, []string{Dark}},
		{"white", []string{"#FFFFFF"}, []string{Light, Pastel}},
		{"red", []string{"#ff0000"}, []string{Red, Vibrant}},
		{"green", []string{"#00ff00"}, []string{Green, Vibrant}},
		{"blue", []string{"0000ff"}, []string{Dark, Blue, Vibrant}},
		{"saddle brown", []string{"#8b4513"}, []string{Red, Earthy}},
		{"dim red is not vibrant", []string{"#961414"}, []string{Red}},
		{"dedupe keeps first-seen order", []string{"#000000", "#ff0000", "#000000", "#ffffff"}, []string{Dark, Red, Vibrant, Light, Pastel}},
		{"mid gray", []string{"#808080"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AnalyzeColors(tc.colors))
		})
	}
}

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName("")
	require.NoError(t, err)
	assert.Equal(t, "plain", s.Name())

	s, err = StrategyByName("Rhyming")
	require.NoError(t, err)
	assert.Equal(t, "rhyming", s.Name())

	_, err = StrategyByName("haiku")
	assert.Error(t, err)
}

func TestPlainFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, "Color Harmony", Plain{}.Fallback(nil, rng))

	nouns := map[string]bool{}
	for i := 0; i < 500; i++ {
		name := Plain{}.Fallback([]string{Dark, Vibrant, Red}, rng)
		require.True(t, strings.HasPrefix(name, "Dark Vibrant "), name)
		noun := strings.TrimPrefix(name, "Dark Vibrant ")
		require.Contains(t, plainNouns, noun)
		nouns[noun] = true
	}
	assert.Len(t, nouns, len(plainNouns), "every noun is reachable")

	single := Plain{}.Fallback([]string{Pastel}, rng)
	assert.Len(t, strings.Fields(single), 2)
	assert.True(t, strings.HasPrefix(single, "Pastel "))
}

func TestRhymingFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	placements := map[string]int{}
	sizes := map[int]bool{}

	for i := 0; i < 600; i++ {
		words := strings.Fields(Rhyming{}.Fallback([]string{Green, Dark}, rng))
		require.GreaterOrEqual(t, len(words), 2)
		require.LessOrEqual(t, len(words), 4)
		sizes[len(words)] = true

		switch {
		case words[0] == Green:
			placements["prepend"]++
			words = words[1:]
		case words[len(words)-1] == Green:
			placements["append"]++
			words = words[:len(words)-1]
		default:
			placements["omit"]++
		}
		for _, w := range words {
			require.Contains(t, rhymeFamilies[Green], w)
		}
		assert.Len(t, uniq(words), len(words), "no repeated rhyme")
	}

	assert.Len(t, placements, 3)
	assert.True(t, sizes[2] && sizes[3] && sizes[4])
}

func TestRhymingFallbackDefaultFamily(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		words := strings.Fields(Rhyming{}.Fallback(nil, rng))
		require.GreaterOrEqual(t, len(words), 2)
		require.LessOrEqual(t, len(words), 3)
		for _, w := range words {
			require.Contains(t, defaultRhymes, w)
		}
	}
}

func TestRhymeFamiliesShareAnEnding(t *testing.T) {
	endings := map[string][]string{
		Dark:    {"ark"},
		Red:     {"ed"},
		Pastel:  {"el", "elle", "ell"},
		Vibrant: {"az", "azz"},
	}
	for family, suffixes := range endings {
		for _, w := range rhymeFamilies[family] {
			lower := strings.ToLower(w)
			assert.True(t, slices.ContainsFunc(suffixes, func(s string) bool { return strings.HasSuffix(lower, s) }),
				"%s does not rhyme with the %s family", w, family)
		}
	}
}

func uniq(words []string) []string {
	out := slices.Clone(words)
	slices.Sort(out)
	return slices.Compact(out)
}

type fakeCompleter struct {
	calls    atomic.Int32
	complete func(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (string, error) {
	f.calls.Add(1)
	return f.complete(ctx, messages, opts)
}

func reply(text string, err error) *fakeCompleter {
	return &fakeCompleter{complete: func(context.Context, []ChatMessage, CompletionOptions) (string, error) {
		return text, err
	}}
}

func TestEmptyPaletteSkipsRemoteCall(t *testing.T) {
	fake := reply("Should Not Be Used", nil)
	n := NewNamer(fake, Plain{}, 0, nil)

	before := testutil.ToFloat64(MetricNamesTotal.WithLabelValues("plain", "default"))
	assert.Equal(t, DefaultName, n.GeneratePaletteName(context.Background(), nil))
	assert.Equal(t, DefaultName, n.GeneratePaletteName(context.Background(), []string{}))
	assert.Equal(t, int32(0), fake.calls.Load())
	assert.Equal(t, before+2, testutil.ToFloat64(MetricNamesTotal.WithLabelValues("plain", "default")))
}

func TestRemoteNameIsCleaned(t *testing.T) {
	var seen []ChatMessage
	var seenOpts CompletionOptions
	fake := &fakeCompleter{complete: func(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (string, error) {
		seen, seenOpts = messages, opts
		return `  "Midnight Citrus Grove"  `, nil
	}}
	n := NewNamer(fake, Plain{}, time.Second, nil)

	name := n.GeneratePaletteName(context.Background(), []string{"#112233", "#ffaa00"})
	assert.Equal(t, "Midnight Citrus Grove", name)

	require.Len(t, seen, 2)
	assert.Equal(t, "system", seen[0].Role)
	assert.Equal(t, "user", seen[1].Role)
	assert.Contains(t, seen[1].Content, "#112233, #ffaa00")
	assert.Equal(t, 0.8, seenOpts.Temperature)
	assert.Equal(t, 50, seenOpts.MaxTokens)
}

func TestFallbackOnFailure(t *testing.T) {
	colors := []string{"#000000", "#ff0000"}
	descriptors := AnalyzeColors(colors)

	cases := map[string]*fakeCompleter{
		"error":      reply("", errors.New("connection refused")),
		"empty":      reply("   ", nil),
		"quotes":     reply(`""`, nil),
		"degenerate": reply("Unnamed Palette", nil),
	}
	for label, fake := range cases {
		t.Run(label, func(t *testing.T) {
			n := NewNamer(fake, Plain{}, time.Second, rand.New(rand.NewSource(4)))
			want := Plain{}.Fallback(descriptors, rand.New(rand.NewSource(4)))
			assert.Equal(t, want, n.GeneratePaletteName(context.Background(), colors))
			assert.Equal(t, int32(1), fake.calls.Load())
		})
	}
}

func TestFallbackOnTimeout(t *testing.T) {
	stubborn := &fakeCompleter{complete: func(context.Context, []ChatMessage, CompletionOptions) (string, error) {
		time.Sleep(time.Second)
		return "Too Late", nil
	}}
	n := NewNamer(stubborn, Rhyming{}, 50*time.Millisecond, nil)

	start := time.Now()
	name := n.GeneratePaletteName(context.Background(), []string{"#00ff00"})
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.NotEqual(t, "Too Late", name)
	assert.NotEmpty(t, name)
}

func TestNilCompleterAlwaysFallsBack(t *testing.T) {
	n := NewNamer(nil, nil, 0, rand.New(rand.NewSource(9)))
	assert.Equal(t, "plain", n.Strategy().Name())

	name := n.GeneratePaletteName(context.Background(), []string{"#ffffff"})
	assert.Equal(t, Plain{}.Fallback([]string{Light, Pastel}, rand.New(rand.NewSource(9))), name)
}

func TestChatService(t *testing.T) {
	type captured struct {
		auth, path string
		body       chatRequest
	}
	requests := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := captured{auth: r.Header.Get("Authorization"), path: r.URL.Path}
		json.NewDecoder(r.Body).Decode(&c.body)
		requests <- c
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","model":"m","choices":[{"message":{"role":"assistant","content":"Sunset Static"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	svc := NewChatService(srv.URL, "sk-test", "")
	n := NewNamer(svc, Plain{}, 2*time.Second, nil)
	attempts := MetricChatAttemptsTotal.WithLabelValues(http.MethodPost, "/chat/completions", "success")
	before := testutil.ToFloat64(attempts)

	name := n.GeneratePaletteName(context.Background(), []string{"#ff7f50", "#2e2e2e"})
	assert.Equal(t, "Sunset Static", name)
	assert.Equal(t, before+1, testutil.ToFloat64(attempts))

	got := <-requests
	assert.Equal(t, "Bearer sk-test", got.auth)
	assert.Equal(t, "/chat/completions", got.path)
	assert.Equal(t, DefaultModel, got.body.Model)
	assert.Equal(t, 0.8, got.body.Temperature)
	assert.Equal(t, 50, got.body.MaxTokens)
	require.Len(t, got.body.Messages, 2)
}

func TestChatServiceNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewChatService(srv.URL, "k", "m").Complete(context.Background(), nil, CompletionOptions{})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
