package naming

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTimeout bounds the remote naming call.
	DefaultTimeout = 5 * time.Second

	// DefaultName is returned for an empty palette.
	DefaultName = "Color Collection"

	degenerateName = "Unnamed Palette"
)

var errDegenerate = errors.New("naming service returned an unusable name")

// Namer names palettes. A nil Completer makes every call use the local
// fallback. Namer is safe for concurrent use.
type Namer struct {
	completer Completer
	strategy  Strategy
	timeout   time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewNamer returns a namer. A nil strategy means Plain, a zero timeout means
// DefaultTimeout and a nil rng is seeded from the clock.
func NewNamer(completer Completer, strategy Strategy, timeout time.Duration, rng *rand.Rand) *Namer {
	if strategy == nil {
		strategy = Plain{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Namer{completer: completer, strategy: strategy, timeout: timeout, rng: rng}
}

func (n *Namer) Strategy() Strategy { return n.strategy }

// GeneratePaletteName returns a name for colors. It never fails: any problem
// with the remote service is logged and replaced by the strategy's fallback.
func (n *Namer) GeneratePaletteName(ctx context.Context, colors []string) string {
	if len(colors) == 0 {
		MetricNamesTotal.WithLabelValues(n.strategy.Name(), "default").Inc()
		return DefaultName
	}

	descriptors := AnalyzeColors(colors)

	name, err := n.remoteName(ctx, colors)
	if err == nil {
		MetricNamesTotal.WithLabelValues(n.strategy.Name(), "remote").Inc()
		return name
	}
	if n.completer != nil {
		log.Printf("palette naming fell back to local name: %v", err)
	}

	MetricNamesTotal.WithLabelValues(n.strategy.Name(), "fallback").Inc()
	return n.Fallback(descriptors)
}

// Fallback builds the local name for descriptors.
func (n *Namer) Fallback(descriptors []string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.strategy.Fallback(descriptors, n.rng)
}

type completion struct {
	text string
	err  error
}

func (n *Namer) remoteName(ctx context.Context, colors []string) (string, error) {
	if n.completer == nil {
		return "", errors.New("no naming service configured")
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	messages := []ChatMessage{
		NewSystemMessage(n.strategy.SystemPrompt()),
		NewUserMessage(n.strategy.UserPrompt(colors)),
	}

	// the completer may not honour ctx, so race it against the deadline
	done := make(chan completion, 1)
	go func() {
		text, err := n.completer.Complete(ctx, messages, CompletionOptions{
			Temperature: nameTemperature,
			MaxTokens:   nameMaxTokens,
		})
		done <- completion{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		name := cleanName(res.text)
		if name == "" || name == degenerateName {
			return "", errDegenerate
		}
		return name, nil
	}
}

func cleanName(s string) string {
	s = strings.NewReplacer(`"`, "", "“", "", "”", "").Replace(s)
	return strings.TrimSpace(s)
}
