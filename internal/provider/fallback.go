package provider

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"wordbank/internal/model"
)

// SourceFallback tags records produced without any external provider.
const SourceFallback = "fallback"

var fallbackAdjectives = []string{
	"ancient", "brave", "clever", "curious", "dusty", "electric", "fuzzy",
	"gentle", "gigantic", "hidden", "icy", "jolly", "loud", "misty",
	"noble", "peculiar", "quiet", "rusty", "shiny", "sleepy", "swift",
	"tiny", "wandering", "wild",
}

var fallbackNouns = []string{
	"animals", "castles", "colors", "deserts", "forests", "gadgets",
	"gardens", "harbors", "islands", "kitchens", "lanterns", "machines",
	"markets", "mountains", "oceans", "planets", "rivers", "storms",
	"temples", "tools", "towers", "villages", "voyages", "winters",
}

var fallbackWords = []string{
	"anchor", "apple", "arrow", "badge", "basket", "bell", "bottle",
	"bridge", "brush", "button", "candle", "canyon", "cloud", "compass",
	"coral", "crystal", "drum", "feather", "flame", "flute", "fossil",
	"garden", "glacier", "hammer", "harbor", "honey", "kettle", "key",
	"kite", "ladder", "lantern", "leaf", "lemon", "magnet", "map",
	"marble", "meadow", "mirror", "needle", "nest", "orchard", "paddle",
	"pebble", "pencil", "pepper", "pillow", "prism", "quill", "ribbon",
	"river", "rocket", "saddle", "shell", "spark", "spoon", "stone",
	"thread", "torch", "violin", "whistle",
}

// Fallback composes category drafts from fixed word pools. It is the
// terminal link of the chain: it needs no network, no credentials, and
// cannot fail for any n.
type Fallback struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewFallback() *Fallback {
	return NewFallbackWithSeed(time.Now().UnixNano())
}

// NewFallbackWithSeed fixes the random source for reproducible output.
func NewFallbackWithSeed(seed int64) *Fallback {
	return &Fallback{rng: rand.New(rand.NewSource(seed))}
}

func (f *Fallback) Name() string { return SourceFallback }

// Generate returns exactly n drafts, each with 5-20 pooled words
// de-duplicated within the record. Names are also unique within the
// returned batch, so a batch never loses records to its own conflicts.
func (f *Fallback) Generate(n int) []model.Draft {
	if n <= 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	drafts := make([]model.Draft, 0, n)
	names := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		d := f.draft()
		for names[d.Name] {
			d = f.draft()
		}
		names[d.Name] = true
		drafts = append(drafts, d)
	}
	return drafts
}

func (f *Fallback) draft() model.Draft {
	// The numeric suffix keeps name collisions negligible; residual
	// duplicates are absorbed by the store's unique index.
	name := fmt.Sprintf("%s %s %04d",
		fallbackAdjectives[f.rng.Intn(len(fallbackAdjectives))],
		fallbackNouns[f.rng.Intn(len(fallbackNouns))],
		f.rng.Intn(10000))

	count := 5 + f.rng.Intn(16)
	words := make([]string, 0, count)
	seen := make(map[string]bool, count)
	for len(words) < count {
		w := fallbackWords[f.rng.Intn(len(fallbackWords))]
		if seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}

	return model.Draft{Name: name, Words: words, Source: SourceFallback}
}
