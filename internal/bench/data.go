package bench

import (
	"math/rand"
	"strings"

	"github.com/vango-dev/reactor/pkg/reactive"
)

var adjectives = []string{
	"pretty", "large", "big", "small", "tall", "short", "long", "handsome",
	"plain", "quaint", "clean", "elegant", "easy", "angry", "crazy", "helpful",
	"mushy", "odd", "unsightly", "adorable", "important", "inexpensive",
	"cheap", "expensive", "fancy",
}

var colours = []string{
	"red", "yellow", "blue", "green", "pink", "brown", "purple", "brown",
	"white", "black", "orange",
}

var nouns = []string{
	"table", "chair", "house", "bbq", "desk", "car", "pony", "cookie",
	"sandwich", "burger", "pizza", "mouse", "keyboard",
}

// Row is one benchmark row. Label is owned by a per-row scope inside the
// store's current data generation, released when the row is removed.
type Row struct {
	ID    int
	Label *reactive.Signal[string]

	scope *reactive.Scope
}

// Key returns the row's reconciliation key.
func (r Row) Key() int {
	return r.ID
}

// Generator synthesises row labels from a seeded source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator. The same seed yields the same labels.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Label returns "adjective colour noun".
func (g *Generator) Label() string {
	a := adjectives[g.rng.Intn(len(adjectives))]
	c := colours[g.rng.Intn(len(colours))]
	n := nouns[g.rng.Intn(len(nouns))]

	var b strings.Builder
	b.Grow(len(a) + len(c) + len(n) + 2)
	b.WriteString(a)
	b.WriteByte(' ')
	b.WriteString(c)
	b.WriteByte(' ')
	b.WriteString(n)
	return b.String()
}
