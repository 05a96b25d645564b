// Package lexicon canonicalizes free-text town and product names against
// curated alias tables. Lookups are best-effort: unknown input falls back to
// a title-casing policy and never errors.
package lexicon

import (
	"sort"
	"strings"
)

// Umbrella is the pseudo-town meaning "all of La Union".
const Umbrella = "La Union"

// Config carries the alias tables injected at construction. Keys are matched
// case-insensitively; values are canonical names. The tables are plain data
// so new aliases can be added without touching logic.
type Config struct {
	Towns          []string
	TownAliases    map[string]string
	ProductAliases map[string]string
}

// Normalizer maps noisy town and product names onto canonical forms.
type Normalizer struct {
	towns          []string
	townAliases    map[string]string
	productAliases map[string]string
}

// New builds a Normalizer from cfg. Every canonical town and every canonical
// alias value is also installed as a key mapping to itself, so normalization
// is idempotent: normalize(normalize(x)) == normalize(x).
func New(cfg Config) *Normalizer {
	n := &Normalizer{
		towns:          append([]string(nil), cfg.Towns...),
		townAliases:    make(map[string]string, len(cfg.TownAliases)+len(cfg.Towns)+1),
		productAliases: make(map[string]string, len(cfg.ProductAliases)*2),
	}
	sort.Strings(n.towns)

	for raw, canon := range cfg.TownAliases {
		n.townAliases[fold(raw)] = canon
	}
	for _, t := range cfg.Towns {
		n.townAliases[fold(t)] = t
	}
	n.townAliases[fold(Umbrella)] = Umbrella

	for raw, canon := range cfg.ProductAliases {
		n.productAliases[fold(raw)] = canon
		// canonical value maps to itself
		n.productAliases[fold(canon)] = canon
	}
	return n
}

// Default returns a Normalizer loaded with the curated La Union tables.
func Default() *Normalizer {
	return New(Config{
		Towns:          Towns,
		TownAliases:    TownAliases,
		ProductAliases: ProductAliases,
	})
}

// CanonicalTowns returns the canonical town list, sorted. The umbrella
// pseudo-town is not included.
func (n *Normalizer) CanonicalTowns() []string {
	return append([]string(nil), n.towns...)
}

// NormalizeTown maps raw onto a canonical town name. Unmapped input is
// title-cased, with "san"/"santo"-prefixed names capitalized per word and
// the literal "la union" preserved as the umbrella value.
func (n *Normalizer) NormalizeTown(raw string) string {
	key := fold(raw)
	if key == "" {
		return ""
	}
	if canon, ok := n.townAliases[key]; ok {
		return canon
	}
	return titleCase(key)
}

// NormalizeProduct maps raw onto a canonical product name, or title-cases it
// when no alias is known.
func (n *Normalizer) NormalizeProduct(raw string) string {
	key := fold(raw)
	if key == "" {
		return ""
	}
	if canon, ok := n.productAliases[key]; ok {
		return canon
	}
	return titleCase(key)
}

// KnownProductAliases returns the alias keys, longest first, for scanning an
// utterance for product mentions.
func (n *Normalizer) KnownProductAliases() []string {
	keys := make([]string, 0, len(n.productAliases))
	for k := range n.productAliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// fold lowercases and collapses internal whitespace.
func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// titleCase capitalizes each word. Input is assumed already folded.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
