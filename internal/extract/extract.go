// Package extract pulls structured slots out of a raw utterance: the towns it
// mentions and, when recognizable, a product hint. Name canonicalization is
// delegated to the lexicon.
package extract

import (
	"sort"
	"strings"

	"elyubot/internal/lexicon"
)

// Result holds the slots found in one utterance. Towns is a deduplicated set,
// returned sorted for deterministic downstream behavior.
type Result struct {
	Towns       []string
	ProductHint string
}

// Extractor scans utterances against the lexicon's canonical town list and
// product alias keys.
type Extractor struct {
	norm       *lexicon.Normalizer
	multiWord  []string
	singleWord []string
}

// New builds an Extractor over the given normalizer. Multi-word town names
// are split out so they can be matched before any single-word token scan;
// "san fernando" must win over a stray "san".
func New(norm *lexicon.Normalizer) *Extractor {
	e := &Extractor{norm: norm}
	for _, t := range norm.CanonicalTowns() {
		lower := strings.ToLower(t)
		if strings.Contains(lower, " ") {
			e.multiWord = append(e.multiWord, lower)
		} else {
			e.singleWord = append(e.singleWord, lower)
		}
	}
	return e
}

// Extract returns the towns and product hint found in an utterance. Empty or
// missing input yields an empty result.
func (e *Extractor) Extract(utterance string) Result {
	lower := strings.ToLower(utterance)
	if strings.TrimSpace(lower) == "" {
		return Result{}
	}

	found := make(map[string]struct{})

	// Multi-word names first, as substrings.
	for _, name := range e.multiWord {
		if strings.Contains(lower, name) {
			found[e.norm.NormalizeTown(name)] = struct{}{}
		}
	}

	// Then single-word names against word-boundary tokens.
	tokens := tokenSet(lower)
	for _, name := range e.singleWord {
		if _, ok := tokens[name]; ok {
			found[e.norm.NormalizeTown(name)] = struct{}{}
		}
	}

	// The umbrella pseudo-town counts as a mention too.
	if strings.Contains(lower, "la union") {
		found[lexicon.Umbrella] = struct{}{}
	}

	towns := make([]string, 0, len(found))
	for t := range found {
		towns = append(towns, t)
	}
	sort.Strings(towns)

	return Result{
		Towns:       towns,
		ProductHint: e.productHint(lower, tokens),
	}
}

// productHint returns the canonical form of the first known product alias
// appearing in the utterance, longest alias first so "abel iloco" beats
// "abel". Returns "" when nothing matches.
func (e *Extractor) productHint(lower string, tokens map[string]struct{}) string {
	for _, alias := range e.norm.KnownProductAliases() {
		if strings.Contains(alias, " ") {
			if strings.Contains(lower, alias) {
				return e.norm.NormalizeProduct(alias)
			}
			continue
		}
		if _, ok := tokens[alias]; ok {
			return e.norm.NormalizeProduct(alias)
		}
	}
	return ""
}

func tokenSet(lower string) map[string]struct{} {
	fields := strings.Fields(lower)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]{}\"'")
		if f == "" {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}
