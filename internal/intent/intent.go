// Package intent classifies a raw utterance into a closed set of intents
// using keyword membership. Classification is a pure function: the same
// utterance always yields the same intent.
package intent

import "strings"

// Intent is the closed set of query types ElyuBot understands.
type Intent string

const (
	Greeting              Intent = "greeting"
	StoreInfo             Intent = "store_info"
	ProductInquiry        Intent = "product_inquiry"
	LocationInfo          Intent = "location_info"
	SignatureProductQuery Intent = "signature_product_query"
	RecommendationQuery   Intent = "recommendation_query"
	General               Intent = "general"

	// Fallback is a pseudo-intent chosen when an external NLU source reports
	// confidence below FallbackThreshold, regardless of keyword matches.
	Fallback Intent = "fallback"
)

// FallbackThreshold is the external confidence below which classification is
// overridden to Fallback.
const FallbackThreshold = 0.3

// Score is an intent/confidence pair supplied by an external NLU service.
type Score struct {
	Intent     string
	Confidence float64
}

// rule pairs an intent with its keyword set. Single words are matched against
// word-boundary tokens; phrases are matched as substrings. Rules are
// evaluated in order; the first match wins.
type rule struct {
	intent   Intent
	keywords []string
}

var rules = []rule{
	{Greeting, []string{"hi", "hello", "hey", "morning", "afternoon", "greetings"}},
	{StoreInfo, []string{"store", "shop", "market", "farm", "contact", "hours", "address"}},
	{ProductInquiry, []string{"product", "products", "item", "items", "sell", "sold", "price", "cost", "buy"}},
	{LocationInfo, []string{"municipality", "town", "city", "place", "visit", "tourist", "attraction"}},
	{SignatureProductQuery, []string{"signature", "famous", "known for", "specialty", "known"}},
	{RecommendationQuery, []string{"recommend", "recommendation", "suggest", "suggestion", "suggestions"}},
}

// Classify returns the intent for an utterance.
func Classify(utterance string) Intent {
	tokens := tokenSet(utterance)
	lower := strings.ToLower(utterance)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(kw, " ") {
				if strings.Contains(lower, kw) {
					return r.intent
				}
				continue
			}
			if _, ok := tokens[kw]; ok {
				return r.intent
			}
		}
	}
	return General
}

// ClassifyScored classifies an utterance, honoring an optional external
// confidence score. A score below FallbackThreshold forces Fallback.
func ClassifyScored(utterance string, external *Score) Intent {
	if external != nil && external.Confidence < FallbackThreshold {
		return Fallback
	}
	return Classify(utterance)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
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
