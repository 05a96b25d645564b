// Package llm wraps the external text-generation fallback. The model is a
// black box reached over HTTP; calls are time-bounded, retried a small fixed
// number of times, and callers fail soft into the rule-based answer.
package llm

import "context"

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
