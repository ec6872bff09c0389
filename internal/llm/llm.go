// Package llm is the boundary to the external text-generation collaborator.
package llm

import "context"

// TextCompleter produces a completion for a prompt. Implementations must
// honor context cancellation and bound their own latency.
type TextCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
