package ports

import "context"

// LLMClient is the opaque text-completion boundary. The analysis core only
// uses it to wrap finished numeric results in a narrative; analysis never
// depends on a completion succeeding.
type LLMClient interface {
	ChatCompletion(ctx context.Context, prompt string) (string, error)
}
