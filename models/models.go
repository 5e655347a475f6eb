// Package models wraps the hosted large-language-model backends. Each
// backend is a black-box function: prompt text in, text out, unreliable
// JSON. Callers recover structure with the normalize package.
package models

import (
	"encoding/json"
	"fmt"
)

// QueryFunc is the signature tool handlers depend on, so tests can swap
// the network call for a canned response.
type QueryFunc func(prompt string) (string, error)

// Query dispatches to the configured provider.
func Query(provider, prompt string) (string, error) {
	switch provider {
	case "", "claude":
		return QueryClaude(prompt)
	case "ollama":
		return QueryOllama("", prompt)
	default:
		// Anything else is treated as an Ollama model name.
		return QueryOllama(provider, prompt)
	}
}

// ProviderQuery returns a QueryFunc bound to one provider.
func ProviderQuery(provider string) QueryFunc {
	return func(prompt string) (string, error) {
		return Query(provider, prompt)
	}
}

// DirectFunc matches DirectAnswer so the API handlers can stub the
// fallback path in tests.
type DirectFunc func(provider, instruction string, payload any) (string, error)

// DirectAnswer is the last-resort fallback used by the API handlers when
// the tool layer is unavailable: one hand-rolled prompt straight to the
// model, bypassing the tool framing entirely.
func DirectAnswer(provider, instruction string, payload any) (string, error) {
	prompt := instruction
	if payload != nil {
		b, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode fallback payload: %w", err)
		}
		prompt = fmt.Sprintf("%s\n\n%s", instruction, b)
	}
	prompt += "\n\nRespond with a single JSON object and nothing else."
	return Query(provider, prompt)
}
