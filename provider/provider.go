// Package provider implements translation backends. The production backend
// talks to Gemini through its OpenAI-compatible endpoint; a mock and a
// Redis-caching wrapper are included for tests and deployments.
package provider

import "context"

// Provider translates single strings. Implementations classify failures
// with gotlmem.ProviderError so callers can tell configuration problems
// from transient ones.
type Provider interface {
	// Translate returns the translation of text into the target language.
	Translate(ctx context.Context, text, targetLang string) (string, error)
	// TestConnection performs a minimal round trip to verify credentials.
	TestConnection(ctx context.Context) error
}
