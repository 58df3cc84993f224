package provider

import (
	"context"
	"fmt"
)

// MockProvider is a canned-response provider for testing.
type MockProvider struct {
	Translations map[string]string // source text to translation
	Errors       map[string]error  // source text to forced error
	CallCount    int
	LastText     string
	LastLang     string
}

// NewMockProvider creates a mock with a few default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":   "Hola",
			"World":   "Mundo",
			"Buy Now": "Comprar ahora",
		},
	}
}

// Translate returns the canned translation, a forced error, or the input
// bracketed when no mapping exists.
func (m *MockProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	m.CallCount++
	m.LastText = text
	m.LastLang = targetLang

	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("[%s]", text), nil
}

// TestConnection always succeeds.
func (m *MockProvider) TestConnection(ctx context.Context) error {
	m.CallCount++
	return nil
}

// Reset clears the call bookkeeping.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastText = ""
	m.LastLang = ""
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
