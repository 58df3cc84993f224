package gotlmem

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 content hash of the trimmed text. This is
// the deduplication key of the translation memory: one hash, one row per
// target language. Collisions are accepted as a documented risk; there is
// no full-text tiebreak.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])
}

// CacheKey builds a provider-cache key from a content hash and target
// language.
func CacheKey(hash, targetLang string) string {
	return hash + ":" + targetLang
}
