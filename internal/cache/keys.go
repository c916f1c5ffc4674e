package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "quizcraft"
)

// GenerateCacheKey builds "quizcraft:<service>:<objectType>:<identifier>".
// Extra params are joined by "_" and appended as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// ContentHash is the hex sha256 of text, used to key content-addressed entries.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// MaterialSummaryKey keys a cached summary by the extracted text it was built from.
func MaterialSummaryKey(text string) string {
	return GenerateCacheKey("material", "summary", ContentHash(text))
}
