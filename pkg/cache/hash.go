package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ArtifactKey builds the cache key for a rendered artifact: the content
// hash of the composed view plus the output format.
func ArtifactKey(viewHash, format string) string {
	return fmt.Sprintf("artifact:%s:%s", viewHash, format)
}

// Scoped wraps a key-building function with a namespace prefix, isolating
// cache entries per workspace so that deleting a workspace can evict its
// artifacts without touching others.
func Scoped(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}
