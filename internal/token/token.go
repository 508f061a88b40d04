// Package token generates opaque, URL-safe random identifiers for shareable
// poll links.
package token

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_"

// SlugLength is the length of public poll slugs. 64^10 possible values keeps
// collisions a theoretical concern, but callers still retry on collision.
const SlugLength = 10

// New returns a random string of length n drawn from a URL-safe alphabet.
func New(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	// 64-character alphabet, so masking a byte to 6 bits is uniform.
	for i := range b {
		b[i] = alphabet[b[i]&0x3f]
	}
	return string(b), nil
}

// NewSlug returns a random public slug.
func NewSlug() (string, error) {
	return New(SlugLength)
}
