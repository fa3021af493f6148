package utils

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
)

const maxSlugNameLength = 50

var (
	slugStrip      = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
)

// Slugify lower-cases name, drops everything outside [a-z0-9\s-], turns
// whitespace runs into single hyphens and caps the result at 50 characters.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "")
	slug = slugWhitespace.ReplaceAllString(strings.TrimSpace(slug), "-")
	if len(slug) > maxSlugNameLength {
		slug = slug[:maxSlugNameLength]
	}
	return slug
}

// GenerateSlug returns "{8 hex chars}/{slugified name}".
func GenerateSlug(name string) (string, error) {
	prefix := make([]byte, 4)
	if _, err := rand.Read(prefix); err != nil {
		return "", err
	}
	return hex.EncodeToString(prefix) + "/" + Slugify(name), nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomBase36 returns n random characters from [0-9a-z].
func RandomBase36(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return string(buf), nil
}
