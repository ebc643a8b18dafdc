package workspace

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

const (
	idMaxLength          = 64
	randomSuffixLength   = 6
	randomSuffixFallback = "abcdef"
)

var (
	idPattern           = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)
	nonAlphanumericExpr = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slug normalizes a display name into an identifier-friendly form.
func Slug(name string) string {
	lowered := strings.ToLower(name)
	slug := nonAlphanumericExpr.ReplaceAllString(lowered, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > idMaxLength {
		slug = trimToLength(slug, idMaxLength)
	}
	return slug
}

// NewSlugID derives a readable id from name with a random suffix, such as
// "innovate-inc-x3k9qa". Names with no usable characters fall back to prefix.
func NewSlugID(prefix, name string) string {
	base := Slug(name)
	if base == "" {
		base = prefix
	}
	suffix := randomSuffix(randomSuffixLength)
	if len(base)+1+len(suffix) > idMaxLength {
		base = trimToLength(base, idMaxLength-1-len(suffix))
	}
	return base + "-" + suffix
}

// ValidateID checks ids the CLI accepts from users.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if len(id) > idMaxLength {
		return fmt.Errorf("id %q is too long: maximum length is %d characters", id, idMaxLength)
	}
	if len(id) > 1 && !idPattern.MatchString(id) {
		return fmt.Errorf("invalid id %q: must match %s", id, idPattern.String())
	}
	return nil
}

func randomSuffix(length int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return randomSuffixFallback
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}

func trimToLength(value string, length int) string {
	if len(value) <= length {
		return strings.Trim(value, "-")
	}
	return strings.Trim(value[:length], "-")
}
