// Package identifier validates and normalizes the natural keys used as
// primary identifiers across the system: usernames, space slugs, session
// tokens and per-space sequence numbers. Pure validation, no store access.
package identifier

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"

	"spacenotes-be/internal/apperror"
)

const (
	// MaxLength caps usernames and slugs.
	MaxLength = 64

	// TokenLength is the hex-encoded length of a session token (32 random bytes).
	TokenLength = 64
)

var (
	usernameRe = regexp.MustCompile(`^[a-z0-9_-]+$`)
	slugRe     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	tokenRe    = regexp.MustCompile(`^[0-9a-f]{64}$`)
	fieldIDRe  = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// NormalizeUsername trims and lowercases raw, then checks the username
// character class: one or more of [a-z0-9_-].
func NormalizeUsername(raw string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", apperror.NewInvalidIdentifier("username", raw, "must not be empty")
	}
	if len(normalized) > MaxLength {
		return "", apperror.NewInvalidIdentifier("username", raw, "too long")
	}
	if !usernameRe.MatchString(normalized) {
		return "", apperror.NewInvalidIdentifier("username", raw,
			"only lowercase letters, digits, hyphen and underscore are allowed")
	}
	return normalized, nil
}

// NormalizeSlug trims and lowercases raw, then checks the slug shape:
// lowercase alphanumeric segments joined by single hyphens, no leading or
// trailing hyphen, no empty segment.
func NormalizeSlug(raw string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", apperror.NewInvalidIdentifier("slug", raw, "must not be empty")
	}
	if len(normalized) > MaxLength {
		return "", apperror.NewInvalidIdentifier("slug", raw, "too long")
	}
	if !slugRe.MatchString(normalized) {
		return "", apperror.NewInvalidIdentifier("slug", raw,
			"must be lowercase alphanumeric segments joined by single hyphens")
	}
	return normalized, nil
}

// ValidateToken checks a session token supplied by a caller. Tokens are
// generated by NewToken, never user-chosen.
func ValidateToken(raw string) (string, error) {
	if !tokenRe.MatchString(raw) {
		return "", apperror.NewInvalidIdentifier("auth_token", raw, "malformed token")
	}
	return raw, nil
}

// ValidateNumber checks a per-space sequence number. Numbers are allocated,
// callers treat them as opaque positive integers.
func ValidateNumber(n int64) (int64, error) {
	if n <= 0 {
		return 0, apperror.NewInvalidIdentifier("sequence_number", "", "must be a positive integer")
	}
	return n, nil
}

// ValidateFieldID checks a field identifier from a space schema.
func ValidateFieldID(raw string) (string, error) {
	if raw == "" {
		return "", apperror.NewInvalidIdentifier("field_id", raw, "must not be empty")
	}
	if len(raw) > MaxLength {
		return "", apperror.NewInvalidIdentifier("field_id", raw, "too long")
	}
	if !fieldIDRe.MatchString(raw) {
		return "", apperror.NewInvalidIdentifier("field_id", raw,
			"only lowercase letters, digits and underscore are allowed")
	}
	return raw, nil
}

// NewToken returns a fresh high-entropy session token: 32 random bytes,
// hex encoded.
func NewToken() (string, error) {
	buf := make([]byte, TokenLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
