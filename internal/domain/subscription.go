package domain

import (
	"net/mail"
	"strings"
	"time"
)

// PendingSubscription is an email address awaiting verification.
// At most one exists per email; a new subscribe request replaces the code.
type PendingSubscription struct {
	RequestedAt time.Time `json:"requestedAt,omitempty" yaml:"requestedAt,omitempty"` // Informational only, never expires
	Email       string    `json:"email" yaml:"email"`
	Code        string    `json:"code" yaml:"code"`
}

// NormalizeEmail trims surrounding whitespace from an email address.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// ValidEmail reports whether email is a bare, syntactically valid address.
// Display names ("Bob <bob@example.com>") and blank strings are rejected.
func ValidEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	if addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1
}

// ContainsEmail reports whether emails contains an exact match for email.
func ContainsEmail(emails []string, email string) bool {
	for _, e := range emails {
		if e == email {
			return true
		}
	}
	return false
}

// RemoveEmail returns emails without any exact match for email, and whether one was removed.
func RemoveEmail(emails []string, email string) ([]string, bool) {
	kept := make([]string, 0, len(emails))
	removed := false
	for _, e := range emails {
		if e == email {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	return kept, removed
}

// UniqueEmails drops duplicates, keeping the first occurrence of each address.
func UniqueEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
