// Package token generates task identifiers and verification codes.
package token

import (
	"fmt"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"

	"github.com/runoshun/task-reminder/internal/domain"
)

// Ensure Generator implements domain.TokenGenerator.
var _ domain.TokenGenerator = (*Generator)(nil)

// codeAlphabet avoids characters that need escaping in URLs.
const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultCodeLength gives ~190 bits of entropy over codeAlphabet.
const DefaultCodeLength = 32

// Generator produces UUIDv4 task IDs and nanoid verification codes.
type Generator struct {
	newCode func() string
}

// New creates a Generator whose verification codes have the given length.
// A non-positive length selects DefaultCodeLength.
func New(codeLength int) (*Generator, error) {
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}
	gen, err := nanoid.CustomASCII(codeAlphabet, codeLength)
	if err != nil {
		return nil, fmt.Errorf("create code generator: %w", err)
	}
	return &Generator{newCode: gen}, nil
}

// NewTaskID returns a random UUID string.
func (g *Generator) NewTaskID() string {
	return uuid.New().String()
}

// NewVerificationCode returns a random URL-safe code.
func (g *Generator) NewVerificationCode() (string, error) {
	return g.newCode(), nil
}
