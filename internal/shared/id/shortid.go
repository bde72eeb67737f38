// Package id generates Stripe-style prefixed identifiers ("txn_4fQ...") for
// references exposed to customers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultLength = 12

	// ReferenceLength keeps payment references collision free at any
	// realistic volume.
	ReferenceLength = 20
)

const (
	PrefixTransaction = "txn"
)

// Generate creates a cryptographically random, URL-safe Base62 string.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates an ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + id, nil
}

// ParsePrefixedID splits "txn_abc" into ("txn", "abc").
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	prefix, shortID, ok := strings.Cut(prefixedID, "_")
	if !ok || prefix == "" || shortID == "" {
		return "", "", fmt.Errorf("invalid prefixed ID format: %q", prefixedID)
	}
	return prefix, shortID, nil
}

// ValidatePrefix checks that prefixedID is well formed and carries expectedPrefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, _, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

// NewTransactionReference returns the external reference stored as a
// payment's transaction_id.
func NewTransactionReference() (string, error) {
	return GenerateWithPrefix(PrefixTransaction, ReferenceLength)
}
