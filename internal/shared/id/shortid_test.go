package id

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionReference(t *testing.T) {
	pattern := regexp.MustCompile(`^txn_[0-9A-Za-z]{20}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := NewTransactionReference()
		require.NoError(t, err)
		assert.Regexp(t, pattern, ref)
		assert.False(t, seen[ref])
		seen[ref] = true
		assert.NoError(t, ValidatePrefix(ref, PrefixTransaction))
	}
}

func TestParsePrefixedID(t *testing.T) {
	tests := []struct {
		input      string
		wantPrefix string
		wantShort  string
		wantErr    bool
	}{
		{"txn_abc123", "txn", "abc123", false},
		{"txn_a_b", "txn", "a_b", false},
		{"nounderscore", "", "", true},
		{"_abc", "", "", true},
		{"txn_", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prefix, short, err := ParsePrefixedID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantShort, short)
		})
	}

	assert.Error(t, ValidatePrefix("usr_abc", PrefixTransaction))
}

func FuzzParsePrefixedID(f *testing.F) {
	for _, seed := range []string{"txn_abc", "", "_", "a_b_c", "中文_测试"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			return
		}
		prefix, short, err := ParsePrefixedID(input)
		if err != nil {
			return
		}
		if input != prefix+"_"+short {
			t.Errorf("ParsePrefixedID(%q) = %q, %q does not rebuild the input", input, prefix, short)
		}
		if strings.Contains(prefix, "_") {
			t.Errorf("prefix %q contains the separator", prefix)
		}
	})
}
