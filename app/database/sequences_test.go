package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCode(t *testing.T) {
	tests := []struct {
		prefix string
		year   int
		month  int
		seq    int
		want   string
	}{
		{"Q", 2026, 3, 1, "Q2603001"},
		{"Q", 2026, 11, 42, "Q2611042"},
		{"PAP", 2025, 1, 7, "PAP2501007"},
		{"PAP", 2099, 12, 999, "PAP9912999"},
		{"Q", 2026, 6, 1000, "Q26061000"},
	}

	for _, tt := range tests {
		got := FormatCode(tt.prefix, tt.year, tt.month, tt.seq)
		assert.Equal(t, tt.want, got)
	}
}

func TestCodePrefixes(t *testing.T) {
	assert.Equal(t, "Q", codePrefixes[ScopeQuestion])
	assert.Equal(t, "PAP", codePrefixes[ScopePaper])
}
