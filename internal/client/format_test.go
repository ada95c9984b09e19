package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wiqnnc/wiki/internal/search"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"build timestamp", "2026-10-15T14:03:07.250Z", "15 Oct 2026, 14:03"},
		{"single digit day", "2026-09-05T09:05:00Z", "5 Sept 2026, 09:05"},
		{"offset converted", "2026-01-01T01:30:00+02:00", "31 Dec 2025, 23:30"},
		{"empty", "", ""},
		{"unparsable", "yesterday", ""},
		{"date only", "2026-10-15", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatTimestampIn(tt.input, time.UTC))
		})
	}
}

func TestFormatTimestamp_NeverPanics(t *testing.T) {
	for _, s := range []string{"\x00", "9999-99-99T99:99:99Z", "0000-00-00"} {
		assert.NotPanics(t, func() { _ = FormatTimestamp(s) })
	}
}

func TestIndexInfo(t *testing.T) {
	assert.Equal(t, "", IndexInfo(nil))
	assert.Equal(t, "12 docs · ", IndexInfo(&search.Manifest{Documents: 12, GeneratedAt: "garbage"}))
}
