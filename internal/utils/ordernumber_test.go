package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	number := GenerateOrderNumber(now)

	parts := strings.Split(number, "-")
	require.Len(t, parts, 3)
	require.Equal(t, "MG", parts[0])
	require.Equal(t, "20260829", parts[1])
	require.Len(t, parts[2], 5)

	// Le suffixe évite les caractères ambigus (0/O, 1/I)
	for _, r := range parts[2] {
		require.Contains(t, orderNumberAlphabet, string(r))
	}
}

func TestGenerateOrderNumberUniqueness(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber(now)
		require.False(t, seen[number], "doublon: %s", number)
		seen[number] = true
	}
}
