package admin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratePasswordLength(t *testing.T) {
	pw, err := GeneratePassword(16)
	require.NoError(t, err)
	require.Len(t, pw, 16)

	pw, err = GeneratePassword(0)
	require.NoError(t, err)
	require.Len(t, pw, 12)
}

func TestGeneratePasswordAlphabet(t *testing.T) {
	pw, err := GeneratePassword(64)
	require.NoError(t, err)
	for _, r := range pw {
		require.True(t, strings.ContainsRune(passwordAlphabet, r), "unexpected character %q", r)
	}
}

func TestGeneratePasswordVaries(t *testing.T) {
	a, err := GeneratePassword(24)
	require.NoError(t, err)
	b, err := GeneratePassword(24)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
