package club

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarNames(t *testing.T) {
	known := []string{"Ana", "Bea", "Cris", "Dani", "Ana López"}

	t.Run("known name is not new", func(t *testing.T) {
		assert.Nil(t, SimilarNames("Ana", known))
	})

	t.Run("case difference", func(t *testing.T) {
		s := SimilarNames("ana", known)
		require.NotEmpty(t, s)
		assert.Equal(t, "Ana", s[0].Name)
		assert.Equal(t, 1.0, s[0].Confidence)
		assert.Contains(t, s[0].Reasons, "Same name with different case or punctuation")
	})

	t.Run("typo", func(t *testing.T) {
		s := SimilarNames("Chris", known)
		require.Len(t, s, 1)
		assert.Equal(t, "Cris", s[0].Name)
		assert.InDelta(t, 0.8, s[0].Confidence, 1e-9)
	})

	t.Run("accented surname", func(t *testing.T) {
		s := SimilarNames("Ana Lopez", known)
		require.NotEmpty(t, s)
		assert.Equal(t, "Ana López", s[0].Name)
	})

	t.Run("unrelated", func(t *testing.T) {
		assert.Empty(t, SimilarNames("Zoe", known))
		assert.Empty(t, SimilarNames("  ", known))
	})
}

func TestNewPlayerWarnings(t *testing.T) {
	warnings := NewPlayerWarnings([]string{"Ana", "Bea", "Chris", "Zoe"}, []string{"Ana", "Bea", "Cris"})

	require.Len(t, warnings, 1)
	assert.Equal(t, "Cris", warnings["Chris"][0].Name)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein([]rune("ana"), []rune("ana")))
	assert.Equal(t, 1, levenshtein([]rune("cris"), []rune("chris")))
	assert.Equal(t, 3, levenshtein([]rune(""), []rune("bea")))
	assert.Equal(t, 1, levenshtein([]rune("lopez"), []rune("lópez")))
}
