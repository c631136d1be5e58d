package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	t.Run("Should register the serve and quote commands", func(t *testing.T) {
		root := RootCmd()
		names := make([]string, 0, len(root.Commands()))
		for _, c := range root.Commands() {
			names = append(names, c.Name())
		}
		assert.Contains(t, names, "serve")
		assert.Contains(t, names, "quote")
	})
}

func TestParseChoices(t *testing.T) {
	t.Run("Should split pairs and keep order", func(t *testing.T) {
		choices, err := parseChoices([]string{"Tone Ring=Bronze", "Finish=Natural"})
		require.NoError(t, err)
		require.Len(t, choices, 2)
		assert.Equal(t, "Tone Ring", choices[0].Group)
		assert.Equal(t, "Bronze", choices[0].Option)
		assert.Equal(t, "Finish", choices[1].Group)
	})
	t.Run("Should trim whitespace around both sides", func(t *testing.T) {
		choices, err := parseChoices([]string{" Neck Wood = Maple "})
		require.NoError(t, err)
		assert.Equal(t, "Neck Wood", choices[0].Group)
		assert.Equal(t, "Maple", choices[0].Option)
	})
	t.Run("Should reject a pair without a separator", func(t *testing.T) {
		_, err := parseChoices([]string{"Tone Ring"})
		assert.Error(t, err)
	})
	t.Run("Should reject an empty option", func(t *testing.T) {
		_, err := parseChoices([]string{"Tone Ring="})
		assert.Error(t, err)
	})
}

func TestParseChoicesEmpty(t *testing.T) {
	t.Run("Should return an empty slice for no pairs", func(t *testing.T) {
		choices, err := parseChoices(nil)
		require.NoError(t, err)
		assert.Empty(t, choices)
	})
}
