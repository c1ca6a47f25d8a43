package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_UnknownSection(t *testing.T) {
	path := writeTestConfig(t, `unknown_section = "value"`)
	_, err := Load(path, testLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config section")
}

func TestLoad_UnknownKeyWithSuggestion(t *testing.T) {
	path := writeTestConfig(t, `
[sync]
conflict_resolutoin = "prefer_host"
`)
	_, err := Load(path, testLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean")
	assert.Contains(t, err.Error(), "conflict_resolution")
}

func TestLoad_UnknownKeyNoSuggestion(t *testing.T) {
	path := writeTestConfig(t, `
[device]
completely_unrelated_key = true
`)
	_, err := Load(path, testLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("same", "same"))
	assert.Equal(t, 1, levenshtein("cat", "cats"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
}

func TestClosestMatch(t *testing.T) {
	known := []string{"container", "database"}
	assert.Equal(t, "container", closestMatch("continer", known))
	assert.Equal(t, "", closestMatch("completely_different_thing", known))
}
