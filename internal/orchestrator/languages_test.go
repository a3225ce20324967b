package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguages(t *testing.T) {
	paths := []string{
		"app/main.py",
		"app/util.py",
		"web/index.js",
		"README.md",    // unrecognized, excluded from the denominator
		"data/out.bin", // unrecognized
	}

	languages := detectLanguages(paths)

	assert.Equal(t, map[string]float64{
		"Python":     66.67,
		"JavaScript": 33.33,
	}, languages)
}

func TestDetectLanguagesEmpty(t *testing.T) {
	assert.Empty(t, detectLanguages(nil))
	assert.Empty(t, detectLanguages([]string{"README.md"}))
}
