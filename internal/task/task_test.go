package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle_ComposesDecomposedInput(t *testing.T) {
	// "é" as 'e' + combining acute accent (NFD) normalizes to the single
	// precomposed codepoint (NFC).
	decomposed := "café"
	composed := "café"

	assert.Equal(t, composed, NormalizeTitle(decomposed))
}

func TestNormalizeTitle_LeavesComposedInputAlone(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{name: "ascii", title: "write the report"},
		{name: "empty", title: ""},
		{name: "precomposed", title: "café"},
		{name: "cjk", title: "買い物リスト"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, NormalizeTitle(tt.title))
		})
	}
}

func TestNormalizeTitle_Idempotent(t *testing.T) {
	once := NormalizeTitle("café Å")
	assert.Equal(t, once, NormalizeTitle(once))
}
