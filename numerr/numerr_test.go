package numerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageIncludesKindAndDetail(t *testing.T) {
	err := New(DivideByZero, "a/%s", "0")
	assert.Equal(t, "divide-by-zero: a/0", err.Error())
}

func TestErrorMessageFallsBackToKindAlone(t *testing.T) {
	err := New(Overflow, "")
	assert.Equal(t, "overflow", err.Error())
}

func TestKindStringCoversEveryCategory(t *testing.T) {
	kinds := []Kind{DivideByZero, Overflow, OperandIsNaN, InternalOutOfBounds, ParseFailure}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		assert.NotEqual(t, "unknown", s, "Kind %d stringified to unknown", k)
		assert.False(t, seen[s], "Kind %d duplicates string %q of an earlier kind", k, s)
		seen[s] = true
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := New(ParseFailure, "bad digit")
	assert.True(t, Is(err, ParseFailure), "Is should match the error's own kind")
	assert.False(t, Is(err, Overflow), "Is should not match an unrelated kind")
}

func TestIsRejectsNonNumerrErrors(t *testing.T) {
	plain := &struct{ error }{}
	assert.False(t, Is(plain, DivideByZero), "Is should reject errors that are not *numerr.Error")
}
