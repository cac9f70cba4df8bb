package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPollOptions(t *testing.T) {
	assert.Equal(t, []string{"Буду", "Не буду", "Тренер"}, SplitPollOptions("Буду; Не буду ;Тренер"))
	assert.Empty(t, SplitPollOptions(";;"))
	assert.Empty(t, SplitPollOptions("   "))
}

func TestParsePollOptions(t *testing.T) {
	got, ok := ParsePollOptions("A;B;C")
	assert.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, got)

	_, ok = ParsePollOptions("A")
	assert.False(t, ok)

	_, ok = ParsePollOptions(";;")
	assert.False(t, ok)

	ten := strings.Repeat("x;", 9) + "x"
	got, ok = ParsePollOptions(ten)
	assert.True(t, ok)
	assert.Len(t, got, 10)

	eleven := strings.Repeat("x;", 10) + "x"
	_, ok = ParsePollOptions(eleven)
	assert.False(t, ok)
}
