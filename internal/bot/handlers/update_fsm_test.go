package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpdateValueNames(t *testing.T) {
	for _, field := range []string{"name", "surname", "middlename"} {
		got, errText := ValidateUpdateValue(field, "  Пётр ")
		assert.Empty(t, errText, field)
		assert.Equal(t, "Пётр", got, field)

		_, errText = ValidateUpdateValue(field, "Пётр1")
		assert.NotEmpty(t, errText, field)
	}
}

func TestValidateUpdateValueNumber(t *testing.T) {
	got, errText := ValidateUpdateValue("number", "12")
	assert.Empty(t, errText)
	assert.Equal(t, "12", got)

	_, errText = ValidateUpdateValue("number", "12a")
	assert.NotEmpty(t, errText)
}

func TestValidateUpdateValueUsername(t *testing.T) {
	got, errText := ValidateUpdateValue("tg_username", "ivan_petrov.77")
	assert.Empty(t, errText)
	assert.Equal(t, "ivan_petrov.77", got)

	_, errText = ValidateUpdateValue("tg_username", "ivan petrov")
	assert.NotEmpty(t, errText)

	_, errText = ValidateUpdateValue("tg_username", "ivan@petrov")
	assert.NotEmpty(t, errText)
}

func TestValidateUpdateValueLimits(t *testing.T) {
	_, errText := ValidateUpdateValue("name", "  ")
	assert.NotEmpty(t, errText)

	long := strings.Repeat("а", 51)
	_, errText = ValidateUpdateValue("name", long)
	assert.NotEmpty(t, errText)

	ok := strings.Repeat("а", 50)
	got, errText := ValidateUpdateValue("name", ok)
	assert.Empty(t, errText)
	assert.Equal(t, ok, got)
}
