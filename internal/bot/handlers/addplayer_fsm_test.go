package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teamops/football-team-bot/internal/models"
)

func TestValidName(t *testing.T) {
	got, ok := ValidName("  Иван  ")
	assert.True(t, ok)
	assert.Equal(t, "Иван", got)

	_, ok = ValidName("И")
	assert.False(t, ok)

	_, ok = ValidName("   ")
	assert.False(t, ok)
}

func TestNormalizeUsername(t *testing.T) {
	got, ok := NormalizeUsername("@Foo12345")
	assert.True(t, ok)
	assert.Equal(t, "Foo12345", got)

	got, ok = NormalizeUsername("ivan_petrov")
	assert.True(t, ok)
	assert.Equal(t, "ivan_petrov", got)

	_, ok = NormalizeUsername("@abc")
	assert.False(t, ok)

	_, ok = NormalizeUsername("")
	assert.False(t, ok)
}

func TestAddNextStepOrder(t *testing.T) {
	st := &AddPlayerState{}
	assert.Equal(t, AddStepSurname, addNextStep(AddStepName, st))
	assert.Equal(t, AddStepUsername, addNextStep(AddStepSurname, st))
	assert.Equal(t, AddStepRole, addNextStep(AddStepUsername, st))
}

func TestAddNextStepPositionOnlyForPlayers(t *testing.T) {
	player := &AddPlayerState{Roles: []models.Role{models.Player}}
	assert.Equal(t, AddStepPosition, addNextStep(AddStepRole, player))

	both := &AddPlayerState{Roles: []models.Role{models.Player, models.Coach}}
	assert.Equal(t, AddStepPosition, addNextStep(AddStepRole, both))

	coach := &AddPlayerState{Roles: []models.Role{models.Coach}}
	assert.Equal(t, AddStepConfirm, addNextStep(AddStepRole, coach))

	assert.Equal(t, AddStepConfirm, addNextStep(AddStepPosition, player))
}
