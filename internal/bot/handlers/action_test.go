package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teamops/football-team-bot/internal/models"
)

func TestDecodeActionSimple(t *testing.T) {
	cases := map[string]Action{
		"cancel":      ActCancel{},
		"skip":        ActSkip{},
		"back":        ActBack{},
		"save":        ActSave{},
		"confirm:yes": ActConfirm{Yes: true},
		"confirm:no":  ActConfirm{Yes: false},
		"notify:yes":  ActNotify{Yes: true},
		"notify:no":   ActNotify{Yes: false},
		"role:player": ActSelectRole{Player: true},
		"role:coach":  ActSelectRole{Coach: true},
		"role:both":   ActSelectRole{Player: true, Coach: true},
	}
	for data, want := range cases {
		got, ok := DecodeAction(data)
		assert.True(t, ok, data)
		assert.Equal(t, want, got, data)
	}
}

func TestDecodeActionParams(t *testing.T) {
	got, ok := DecodeAction("position:7")
	assert.True(t, ok)
	assert.Equal(t, ActSelectPosition{ID: 7}, got)

	got, ok = DecodeAction("chat:42")
	assert.True(t, ok)
	assert.Equal(t, ActSelectChat{ID: 42}, got)

	got, ok = DecodeAction("status:injured")
	assert.True(t, ok)
	assert.Equal(t, ActSelectStatus{Status: models.StatusInjured}, got)

	got, ok = DecodeAction("edit:tg_username")
	assert.True(t, ok)
	assert.Equal(t, ActEditField{Field: "tg_username"}, got)
}

func TestDecodeActionRejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"", "unknown", "position:", "position:abc",
		"chat:x", "status:benched", "edit:password", "role:referee",
	} {
		_, ok := DecodeAction(data)
		assert.False(t, ok, data)
	}
}
