package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type wizardA struct{ Step int }
type wizardB struct{ Step int }

func TestStore_GetSetClear(t *testing.T) {
	s := NewStore[wizardA]()

	assert.Nil(t, s.Get(1))
	assert.False(t, s.Active(1))

	s.Set(1, &wizardA{Step: 2})
	if assert.NotNil(t, s.Get(1)) {
		assert.Equal(t, 2, s.Get(1).Step)
	}
	assert.True(t, s.Active(1))

	// состояния разных чатов независимы
	assert.Nil(t, s.Get(2))

	s.Clear(1)
	assert.Nil(t, s.Get(1))
	assert.False(t, s.Active(1))
}

func TestDiscard_ClearsEveryRegisteredStore(t *testing.T) {
	a := NewStore[wizardA]()
	b := NewStore[wizardB]()

	a.Set(7, &wizardA{Step: 1})
	b.Set(7, &wizardB{Step: 3})
	b.Set(8, &wizardB{Step: 5})

	Discard(7)

	assert.Nil(t, a.Get(7))
	assert.Nil(t, b.Get(7))
	// чужой чат не задет
	assert.NotNil(t, b.Get(8))
}
