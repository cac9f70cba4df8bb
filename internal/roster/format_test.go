package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamops/football-team-bot/internal/models"
)

func strptr(s string) *string { return &s }

func samplePeople() []models.Person {
	return []models.Person{
		{
			ID: 1, Name: "Иван", Surname: "Петров",
			TGUsername: strptr("ivan_p"), Position: strptr("QB"), Number: strptr("12"),
			Status: models.StatusActive, Roles: []string{"player"},
		},
		{
			ID: 2, Name: "Олег", Surname: "Сидоров",
			Position: strptr("WR"),
			Status:   models.StatusInjured, Roles: []string{"player"},
		},
		{
			ID: 3, Name: "Андрей", Surname: "Кузнецов",
			Status: models.StatusActive, Roles: []string{"coach"},
		},
	}
}

func TestFormatRosterPlayers(t *testing.T) {
	got := FormatRoster(samplePeople(), models.Player, true)

	assert.True(t, strings.HasPrefix(got, "📋 <b>Список игроков:</b>\n\n"))
	assert.Contains(t, got, "✅ 1. <b>Иван Петров</b> (@ivan_p) — QB #12 [В строю]")
	assert.Contains(t, got, "🤕 2. <b>Олег Сидоров</b> — WR [Травма]")
	assert.NotContains(t, got, "Кузнецов")
}

func TestFormatRosterDashWithoutPosition(t *testing.T) {
	people := []models.Person{{Name: "Иван", Surname: "Петров", Status: models.StatusActive, Roles: []string{"player"}}}
	got := FormatRoster(people, models.Player, true)
	assert.Contains(t, got, "✅ 1. <b>Иван Петров</b> — [В строю]")
}

func TestFormatRosterCoaches(t *testing.T) {
	got := FormatRoster(samplePeople(), models.Coach, false)

	assert.True(t, strings.HasPrefix(got, "📋 <b>Список тренеров:</b>\n\n"))
	assert.Contains(t, got, "✅ 1. <b>Андрей Кузнецов</b> [В строю]")
	assert.NotContains(t, got, "Петров")
}

func TestFormatRosterEmpty(t *testing.T) {
	assert.Equal(t, EmptyPlayers, FormatRoster(nil, models.Player, true))
	assert.Equal(t, EmptyCoaches, FormatRoster(nil, models.Coach, false))

	onlyCoach := []models.Person{{Name: "А", Surname: "Б", Status: models.StatusActive, Roles: []string{"coach"}}}
	assert.Equal(t, EmptyPlayers, FormatRoster(onlyCoach, models.Player, true))
}

func TestFormatRosterUnknownStatus(t *testing.T) {
	people := []models.Person{{Name: "Иван", Surname: "Петров", Status: models.Status("benched"), Roles: []string{"player"}}}
	got := FormatRoster(people, models.Player, false)
	assert.Contains(t, got, "❓1. <b>Иван Петров</b> [Неизвестно]")
}

func TestFormatRosterByPosition(t *testing.T) {
	positions := []models.Position{{ID: 1, Name: "QB"}, {ID: 2, Name: "WR"}}

	got, err := FormatRosterByPosition(samplePeople(), positions, "qb")
	require.NoError(t, err)
	assert.Contains(t, got, "📋 <b>Игроки на позиции QB:</b>")
	assert.Contains(t, got, "Иван Петров")
	assert.NotContains(t, got, "Сидоров")
}

func TestFormatRosterByPositionUnknown(t *testing.T) {
	positions := []models.Position{{ID: 1, Name: "QB"}, {ID: 2, Name: "WR"}}

	_, err := FormatRosterByPosition(samplePeople(), positions, "GK")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QB, WR")
}

func TestFormatRosterByPositionEmpty(t *testing.T) {
	positions := []models.Position{{ID: 1, Name: "CB"}}

	got, err := FormatRosterByPosition(samplePeople(), positions, "CB")
	require.NoError(t, err)
	assert.Equal(t, "📭 На позиции CB пока нет игроков в строю.", got)
}
