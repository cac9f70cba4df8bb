package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teamops/football-team-bot/internal/models"
)

func strptr(s string) *string { return &s }
func i64ptr(n int64) *int64   { return &n }

func TestBuildMentionsFormats(t *testing.T) {
	people := []models.Person{
		{Name: "Иван", Surname: "Петров", TGUsername: strptr("ivan_p"), TGID: i64ptr(100),
			Status: models.StatusActive, Roles: []string{"player"}},
		{Name: "Олег", Surname: "Сидоров", TGID: i64ptr(200),
			Status: models.StatusActive, Roles: []string{"player"}},
		{Name: "Пётр", Surname: "Иванов",
			Status: models.StatusActive, Roles: []string{"player"}},
	}

	got := BuildMentions(people, "")
	assert.Equal(t, []string{
		"@ivan_p",
		`<a href="tg://user?id=200">Олег Сидоров</a>`,
		"Пётр Иванов",
	}, got)
}

func TestBuildMentionsFilters(t *testing.T) {
	people := []models.Person{
		{Name: "А", Surname: "Б", TGUsername: strptr("qb_one"), Position: strptr("QB"),
			Status: models.StatusActive, Roles: []string{"player"}},
		{Name: "В", Surname: "Г", TGUsername: strptr("wr_one"), Position: strptr("WR"),
			Status: models.StatusActive, Roles: []string{"player"}},
		{Name: "Д", Surname: "Е", TGUsername: strptr("qb_two"), Position: strptr("QB"),
			Status: models.StatusInjured, Roles: []string{"player"}},
		{Name: "Ж", Surname: "З", TGUsername: strptr("coach"), Position: strptr("QB"),
			Status: models.StatusActive, Roles: []string{"coach"}},
	}

	got := BuildMentions(people, "QB")
	assert.Equal(t, []string{"@qb_one"}, got)
}

func TestBuildMentionsEmpty(t *testing.T) {
	assert.Empty(t, BuildMentions(nil, ""))
	assert.Empty(t, BuildMentions(nil, "QB"))
}
