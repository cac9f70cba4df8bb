//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/teamops/football-team-bot/internal/db"
	"github.com/teamops/football-team-bot/internal/models"
	"github.com/teamops/football-team-bot/internal/testutil/testdb"
)

func strptr(s string) *string { return &s }
func i64ptr(n int64) *int64   { return &n }

func TestRoster_CreateAndDuplicate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if err := db.Seed(ctx, h.DB, 0, ""); err != nil {
		t.Fatal(err)
	}

	roleIDs, err := db.RoleIDsByLabels(ctx, h.DB, models.Player, models.Coach)
	if err != nil {
		t.Fatal(err)
	}
	positions := db.ListPositions(ctx, h.DB)
	if len(positions) == 0 {
		t.Fatal("справочник позиций пуст после закладки")
	}

	draft := db.PersonDraft{
		Name:       "Иван",
		Surname:    "Петров",
		TGUsername: strptr("ivan_p"),
		TGID:       i64ptr(100),
		PositionID: &positions[0].ID,
	}
	if err := db.CreatePerson(ctx, h.DB, draft, roleIDs); err != nil {
		t.Fatal(err)
	}

	// повтор по тому же tg_id — дубликат, ничего не пишем
	if err := db.CreatePerson(ctx, h.DB, draft, roleIDs); !errors.Is(err, db.ErrDuplicate) {
		t.Fatalf("ожидали ErrDuplicate, получили %v", err)
	}

	// тот же username, другой tg_id — тоже дубликат
	dup := draft
	dup.TGID = i64ptr(200)
	if err := db.CreatePerson(ctx, h.DB, dup, roleIDs); !errors.Is(err, db.ErrDuplicate) {
		t.Fatalf("ожидали ErrDuplicate по username, получили %v", err)
	}

	// без ролей — отказ до записи
	if err := db.CreatePerson(ctx, h.DB, db.PersonDraft{Name: "А", Surname: "Б"}, nil); !errors.Is(err, db.ErrNoRoles) {
		t.Fatalf("ожидали ErrNoRoles, получили %v", err)
	}
}

func TestRoster_RolesRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if err := db.Seed(ctx, h.DB, 0, ""); err != nil {
		t.Fatal(err)
	}

	roleIDs, err := db.RoleIDsByLabels(ctx, h.DB, models.Player, models.Coach)
	if err != nil {
		t.Fatal(err)
	}
	draft := db.PersonDraft{Name: "Олег", Surname: "Сидоров", TGID: i64ptr(300)}
	if err := db.CreatePerson(ctx, h.DB, draft, roleIDs); err != nil {
		t.Fatal(err)
	}

	people := db.ListPeople(ctx, h.DB, false)
	if len(people) != 1 {
		t.Fatalf("ожидали одну запись, получили %d", len(people))
	}
	p := people[0]
	if !p.HasRole(models.Player) || !p.HasRole(models.Coach) {
		t.Fatalf("роли не совпали: %v", p.Roles)
	}
	if p.Status != models.StatusActive {
		t.Fatalf("статус по умолчанию должен быть active, получили %s", p.Status)
	}
}

func TestRoster_UpdateField(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if err := db.Seed(ctx, h.DB, 0, ""); err != nil {
		t.Fatal(err)
	}

	roleIDs, err := db.RoleIDsByLabels(ctx, h.DB, models.Player)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.CreatePerson(ctx, h.DB, db.PersonDraft{Name: "Пётр", Surname: "Иванов", TGID: i64ptr(400)}, roleIDs); err != nil {
		t.Fatal(err)
	}
	people := db.ListPeople(ctx, h.DB, false)
	if len(people) != 1 {
		t.Fatalf("ростер: %d записей", len(people))
	}
	id := people[0].ID

	if err := db.UpdatePersonField(ctx, h.DB, id, "status", string(models.StatusInjured)); err != nil {
		t.Fatal(err)
	}
	p := db.GetPersonByID(ctx, h.DB, id)
	if p == nil || p.Status != models.StatusInjured {
		t.Fatalf("статус не обновился: %#v", p)
	}

	// травмированные выпадают из выборки «в строю»
	if active := db.ListPeople(ctx, h.DB, true); len(active) != 0 {
		t.Fatalf("ожидали пустую выборку активных, получили %d", len(active))
	}

	// запрещённое поле — ошибка без запроса
	if err := db.UpdatePersonField(ctx, h.DB, id, "id", 99); err == nil {
		t.Fatal("ожидали ошибку для недоступного поля")
	}

	// несуществующая запись
	if err := db.UpdatePersonField(ctx, h.DB, id+100, "name", "Х"); err == nil {
		t.Fatal("ожидали ошибку для несуществующего id")
	}
}
