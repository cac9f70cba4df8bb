//go:build testutil
// +build testutil

package access_test

import (
	"context"
	"testing"

	"github.com/teamops/football-team-bot/internal/bot/access"
	"github.com/teamops/football-team-bot/internal/db"
	"github.com/teamops/football-team-bot/internal/models"
	"github.com/teamops/football-team-bot/internal/testutil/testdb"
)

func TestIsPermitted(t *testing.T) {
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

	coachIDs, err := db.RoleIDsByLabels(ctx, h.DB, models.Coach)
	if err != nil {
		t.Fatal(err)
	}
	tgID := int64(500)
	if err := db.CreatePerson(ctx, h.DB, db.PersonDraft{Name: "Андрей", Surname: "Кузнецов", TGID: &tgID}, coachIDs); err != nil {
		t.Fatal(err)
	}

	if !access.IsPermitted(ctx, h.DB, tgID, models.Admin, models.Coach) {
		t.Fatal("тренер должен проходить проверку admin|coach")
	}
	if access.IsPermitted(ctx, h.DB, tgID, models.Admin) {
		t.Fatal("тренер не должен проходить проверку admin")
	}
	// незнакомый tg_id — всегда отказ, без ошибок
	if access.IsPermitted(ctx, h.DB, 999, models.Admin, models.Coach, models.Player) {
		t.Fatal("неизвестный пользователь не должен проходить проверку")
	}
}
