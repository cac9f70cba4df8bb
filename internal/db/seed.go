package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/teamops/football-team-bot/internal/ctxutil"
	"github.com/teamops/football-team-bot/internal/models"
)

var seedRoles = []models.Role{models.Admin, models.Coach, models.Player}

var seedPositions = []string{"OL", "QB", "RB", "TE", "WR", "DL", "LB", "CB", "Rookie"}

// Seed закладывает справочники ролей и позиций и, если в базе нет ни одного
// админа, заводит администратора по умолчанию со всеми тремя ролями.
// adminTGID == 0 означает «админа не заводить» (используется в тестах).
func Seed(ctx context.Context, database *sql.DB, adminTGID int64, adminName string) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	for _, role := range seedRoles {
		if _, err := database.ExecContext(ctx,
			`INSERT INTO roles (role) VALUES ($1) ON CONFLICT (role) DO NOTHING`, string(role)); err != nil {
			return fmt.Errorf("insert role %s: %w", role, err)
		}
	}
	for _, pos := range seedPositions {
		if _, err := database.ExecContext(ctx,
			`INSERT INTO positions (position) VALUES ($1) ON CONFLICT (position) DO NOTHING`, pos); err != nil {
			return fmt.Errorf("insert position %s: %w", pos, err)
		}
	}

	if adminTGID == 0 {
		return nil
	}
	return ensureAdmin(ctx, database, adminTGID, adminName)
}

func ensureAdmin(ctx context.Context, database *sql.DB, adminTGID int64, adminName string) error {
	var exists bool
	err := database.QueryRowContext(ctx, `
SELECT EXISTS(
    SELECT 1 FROM team t
    JOIN player_roles pr ON pr.player_id = t.id
    JOIN roles r ON r.id = pr.role_id
    WHERE r.role = 'admin'
)`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return nil
	}

	if adminName == "" {
		adminName = "Администратор"
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var personID int64
	err = tx.QueryRowContext(ctx, `
INSERT INTO team (name, surname, tg_id, status)
VALUES ($1, '', $2, 'active')
RETURNING id`, adminName, adminTGID).Scan(&personID)
	if err != nil {
		return fmt.Errorf("insert default admin: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO player_roles (player_id, role_id)
SELECT $1, id FROM roles`, personID); err != nil {
		return fmt.Errorf("assign admin roles: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Println("✅ Заведён администратор по умолчанию, tg_id =", adminTGID)
	return nil
}
