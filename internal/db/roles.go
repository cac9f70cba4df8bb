package db

import (
	"context"
	"database/sql"
	"log"

	"github.com/teamops/football-team-bot/internal/ctxutil"
)

// RolesByTelegramID — метки ролей, которые держит пользователь Telegram.
// Любой сбой чтения трактуется как «ролей нет»: логируем и отдаём пустой срез.
func RolesByTelegramID(ctx context.Context, database *sql.DB, tgID int64) []string {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, `
SELECT r.role
FROM team t
JOIN player_roles pr ON pr.player_id = t.id
JOIN roles r ON r.id = pr.role_id
WHERE t.tg_id = $1`, tgID)
	if err != nil {
		log.Println("Ошибка при запросе ролей пользователя:", err)
		return nil
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			log.Println("Ошибка при чтении роли:", err)
			return nil
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		log.Println("Ошибка при чтении ролей:", err)
		return nil
	}
	return roles
}
