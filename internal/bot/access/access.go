package access

import (
	"context"
	"database/sql"

	"github.com/teamops/football-team-bot/internal/db"
	"github.com/teamops/football-team-bot/internal/models"
)

// IsPermitted — true, если пользователь держит хотя бы одну из допустимых ролей.
// Пользователь без ролей (или при сбое чтения ролей) не допускается; ошибок
// наружу не бывает.
func IsPermitted(ctx context.Context, database *sql.DB, tgID int64, allowed ...models.Role) bool {
	held := db.RolesByTelegramID(ctx, database, tgID)
	if len(held) == 0 {
		return false
	}
	for _, h := range held {
		for _, a := range allowed {
			if h == string(a) {
				return true
			}
		}
	}
	return false
}
