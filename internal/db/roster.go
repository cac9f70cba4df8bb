package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/teamops/football-team-bot/internal/ctxutil"
	"github.com/teamops/football-team-bot/internal/models"
)

var (
	// ErrDuplicate — в team уже есть запись с таким tg_id или tg_username.
	ErrDuplicate = errors.New("запись с таким tg_id или tg_username уже существует")
	// ErrNoRoles — попытка создать запись без единой роли.
	ErrNoRoles = errors.New("не выбрана ни одна роль")
)

// PersonDraft — данные новой записи, собранные визардом добавления.
type PersonDraft struct {
	Name       string
	Surname    string
	Middlename *string
	Number     *string
	TGUsername *string
	TGID       *int64
	PositionID *int64
	Status     models.Status
}

const personColumns = `
t.id, t.name, t.surname, t.middlename, t.number, t.tg_username, t.tg_id,
t.position_id, p.position, t.status,
COALESCE(string_agg(r.role, ', ' ORDER BY r.role), '') AS roles`

const personJoins = `
FROM team t
LEFT JOIN positions p ON t.position_id = p.id
LEFT JOIN player_roles pr ON pr.player_id = t.id
LEFT JOIN roles r ON r.id = pr.role_id`

func scanPerson(row interface{ Scan(...any) error }) (*models.Person, error) {
	var pers models.Person
	var roles string
	err := row.Scan(
		&pers.ID, &pers.Name, &pers.Surname, &pers.Middlename, &pers.Number,
		&pers.TGUsername, &pers.TGID, &pers.PositionID, &pers.Position,
		&pers.Status, &roles,
	)
	if err != nil {
		return nil, err
	}
	if roles != "" {
		pers.Roles = strings.Split(roles, models.RolesSeparator)
	}
	return &pers, nil
}

// GetPersonByID возвращает запись с позицией и набором ролей.
// Отсутствие записи и сбой чтения дают nil: читатели не роняют диалог.
func GetPersonByID(ctx context.Context, database *sql.DB, id int64) *models.Person {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT` + personColumns + personJoins + `
WHERE t.id = $1
GROUP BY t.id, p.position`

	pers, err := scanPerson(database.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		log.Println("Ошибка при поиске записи по id:", err)
		return nil
	}
	return pers
}

// ListPeople — весь ростер, отсортированный по имени.
// При onlyActive отдаются только записи со статусом active.
// Сбой чтения трактуется как пустой ростер: логируем и отдаём пустой срез.
func ListPeople(ctx context.Context, database *sql.DB, onlyActive bool) []models.Person {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT` + personColumns + personJoins
	if onlyActive {
		query += `
WHERE t.status = 'active'`
	}
	query += `
GROUP BY t.id, p.position
ORDER BY t.name`

	rows, err := database.QueryContext(ctx, query)
	if err != nil {
		log.Println("Ошибка при запросе списка команды:", err)
		return nil
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		pers, err := scanPerson(rows)
		if err != nil {
			log.Println("Ошибка при чтении строки ростера:", err)
			return nil
		}
		people = append(people, *pers)
	}
	if err := rows.Err(); err != nil {
		log.Println("Ошибка при чтении ростера:", err)
		return nil
	}
	return people
}

// CreatePerson вставляет запись team вместе со связками ролей одной транзакцией.
// Перед записью выполняется проверка дубликата по tg_id ИЛИ tg_username; при
// совпадении ничего не пишется и возвращается ErrDuplicate.
func CreatePerson(ctx context.Context, database *sql.DB, draft PersonDraft, roleIDs []int64) error {
	if len(roleIDs) == 0 {
		return ErrNoRoles
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var exists bool
	err := database.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM team WHERE tg_id = $1 OR tg_username = $2)`,
		draft.TGID, draft.TGUsername,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	status := draft.Status
	if status == "" {
		status = models.StatusActive
	}

	var personID int64
	err = tx.QueryRowContext(ctx, `
INSERT INTO team (name, surname, middlename, number, tg_username, tg_id, position_id, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
		draft.Name, draft.Surname, draft.Middlename, draft.Number,
		draft.TGUsername, draft.TGID, draft.PositionID, string(status),
	).Scan(&personID)
	if err != nil {
		return err
	}

	for _, roleID := range roleIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO player_roles (player_id, role_id) VALUES ($1, $2)`,
			personID, roleID,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// editableColumns — поля team, доступные визарду редактирования.
var editableColumns = map[string]string{
	"name":        "name",
	"surname":     "surname",
	"middlename":  "middlename",
	"number":      "number",
	"tg_username": "tg_username",
	"status":      "status",
	"position_id": "position_id",
}

// UpdatePersonField меняет одно поле записи. Валидация значения — на визарде.
func UpdatePersonField(ctx context.Context, database *sql.DB, personID int64, field string, value any) error {
	column, ok := editableColumns[field]
	if !ok {
		return fmt.Errorf("поле %q недоступно для изменения", field)
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`UPDATE team SET %s = $1 WHERE id = $2`, column)
	res, err := database.ExecContext(ctx, query, value, personID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("запись с id %d не найдена", personID)
	}
	return nil
}

// ListPositions — все позиции в порядке id (порядок закладки = порядок показа).
// Сбой чтения — пустой справочник, с записью в лог.
func ListPositions(ctx context.Context, database *sql.DB) []models.Position {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, `SELECT id, position FROM positions ORDER BY id`)
	if err != nil {
		log.Println("Ошибка при запросе позиций:", err)
		return nil
	}
	defer rows.Close()

	var positions []models.Position
	for rows.Next() {
		var pos models.Position
		if err := rows.Scan(&pos.ID, &pos.Name); err != nil {
			log.Println("Ошибка при чтении позиции:", err)
			return nil
		}
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		log.Println("Ошибка при чтении позиций:", err)
		return nil
	}
	return positions
}

// RoleIDsByLabels — id ролей по их меткам, в порядке меток.
func RoleIDsByLabels(ctx context.Context, database *sql.DB, labels ...models.Role) ([]int64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, `SELECT id, role FROM roles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byLabel := make(map[models.Role]int64)
	for rows.Next() {
		var id int64
		var role string
		if err := rows.Scan(&id, &role); err != nil {
			return nil, err
		}
		byLabel[models.Role(role)] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(labels))
	for _, label := range labels {
		id, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("роль %q не заведена в справочнике", label)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
