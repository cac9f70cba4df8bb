package db

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/teamops/football-team-bot/internal/ctxutil"
	"github.com/teamops/football-team-bot/internal/models"
)

// ChatForPosition — чат (и топик), привязанный к позиции.
// Нет маршрута или сбой чтения — nil, сбой уходит в лог.
func ChatForPosition(ctx context.Context, database *sql.DB, positionName string) *models.ChatRoute {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var route models.ChatRoute
	err := database.QueryRowContext(ctx, `
SELECT c.id, c.chat_id, c.thread_id, c.position_id, c.chat_name
FROM chats c
JOIN positions p ON c.position_id = p.id
WHERE p.position = $1`, positionName).
		Scan(&route.ID, &route.ChatID, &route.ThreadID, &route.PositionID, &route.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		log.Println("Ошибка при поиске чата позиции:", err)
		return nil
	}
	return &route
}

// GetChatByID — именованный чат по id (выбор из списка визардом опроса).
func GetChatByID(ctx context.Context, database *sql.DB, id int64) *models.ChatRoute {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var route models.ChatRoute
	err := database.QueryRowContext(ctx, `
SELECT id, chat_id, thread_id, position_id, chat_name
FROM chats WHERE id = $1`, id).
		Scan(&route.ID, &route.ChatID, &route.ThreadID, &route.PositionID, &route.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		log.Println("Ошибка при поиске чата:", err)
		return nil
	}
	return &route
}

// ListNamedChats — все заведённые чаты для ручного выбора назначения опроса.
// Сбой чтения — пустой список.
func ListNamedChats(ctx context.Context, database *sql.DB) []models.ChatRoute {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, `
SELECT id, chat_id, thread_id, position_id, chat_name
FROM chats ORDER BY id`)
	if err != nil {
		log.Println("Ошибка при запросе списка чатов:", err)
		return nil
	}
	defer rows.Close()

	var routes []models.ChatRoute
	for rows.Next() {
		var route models.ChatRoute
		if err := rows.Scan(&route.ID, &route.ChatID, &route.ThreadID, &route.PositionID, &route.Name); err != nil {
			log.Println("Ошибка при чтении чата:", err)
			return nil
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		log.Println("Ошибка при чтении чатов:", err)
		return nil
	}
	return routes
}
