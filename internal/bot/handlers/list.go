package handlers

import (
	"context"
	"database/sql"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/teamops/football-team-bot/internal/db"
	"github.com/teamops/football-team-bot/internal/models"
	"github.com/teamops/football-team-bot/internal/roster"
	"github.com/teamops/football-team-bot/internal/tg"
)

// HandleListPlayers — /players [POS]. Без аргумента выводит всех игроков,
// с кодом позиции — только игроков в строю на этой позиции.
func HandleListPlayers(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	code := strings.TrimSpace(msg.CommandArguments())

	if code == "" {
		people := db.ListPeople(ctx, database, false)
		out := tgbotapi.NewMessage(chatID, roster.FormatRoster(people, models.Player, true))
		out.ParseMode = "HTML"
		tg.Send(bot, out)
		return
	}

	positions := db.ListPositions(ctx, database)
	people := db.ListPeople(ctx, database, true)

	text, err := roster.FormatRosterByPosition(people, positions, code)
	if err != nil {
		tg.Send(bot, tgbotapi.NewMessage(chatID, "⚠️ "+err.Error()))
		return
	}
	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = "HTML"
	tg.Send(bot, out)
}

// HandleListCoaches — /coaches.
func HandleListCoaches(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	people := db.ListPeople(ctx, database, false)
	out := tgbotapi.NewMessage(chatID, roster.FormatRoster(people, models.Coach, false))
	out.ParseMode = "HTML"
	tg.Send(bot, out)
}
