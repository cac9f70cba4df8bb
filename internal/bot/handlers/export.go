package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/teamops/football-team-bot/internal/db"
	"github.com/teamops/football-team-bot/internal/export"
	"github.com/teamops/football-team-bot/internal/metrics"
	"github.com/teamops/football-team-bot/internal/tg"
)

// HandleExport — /export: xlsx-файл с листами «Игроки» и «Тренеры».
func HandleExport(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	people := db.ListPeople(ctx, database, false)

	wb, err := export.NewRosterWorkbook(export.RosterSheets(people))
	if err != nil {
		metrics.HandlerErrors.Inc()
		tg.Send(bot, tgbotapi.NewMessage(chatID, fmt.Sprintf("Ошибка при формировании файла: %v", err)))
		return
	}
	path, err := wb.SaveTemp()
	if err != nil {
		metrics.HandlerErrors.Inc()
		tg.Send(bot, tgbotapi.NewMessage(chatID, fmt.Sprintf("Ошибка при сохранении файла: %v", err)))
		return
	}
	defer os.Remove(path)

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = "Выгрузка состава"
	tg.Send(bot, doc)
}
