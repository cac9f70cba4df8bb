package app

import (
	"context"
	"database/sql"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/teamops/football-team-bot/internal/bot/access"
	"github.com/teamops/football-team-bot/internal/bot/handlers"
	"github.com/teamops/football-team-bot/internal/models"
	"github.com/teamops/football-team-bot/internal/tg"
)

const deniedText = "🚫 Команда доступна только тренерам и администраторам."

// HandleMessage маршрутизирует входящее сообщение: сначала команды,
// затем текстовые шаги активного визарда.
func HandleMessage(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			handlers.HandleStart(bot, msg)
		case "cancel":
			handlers.HandleCancel(bot, msg)
		case "players":
			if !access.IsPermitted(ctx, database, msg.From.ID, models.Admin, models.Coach) {
				tg.Send(bot, tgbotapi.NewMessage(chatID, deniedText))
				return
			}
			handlers.HandleListPlayers(ctx, bot, database, msg)
		case "coaches":
			if !access.IsPermitted(ctx, database, msg.From.ID, models.Admin, models.Coach) {
				tg.Send(bot, tgbotapi.NewMessage(chatID, deniedText))
				return
			}
			handlers.HandleListCoaches(ctx, bot, database, msg)
		case "add_player":
			if !access.IsPermitted(ctx, database, msg.From.ID, models.Admin, models.Coach) {
				tg.Send(bot, tgbotapi.NewMessage(chatID, deniedText))
				return
			}
			handlers.StartAddPlayerFSM(bot, msg)
		case "update":
			if !access.IsPermitted(ctx, database, msg.From.ID, models.Admin, models.Coach) {
				tg.Send(bot, tgbotapi.NewMessage(chatID, deniedText))
				return
			}
			handlers.StartUpdateFSM(bot, msg)
		case "poll":
			if !access.IsPermitted(ctx, database, msg.From.ID, models.Admin, models.Coach) {
				tg.Send(bot, tgbotapi.NewMessage(chatID, deniedText))
				return
			}
			handlers.StartPollFSM(ctx, bot, database, msg)
		case "export":
			if !access.IsPermitted(ctx, database, msg.From.ID, models.Admin) {
				tg.Send(bot, tgbotapi.NewMessage(chatID, "🚫 Выгрузка доступна только администратору."))
				return
			}
			handlers.HandleExport(ctx, bot, database, msg)
		default:
			tg.Send(bot, tgbotapi.NewMessage(chatID, "⚠️ Неизвестная команда. Используйте /start"))
		}
		return
	}

	// текст достаётся активному визарду
	switch {
	case handlers.GetAddPlayerState(chatID) != nil:
		handlers.HandleAddPlayerText(ctx, bot, database, msg)
	case handlers.GetUpdateState(chatID) != nil:
		handlers.HandleUpdateText(ctx, bot, database, msg)
	case handlers.GetPollState(chatID) != nil:
		handlers.HandlePollText(ctx, bot, database, msg)
	}
}

// HandleCallback разбирает payload кнопки один раз и отдаёт действие
// активному визарду.
func HandleCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	// отвечаем сразу, чтобы Telegram убрал "часики" на кнопке
	_, _ = tg.Request(bot, tgbotapi.NewCallback(cb.ID, ""))

	act, ok := handlers.DecodeAction(cb.Data)
	if !ok {
		return
	}

	switch {
	case handlers.GetAddPlayerState(chatID) != nil:
		handlers.HandleAddPlayerAction(ctx, bot, database, cb, act)
	case handlers.GetUpdateState(chatID) != nil:
		handlers.HandleUpdateAction(ctx, bot, database, cb, act)
	case handlers.GetPollState(chatID) != nil:
		handlers.HandlePollAction(ctx, bot, database, cb, act)
	}
}
