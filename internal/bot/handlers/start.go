package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/teamops/football-team-bot/internal/bot/fsm"
	"github.com/teamops/football-team-bot/internal/tg"
)

const startText = "Привет! Я бот управления составом команды.\n\n" +
	"Команды:\n" +
	"/players [позиция] — список игроков\n" +
	"/coaches — список тренеров\n" +
	"/add_player — добавить игрока\n" +
	"/update — изменить данные игрока\n" +
	"/poll [позиция] — создать опрос\n" +
	"/export — выгрузка состава в Excel\n" +
	"/cancel — отменить текущее действие"

func HandleStart(bot *tgbotapi.BotAPI, msg *tgbotapi.Message) {
	tg.Send(bot, tgbotapi.NewMessage(msg.Chat.ID, startText))
}

// HandleCancel сбрасывает все активные визарды пользователя.
func HandleCancel(bot *tgbotapi.BotAPI, msg *tgbotapi.Message) {
	fsm.Discard(msg.Chat.ID)
	tg.Send(bot, tgbotapi.NewMessage(msg.Chat.ID, "Действие отменено."))
}
