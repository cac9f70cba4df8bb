package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/teamops/football-team-bot/internal/bot/fsm"
	"github.com/teamops/football-team-bot/internal/bot/shared/fsmutil"
	"github.com/teamops/football-team-bot/internal/db"
	"github.com/teamops/football-team-bot/internal/metrics"
	"github.com/teamops/football-team-bot/internal/notify"
	"github.com/teamops/football-team-bot/internal/schedule"
	"github.com/teamops/football-team-bot/internal/tg"
)

type PollStep int

const (
	PollStepQuestion PollStep = iota + 1
	PollStepOptions
	PollStepChat
	PollStepNotify
	PollStepConfirm
)

type PollState struct {
	Step     PollStep
	Question string
	Options  []string
	Chat     *dbChatRef
	Notify   bool
}

// dbChatRef — выбранное назначение опроса.
type dbChatRef struct {
	ID         int64
	ChatID     int64
	ThreadID   *int64
	PositionID *int64
	Name       string
}

var pollStates = fsm.NewStore[PollState]()

func GetPollState(chatID int64) *PollState { return pollStates.Get(chatID) }

// Вариант ответов быстрого опроса по позиции.
var quickPollOptions = []string{"Буду", "Не буду", "Тренер"}

// SplitPollOptions режет строку по ";", обрезает пробелы и выбрасывает пустые.
func SplitPollOptions(text string) []string {
	var options []string
	for _, part := range strings.Split(text, ";") {
		if part = strings.TrimSpace(part); part != "" {
			options = append(options, part)
		}
	}
	return options
}

// ParsePollOptions — валидный список вариантов: от 2 до 10 после очистки.
func ParsePollOptions(text string) ([]string, bool) {
	options := SplitPollOptions(text)
	if len(options) < 2 || len(options) > 10 {
		return nil, false
	}
	return options, true
}

// ==== start ====

// StartPollFSM: /poll без аргумента открывает визард; /poll <POS> шлёт быстрый
// опрос по расписанию тренировок без единого вопроса пользователю.
func StartPollFSM(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, msg *tgbotapi.Message) {
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		quickPoll(ctx, bot, database, msg.Chat.ID, arg)
		return
	}

	chatID := msg.Chat.ID
	fsm.Discard(chatID)
	pollStates.Set(chatID, &PollState{Step: PollStepQuestion})

	out := tgbotapi.NewMessage(chatID, "Введите вопрос для опроса:")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(fsmutil.CancelRow())
	tg.Send(bot, out)
}

func quickPoll(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, chatID int64, arg string) {
	topic := strings.ToUpper(strings.TrimSpace(arg))

	route := db.ChatForPosition(ctx, database, topic)
	if route == nil {
		tg.Send(bot, tgbotapi.NewMessage(chatID, fmt.Sprintf("Не удалось найти чат для топика %s.", topic)))
		return
	}

	question := schedule.TrainingQuestion(schedule.Now(), topic)
	if err := tg.SendPoll(bot, route.ChatID, route.ThreadID, question, quickPollOptions); err != nil {
		metrics.WizardCommits.WithLabelValues("poll", "error").Inc()
		tg.Send(bot, tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Не удалось отправить опрос: %v", err)))
		return
	}
	metrics.WizardCommits.WithLabelValues("poll", "success").Inc()
	tg.Send(bot, tgbotapi.NewMessage(chatID, fmt.Sprintf("Опрос для %s отправлен.", topic)))
}

// ==== текстовые шаги ====

func HandlePollText(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	state := pollStates.Get(chatID)
	if state == nil {
		return
	}

	if fsmutil.IsCancelText(msg.Text) {
		pollStates.Clear(chatID)
		tg.Send(bot, tgbotapi.NewMessage(chatID, "Создание опроса отменено."))
		return
	}

	switch state.Step {
	case PollStepQuestion:
		question := strings.TrimSpace(msg.Text)
		if question == "" {
			tg.Send(bot, tgbotapi.NewMessage(chatID, "Вопрос не может быть пустым. Введите ещё раз:"))
			return
		}
		state.Question = question
		state.Step = PollStepOptions
		out := tgbotapi.NewMessage(chatID, "Введите варианты ответа через ;")
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(fsmutil.CancelRow())
		tg.Send(bot, out)

	case PollStepOptions:
		options, ok := ParsePollOptions(msg.Text)
		if !ok {
			switch n := len(SplitPollOptions(msg.Text)); {
			case n == 0:
				tg.Send(bot, tgbotapi.NewMessage(chatID, "Варианты ответа не могут быть пустыми. Введите ещё раз:"))
			case n < 2:
				tg.Send(bot, tgbotapi.NewMessage(chatID, "Должно быть как минимум 2 варианта. Попробуйте ещё раз:"))
			default:
				tg.Send(bot, tgbotapi.NewMessage(chatID, "Максимум 10 вариантов. Попробуйте ещё раз:"))
			}
			return
		}
		state.Options = options
		showChatPrompt(ctx, bot, database, chatID, state)
	}
}

func showChatPrompt(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, chatID int64, state *PollState) {
	routes := db.ListNamedChats(ctx, database)
	if len(routes) == 0 {
		pollStates.Clear(chatID)
		tg.Send(bot, tgbotapi.NewMessage(chatID, "⚠️ Не настроен ни один чат для опросов."))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, route := range routes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(route.Name, fmt.Sprintf("chat:%d", route.ID)),
		))
	}
	rows = append(rows, fsmutil.CancelRow())

	state.Step = PollStepChat
	out := tgbotapi.NewMessage(chatID, "Куда отправить опрос?")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	tg.Send(bot, out)
}

// ==== callbacks ====

func HandlePollAction(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, cq *tgbotapi.CallbackQuery, act Action) {
	chatID := cq.Message.Chat.ID
	state := pollStates.Get(chatID)
	if state == nil {
		return
	}

	switch a := act.(type) {
	case ActCancel:
		pollStates.Clear(chatID)
		fsmutil.DisableMarkup(bot, chatID, cq.Message.MessageID)
		tg.Send(bot, tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, "Создание опроса отменено."))

	case ActSelectChat:
		if state.Step != PollStepChat {
			return
		}
		route := db.GetChatByID(ctx, database, a.ID)
		if route == nil {
			tg.Send(bot, tgbotapi.NewMessage(chatID, "⚠️ Чат не найден, выберите из списка."))
			return
		}
		state.Chat = &dbChatRef{
			ID: route.ID, ChatID: route.ChatID, ThreadID: route.ThreadID,
			PositionID: route.PositionID, Name: route.Name,
		}
		state.Step = PollStepNotify

		edit := tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, "Уведомить игроков об опросе?")
		mk := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔔 Да", "notify:yes"),
				tgbotapi.NewInlineKeyboardButtonData("🔕 Нет", "notify:no"),
			),
			fsmutil.CancelRow(),
		)
		edit.ReplyMarkup = &mk
		tg.Send(bot, edit)

	case ActNotify:
		if state.Step != PollStepNotify {
			return
		}
		state.Notify = a.Yes
		state.Step = PollStepConfirm
		showPollConfirmation(bot, chatID, cq.Message.MessageID, state)

	case ActConfirm:
		if state.Step != PollStepConfirm {
			return
		}
		if !a.Yes {
			pollStates.Clear(chatID)
			tg.Send(bot, tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, "Создание опроса отменено."))
			return
		}
		dispatchPoll(ctx, bot, database, chatID, cq.Message.MessageID, state)
	}
}

func showPollConfirmation(bot *tgbotapi.BotAPI, chatID int64, messageID int, state *PollState) {
	var options strings.Builder
	for i, opt := range state.Options {
		fmt.Fprintf(&options, "%d. %s\n", i+1, opt)
	}
	notifyWord := "нет"
	if state.Notify {
		notifyWord = "да"
	}
	text := fmt.Sprintf(
		"Проверьте опрос перед созданием:\n\n"+
			"Вопрос: %s\n"+
			"Варианты:\n%s"+
			"Назначение: %s\n"+
			"Уведомить игроков: %s",
		state.Question, options.String(), state.Chat.Name, notifyWord,
	)

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	mk := tgbotapi.NewInlineKeyboardMarkup(fsmutil.ConfirmRow())
	edit.ReplyMarkup = &mk
	tg.Send(bot, edit)
}

// dispatchPoll — терминальный шаг: одна попытка отправки, состояние чистится
// при любом исходе.
func dispatchPoll(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, chatID int64, messageID int, state *PollState) {
	key := fmt.Sprintf("poll:%d", chatID)
	if !fsmutil.SetPending(chatID, key) {
		tg.Send(bot, tgbotapi.NewMessage(chatID, "⏳ Запрос уже обрабатывается…"))
		return
	}
	defer fsmutil.ClearPending(chatID, key)
	defer pollStates.Clear(chatID)

	if err := tg.SendPoll(bot, state.Chat.ChatID, state.Chat.ThreadID, state.Question, state.Options); err != nil {
		metrics.WizardCommits.WithLabelValues("poll", "error").Inc()
		tg.Send(bot, tgbotapi.NewEditMessageText(chatID, messageID,
			fmt.Sprintf("❌ Не удалось отправить опрос: %v", err)))
		return
	}

	if state.Notify {
		notifyPlayers(ctx, bot, database, state)
	}

	metrics.WizardCommits.WithLabelValues("poll", "success").Inc()
	tg.Send(bot, tgbotapi.NewEditMessageText(chatID, messageID,
		fmt.Sprintf("Опрос создан и отправлен в «%s».", state.Chat.Name)))
}

func notifyPlayers(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, state *PollState) {
	people := db.ListPeople(ctx, database, true)

	// Если чат привязан к позиции — упоминаем только её игроков.
	position := ""
	if state.Chat.PositionID != nil {
		for _, pos := range db.ListPositions(ctx, database) {
			if pos.ID == *state.Chat.PositionID {
				position = pos.Name
				break
			}
		}
	}

	mentions := notify.BuildMentions(people, position)
	if err := notify.SendBatches(bot, state.Chat.ChatID, state.Chat.ThreadID, mentions); err != nil {
		metrics.HandlerErrors.Inc()
	}
}
