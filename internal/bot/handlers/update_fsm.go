package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/teamops/football-team-bot/internal/bot/access"
	"github.com/teamops/football-team-bot/internal/bot/fsm"
	"github.com/teamops/football-team-bot/internal/bot/shared/fsmutil"
	"github.com/teamops/football-team-bot/internal/db"
	"github.com/teamops/football-team-bot/internal/metrics"
	"github.com/teamops/football-team-bot/internal/models"
	"github.com/teamops/football-team-bot/internal/tg"
)

type UpdateStep int

const (
	UpdStepID UpdateStep = iota + 1
	UpdStepMenu
	UpdStepValue
)

type UpdateState struct {
	Step     UpdateStep
	PersonID int64
	Field    string
	NewValue *string
}

var updateStates = fsm.NewStore[UpdateState]()

func GetUpdateState(chatID int64) *UpdateState { return updateStates.Get(chatID) }

var fieldWords = map[string]string{
	"name":        "Имя",
	"surname":     "Фамилия",
	"middlename":  "Отчество",
	"number":      "Номер",
	"tg_username": "TG username",
	"position":    "Позиция",
	"status":      "Статус",
}

// ValidateUpdateValue — проверка свободного ввода для поля визарда
// редактирования. Пустой текст ошибки означает, что значение принято.
func ValidateUpdateValue(field, raw string) (string, string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", "Значение не может быть пустым. Попробуйте ещё раз:"
	}
	if utf8.RuneCountInString(text) > 50 {
		return "", "Слишком длинное значение. Введите корректное значение:"
	}

	switch field {
	case "name", "surname", "middlename":
		for _, r := range text {
			if !unicode.IsLetter(r) {
				return "", "Имя, фамилия или отчество должны содержать только буквы. Попробуйте ещё раз:"
			}
		}
	case "number":
		for _, r := range text {
			if r < '0' || r > '9' {
				return "", "Номер должен содержать только цифры. Попробуйте ещё раз:"
			}
		}
	case "tg_username":
		for _, r := range text {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' {
				return "", "TG username может содержать только буквы, цифры, точки и подчёркивания. Попробуйте ещё раз:"
			}
		}
	}
	return text, ""
}

// ==== start ====

func StartUpdateFSM(bot *tgbotapi.BotAPI, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	fsm.Discard(chatID)
	updateStates.Set(chatID, &UpdateState{Step: UpdStepID})

	out := tgbotapi.NewMessage(chatID, "Начинаем редактирование игрока.\nВведите ID игрока:")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(fsmutil.CancelRow())
	tg.Send(bot, out)
}

// ==== текстовые шаги ====

func HandleUpdateText(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	state := updateStates.Get(chatID)
	if state == nil {
		return
	}

	if fsmutil.IsCancelText(msg.Text) {
		updateStates.Clear(chatID)
		tg.Send(bot, tgbotapi.NewMessage(chatID, "Действие отменено."))
		return
	}

	switch state.Step {
	case UpdStepID:
		handleUpdateIDInput(ctx, bot, database, msg, state)

	case UpdStepValue:
		// статус и позиция меняются только кнопками
		if state.Field == "status" || state.Field == "position" {
			return
		}
		value, errText := ValidateUpdateValue(state.Field, msg.Text)
		if errText != "" {
			out := tgbotapi.NewMessage(chatID, errText)
			out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(fsmutil.SaveBackRow())
			tg.Send(bot, out)
			return
		}
		state.NewValue = &value
		out := tgbotapi.NewMessage(chatID, fmt.Sprintf("Новое значение: %s\nНажмите 💾 Сохранить или ⬅️ Назад.", value))
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(fsmutil.SaveBackRow())
		tg.Send(bot, out)
	}
}

func handleUpdateIDInput(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, msg *tgbotapi.Message, state *UpdateState) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	personID, err := strconv.ParseInt(text, 10, 64)
	if err != nil || personID < 0 {
		tg.Send(bot, tgbotapi.NewMessage(chatID, "ID должен быть числом. Введите корректный ID:"))
		return
	}

	person := db.GetPersonByID(ctx, database, personID)
	if person == nil {
		tg.Send(bot, tgbotapi.NewMessage(chatID, fmt.Sprintf("Игрок с ID %d не найден. Введите другой ID:", personID)))
		return
	}

	// Тренера может редактировать только админ; остаёмся на шаге ввода ID.
	if person.HasRole(models.Coach) && !access.IsPermitted(ctx, database, msg.From.ID, models.Admin) {
		tg.Send(bot, tgbotapi.NewMessage(chatID, "Редактирование тренера доступно только администратору."))
		return
	}

	state.PersonID = personID
	state.Step = UpdStepMenu
	sendUpdateMenu(bot, chatID, person)
}

func sendUpdateMenu(bot *tgbotapi.BotAPI, chatID int64, person *models.Person) {
	orDash := func(p *string) string {
		if p == nil || *p == "" {
			return "—"
		}
		return *p
	}
	middlename := ""
	if person.Middlename != nil {
		middlename = " " + *person.Middlename
	}

	info := fmt.Sprintf(
		"ID: %d\n"+
			"Имя: %s %s%s\n"+
			"Номер: %s\n"+
			"TG username: %s\n"+
			"Позиция: %s\n"+
			"Статус: %s\n\n"+
			"Выберите, что хотите изменить:",
		person.ID, person.Surname, person.Name, middlename,
		orDash(person.Number), orDash(person.TGUsername), orDash(person.Position), person.Status,
	)

	out := tgbotapi.NewMessage(chatID, info)
	out.ReplyMarkup = fieldMenuMarkup()
	tg.Send(bot, out)
}

func fieldMenuMarkup() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Имя", "edit:name"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Фамилия", "edit:surname"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Отчество", "edit:middlename"),
			tgbotapi.NewInlineKeyboardButtonData("🔢 Номер", "edit:number"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 TG username", "edit:tg_username"),
			tgbotapi.NewInlineKeyboardButtonData("🧭 Позиция", "edit:position"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚦 Статус", "edit:status"),
		),
		fsmutil.CancelRow(),
	)
}

func statusMarkup() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ В строю", "status:active"),
			tgbotapi.NewInlineKeyboardButtonData("💤 В запасе", "status:inactive"),
			tgbotapi.NewInlineKeyboardButtonData("🤕 Травма", "status:injured"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "back"),
		),
	)
}

func positionsMarkup(positions []models.Position) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, pos := range positions {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(pos.Name, fmt.Sprintf("position:%d", pos.ID)))
		if (i+1)%2 == 0 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "back"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ==== callbacks ====

func HandleUpdateAction(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, cq *tgbotapi.CallbackQuery, act Action) {
	chatID := cq.Message.Chat.ID
	state := updateStates.Get(chatID)
	if state == nil {
		return
	}

	switch a := act.(type) {
	case ActCancel:
		updateStates.Clear(chatID)
		fsmutil.DisableMarkup(bot, chatID, cq.Message.MessageID)
		tg.Send(bot, tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, "Действие отменено."))

	case ActEditField:
		if state.Step != UpdStepMenu && state.Step != UpdStepValue {
			return
		}
		state.Field = a.Field
		state.NewValue = nil
		state.Step = UpdStepValue

		switch a.Field {
		case "status":
			out := tgbotapi.NewMessage(chatID, "Выберите новый статус:")
			out.ReplyMarkup = statusMarkup()
			tg.Send(bot, out)
		case "position":
			positions := db.ListPositions(ctx, database)
			if len(positions) == 0 {
				tg.Send(bot, tgbotapi.NewMessage(chatID, "⚠️ Справочник позиций пуст."))
				return
			}
			out := tgbotapi.NewMessage(chatID, "Выберите новую позицию:")
			out.ReplyMarkup = positionsMarkup(positions)
			tg.Send(bot, out)
		default:
			out := tgbotapi.NewMessage(chatID, fmt.Sprintf("Введите новое значение для поля «%s»:", fieldWords[a.Field]))
			out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(fsmutil.SaveBackRow())
			tg.Send(bot, out)
		}

	case ActSelectStatus:
		// запись только из ветки выбора статуса
		if state.Step != UpdStepValue || state.Field != "status" {
			return
		}
		saveField(ctx, bot, database, chatID, state, "status", string(a.Status),
			fmt.Sprintf("Статус успешно обновлён: %s", a.Status))

	case ActSelectPosition:
		// запись только из ветки выбора позиции
		if state.Step != UpdStepValue || state.Field != "position" {
			return
		}
		saveField(ctx, bot, database, chatID, state, "position_id", a.ID,
			"Позиция успешно обновлена.")

	case ActSave:
		if state.Step != UpdStepValue || state.Field == "" || state.NewValue == nil {
			tg.Send(bot, tgbotapi.NewMessage(chatID, "Сначала введите новое значение."))
			return
		}
		saveField(ctx, bot, database, chatID, state, state.Field, *state.NewValue,
			fmt.Sprintf("%s успешно обновлено: %s", fieldWords[state.Field], *state.NewValue))

	case ActBack:
		if state.Step != UpdStepValue {
			return
		}
		label := fieldWords[state.Field]
		state.Step = UpdStepMenu
		state.Field = ""
		state.NewValue = nil
		out := tgbotapi.NewMessage(chatID, fmt.Sprintf("Изменение поля «%s» отменено.", label))
		out.ReplyMarkup = fieldMenuMarkup()
		tg.Send(bot, out)
	}
}

func saveField(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, chatID int64, state *UpdateState, column string, value any, okText string) {
	if err := db.UpdatePersonField(ctx, database, state.PersonID, column, value); err != nil {
		metrics.WizardCommits.WithLabelValues("update_player", "error").Inc()
		tg.Send(bot, tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Не удалось сохранить изменение: %v", err)))
		return
	}
	metrics.WizardCommits.WithLabelValues("update_player", "success").Inc()

	state.Step = UpdStepMenu
	state.Field = ""
	state.NewValue = nil

	out := tgbotapi.NewMessage(chatID, okText)
	out.ReplyMarkup = fieldMenuMarkup()
	tg.Send(bot, out)
}
