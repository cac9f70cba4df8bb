package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/teamops/football-team-bot/internal/bot/fsm"
	"github.com/teamops/football-team-bot/internal/bot/shared/fsmutil"
	"github.com/teamops/football-team-bot/internal/db"
	"github.com/teamops/football-team-bot/internal/metrics"
	"github.com/teamops/football-team-bot/internal/models"
	"github.com/teamops/football-team-bot/internal/tg"
)

type AddStep int

const (
	AddStepName AddStep = iota + 1
	AddStepSurname
	AddStepUsername
	AddStepRole
	AddStepPosition
	AddStepConfirm
)

type AddPlayerState struct {
	Step         AddStep
	Name         string
	Surname      string
	TGUsername   *string
	Roles        []models.Role
	PositionID   *int64
	PositionName string
}

func (s *AddPlayerState) hasPlayerRole() bool {
	for _, r := range s.Roles {
		if r == models.Player {
			return true
		}
	}
	return false
}

var addStates = fsm.NewStore[AddPlayerState]()

func GetAddPlayerState(chatID int64) *AddPlayerState { return addStates.Get(chatID) }

// addNextStep — порядок шагов визарда добавления. Единственная развилка:
// позиция спрашивается только у игроков, «чистый тренер» идёт сразу
// на подтверждение.
func addNextStep(cur AddStep, state *AddPlayerState) AddStep {
	switch cur {
	case AddStepName:
		return AddStepSurname
	case AddStepSurname:
		return AddStepUsername
	case AddStepUsername:
		return AddStepRole
	case AddStepRole:
		if state.hasPlayerRole() {
			return AddStepPosition
		}
		return AddStepConfirm
	default:
		return AddStepConfirm
	}
}

// ValidName — имя/фамилия: после обрезки пробелов минимум 2 символа.
func ValidName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 2 {
		return "", false
	}
	return s, true
}

// NormalizeUsername снимает ведущий @ и требует минимум 5 символов.
// Пустой ввод тоже не проходит — для отсутствующего никнейма есть «Пропустить».
func NormalizeUsername(s string) (string, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "@")
	if utf8.RuneCountInString(s) < 5 {
		return "", false
	}
	return s, true
}

// ==== start ====

func StartAddPlayerFSM(bot *tgbotapi.BotAPI, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	fsm.Discard(chatID)
	addStates.Set(chatID, &AddPlayerState{Step: AddStepName})

	out := tgbotapi.NewMessage(chatID, "Начинаем добавление игрока.\nВведите имя игрока:")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(fsmutil.CancelRow())
	tg.Send(bot, out)
}

// ==== текстовые шаги ====

func HandleAddPlayerText(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	state := addStates.Get(chatID)
	if state == nil {
		return
	}

	if fsmutil.IsCancelText(msg.Text) {
		addStates.Clear(chatID)
		tg.Send(bot, tgbotapi.NewMessage(chatID, "Добавление игрока отменено."))
		return
	}

	switch state.Step {
	case AddStepName:
		name, ok := ValidName(msg.Text)
		if !ok {
			reprompt(bot, chatID, "Имя должно содержать минимум 2 символа. Попробуйте ещё раз:")
			return
		}
		state.Name = name
		state.Step = addNextStep(AddStepName, state)
		reprompt(bot, chatID, "Введите фамилию игрока:")

	case AddStepSurname:
		surname, ok := ValidName(msg.Text)
		if !ok {
			reprompt(bot, chatID, "Фамилия должна содержать минимум 2 символа. Попробуйте ещё раз:")
			return
		}
		state.Surname = surname
		state.Step = addNextStep(AddStepSurname, state)
		out := tgbotapi.NewMessage(chatID, "Введите никнейм Telegram игрока (с @ или без):")
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(fsmutil.SkipCancelRow())
		tg.Send(bot, out)

	case AddStepUsername:
		username, ok := NormalizeUsername(msg.Text)
		if !ok {
			out := tgbotapi.NewMessage(chatID, "Никнейм Telegram должен содержать минимум 5 символов.\nЛибо нажмите «Пропустить».")
			out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(fsmutil.SkipCancelRow())
			tg.Send(bot, out)
			return
		}
		state.TGUsername = &username
		state.Step = addNextStep(AddStepUsername, state)
		sendRolePrompt(bot, chatID)
	}
}

func reprompt(bot *tgbotapi.BotAPI, chatID int64, text string) {
	out := tgbotapi.NewMessage(chatID, text)
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(fsmutil.CancelRow())
	tg.Send(bot, out)
}

func sendRolePrompt(bot *tgbotapi.BotAPI, chatID int64) {
	out := tgbotapi.NewMessage(chatID, "Выберите роль для пользователя:")
	out.ReplyMarkup = rolePromptMarkup()
	tg.Send(bot, out)
}

func rolePromptMarkup() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Только игрок", "role:player"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Только тренер", "role:coach"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Игрок + тренер", "role:both"),
		),
		fsmutil.CancelRow(),
	)
}

// ==== callbacks ====

func HandleAddPlayerAction(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, cq *tgbotapi.CallbackQuery, act Action) {
	chatID := cq.Message.Chat.ID
	state := addStates.Get(chatID)
	if state == nil {
		return
	}

	switch a := act.(type) {
	case ActCancel:
		addStates.Clear(chatID)
		fsmutil.DisableMarkup(bot, chatID, cq.Message.MessageID)
		tg.Send(bot, tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, "Добавление игрока отменено."))

	case ActSkip:
		if state.Step != AddStepUsername {
			return
		}
		state.TGUsername = nil
		state.Step = addNextStep(AddStepUsername, state)
		edit := tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, "Выберите роль для пользователя:")
		mk := rolePromptMarkup()
		edit.ReplyMarkup = &mk
		tg.Send(bot, edit)

	case ActSelectRole:
		if state.Step != AddStepRole {
			return
		}
		state.Roles = state.Roles[:0]
		if a.Player {
			state.Roles = append(state.Roles, models.Player)
		}
		if a.Coach {
			state.Roles = append(state.Roles, models.Coach)
		}
		state.Step = addNextStep(AddStepRole, state)
		if state.Step == AddStepPosition {
			showPositionPrompt(ctx, bot, database, chatID, cq.Message.MessageID, state)
			return
		}
		showAddConfirmation(bot, chatID, cq.Message.MessageID, state)

	case ActSelectPosition:
		if state.Step != AddStepPosition {
			return
		}
		positions := db.ListPositions(ctx, database)
		for _, pos := range positions {
			if pos.ID == a.ID {
				id := pos.ID
				state.PositionID = &id
				state.PositionName = pos.Name
				break
			}
		}
		if state.PositionID == nil {
			tg.Send(bot, tgbotapi.NewMessage(chatID, "⚠️ Такой позиции нет, выберите из списка."))
			return
		}
		state.Step = addNextStep(AddStepPosition, state)
		showAddConfirmation(bot, chatID, cq.Message.MessageID, state)

	case ActConfirm:
		if state.Step != AddStepConfirm {
			return
		}
		if !a.Yes {
			addStates.Clear(chatID)
			tg.Send(bot, tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, "Добавление игрока отменено."))
			return
		}
		commitAddPlayer(ctx, bot, database, chatID, cq.Message.MessageID, state)
	}
}

func showPositionPrompt(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, chatID int64, messageID int, state *AddPlayerState) {
	positions := db.ListPositions(ctx, database)
	if len(positions) == 0 {
		// без справочника позиций продолжать нечем
		addStates.Clear(chatID)
		tg.Send(bot, tgbotapi.NewEditMessageText(chatID, messageID, "⚠️ Справочник позиций пуст. Добавление прервано."))
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, pos := range positions {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(pos.Name, fmt.Sprintf("position:%d", pos.ID)),
		))
	}
	rows = append(rows, fsmutil.CancelRow())

	edit := tgbotapi.NewEditMessageText(chatID, messageID, "Выберите позицию игрока:")
	mk := tgbotapi.NewInlineKeyboardMarkup(rows...)
	edit.ReplyMarkup = &mk
	tg.Send(bot, edit)
}

var addRoleWords = map[models.Role]string{
	models.Player: "Игрок",
	models.Coach:  "Тренер",
}

func showAddConfirmation(bot *tgbotapi.BotAPI, chatID int64, messageID int, state *AddPlayerState) {
	roleWords := make([]string, 0, len(state.Roles))
	for _, r := range state.Roles {
		roleWords = append(roleWords, addRoleWords[r])
	}

	handle := "—"
	if state.TGUsername != nil {
		handle = "@" + *state.TGUsername
	}
	positionLine := ""
	if state.hasPlayerRole() {
		positionLine = fmt.Sprintf("\nПозиция: %s", state.PositionName)
	}

	text := fmt.Sprintf(
		"Проверьте данные:\n\n"+
			"Имя: %s\n"+
			"Фамилия: %s\n"+
			"Telegram: %s\n"+
			"Роль: %s%s\n\n"+
			"Всё верно?",
		state.Name, state.Surname, handle, strings.Join(roleWords, ", "), positionLine,
	)

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	mk := tgbotapi.NewInlineKeyboardMarkup(fsmutil.ConfirmRow())
	edit.ReplyMarkup = &mk
	tg.Send(bot, edit)
}

// commitAddPlayer — единственная попытка записи; исход любой, но состояние
// визарда после неё всегда очищено.
func commitAddPlayer(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, chatID int64, messageID int, state *AddPlayerState) {
	key := fmt.Sprintf("add:%d", chatID)
	if !fsmutil.SetPending(chatID, key) {
		tg.Send(bot, tgbotapi.NewMessage(chatID, "⏳ Запрос уже обрабатывается…"))
		return
	}
	defer fsmutil.ClearPending(chatID, key)
	defer addStates.Clear(chatID)

	if len(state.Roles) == 0 {
		tg.Send(bot, tgbotapi.NewEditMessageText(chatID, messageID, "Ошибка: роль не выбрана"))
		return
	}

	roleIDs, err := db.RoleIDsByLabels(ctx, database, state.Roles...)
	if err == nil {
		err = db.CreatePerson(ctx, database, db.PersonDraft{
			Name:       state.Name,
			Surname:    state.Surname,
			TGUsername: state.TGUsername,
			PositionID: state.PositionID,
			Status:     models.StatusActive,
		}, roleIDs)
	}

	switch {
	case errors.Is(err, db.ErrDuplicate):
		metrics.WizardCommits.WithLabelValues("add_player", "duplicate").Inc()
		handle := state.Name + " " + state.Surname
		if state.TGUsername != nil {
			handle = "@" + *state.TGUsername
		}
		tg.Send(bot, tgbotapi.NewEditMessageText(chatID, messageID,
			fmt.Sprintf("❌ Игрок %s уже существует!", handle)))
	case err != nil:
		metrics.WizardCommits.WithLabelValues("add_player", "error").Inc()
		tg.Send(bot, tgbotapi.NewEditMessageText(chatID, messageID,
			fmt.Sprintf("Ошибка при сохранении: %v", err)))
	default:
		metrics.WizardCommits.WithLabelValues("add_player", "success").Inc()
		who := fmt.Sprintf("%s %s", state.Name, state.Surname)
		if state.TGUsername != nil {
			who += fmt.Sprintf(" (@%s)", *state.TGUsername)
		}
		tg.Send(bot, tgbotapi.NewEditMessageText(chatID, messageID,
			"✅ Пользователь успешно добавлен:\n"+who))
	}
}
