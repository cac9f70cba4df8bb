package tg

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/teamops/football-team-bot/internal/observability"
)

// Считаем системными: 5xx, 429, timeout. 400-ки и типичные телеграм-валидации в Sentry не шлём.
func isSystemErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	if strings.Contains(s, "429") || strings.Contains(s, "502") || strings.Contains(s, "503") || strings.Contains(s, "timeout") {
		return true
	}
	return false
}

func Send(bot *tgbotapi.BotAPI, msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	m, err := bot.Send(msg)
	if isSystemErr(err) {
		observability.CaptureErr(err)
	}
	return m, err
}

func Request(bot *tgbotapi.BotAPI, req tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	r, err := bot.Request(req)
	if isSystemErr(err) {
		observability.CaptureErr(err)
	}
	return r, err
}

// SendPoll отправляет неанонимный опрос в чат и, если задан, в топик.
// Библиотечный SendPollConfig не умеет message_thread_id, поэтому собираем
// запрос руками через MakeRequest.
func SendPoll(bot *tgbotapi.BotAPI, chatID int64, threadID *int64, question string, options []string) error {
	params := make(tgbotapi.Params)
	params.AddNonZero64("chat_id", chatID)
	if threadID != nil {
		params.AddNonZero64("message_thread_id", *threadID)
	}
	params["question"] = question
	if err := params.AddInterface("options", options); err != nil {
		return err
	}
	params["is_anonymous"] = "false"

	_, err := bot.MakeRequest("sendPoll", params)
	if isSystemErr(err) {
		observability.CaptureErr(err)
	}
	return err
}

// SendThreadHTML отправляет HTML-текст в чат/топик (упоминания через tg://user
// работают только с parse_mode=HTML).
func SendThreadHTML(bot *tgbotapi.BotAPI, chatID int64, threadID *int64, text string) error {
	params := make(tgbotapi.Params)
	params.AddNonZero64("chat_id", chatID)
	if threadID != nil {
		params.AddNonZero64("message_thread_id", *threadID)
	}
	params["text"] = text
	params["parse_mode"] = tgbotapi.ModeHTML

	_, err := bot.MakeRequest("sendMessage", params)
	if isSystemErr(err) {
		observability.CaptureErr(err)
	}
	return err
}
