// Package notify рассылает упоминания игроков под новым опросом.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/teamops/football-team-bot/internal/models"
	"github.com/teamops/football-team-bot/internal/tg"
)

const mentionBatchSize = 8

// BuildMentions формирует упоминания игроков в строю. position фильтрует
// по позиции (пустая строка — все). Приоритет: @username, затем HTML-ссылка
// tg://user?id, иначе просто имя и фамилия.
func BuildMentions(people []models.Person, position string) []string {
	var mentions []string
	for _, p := range people {
		if !p.HasRole(models.Player) || p.Status != models.StatusActive {
			continue
		}
		if position != "" {
			if p.Position == nil || *p.Position != position {
				continue
			}
		}

		switch {
		case p.TGUsername != nil && *p.TGUsername != "":
			mentions = append(mentions, "@"+*p.TGUsername)
		case p.TGID != nil:
			mentions = append(mentions, fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, *p.TGID, p.FullName()))
		default:
			mentions = append(mentions, p.FullName())
		}
	}
	return mentions
}

// SendBatches отправляет упоминания пачками по 8, чтобы Telegram
// подсветил каждое. HTML обязателен для ссылок по tg_id.
func SendBatches(bot *tgbotapi.BotAPI, chatID int64, threadID *int64, mentions []string) error {
	for i := 0; i < len(mentions); i += mentionBatchSize {
		end := i + mentionBatchSize
		if end > len(mentions) {
			end = len(mentions)
		}
		text := "Новый опрос! " + strings.Join(mentions[i:end], " ")
		if err := tg.SendThreadHTML(bot, chatID, threadID, text); err != nil {
			return err
		}
	}
	return nil
}
