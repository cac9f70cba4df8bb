// Package roster собирает списки состава в готовый HTML-текст для Telegram.
package roster

import (
	"fmt"
	"strings"

	"github.com/teamops/football-team-bot/internal/models"
)

const (
	EmptyPlayers = "📭 В базе пока нет ни одного игрока."
	EmptyCoaches = "📭 В базе пока нет ни одного тренера."
)

var statusIcons = map[models.Status]string{
	models.StatusActive:   "✅ ",
	models.StatusInjured:  "🤕 ",
	models.StatusInactive: "💤 ",
}

var statusWords = map[models.Status]string{
	models.StatusActive:   "В строю",
	models.StatusInjured:  "Травма",
	models.StatusInactive: "В запасе",
}

func statusIcon(s models.Status) string {
	if icon, ok := statusIcons[s]; ok {
		return icon
	}
	return "❓"
}

func statusWord(s models.Status) string {
	if word, ok := statusWords[s]; ok {
		return word
	}
	return "Неизвестно"
}

// FormatRoster строит нумерованный список людей с заданной ролью.
// showPosition управляет выводом позиции (для тренеров она не нужна).
func FormatRoster(people []models.Person, role models.Role, showPosition bool) string {
	var filtered []models.Person
	for _, p := range people {
		if p.HasRole(role) {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		if role == models.Coach {
			return EmptyCoaches
		}
		return EmptyPlayers
	}

	var b strings.Builder
	if role == models.Coach {
		b.WriteString("📋 <b>Список тренеров:</b>\n\n")
	} else {
		b.WriteString("📋 <b>Список игроков:</b>\n\n")
	}
	for i, p := range filtered {
		writeLine(&b, i+1, p, showPosition)
	}
	return b.String()
}

// FormatRosterByPosition — список игроков одной позиции. Код позиции
// сравнивается без учёта регистра; неизвестный код — ошибка со списком
// допустимых.
func FormatRosterByPosition(people []models.Person, positions []models.Position, code string) (string, error) {
	var match *models.Position
	for i := range positions {
		if strings.EqualFold(positions[i].Name, code) {
			match = &positions[i]
			break
		}
	}
	if match == nil {
		var names []string
		for _, pos := range positions {
			names = append(names, pos.Name)
		}
		return "", fmt.Errorf("неизвестная позиция %q, допустимые: %s", code, strings.Join(names, ", "))
	}

	var filtered []models.Person
	for _, p := range people {
		if !p.HasRole(models.Player) {
			continue
		}
		if p.Position == nil || !strings.EqualFold(*p.Position, match.Name) {
			continue
		}
		filtered = append(filtered, p)
	}
	if len(filtered) == 0 {
		return fmt.Sprintf("📭 На позиции %s пока нет игроков в строю.", match.Name), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Игроки на позиции %s:</b>\n\n", match.Name)
	for i, p := range filtered {
		writeLine(&b, i+1, p, false)
	}
	return b.String(), nil
}

// В игроцкой раскладке тире стоит всегда, даже без позиции.
func writeLine(b *strings.Builder, n int, p models.Person, showPosition bool) {
	fmt.Fprintf(b, "%s%d. <b>%s %s</b>", statusIcon(p.Status), n, p.Name, p.Surname)
	if p.TGUsername != nil && *p.TGUsername != "" {
		fmt.Fprintf(b, " (@%s)", *p.TGUsername)
	}
	if showPosition {
		b.WriteString(" —")
		if p.Position != nil && *p.Position != "" {
			fmt.Fprintf(b, " %s", *p.Position)
		}
	}
	if p.Number != nil && *p.Number != "" {
		fmt.Fprintf(b, " #%s", *p.Number)
	}
	fmt.Fprintf(b, " [%s]\n", statusWord(p.Status))
}
