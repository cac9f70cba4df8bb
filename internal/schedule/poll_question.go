// Package schedule знает расписание тренировок и формулирует вопрос опроса.
package schedule

import (
	"fmt"
	"time"
)

// Тренировки: среда 20:30 и воскресенье 17:15 по Москве.
const (
	wedHour, wedMinute = 20, 30
	sunHour, sunMinute = 17, 15
)

var moscow = loadMoscow()

func loadMoscow() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

func Now() time.Time { return time.Now().In(moscow) }

// nextWeekday — ближайший момент заданного дня недели и времени, строго
// позже now (если сегодня нужный день, но время уже прошло — через неделю).
func nextWeekday(now time.Time, day time.Weekday, hour, minute int) time.Time {
	days := (int(day) - int(now.Weekday()) + 7) % 7
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()).
		AddDate(0, 0, days)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

// TrainingQuestion выбирает ближайшую тренировку после now и строит вопрос.
// topic (код позиции или название чата) дописывается в конец, если задан.
func TrainingQuestion(now time.Time, topic string) string {
	now = now.In(moscow)
	wed := nextWeekday(now, time.Wednesday, wedHour, wedMinute)
	sun := nextWeekday(now, time.Sunday, sunHour, sunMinute)

	suffix := ""
	if topic != "" {
		suffix = " " + topic
	}

	if wed.Before(sun) {
		return fmt.Sprintf("Тренировка в среду %s в 20:30%s", wed.Format("02.01.2006"), suffix)
	}
	return fmt.Sprintf("Тренировка в воскресенье %s в 17:15%s", sun.Format("02.01.2006"), suffix)
}
