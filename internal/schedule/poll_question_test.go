package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// понедельник 05.01.2026 12:00 МСК
func monday(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, moscow)
	assert.Equal(t, time.Monday, now.Weekday())
	return now
}

func TestTrainingQuestionPicksWednesday(t *testing.T) {
	got := TrainingQuestion(monday(t), "")
	assert.Equal(t, "Тренировка в среду 07.01.2026 в 20:30", got)
}

func TestTrainingQuestionPicksSunday(t *testing.T) {
	// четверг: среда уже прошла, ближайшая тренировка — воскресенье
	now := time.Date(2026, 1, 8, 12, 0, 0, 0, moscow)
	got := TrainingQuestion(now, "")
	assert.Equal(t, "Тренировка в воскресенье 11.01.2026 в 17:15", got)
}

func TestTrainingQuestionSameDayBeforeTime(t *testing.T) {
	// среда 18:00 — тренировка в 20:30 ещё впереди
	now := time.Date(2026, 1, 7, 18, 0, 0, 0, moscow)
	got := TrainingQuestion(now, "")
	assert.Equal(t, "Тренировка в среду 07.01.2026 в 20:30", got)
}

func TestTrainingQuestionSameDayAfterTime(t *testing.T) {
	// среда 21:00 — тренировка прошла, дальше воскресенье
	now := time.Date(2026, 1, 7, 21, 0, 0, 0, moscow)
	got := TrainingQuestion(now, "")
	assert.Equal(t, "Тренировка в воскресенье 11.01.2026 в 17:15", got)
}

func TestTrainingQuestionTopic(t *testing.T) {
	got := TrainingQuestion(monday(t), "QB")
	assert.Equal(t, "Тренировка в среду 07.01.2026 в 20:30 QB", got)
}

func TestNextWeekdayAlwaysInFuture(t *testing.T) {
	now := time.Date(2026, 1, 7, 20, 30, 0, 0, moscow)
	next := nextWeekday(now, time.Wednesday, wedHour, wedMinute)
	assert.True(t, next.After(now))
	assert.Equal(t, time.Wednesday, next.Weekday())
}
