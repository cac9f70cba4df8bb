package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/teamops/football-team-bot/internal/app"
	"github.com/teamops/football-team-bot/internal/config"
	"github.com/teamops/football-team-bot/internal/db"
	"github.com/teamops/football-team-bot/internal/logging"
	"github.com/teamops/football-team-bot/internal/metrics"
	"github.com/teamops/football-team-bot/internal/observability"
)

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("конфигурация: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("логгер: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "football-team-bot")
	if err != nil {
		lg.Sugar.Warnw("sentry не инициализирован", "err", err)
	}
	defer flush()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		lg.Sugar.Fatalw("подключение к БД", "err", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		lg.Sugar.Fatalw("миграции", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Seed(ctx, database, cfg.AdminID, cfg.AdminName); err != nil {
		lg.Sugar.Fatalw("первичная закладка справочников", "err", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		lg.Sugar.Fatalw("запуск бота", "err", err)
	}
	lg.Sugar.Infow("бот запущен", "username", bot.Self.UserName)

	app.StartHTTP(ctx, cfg.HTTPAddr, database)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			lg.Sugar.Infow("остановка по сигналу")
			bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			metrics.BotUpdates.Inc()
			switch {
			case update.CallbackQuery != nil:
				app.HandleCallback(ctx, bot, database, update.CallbackQuery)
			case update.Message != nil:
				app.HandleMessage(ctx, bot, database, update.Message)
			}
		}
	}
}
