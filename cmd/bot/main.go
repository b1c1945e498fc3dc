package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"tawbah_bot/internal/bot"
	"tawbah_bot/internal/chat"
	"tawbah_bot/internal/config"
	"tawbah_bot/internal/content"
	"tawbah_bot/internal/gemini"
	"tawbah_bot/internal/lock"
	"tawbah_bot/internal/refill"
	"tawbah_bot/internal/scheduler"
	"tawbah_bot/internal/state"
	"tawbah_bot/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	kv, err := store.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = kv.Close() }()

	states := state.New(kv, log)
	buffer := content.NewBuffer(kv, log)
	client := gemini.New(cfg.GeminiAPIKey)
	refills := refill.New(buffer, client, log)
	chats := chat.New(states, client, log)
	locks := lock.New(states)

	b, err := bot.New(cfg.TelegramBotToken, cfg, bot.Deps{
		States:  states,
		Buffer:  buffer,
		Refills: refills,
		Chats:   chats,
		Locks:   locks,
	}, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	sched := scheduler.New(states, buffer, refills, b, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := buffer.Seed(ctx); err != nil {
		log.Error("seed content buffer", "error", err)
		os.Exit(1)
	}

	log.Info("starting companion bot")

	go sched.Run(ctx)

	b.Run(ctx)

	log.Info("companion bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
