// Package bot is the Telegram surface of the companion: command dispatch,
// inline keyboards, and the privacy-lock gate in front of everything else.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"tawbah_bot/internal/chat"
	"tawbah_bot/internal/config"
	"tawbah_bot/internal/content"
	"tawbah_bot/internal/lock"
	"tawbah_bot/internal/refill"
	"tawbah_bot/internal/state"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot handles user commands and sends notifications.
type Bot struct {
	api     telegramAPI
	cfg     *config.Config
	states  *state.Manager
	buffer  *content.Buffer
	refills *refill.Controller
	chats   *chat.Service
	locks   *lock.Manager
	log     *slog.Logger
	limiter *rate.Limiter
}

// Deps bundles the collaborators the bot wires together.
type Deps struct {
	States  *state.Manager
	Buffer  *content.Buffer
	Refills *refill.Controller
	Chats   *chat.Service
	Locks   *lock.Manager
}

// New creates a Bot with the given Telegram token.
func New(token string, cfg *config.Config, deps Deps, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return newWithAPI(api, cfg, deps, log), nil
}

func newWithAPI(api telegramAPI, cfg *config.Config, deps Deps, log *slog.Logger) *Bot {
	return &Bot{
		api:     api,
		cfg:     cfg,
		states:  deps.States,
		buffer:  deps.Buffer,
		refills: deps.Refills,
		chats:   deps.Chats,
		locks:   deps.Locks,
		log:     log,
		// Telegram allows roughly 20 messages per second.
		limiter: rate.NewLimiter(rate.Limit(20), 5),
	}
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
				continue
			}
			if update.Message == nil {
				continue
			}
			if !b.cfg.IsUserAllowed(update.Message.From.ID) {
				b.reply(update.Message.Chat.ID, "Access denied.")
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// SendMessage sends a text message to the given chat, throttled to stay
// under Telegram's rate limit.
func (b *Bot) SendMessage(chatID int64, text string) {
	if err := b.limiter.Wait(context.Background()); err != nil {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.SendMessage(chatID, text)
}

// gated commands require an unlocked session when the privacy lock is on.
func (b *Bot) gated(ctx context.Context, chatID int64) bool {
	unlocked, err := b.locks.IsUnlocked(ctx, chatID)
	if err != nil {
		b.log.Error("check lock", "chat_id", chatID, "error", err)
		return false
	}
	if unlocked {
		return false
	}
	settings, err := b.states.Settings(ctx)
	if err == nil {
		b.reply(chatID, tr(settings.Language).Locked)
	}
	return true
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if !msg.IsCommand() {
		if strings.TrimSpace(msg.Text) == "" {
			return
		}
		if b.gated(ctx, chatID) {
			return
		}
		b.handleChat(ctx, chatID, msg.Text)
		return
	}

	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())

	b.log.Debug("command", "cmd", cmd, "args", args, "chat_id", chatID)

	// These work even while locked.
	switch cmd {
	case "start":
		b.handleStart(ctx, chatID)
		return
	case "help":
		b.handleHelp(chatID)
		return
	case "unlock":
		b.handleUnlock(ctx, chatID, args)
		return
	case "recover":
		b.handleRecover(ctx, chatID, args)
		return
	}

	if b.gated(ctx, chatID) {
		return
	}

	switch cmd {
	case "status":
		b.handleStatus(ctx, chatID)
	case "reset":
		b.handleReset(ctx, chatID, args)
	case "relapses":
		b.handleRelapses(ctx, chatID)
	case "wisdom":
		b.handleWisdom(ctx, chatID)
	case "quote":
		b.handleQuote(ctx, chatID)
	case "pray":
		b.handlePray(ctx, chatID)
	case "calendar":
		b.handleCalendar(ctx, chatID, args)
	case "sos":
		b.handleSOS(ctx, chatID)
	case "settings":
		b.handleSettings(ctx, chatID)
	case "language":
		b.handleLanguage(ctx, chatID)
	case "notify":
		b.handleToggleNotify(ctx, chatID)
	case "hourly":
		b.handleToggleHourly(ctx, chatID)
	case "praytime":
		b.handlePrayTime(ctx, chatID, args)
	case "lock":
		b.handleLock(ctx, chatID)
	case "setpin":
		b.handleSetPin(ctx, chatID, args)
	case "unsetpin":
		b.handleUnsetPin(ctx, chatID)
	case "clearchat":
		b.handleClearChat(ctx, chatID)
	default:
		b.reply(chatID, "Unknown command. Use /help for a list of commands.")
	}
}
