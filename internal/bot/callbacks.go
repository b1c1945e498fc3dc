package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tawbah_bot/internal/model"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	chatID := cb.Message.Chat.ID

	ack := tgbotapi.NewCallback(cb.ID, "")
	if _, err := b.api.Send(ack); err != nil {
		b.log.Error("send callback ack", "error", err)
	}

	if cb.From == nil || !b.cfg.IsUserAllowed(cb.From.ID) {
		return
	}
	// Stale keyboards outlive a /lock; callbacks go through the same gate as
	// commands.
	if b.gated(ctx, chatID) {
		return
	}

	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return
	}
	action, arg := parts[0], parts[1]

	b.log.Info("callback", "action", action, "arg", arg, "chat_id", chatID)

	switch action {
	case "pray":
		b.handlePrayToggle(ctx, cb, model.PrayerName(arg))
	case "lang":
		b.handleLanguageSwitch(ctx, chatID, model.Language(arg))
	case "sos":
		b.handleSOSDone(ctx, chatID)
	}
}

// handlePrayToggle flips a prayer for today and refreshes the keyboard in
// place so the checkmarks track the stored record.
func (b *Bot) handlePrayToggle(ctx context.Context, cb *tgbotapi.CallbackQuery, prayer model.PrayerName) {
	valid := false
	for _, p := range model.PrayerNames {
		if p == prayer {
			valid = true
			break
		}
	}
	if !valid {
		return
	}

	chatID := cb.Message.Chat.ID
	today := time.Now().Format("2006-01-02")

	rec, err := b.states.TogglePrayer(ctx, today, prayer)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}

	markup := prayerKeyboard(rec)
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, markup)
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("update prayer keyboard", "error", err)
	}
}

func (b *Bot) handleLanguageSwitch(ctx context.Context, chatID int64, lang model.Language) {
	if lang != model.LangEN && lang != model.LangBN {
		return
	}
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	settings.Language = lang
	if err := b.states.SaveSettings(ctx, settings); err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, tr(lang).LanguageSwitched)

	// A language switch exposes a possibly empty partition.
	go b.refills.MaybeRefill(context.WithoutCancel(ctx), lang)
}

func (b *Bot) handleSOSDone(ctx context.Context, chatID int64) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, tr(settings.Language).SOSDone)
}

// prayerKeyboard renders one button per prayer with a checkmark for
// completed ones.
func prayerKeyboard(rec model.PrayerRecord) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range model.PrayerNames {
		label := string(p)
		if rec[p] {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "pray:"+string(p)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
