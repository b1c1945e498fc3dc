package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tawbah_bot/internal/content"
	"tawbah_bot/internal/model"
)

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	if err := b.states.SetNotifyChat(ctx, chatID); err != nil {
		b.log.Error("register notify chat", "error", err)
	}
	if err := b.buffer.Seed(ctx); err != nil {
		b.log.Error("seed buffer", "error", err)
	}

	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.log.Error("load settings", "error", err)
		settings = model.DefaultSettings()
	}
	go b.refills.MaybeRefill(context.WithoutCancel(ctx), settings.Language)

	b.reply(chatID, `Assalamu Alaikum! Welcome to Tawbah Companion.

One day at a time, Insha'Allah.

/status — your clean-time streak
/wisdom — today's quote
/pray — track today's prayers
/sos — immediate help when tempted

Send any plain message to talk to the counselor.
Use /help for everything else.`)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Recovery:
/status — clean-time streak
/reset <reason> — record a relapse and restart the streak
/relapses — past relapses
/sos — crisis panel

Content:
/wisdom — quote of the day
/quote — one more quote from the buffer

Prayers:
/pray — toggle today's prayers
/calendar [YYYY-MM] — monthly prayer view

Counselor:
send any message — talk to the counselor
/clearchat — erase the conversation

Settings:
/settings — current configuration
/language — switch English / Bengali
/notify — toggle prayer reminders
/hourly — toggle hourly motivation
/praytime <prayer> <HH:MM> — set a prayer time

Privacy:
/setpin <pin> | <question> | <answer> — enable the lock
/unsetpin — disable the lock
/lock — lock now
/unlock <pin> — unlock
/recover [answer] — forgot the PIN`)
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64) {
	start, err := b.states.SobrietyStart(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, FormatStreak(start, time.Now(), settings.Language))
}

func (b *Bot) handleReset(ctx context.Context, chatID int64, args string) {
	reason := args
	if reason == "" {
		reason = "unspecified"
	}
	if err := b.states.RecordRelapse(ctx, reason); err != nil {
		b.errorReply(chatID, err)
		return
	}
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, tr(settings.Language).RelapseRecorded)
}

func (b *Bot) handleRelapses(ctx context.Context, chatID int64) {
	entries, err := b.states.RelapseHistory(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, FormatRelapses(entries))
}

func (b *Bot) handleWisdom(ctx context.Context, chatID int64) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}

	item, err := b.buffer.DailyWisdom(ctx, settings.Language)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}

	t := tr(settings.Language)
	if item == nil {
		text, source := content.FallbackQuote(settings.Language)
		b.reply(chatID, fmt.Sprintf("%s\n\n\"%s\"\n— %s\n\n%s", t.DailyWisdom, text, source, t.UpdatingContent))
		go b.refills.MaybeRefill(context.WithoutCancel(ctx), settings.Language)
		return
	}
	b.reply(chatID, fmt.Sprintf("%s\n\n\"%s\"\n— %s", t.DailyWisdom, item.Text, item.Source))
}

func (b *Bot) handleQuote(ctx context.Context, chatID int64) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}

	item, err := b.buffer.ConsumeNextUnseen(ctx, settings.Language)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	if item == nil {
		text, source := content.FallbackQuote(settings.Language)
		t := tr(settings.Language)
		b.reply(chatID, fmt.Sprintf("\"%s\"\n— %s\n\n%s", text, source, t.UpdatingContent))
	} else {
		b.reply(chatID, fmt.Sprintf("\"%s\"\n— %s", item.Text, item.Source))
	}
	go b.refills.MaybeRefill(context.WithoutCancel(ctx), settings.Language)
}

func (b *Bot) handlePray(ctx context.Context, chatID int64) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	history, err := b.states.PrayerHistory(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}

	today := time.Now().Format("2006-01-02")
	rec := history[today]

	msg := tgbotapi.NewMessage(chatID, tr(settings.Language).TodaysPrayers)
	msg.ReplyMarkup = prayerKeyboard(rec)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send prayer keyboard", "error", err)
	}
}

func (b *Bot) handleCalendar(ctx context.Context, chatID int64, args string) {
	year, month, err := ParseMonthArg(args, time.Now())
	if err != nil {
		b.reply(chatID, "Usage: /calendar [YYYY-MM]")
		return
	}
	history, err := b.states.PrayerHistory(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, FormatCalendar(history, year, month))
}

func (b *Bot) handleSOS(ctx context.Context, chatID int64) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	t := tr(settings.Language)

	msg := tgbotapi.NewMessage(chatID, FormatSOS(settings.Language))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.SOSDone, "sos:done"),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send sos panel", "error", err)
	}
}

func (b *Bot) handleSettings(ctx context.Context, chatID int64) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, FormatSettings(settings))
}

func (b *Bot) handleLanguage(ctx context.Context, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "English / বাংলা")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("English", "lang:EN"),
			tgbotapi.NewInlineKeyboardButtonData("বাংলা", "lang:BN"),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send language keyboard", "error", err)
	}
}

func (b *Bot) handleToggleNotify(ctx context.Context, chatID int64) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	settings.NotificationsEnabled = !settings.NotificationsEnabled
	if err := b.states.SaveSettings(ctx, settings); err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Prayer reminders: %s", onOff(settings.NotificationsEnabled)))
}

func (b *Bot) handleToggleHourly(ctx context.Context, chatID int64) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	settings.HourlyMotivation = !settings.HourlyMotivation
	if err := b.states.SaveSettings(ctx, settings); err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Hourly motivation: %s", onOff(settings.HourlyMotivation)))
}

func (b *Bot) handlePrayTime(ctx context.Context, chatID int64, args string) {
	prayer, hhmm, err := ParsePrayTimeArgs(args)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	settings.PrayerTimes[prayer] = hhmm
	if err := b.states.SaveSettings(ctx, settings); err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("%s set to %s.", prayer, hhmm))
}

func (b *Bot) handleChat(ctx context.Context, chatID int64, text string) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}

	history, err := b.chats.History(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	if len(history) == 0 {
		b.reply(chatID, tr(settings.Language).ChatGreeting)
	}

	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := b.api.Send(typing); err != nil {
		b.log.Debug("send typing action", "error", err)
	}

	reply, err := b.chats.Send(ctx, text, settings.Language)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, reply)
}

func (b *Bot) handleClearChat(ctx context.Context, chatID int64) {
	if err := b.chats.Clear(ctx); err != nil {
		b.errorReply(chatID, err)
		return
	}
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, tr(settings.Language).ChatCleared)
}

func (b *Bot) errorReply(chatID int64, err error) {
	b.log.Error("handler", "chat_id", chatID, "error", err)
	b.reply(chatID, "Something went wrong. Please try again.")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
