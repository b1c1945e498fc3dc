package bot

import (
	"context"
	"fmt"
	"strings"
)

func (b *Bot) handleSetPin(ctx context.Context, chatID int64, args string) {
	pin, question, answer, err := ParseSetPinArgs(args)
	if err != nil {
		b.reply(chatID, "Usage: /setpin <4-digit pin> | <recovery question> | <answer>")
		return
	}
	if err := b.locks.Enable(ctx, pin, question, answer); err != nil {
		b.reply(chatID, err.Error())
		return
	}
	// Enabling the lock should not lock the person who just set it out.
	if _, err := b.locks.Unlock(ctx, chatID, pin); err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, "Privacy lock enabled. Use /lock to lock, /unlock <pin> to unlock.")
}

func (b *Bot) handleUnsetPin(ctx context.Context, chatID int64) {
	if err := b.locks.Disable(ctx); err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, "Privacy lock disabled.")
}

func (b *Bot) handleLock(ctx context.Context, chatID int64) {
	enabled, err := b.locks.Enabled(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	if !enabled {
		b.reply(chatID, "The privacy lock is not set up. Use /setpin first.")
		return
	}
	b.locks.Lock(chatID)
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	b.reply(chatID, tr(settings.Language).Locked)
}

func (b *Bot) handleUnlock(ctx context.Context, chatID int64, args string) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	t := tr(settings.Language)

	pin := strings.TrimSpace(args)
	if pin == "" {
		b.reply(chatID, "Usage: /unlock <pin>")
		return
	}
	ok, err := b.locks.Unlock(ctx, chatID, pin)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	if !ok {
		b.reply(chatID, t.WrongPIN)
		return
	}
	b.reply(chatID, t.Unlocked)
}

func (b *Bot) handleRecover(ctx context.Context, chatID int64, args string) {
	settings, err := b.states.Settings(ctx)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	t := tr(settings.Language)

	answer := strings.TrimSpace(args)
	if answer == "" {
		question, err := b.locks.RecoveryQuestion(ctx)
		if err != nil {
			b.errorReply(chatID, err)
			return
		}
		if question == "" {
			b.reply(chatID, "No recovery question is set up.")
			return
		}
		b.reply(chatID, fmt.Sprintf("%s\n\nAnswer with /recover <answer>", question))
		return
	}

	pin, ok, err := b.locks.Recover(ctx, chatID, answer)
	if err != nil {
		b.errorReply(chatID, err)
		return
	}
	if !ok {
		b.reply(chatID, t.RecoveryFail)
		return
	}
	b.reply(chatID, fmt.Sprintf(t.RecoveryOK, pin))
}
