package bot

import (
	"context"
	"errors"

	"github.com/rbhz/dictionary-lookup/app/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// WordHandler handles word requests
type WordHandler struct {
	neverPassthorugh
}

// Match returns true if message is a text
func (h WordHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Text != "" && !u.Message.IsCommand()
}

// Handle looks word up and sends highlighted result to chat
func (h WordHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	chatID := u.Message.Chat.ID
	display, err := b.Session(chatID).Submit(ctx, u.Message.Text)
	if err != nil {
		if !errors.Is(err, session.ErrSuperseded) {
			log.Error().Err(err).Int64("chat", chatID).Str("word", u.Message.Text).Msg("failed to look word up")
		}
		return
	}
	if display.Empty() {
		return
	}
	text := display.Definitions
	if text == "" {
		text = display.Error
	}
	for _, chunk := range splitMessage(text, messageLimit) {
		if _, err := b.Send(htmlMessage(chatID, chunk)); err != nil {
			return
		}
	}
	if display.Entry == nil {
		return
	}
	for _, p := range display.Entry.Phonetics {
		if p.HasAudio() {
			_, _ = b.Send(tgbotapi.NewAudio(chatID, tgbotapi.FileURL(p.AudioURL)))
			break
		}
	}
}
