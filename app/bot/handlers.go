package bot

import (
	"github.com/rbhz/dictionary-lookup/app/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot describes bot for handlers
type Bot interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	Session(chatID int64) *session.Session
}

// neverPassthorugh implements Passthrough with always false
type neverPassthorugh struct{}

// Passthrough always returns false
func (h neverPassthorugh) Passthrough(u tgbotapi.Update) bool {
	return false
}

// htmlMessage creates message with Telegram HTML parse mode
func htmlMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}
