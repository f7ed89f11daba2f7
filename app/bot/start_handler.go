package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const (
	msgStart        = "Hi! Just send me a word! Words you have already looked up are underlined in every next answer."
	msgEmptyHistory = "You haven't looked up any words yet"
)

type StartHandler struct {
	neverPassthorugh
}

func (h StartHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "start"
}

func (h StartHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, msgStart))
}

// HistoryHandler lists words looked up in the chat
type HistoryHandler struct {
	neverPassthorugh
}

func (h HistoryHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "history"
}

func (h HistoryHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	chatID := u.Message.Chat.ID
	words, err := b.Session(chatID).History()
	if err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to get chat history")
		return
	}
	if len(words) == 0 {
		b.Send(tgbotapi.NewMessage(chatID, msgEmptyHistory))
		return
	}
	b.Send(tgbotapi.NewMessage(chatID, strings.Join(words, "\n")))
}
