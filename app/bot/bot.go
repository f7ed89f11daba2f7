package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/rbhz/dictionary-lookup/app/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const updateTimeout = 30 * time.Second

type Handler interface {
	Handle(ctx context.Context, b Bot, u tgbotapi.Update)
	Passthrough(tgbotapi.Update) bool
	Match(u tgbotapi.Update) bool
}

// TelegramBot handles Telegram API intragration and updates handling
type TelegramBot struct {
	UserName string
	api      *tgbotapi.BotAPI
	sessions *session.Manager
	handlers []Handler
}

func (b *TelegramBot) processUpdate(u tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	for _, handler := range b.handlers {
		if handler.Match(u) {
			handler.Handle(ctx, b, u)
			if !handler.Passthrough(u) {
				break
			}
		}
	}
}

// Start receives updates until the updates channel is closed, each update
// is handled in its own goroutine
func (b *TelegramBot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for u := range updates {
		go b.processUpdate(u)
	}
}

// Stop stops receiving updates
func (b *TelegramBot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *TelegramBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	message, err := b.api.Send(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to send")
	}
	return message, err
}

// Session returns lookup session of a chat
func (b *TelegramBot) Session(chatID int64) *session.Session {
	return b.sessions.Get(SessionID(chatID))
}

// SessionID returns session identifier of a chat
func SessionID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

func NewTelegramBot(token string, sessions *session.Manager, handlers []Handler) (*TelegramBot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize bot")
	}
	log.Info().Str("username", botAPI.Self.UserName).Msg("telegram bot initialized")
	return &TelegramBot{
		UserName: botAPI.Self.UserName,
		api:      botAPI,
		sessions: sessions,
		handlers: handlers,
	}, nil
}
