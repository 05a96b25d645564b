// Package telegram runs ElyuBot as a Telegram bot. Each Telegram chat id is
// its own conversation; slot memory never crosses chats.
package telegram

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"elyubot/internal/channels"
	"elyubot/internal/chat"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func init() {
	channels.Register(&Bot{})
}

// Bot bridges Telegram messages to the chat service.
type Bot struct {
	bot    *tele.Bot
	svc    *chat.Service
	logger *zap.Logger
}

func (*Bot) ID() string { return "telegram" }

// Start begins long-polling for messages. With no TELEGRAM_BOT_TOKEN set the
// channel is disabled and returns immediately.
func (b *Bot) Start(ctx context.Context, svc *chat.Service) error {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil
	}

	logger, _ := zap.NewProduction()
	b.logger = logger
	b.svc = svc

	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}
	b.bot = bot

	bot.Handle("/start", func(c tele.Context) error {
		return c.Send("Hi, I'm ElyuBot! Ask me about La Union's local products, stores, and towns.")
	})

	bot.Handle("/clear", func(c tele.Context) error {
		b.svc.Reset(context.Background(), conversationID(c.Chat().ID))
		return c.Send("Conversation cleared.")
	})

	bot.Handle(tele.OnText, b.handleMessage)

	b.logger.Info("telegram bot starting", zap.String("username", bot.Me.Username))

	go func() {
		<-ctx.Done()
		b.logger.Info("telegram bot shutting down")
		bot.Stop()
	}()

	bot.Start()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	_ = c.Notify(tele.Typing)

	turnCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reply := b.svc.Send(turnCtx, conversationID(c.Chat().ID), c.Text())
	return c.Send(reply)
}

func conversationID(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}
