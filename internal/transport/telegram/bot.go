package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/partsbot/internal/config"
	"github.com/sandevgo/partsbot/internal/service/bot"
	"github.com/sandevgo/partsbot/internal/service/reply"
	"github.com/sandevgo/partsbot/pkg/conv"
	"github.com/sandevgo/partsbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base-context"

// Bot serves the parts-lookup dialogue over Telegram. Any chat may talk to
// it; the session is the chat.
type Bot struct {
	bot       *tele.Bot
	cfg       *config.TelegramConfig
	orch      *bot.Orchestrator
	formatter *reply.Formatter
}

func NewBot(ctx context.Context, cfg *config.TelegramConfig, orch *bot.Orchestrator) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	tgBot := &Bot{
		bot:       b,
		cfg:       cfg,
		orch:      orch,
		formatter: reply.NewFormatter(),
	}

	// Carry the signal-aware context (with its logger) into handlers.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle(tele.OnText, tgBot.handleMessage)

	return tgBot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	_ = c.Notify(tele.Typing)

	result, err := b.orch.HandleMessage(ctx, sessionID, c.Text())
	if err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("message handling failed")
		return c.Send("Désolé, une erreur s'est produite. Réessayez dans un instant.")
	}

	rendered := b.formatter.Render(result)
	htmlContent := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(rendered)))
	if htmlContent == "" {
		return nil
	}
	if err := c.Send(htmlContent, tele.ModeHTML); err != nil {
		logger.Error().Err(err).Msg("failed to send telegram message")
		return err
	}
	return nil
}
