// Package telegram adapts the Telegram Bot API to the workflow engine:
// inbound updates become engine events, and the engine's outbound edges
// (Notifier, publish.Messenger) are implemented on top of the same
// connection.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/debemdeboas/guidebot/internal/auth"
	"github.com/debemdeboas/guidebot/internal/config"
	"github.com/debemdeboas/guidebot/internal/model"
	"github.com/debemdeboas/guidebot/internal/workflow"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	engine  *workflow.Engine
	limiter *rate.Limiter
	auth    auth.Authorizer
	timeout int
	log     zerolog.Logger
}

func New(cfg *config.Config, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(cfg.Bot.RatePerSecond), 1),
		auth:    auth.NewAllowList(cfg.Bot.AllowedUsers),
		timeout: cfg.Bot.PollTimeout,
		log:     log,
	}, nil
}

// SetEngine breaks the construction cycle: the engine needs the bot as
// its outbound edge, so it is built after the bot and attached here.
func (b *Bot) SetEngine(e *workflow.Engine) {
	b.engine = e
}

// Run polls for updates until ctx is cancelled. Update handling is
// sequential; the one long-running operation (generation) runs on its
// own goroutine inside the engine, so a slow provider never stalls
// other users here.
func (b *Bot) Run(ctx context.Context) error {
	// Switch from any previously configured webhook to polling.
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		b.log.Warn().Err(err).Msg("Failed to delete webhook")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout
	updates := b.api.GetUpdatesChan(u)

	b.log.Info().Str("username", b.api.Self.UserName).Msg("Bot is running")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// permitted enforces the private-chat-only rule and the optional
// privileged-user allow-list. Rejected updates are dropped silently.
func (b *Bot) permitted(chat *tgbotapi.Chat, from *tgbotapi.User) bool {
	if chat == nil || !chat.IsPrivate() || from == nil {
		return false
	}
	if !b.auth.Allowed(model.UserID(from.ID)) {
		b.log.Debug().Int64("user_id", from.ID).Msg("User not in allow-list")
		return false
	}
	return true
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !b.permitted(msg.Chat, msg.From) {
		return
	}

	chat := model.ChatID(msg.Chat.ID)
	user := model.UserID(msg.From.ID)

	if msg.IsCommand() {
		b.handleCommand(ctx, chat, user, msg)
		return
	}

	if len(msg.Photo) > 0 {
		// The last PhotoSize is the largest rendition.
		ref := model.ImageRef(msg.Photo[len(msg.Photo)-1].FileID)
		if reply, handled := b.engine.Photo(user, ref); handled {
			b.sendReply(ctx, chat, reply)
		}
		return
	}

	if msg.Text != "" {
		if reply, handled := b.engine.Text(user, msg.Text); handled {
			b.sendReply(ctx, chat, reply)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, chat model.ChatID, user model.UserID, msg *tgbotapi.Message) {
	args := msg.CommandArguments()

	switch msg.Command() {
	case "start":
		b.sendReply(ctx, chat, "Welcome to IT Knowledge AI Bot! Use /guide <topic> to generate a guide.")
	case "help":
		b.sendReply(ctx, chat, "/guide <title> - Create new guide\n/search <keyword> - Search existing guides")
	case "guide":
		if args == "" {
			b.sendReply(ctx, chat, "Usage: /guide <guide title>")
			return
		}
		if err := b.engine.CreateGuide(ctx, chat, user, args); err != nil {
			b.sendReply(ctx, chat, "Cannot create that guide: "+err.Error())
		}
	case "search":
		b.sendReply(ctx, chat, b.engine.Search(args))
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Always answer, even for rejected presses, or the client keeps its
	// loading spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.Warn().Err(err).Msg("Failed to answer callback query")
	}

	if query.Message == nil || !b.permitted(query.Message.Chat, query.From) {
		return
	}

	reply := b.engine.Action(ctx, model.UserID(query.From.ID), query.Data)

	// Replace the preview message (and its keyboard) with the outcome.
	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, reply)
	if err := b.send(ctx, edit); err != nil {
		b.log.Error().Err(err).Msg("Failed to edit callback message")
	}
}

func (b *Bot) sendReply(ctx context.Context, chat model.ChatID, text string) {
	if err := b.SendPlain(ctx, chat, text); err != nil {
		b.log.Error().Err(err).Int64("chat_id", int64(chat)).Msg("Failed to send reply")
	}
}
