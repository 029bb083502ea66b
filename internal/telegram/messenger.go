package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/debemdeboas/guidebot/internal/model"
	"github.com/debemdeboas/guidebot/internal/workflow"
)

// send pushes any chattable through the flood-control limiter.
func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := b.api.Send(c)
	return err
}

// SendPlain implements workflow.Notifier.
func (b *Bot) SendPlain(ctx context.Context, chat model.ChatID, text string) error {
	return b.send(ctx, tgbotapi.NewMessage(int64(chat), text))
}

// SendText implements publish.Messenger with Telegram-HTML bodies.
func (b *Bot) SendText(ctx context.Context, chat model.ChatID, html string) error {
	msg := tgbotapi.NewMessage(int64(chat), html)
	msg.ParseMode = tgbotapi.ModeHTML
	return b.send(ctx, msg)
}

// SendImageGroup implements publish.Messenger. The refs are file IDs of
// photos Telegram already holds, sent as a single grouped message.
func (b *Bot) SendImageGroup(ctx context.Context, chat model.ChatID, refs []model.ImageRef) error {
	media := make([]interface{}, 0, len(refs))
	for _, ref := range refs {
		media = append(media, tgbotapi.NewInputMediaPhoto(tgbotapi.FileID(ref)))
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := b.api.SendMediaGroup(tgbotapi.NewMediaGroup(int64(chat), media))
	return err
}

// SendDraftPreview implements workflow.Notifier: the rendered preview
// plus the four-action keyboard whose callback data carries the opaque
// draft ID.
func (b *Bot) SendDraftPreview(ctx context.Context, chat model.ChatID, html string, id model.DraftID) error {
	msg := tgbotapi.NewMessage(int64(chat), html)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Approve & Post ✅", workflow.Token(workflow.ActionApprove, id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Edit ✏️", workflow.Token(workflow.ActionEdit, id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Add Image 🖼️", workflow.Token(workflow.ActionImage, id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Cancel ❌", workflow.Token(workflow.ActionCancel, id)),
		),
	)
	return b.send(ctx, msg)
}
