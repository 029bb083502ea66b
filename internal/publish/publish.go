// Package publish assembles an approved draft and emits it to the
// shared channel and to the requester. Delivery is two separate steps,
// text then images; there is no rollback and no automatic retry.
package publish

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/guidebot/internal/model"
	"github.com/debemdeboas/guidebot/internal/render"
)

// Messenger is the outbound edge the publisher writes to. The Telegram
// adapter implements it; tests use a recorder.
type Messenger interface {
	// SendText delivers a Telegram-HTML body to chat.
	SendText(ctx context.Context, chat model.ChatID, html string) error

	// SendImageGroup delivers refs as one grouped message, in order.
	SendImageGroup(ctx context.Context, chat model.ChatID, refs []model.ImageRef) error
}

// Error reports a failed or partially failed publication. Partial means
// the text step already reached at least one destination, so the caller
// must not treat the publication as absent.
type Error struct {
	Stage   string
	Partial bool
	Err     error
}

func (e *Error) Error() string {
	if e.Partial {
		return fmt.Sprintf("publish %s (text already delivered): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("publish %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Publisher struct {
	messenger Messenger
	channel   model.ChatID
	log       zerolog.Logger
}

func New(messenger Messenger, channel model.ChatID, log zerolog.Logger) *Publisher {
	return &Publisher{messenger: messenger, channel: channel, log: log}
}

// Publish sends the draft's formatted text to the channel plus a
// confirmation copy to the creator, then the ordered image group to the
// same destinations. Re-invoking on the same draft duplicates posts;
// single-shot approval is the dispatcher's job.
func (p *Publisher) Publish(ctx context.Context, draft *model.Draft) error {
	body := "<b>" + render.Escape(draft.Title) + "</b>\n\n" + render.GuideHTML([]byte(draft.Text))

	if err := p.messenger.SendText(ctx, p.channel, body); err != nil {
		return &Error{Stage: "text", Err: err}
	}
	if draft.Chat != 0 {
		if err := p.messenger.SendText(ctx, draft.Chat, body); err != nil {
			return &Error{Stage: "text", Partial: true, Err: err}
		}
	}

	if len(draft.Images) > 0 {
		if err := p.messenger.SendImageGroup(ctx, p.channel, draft.Images); err != nil {
			return &Error{Stage: "images", Partial: true, Err: err}
		}
		if draft.Chat != 0 {
			if err := p.messenger.SendImageGroup(ctx, draft.Chat, draft.Images); err != nil {
				return &Error{Stage: "images", Partial: true, Err: err}
			}
		}
	}

	p.log.Info().
		Str("draft_id", string(draft.ID)).
		Str("title", draft.Title).
		Int("images", len(draft.Images)).
		Msg("Published guide")
	return nil
}
