// Package workflow is the draft workflow engine: it tracks a guide from
// requested through approved/published or cancelled, arbitrates
// concurrent edits, and coordinates the asynchronous generation call.
// Everything else in the repository is a transport adapter around it.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/guidebot/internal/generate"
	"github.com/debemdeboas/guidebot/internal/guide"
	"github.com/debemdeboas/guidebot/internal/model"
	"github.com/debemdeboas/guidebot/internal/publish"
	"github.com/debemdeboas/guidebot/internal/render"
	"github.com/debemdeboas/guidebot/internal/session"
)

const maxTitleLen = 200

const replyNotFound = "Guide not found or expired."

// Notifier pushes engine-initiated messages back through the transport.
// Dispatch replies are returned as strings instead; only asynchronous
// completions need this port.
type Notifier interface {
	SendPlain(ctx context.Context, chat model.ChatID, text string) error

	// SendDraftPreview delivers the rendered preview together with the
	// approve/edit/image/cancel keyboard for id.
	SendDraftPreview(ctx context.Context, chat model.ChatID, html string, id model.DraftID) error
}

// Publisher is satisfied by publish.Publisher.
type Publisher interface {
	Publish(ctx context.Context, draft *model.Draft) error
}

type Engine struct {
	store    guide.Store
	sessions *session.Router
	gen      generate.Client
	pub      Publisher
	notifier Notifier
	log      zerolog.Logger
}

func NewEngine(store guide.Store, sessions *session.Router, gen generate.Client, pub Publisher, notifier Notifier, log zerolog.Logger) *Engine {
	return &Engine{
		store:    store,
		sessions: sessions,
		gen:      gen,
		pub:      pub,
		notifier: notifier,
		log:      log,
	}
}

// CreateGuide validates the title, acknowledges the request, and kicks
// off generation on its own goroutine so a slow provider never blocks
// dispatch for other users. The eventual preview (or failure notice) is
// delivered through the Notifier.
func (e *Engine) CreateGuide(ctx context.Context, chat model.ChatID, user model.UserID, titleText string) error {
	title := strings.TrimSpace(titleText)
	if title == "" {
		return &ValidationError{Reason: "title is empty"}
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return &ValidationError{Reason: fmt.Sprintf("title longer than %d characters", maxTitleLen)}
	}

	if err := e.notifier.SendPlain(ctx, chat, fmt.Sprintf("Generating guide for: %s...", title)); err != nil {
		e.log.Warn().Err(err).Msg("Failed to acknowledge guide request")
	}

	go e.finishGenerate(chat, user, title)
	return nil
}

// finishGenerate runs detached: an in-flight generation call is never
// cancelled once issued.
func (e *Engine) finishGenerate(chat model.ChatID, user model.UserID, title string) {
	ctx := context.Background()

	text, err := e.gen.Generate(ctx, title)
	if err != nil {
		e.log.Error().Err(err).Str("title", title).Msg("Guide generation failed")
		if err := e.notifier.SendPlain(ctx, chat, "Error generating guide. Please try again later."); err != nil {
			e.log.Error().Err(err).Msg("Failed to report generation error")
		}
		return
	}

	draft := e.store.Create(title, text, user, chat)
	e.log.Info().Str("draft_id", string(draft.ID)).Str("title", title).Msg("Draft created")

	preview := "<b>Guide Draft:</b> " + render.Escape(title) + "\n\n" + render.GuideHTML([]byte(text))
	if err := e.notifier.SendDraftPreview(ctx, chat, preview, draft.ID); err != nil {
		e.log.Error().Err(err).Str("draft_id", string(draft.ID)).Msg("Failed to deliver draft preview")
	}
}

// Search returns the reply for a keyword search over draft titles.
func (e *Engine) Search(keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "Usage: /search <keyword>"
	}

	titles := e.store.Search(keyword)
	if len(titles) == 0 {
		return "No guides found."
	}
	return "Found guides:\n" + strings.Join(titles, "\n")
}

// Text routes a free-text message. It consumes the user's pending edit
// intent; without one the message is ignored (handled reports false).
func (e *Engine) Text(user model.UserID, text string) (reply string, handled bool) {
	id, ok := e.sessions.TakePendingEdit(user)
	if !ok {
		return "", false
	}

	draft, err := e.store.Get(id)
	if err != nil {
		return replyNotFound, true
	}

	switch err := e.store.SetText(id, text); {
	case errors.Is(err, guide.ErrNotFound):
		return replyNotFound, true
	case errors.Is(err, guide.ErrSealed):
		return "Guide is already approved and can no longer be edited.", true
	case err != nil:
		e.log.Error().Err(err).Str("draft_id", string(id)).Msg("Edit failed")
		return "Updating the guide failed.", true
	}

	return fmt.Sprintf("Guide '%s' updated. Click Approve to post.", draft.Title), true
}

// Photo routes an image message. The pending image intent is read
// without being consumed so the user can keep attaching until they
// approve or cancel.
func (e *Engine) Photo(user model.UserID, ref model.ImageRef) (reply string, handled bool) {
	id, ok := e.sessions.PendingImage(user)
	if !ok {
		return "", false
	}

	draft, err := e.store.Get(id)
	if err != nil {
		return replyNotFound, true
	}

	switch err := e.store.AppendImage(id, ref); {
	case errors.Is(err, guide.ErrNotFound):
		return replyNotFound, true
	case errors.Is(err, guide.ErrSealed):
		return "Guide is already approved; images can no longer be added.", true
	case err != nil:
		e.log.Error().Err(err).Str("draft_id", string(id)).Msg("Image append failed")
		return "Adding the image failed.", true
	}

	return fmt.Sprintf("Image added to guide '%s'. Click Approve to post.", draft.Title), true
}

// Action decodes a button press and dispatches it. Every outcome,
// including failure, becomes a user-facing reply; nothing escapes to
// the transport loop.
func (e *Engine) Action(ctx context.Context, user model.UserID, token string) string {
	action, id, err := ParseToken(token)
	if err != nil {
		e.log.Warn().Err(err).Msg("Rejected action token")
		return "Unknown action."
	}

	// A stale button referencing a cancelled or replaced draft stops here.
	draft, err := e.store.Get(id)
	if err != nil {
		return replyNotFound
	}

	switch action {
	case ActionApprove:
		return e.approve(ctx, id)
	case ActionEdit:
		e.sessions.SetPendingEdit(user, id)
		return fmt.Sprintf("Send new text to replace guide '%s'.", draft.Title)
	case ActionImage:
		e.sessions.SetPendingImage(user, id)
		return fmt.Sprintf("Send image(s) to attach to guide '%s'.", draft.Title)
	case ActionCancel:
		if err := e.store.Remove(id); err != nil {
			return replyNotFound
		}
		e.sessions.ClearTarget(id)
		e.log.Info().Str("draft_id", string(id)).Str("title", draft.Title).Msg("Draft cancelled")
		return fmt.Sprintf("Guide '%s' cancelled.", draft.Title)
	}
	return "Unknown action."
}

// approve seals the draft, then publishes. Approval is a local commit:
// a publish failure leaves the draft approved and is reported
// distinctly. Only the call that performs the seal publishes, so a
// replayed Approve button cannot duplicate channel posts.
func (e *Engine) approve(ctx context.Context, id model.DraftID) string {
	draft, sealed, err := e.store.Approve(id)
	if err != nil {
		return replyNotFound
	}
	if !sealed {
		return "Guide is already approved and posted."
	}

	e.sessions.ClearTarget(id)

	if err := e.pub.Publish(ctx, draft); err != nil {
		e.log.Error().Err(err).Str("draft_id", string(id)).Msg("Publish failed")

		var perr *publish.Error
		if errors.As(err, &perr) && perr.Partial {
			return fmt.Sprintf("Guide approved; the text was posted but delivery did not complete: %v.", perr.Err)
		}
		return fmt.Sprintf("Guide approved, but posting failed: %v.", err)
	}

	e.log.Info().Str("draft_id", string(id)).Str("title", draft.Title).Msg("Draft approved and posted")
	return "Guide approved and posted."
}
