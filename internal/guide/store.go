// Package guide holds draft guides from generation until they are
// published or cancelled. The store is volatile by design: a restart
// loses every unapproved draft.
package guide

import (
	"errors"

	"github.com/debemdeboas/guidebot/internal/model"
)

var (
	// ErrNotFound is returned for stale references to a draft that was
	// cancelled, replaced or never created.
	ErrNotFound = errors.New("draft not found")

	// ErrSealed is returned when a mutation targets an approved draft.
	ErrSealed = errors.New("draft already approved")
)

type Store interface {
	// Create inserts a draft keyed by title. An existing unapproved draft
	// with the same title is replaced (last write wins); its old ID then
	// resolves to ErrNotFound.
	Create(title, text string, creator model.UserID, chat model.ChatID) *model.Draft

	Get(id model.DraftID) (*model.Draft, error)
	GetByTitle(title string) (*model.Draft, error)

	// SetText replaces the draft body wholesale. Images and the approved
	// flag are untouched.
	SetText(id model.DraftID, text string) error

	// AppendImage adds ref at the end of the draft's image sequence.
	AppendImage(id model.DraftID, ref model.ImageRef) error

	// Approve seals the draft. It is idempotent: the second return value
	// reports whether this call performed the transition, so callers can
	// publish exactly once.
	Approve(id model.DraftID) (*model.Draft, bool, error)

	Remove(id model.DraftID) error

	// Search returns the titles containing keyword, case-insensitively.
	Search(keyword string) []string

	Len() int
}
