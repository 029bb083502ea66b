// Package session tracks per-user pending intents: which draft the next
// text or photo message from a user should be routed to. At most one
// intent is outstanding per user; setting a new one overwrites it.
package session

import (
	"sync"

	"github.com/debemdeboas/guidebot/internal/model"
)

type intentKind int

const (
	intentEdit intentKind = iota
	intentImage
)

type intent struct {
	kind   intentKind
	target model.DraftID
}

type Router struct {
	mu      sync.Mutex
	pending map[model.UserID]intent
}

func NewRouter() *Router {
	return &Router{pending: make(map[model.UserID]intent)}
}

func (r *Router) SetPendingEdit(user model.UserID, id model.DraftID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[user] = intent{kind: intentEdit, target: id}
}

func (r *Router) SetPendingImage(user model.UserID, id model.DraftID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[user] = intent{kind: intentImage, target: id}
}

// TakePendingEdit reads and clears the user's edit intent atomically.
// A second concurrent text message finds nothing and is ignored: text
// replaces the draft body wholesale, so one message consumes the slot.
func (r *Router) TakePendingEdit(user model.UserID) (model.DraftID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.pending[user]
	if !ok || in.kind != intentEdit {
		return "", false
	}
	delete(r.pending, user)
	return in.target, true
}

// PendingImage reads without clearing: images accumulate, so the user
// may attach any number until the draft is approved or cancelled, or a
// new intent replaces this one.
func (r *Router) PendingImage(user model.UserID) (model.DraftID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.pending[user]
	if !ok || in.kind != intentImage {
		return "", false
	}
	return in.target, true
}

// ClearTarget drops every intent that references id. Called when a
// draft is approved or cancelled; intents that slip through anyway
// self-heal via the store's not-found path.
func (r *Router) ClearTarget(id model.DraftID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for user, in := range r.pending {
		if in.target == id {
			delete(r.pending, user)
		}
	}
}
