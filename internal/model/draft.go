// Package model defines core data structures and types for the guide bot.
package model

import "time"

type DraftID string

// UserID and ChatID mirror the transport's 64-bit identifiers.
type UserID int64
type ChatID int64

// ImageRef is an opaque reference to an already-uploaded image
// (a Telegram file ID); the bot never downloads the bytes.
type ImageRef string

// Draft is an unpublished candidate guide. The title is the natural key;
// the ID is the opaque handle embedded in action tokens so that titles
// never travel through callback data.
type Draft struct {
	ID    DraftID
	Title string
	Text  string

	// Images are append-only until the draft is published.
	// Order is significant: first added is first shown.
	Images []ImageRef

	Approved bool

	// Creator receives the confirmation copy on publish;
	// Chat is where that copy is delivered.
	Creator UserID
	Chat    ChatID

	Created time.Time
	Updated time.Time
}

// Clone returns a deep copy so store callers never share the
// internal record's image slice.
func (d *Draft) Clone() *Draft {
	c := *d
	c.Images = make([]ImageRef, len(d.Images))
	copy(c.Images, d.Images)
	return &c
}
