// Package auth decides which Telegram users may drive the bot.
package auth

import "github.com/debemdeboas/guidebot/internal/model"

type Authorizer interface {
	Allowed(user model.UserID) bool
}
