package auth

import "github.com/debemdeboas/guidebot/internal/model"

// AllowList permits only the configured user IDs. An empty list
// permits everyone.
type AllowList struct {
	ids map[model.UserID]bool
}

func NewAllowList(ids []int64) *AllowList {
	a := &AllowList{ids: make(map[model.UserID]bool, len(ids))}
	for _, id := range ids {
		a.ids[model.UserID(id)] = true
	}
	return a
}

func (a *AllowList) Allowed(user model.UserID) bool {
	if len(a.ids) == 0 {
		return true
	}
	return a.ids[user]
}
