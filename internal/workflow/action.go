package workflow

import (
	"fmt"
	"strings"

	"github.com/debemdeboas/guidebot/internal/model"
)

// Action names the operation a button press requests on a draft.
type Action string

const (
	ActionApprove Action = "approve"
	ActionEdit    Action = "edit"
	ActionImage   Action = "image"
	ActionCancel  Action = "cancel"
)

// tokenSep never appears in a draft ID (IDs are uuids), so splitting on
// the first occurrence is unambiguous. Titles do not travel in tokens.
const tokenSep = "|"

// Token encodes a button's callback payload. The result stays well
// under Telegram's 64-byte callback data limit.
func Token(action Action, id model.DraftID) string {
	return string(action) + tokenSep + string(id)
}

// ParseToken decodes a callback payload. Unknown actions and malformed
// payloads are rejected before any state is touched.
func ParseToken(token string) (Action, model.DraftID, error) {
	action, id, ok := strings.Cut(token, tokenSep)
	if !ok || id == "" {
		return "", "", fmt.Errorf("malformed action token %q", token)
	}

	switch Action(action) {
	case ActionApprove, ActionEdit, ActionImage, ActionCancel:
		return Action(action), model.DraftID(id), nil
	default:
		return "", "", fmt.Errorf("unknown action %q", action)
	}
}
