// Package auth gates inbound chats against a configured allow-list.
package auth

// Allowlist decides which chats may talk to the bot. An empty list leaves
// the bot open; a non-empty list rejects everyone not on it.
type Allowlist struct {
	ids map[int64]struct{}
}

func New(ids []int64) *Allowlist {
	a := &Allowlist{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		a.ids[id] = struct{}{}
	}
	return a
}

func (a *Allowlist) Allowed(chatID int64) bool {
	if len(a.ids) == 0 {
		return true
	}
	_, ok := a.ids[chatID]
	return ok
}
