package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akarpov/savingsbot/internal/common"
)

// Callback payload formats, shared with the keyboards the engine issues:
//
//	selection:  "<prefix>_<itemID>"
//	navigation: "nav_<prefix>_<page>"
//
// The prefix identifies which flow issued the keyboard. Malformed payloads
// fail closed with common.ErrBadPayload.
const (
	prefixAddTo     = "add_to"
	prefixDelete    = "delete"
	prefixProgress  = "progress"
	prefixAssetUpd  = "asset_upd"
	prefixPayTo     = "pay_to"
	prefixPayDelete = "pay_del"
	prefixReport    = "report"

	navMarker = "nav_"
)

// callbackEvent is a decoded payload: either a page navigation or an item
// selection.
type callbackEvent struct {
	Prefix string
	Nav    bool
	Page   int    // valid when Nav
	ItemID string // valid when !Nav
}

func encodeSelect(prefix, itemID string) string {
	return prefix + "_" + itemID
}

func encodeNav(prefix string, page int) string {
	return fmt.Sprintf("%s%s_%d", navMarker, prefix, page)
}

// decodeCallback parses a payload. The item id / page number is always the
// final "_"-separated token, so prefixes may themselves contain
// underscores.
func decodeCallback(data string) (callbackEvent, error) {
	if rest, ok := strings.CutPrefix(data, navMarker); ok {
		i := strings.LastIndex(rest, "_")
		if i <= 0 {
			return callbackEvent{}, fmt.Errorf("%w: %q", common.ErrBadPayload, data)
		}
		page, err := strconv.Atoi(rest[i+1:])
		if err != nil || page < 0 {
			return callbackEvent{}, fmt.Errorf("%w: %q", common.ErrBadPayload, data)
		}
		return callbackEvent{Prefix: rest[:i], Nav: true, Page: page}, nil
	}

	i := strings.LastIndex(data, "_")
	if i <= 0 || i == len(data)-1 {
		return callbackEvent{}, fmt.Errorf("%w: %q", common.ErrBadPayload, data)
	}
	return callbackEvent{Prefix: data[:i], ItemID: data[i+1:]}, nil
}

// itemID64 converts a selection id into an entity id, failing closed.
func (ev callbackEvent) itemID64() (int64, error) {
	id, err := strconv.ParseInt(ev.ItemID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: item id %q", common.ErrBadPayload, ev.ItemID)
	}
	return id, nil
}

// PageView is the visible slice of a paginated list.
type PageView struct {
	Page    int // effective page after clamping
	Lo, Hi  int // items[Lo:Hi] is the visible slice
	HasPrev bool
	HasNext bool
}

// Paginate computes the visible window for page over n items. An
// out-of-range page (stale button after the list shrank) clamps to the
// nearest valid page instead of raising past the boundary. n must be > 0;
// callers short-circuit empty lists before rendering.
func Paginate(n, pageSize, page int) PageView {
	if pageSize <= 0 {
		pageSize = 1
	}
	maxPage := (n - 1) / pageSize
	if page > maxPage {
		page = maxPage
	}
	if page < 0 {
		page = 0
	}

	lo := page * pageSize
	hi := lo + pageSize
	if hi > n {
		hi = n
	}
	return PageView{
		Page:    page,
		Lo:      lo,
		Hi:      hi,
		HasPrev: page > 0,
		HasNext: hi < n,
	}
}

// selectorItem is one selectable row.
type selectorItem struct {
	ID    string
	Label string
}

// selectorKeyboard renders one page of items plus a navigation row.
// Re-rendering the same page yields the same keyboard; navigation never
// mutates the backing list.
func selectorKeyboard(items []selectorItem, prefix string, pageSize, page int) Keyboard {
	view := Paginate(len(items), pageSize, page)

	var kb Keyboard
	for _, item := range items[view.Lo:view.Hi] {
		kb = append(kb, []Button{{Label: item.Label, Data: encodeSelect(prefix, item.ID)}})
	}

	var nav []Button
	if view.HasPrev {
		nav = append(nav, Button{Label: "⬅️ Previous", Data: encodeNav(prefix, view.Page-1)})
	}
	if view.HasNext {
		nav = append(nav, Button{Label: "Next ➡️", Data: encodeNav(prefix, view.Page+1)})
	}
	if nav != nil {
		kb = append(kb, nav)
	}
	return kb
}
